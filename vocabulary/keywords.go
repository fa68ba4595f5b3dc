package vocabulary

// defaultKeywords maps every built-in tag to the phrases that trigger it.
// The key set is the built-in tag vocabulary.
var defaultKeywords = map[string][]string{
	"agriculture":            {"farm", "farms", "farming", "agricultural", "crop", "crops", "producer", "grower"},
	"aquaculture":            {"fish", "seafood", "marine", "aquatic"},
	"capacity-building":      {"capacity", "development", "strengthen", "enhance"},
	"capital":                {"capital", "funding", "investment", "finance"},
	"climate":                {"climate", "weather", "greenhouse", "carbon"},
	"community-benefit":      {"community", "public", "benefit"},
	"conservation":           {"conserve", "conservation", "preserve", "protection"},
	"cost-share":             {"cost-share", "cost share", "reimbursement", "matching"},
	"dairy":                  {"dairy", "milk", "cattle", "cow"},
	"distribution":           {"distribute", "distribution", "delivery", "transport"},
	"drought":                {"drought", "dry", "water shortage"},
	"education":              {"education", "educational", "learning", "teach", "school", "student", "curricula", "training program"},
	"equipment":              {"equipment", "machinery", "tool", "implement"},
	"equine":                 {"equine", "horse", "horses"},
	"equine-owners":          {"equine owner", "horse owner"},
	"food-safety":            {"food safety", "safe", "sanitation", "inspection"},
	"farmer":                 {"farmer", "grower", "producer", "rancher"},
	"farm-to-school":         {"farm to school", "school meal", "school food"},
	"grant":                  {"grant", "funding", "financial assistance"},
	"infrastructure":         {"infrastructure", "facility", "facilities", "building", "construction"},
	"irrigation":             {"irrigation", "irrigate", "watering", "water system"},
	"local-food":             {"local food", "local product", "locally sourced", "regional food"},
	"local-government":       {"local government", "municipality", "county", "city"},
	"logistics":              {"logistics", "supply chain", "distribution"},
	"marketing":              {"marketing", "market", "promotion", "advertising", "brand"},
	"mixed-operations":       {"mixed operation", "diversified"},
	"nonprofit":              {"nonprofit", "non-profit", "NGO", "charity"},
	"nutrient-management":    {"nutrient", "fertilizer", "nutrient management"},
	"operational":            {"operational", "operations", "operating"},
	"organic-certification":  {"organic certification", "certified organic"},
	"organic-transition":     {"organic transition", "transitioning to organic"},
	"outreach":               {"outreach", "awareness", "engagement", "communication"},
	"planning":               {"planning", "plan", "strategy"},
	"pilot":                  {"pilot", "demonstration", "trial"},
	"producer-group":         {"producer group", "cooperative", "association"},
	"procurement":            {"procurement", "purchase", "purchasing", "buying"},
	"processing":             {"processing", "process", "value-added", "manufacturing"},
	"research":               {"research", "study", "investigation", "science"},
	"resilience":             {"resilience", "resilient", "adaptation", "recovery"},
	"reimbursement":          {"reimbursement", "reimburse", "repayment"},
	"rolling":                {"rolling", "ongoing", "continuous"},
	"rural":                  {"rural", "countryside", "agricultural area"},
	"safety-net":             {"safety net", "assistance", "support", "welfare"},
	"school":                 {"school", "educational institution", "K-12", "high school"},
	"seafood":                {"seafood", "fish", "shellfish", "aquatic"},
	"seafood-harvester":      {"seafood harvester", "fisherman", "fisher"},
	"soil":                   {"soil", "earth", "ground", "land"},
	"supply-chain":           {"supply chain", "logistics", "distribution"},
	"technical-assistance":   {"technical assistance", "consulting", "advisory", "support"},
	"training":               {"training", "education", "workshop", "instruction", "learning"},
	"value-added":            {"value-added", "value added", "processing", "manufactured"},
	"water":                  {"water", "aquatic", "hydro"},
	"water-storage":          {"water storage", "reservoir", "tank", "cistern"},
	"working-capital":        {"working capital", "operational funds", "cash flow"},
	"row-crops":              {"row crop", "grain", "corn", "soybean", "wheat"},
	"vegetables":             {"vegetable", "produce", "veggie"},
	"fruit":                  {"fruit", "orchard", "berry", "berries"},
	"livestock":              {"livestock", "cattle", "animal", "herd"},
	"competitive":            {"competitive", "competition", "merit-based"},
	"match-required":         {"match required", "matching", "cost-share"},
	"public-entity-eligible": {"public entity", "government", "municipality"},
	"individual-eligible":    {"individual", "person", "farmer"},
	"cooperative":            {"cooperative", "co-op", "association"},
	"for-profit":             {"for-profit", "business", "commercial"},
	"university":             {"university", "college", "academic"},
	"extension":              {"extension", "outreach"},
	"tribal":                 {"tribal", "tribe", "indigenous", "native"},
	"veteran":                {"veteran", "military", "armed forces"},
	"beginning-farmer":       {"beginning farmer", "new farmer", "novice"},
	"underserved":            {"underserved", "disadvantaged", "minority"},
	"youth":                  {"youth", "young", "children", "student", "students"},
	"food-access":            {"food access", "food security", "hunger"},
	"nutrition":              {"nutrition", "nutritional", "healthy eating"},
	"workforce":              {"workforce", "employment", "labor", "worker"},
	"energy":                 {"energy", "power", "electricity"},
	"renewable-energy":       {"renewable energy", "solar", "wind", "biomass"},
	"water-quality":          {"water quality", "clean water", "pollution"},
	"soil-health":            {"soil health", "soil quality", "soil conservation"},
	"wildlife-habitat":       {"wildlife", "habitat", "ecosystem", "biodiversity"},
	"pasture":                {"pasture", "grazing land", "grassland"},
	"grazing":                {"grazing", "graze", "pasture"},
	"manure-management":      {"manure", "waste management", "composting"},
	"disaster-relief":        {"disaster", "emergency", "relief"},
	"flood":                  {"flood", "flooding", "inundation"},
}
