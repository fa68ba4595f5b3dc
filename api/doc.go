// Package api exposes a grant catalog over HTTP with fiber.
//
// Routes:
//
//	GET  /                     service banner
//	GET  /health, /api/health  liveness
//	GET  /api/grants           every stored grant
//	POST /api/grants/batch     tag and store a JSON array of grants
//	GET  /api/tags             the tag vocabulary
//	GET  /api/search           ?tags=a,b  grants carrying every tag
//	GET  /api/search/advanced  ?q=&tags=&mode=all|any  synonym-resolved search
//	GET  /metrics              Prometheus exposition, when metrics are enabled
package api
