package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/poiesic/granttag/core"
)

// Version is reported by the root route.
const Version = "1.0.0"

const (
	msgExpectedArray  = "Expected array of grants"
	msgFieldsRequired = "grant_name and grant_description are required"
)

// Catalog is the grant collection served by the API.
type Catalog interface {
	Grants(ctx context.Context) ([]*core.Grant, error)
	Tags() []string
	TagBatch(ctx context.Context, inputs []core.GrantInput) ([]*core.Grant, error)
	Search(ctx context.Context, tags []string) ([]*core.Grant, error)
	AdvancedSearch(ctx context.Context, query string, tags []string, mode string) (*core.SearchResult, error)
}

// Handler serves catalog requests.
type Handler struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewHandler creates a handler for catalog. A nil logger means slog.Default().
func NewHandler(catalog Catalog, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		catalog: catalog,
		logger:  logger.With("component", "api"),
	}
}

// Register mounts every catalog route on router.
func (h *Handler) Register(router fiber.Router) {
	router.Get("/", h.Root)
	router.Get("/health", h.Health)

	group := router.Group("/api")
	group.Get("/health", h.Health)
	group.Get("/grants", h.ListGrants)
	group.Post("/grants/batch", h.TagBatch)
	group.Get("/tags", h.ListTags)
	group.Get("/search", h.Search)
	group.Get("/search/advanced", h.AdvancedSearch)
}

// Root responds with the service banner.
func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Grant Tagging API",
		"version": Version,
		"status":  "running",
	})
}

// Health responds with the liveness status.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}

// ListGrants returns every stored grant.
func (h *Handler) ListGrants(c *fiber.Ctx) error {
	grants, err := h.catalog.Grants(c.UserContext())
	if err != nil {
		return h.internalError(c, "list grants", err)
	}
	return c.JSON(grants)
}

// TagBatch tags and stores a JSON array of grants.
func (h *Handler) TagBatch(c *fiber.Ctx) error {
	var items []json.RawMessage
	if err := json.Unmarshal(c.Body(), &items); err != nil || items == nil {
		return badRequest(c, msgExpectedArray)
	}

	inputs := make([]core.GrantInput, len(items))
	for i, item := range items {
		if err := json.Unmarshal(item, &inputs[i]); err != nil {
			return badRequest(c, msgFieldsRequired)
		}
	}

	grants, err := h.catalog.TagBatch(c.UserContext(), inputs)
	if err != nil {
		if errors.Is(err, core.ErrInvalidGrant) {
			return badRequest(c, msgFieldsRequired)
		}
		return h.internalError(c, "tag batch", err)
	}

	h.logger.Info("batch tagged", "grants", len(grants))
	return c.JSON(grants)
}

// ListTags returns the tag vocabulary.
func (h *Handler) ListTags(c *fiber.Ctx) error {
	return c.JSON(h.catalog.Tags())
}

// Search returns the grants carrying every tag in the comma-separated tags
// parameter.
func (h *Handler) Search(c *fiber.Ctx) error {
	param := c.Query("tags")
	if param == "" {
		return c.JSON([]*core.Grant{})
	}

	grants, err := h.catalog.Search(c.UserContext(), strings.Split(param, ","))
	if err != nil {
		return h.internalError(c, "search", err)
	}
	return c.JSON(grants)
}

// AdvancedSearch resolves the q parameter through synonyms, adds the explicit
// tags parameter, and searches under mode.
func (h *Handler) AdvancedSearch(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	mode := string(core.SearchModeAll)
	if c.Context().QueryArgs().Has("mode") {
		mode = c.Query("mode")
		if _, err := core.ParseSearchMode(mode); err != nil {
			return badRequest(c, core.ErrInvalidSearchMode.Error())
		}
	}

	var tags []string
	if param := strings.TrimSpace(c.Query("tags")); param != "" {
		tags = strings.Split(param, ",")
	}

	result, err := h.catalog.AdvancedSearch(c.UserContext(), query, tags, mode)
	if err != nil {
		if errors.Is(err, core.ErrInvalidSearchMode) {
			return badRequest(c, core.ErrInvalidSearchMode.Error())
		}
		return h.internalError(c, "advanced search", err)
	}
	return c.JSON(result)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func (h *Handler) internalError(c *fiber.Ctx, op string, err error) error {
	h.logger.Error(op+" failed", "err", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
