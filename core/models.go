package core

import (
	"slices"
	"strings"
)

// ID identifies a grant inside a search index.
// IDs come from a monotonically increasing counter starting at 0 and are
// never reused until the index is cleared.
type ID uint64

// SearchMode selects how multiple tags combine in a search.
type SearchMode string

const (
	// SearchModeAll matches grants carrying every requested tag (intersection).
	SearchModeAll SearchMode = "all"
	// SearchModeAny matches grants carrying at least one requested tag (union).
	SearchModeAny SearchMode = "any"
)

// Grant is a tagged grant opportunity.
// The JSON field names are the service's wire and on-disk format.
type Grant struct {
	Name         string   `json:"grant_name"`
	Description  string   `json:"grant_description"`
	Tags         []string `json:"tags"`
	WebsiteURLs  []string `json:"website_urls"`
	DocumentURLs []string `json:"document_urls"`
}

// GrantInput is an untagged grant as submitted for tagging.
type GrantInput struct {
	Name         string   `json:"grant_name"`
	Description  string   `json:"grant_description"`
	WebsiteURLs  []string `json:"website_urls,omitempty"`
	DocumentURLs []string `json:"document_urls,omitempty"`
}

// ToGrant builds a Grant from the input and the tags assigned to it.
// Slices are copied so the result does not alias the input.
func (in *GrantInput) ToGrant(tags []string) *Grant {
	g := &Grant{
		Name:         in.Name,
		Description:  in.Description,
		Tags:         slices.Clone(tags),
		WebsiteURLs:  slices.Clone(in.WebsiteURLs),
		DocumentURLs: slices.Clone(in.DocumentURLs),
	}
	g.Normalize()
	return g
}

// Normalize replaces nil slices with empty ones so the grant always
// serializes lists as [] rather than null.
func (g *Grant) Normalize() {
	if g.Tags == nil {
		g.Tags = []string{}
	}
	if g.WebsiteURLs == nil {
		g.WebsiteURLs = []string{}
	}
	if g.DocumentURLs == nil {
		g.DocumentURLs = []string{}
	}
}

// Clone returns a deep copy of the grant.
func (g *Grant) Clone() *Grant {
	c := &Grant{
		Name:         g.Name,
		Description:  g.Description,
		Tags:         slices.Clone(g.Tags),
		WebsiteURLs:  slices.Clone(g.WebsiteURLs),
		DocumentURLs: slices.Clone(g.DocumentURLs),
	}
	c.Normalize()
	return c
}

// NormalizeTag lowercases and trims a tag. Tags are compared in this form.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// SearchResult is the outcome of an advanced search: the tags a query
// resolved to and the grants matching them.
type SearchResult struct {
	ResolvedTags []string `json:"resolved_tags"`
	Grants       []*Grant `json:"grants"`
}
