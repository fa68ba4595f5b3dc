package retag

import (
	"context"
	"slices"

	"github.com/poiesic/granttag/core"
)

// BatchTagger tags a batch of inputs and returns grants in input order.
type BatchTagger interface {
	TagAll(ctx context.Context, inputs []core.GrantInput) []*core.Grant
}

// BatchProcessor retags batches of stored grants.
type BatchProcessor struct {
	tagger BatchTagger
}

// NewBatchProcessor creates a new batch processor.
func NewBatchProcessor(tagger BatchTagger) *BatchProcessor {
	return &BatchProcessor{tagger: tagger}
}

// Process returns freshly tagged copies of grants and the number whose tag
// set changed. Names, descriptions and URLs are carried over unchanged.
func (bp *BatchProcessor) Process(ctx context.Context, grants []*core.Grant) ([]*core.Grant, int) {
	if len(grants) == 0 {
		return []*core.Grant{}, 0
	}

	inputs := make([]core.GrantInput, len(grants))
	for i, g := range grants {
		inputs[i] = core.GrantInput{
			Name:         g.Name,
			Description:  g.Description,
			WebsiteURLs:  g.WebsiteURLs,
			DocumentURLs: g.DocumentURLs,
		}
	}

	retagged := bp.tagger.TagAll(ctx, inputs)

	changed := 0
	for i, g := range retagged {
		if !sameTags(grants[i].Tags, g.Tags) {
			changed++
		}
	}
	return retagged, changed
}

func sameTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := make([]string, len(a))
	for i, t := range a {
		x[i] = core.NormalizeTag(t)
	}
	y := make([]string, len(b))
	for i, t := range b {
		y[i] = core.NormalizeTag(t)
	}
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
