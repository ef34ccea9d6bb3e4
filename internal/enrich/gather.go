package enrich

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/localleads/leads-cli/internal/model"
	"github.com/localleads/leads-cli/pkg/websearch"
)

// ContextGatherer collects public snippets about a business before the
// generative call. Gathering is best-effort: implementations return an empty
// slice on failure, never an error.
type ContextGatherer interface {
	Gather(ctx context.Context, lead model.Lead) []string
}

// NoGatherer skips context gathering entirely.
type NoGatherer struct{}

// Gather implements ContextGatherer.
func (NoGatherer) Gather(context.Context, model.Lead) []string { return nil }

// SearchGatherer gathers snippets via a web-search API.
type SearchGatherer struct {
	search websearch.Client
}

// NewSearchGatherer creates a SearchGatherer backed by the given client.
func NewSearchGatherer(search websearch.Client) *SearchGatherer {
	return &SearchGatherer{search: search}
}

// Gather implements ContextGatherer. Failures are logged and swallowed.
func (g *SearchGatherer) Gather(ctx context.Context, lead model.Lead) []string {
	query := fmt.Sprintf("%s %s company linkedin", lead.Name, locationFromAddress(lead.BestAddress()))

	snippets, err := g.search.Search(ctx, query)
	if err != nil {
		zap.L().Warn("enrich: snippet search failed",
			zap.String("lead", lead.Name),
			zap.Error(err),
		)
		return nil
	}

	out := make([]string, 0, len(snippets))
	for _, s := range snippets {
		out = append(out, fmt.Sprintf("Title: %s\nSnippet: %s\nURL: %s", s.Title, s.Description, s.URL))
	}
	return out
}
