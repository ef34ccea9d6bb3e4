package enrich

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/localleads/leads-cli/internal/model"
)

// TopByScore returns a copy of the leads, stably sorted by lead score
// descending and truncated to max entries. Ties keep their original
// relative order; the input slice is left untouched.
func TopByScore(in []model.Lead, max int) []model.Lead {
	out := make([]model.Lead, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LeadScore > out[j].LeadScore
	})
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// Enricher produces enrichment fields for a single lead.
type Enricher interface {
	Enrich(ctx context.Context, lead model.Lead) model.Enrichment
}

// ProgressFunc receives incremental progress (leads done out of total).
// Advisory only; it carries no correctness weight.
type ProgressFunc func(done, total int)

// EnrichAll selects the top maxLeads leads by score and enriches them one at
// a time. Ordering is stable: equal scores keep their original relative
// order. Every selected lead yields exactly one output record; a failed
// enrichment still produces a fully-keyed sentinel-filled lead, and output
// length always equals min(len(leads), maxLeads).
//
// Calls are sequential on purpose: the enrichment client is rate-gated and
// the progress counter stays monotonic.
func EnrichAll(ctx context.Context, client Enricher, in []model.Lead, maxLeads int, progress ProgressFunc) []model.Lead {
	if maxLeads <= 0 {
		maxLeads = model.DefaultMaxResults
	}

	selected := TopByScore(in, maxLeads)

	out := make([]model.Lead, 0, len(selected))
	for i, lead := range selected {
		if ctx.Err() != nil {
			// Cancelled mid-batch: prefer returning un-enriched base leads
			// over dropping them.
			zap.L().Warn("enrich: batch interrupted, returning base leads",
				zap.Int("done", i),
				zap.Int("total", len(selected)),
			)
			out = append(out, selected[i:]...)
			break
		}

		zap.L().Info("enrich: processing lead",
			zap.String("lead", lead.Name),
			zap.Int("index", i+1),
			zap.Int("total", len(selected)),
		)

		result := client.Enrich(ctx, lead)
		lead.Enrichment = &result
		out = append(out, lead)

		if progress != nil {
			progress(i+1, len(selected))
		}
	}

	return out
}
