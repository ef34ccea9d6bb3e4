// Package pipeline orchestrates a lead search end to end: geocode, nearby
// search, detail fetches, normalization, filtering, scoring and optional
// enrichment.
package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/localleads/leads-cli/internal/enrich"
	"github.com/localleads/leads-cli/internal/leads"
	"github.com/localleads/leads-cli/internal/model"
	"github.com/localleads/leads-cli/internal/scorer"
	"github.com/localleads/leads-cli/internal/store"
	"github.com/localleads/leads-cli/pkg/places"
)

// Pipeline runs lead searches. Construct with New.
type Pipeline struct {
	places         places.Client
	enricher       enrich.Enricher
	store          store.Store
	detailFetchers int
	progress       enrich.ProgressFunc
}

// Option configures the pipeline.
type Option func(*Pipeline)

// WithStore enables run persistence.
func WithStore(st store.Store) Option {
	return func(p *Pipeline) { p.store = st }
}

// WithDetailFetchers bounds the number of concurrent place-detail requests.
func WithDetailFetchers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.detailFetchers = n
		}
	}
}

// WithProgress installs an observer for enrichment progress.
func WithProgress(fn enrich.ProgressFunc) Option {
	return func(p *Pipeline) { p.progress = fn }
}

// New creates a Pipeline. The enricher may be nil when enrichment is never
// requested.
func New(placesClient places.Client, enricher enrich.Enricher, opts ...Option) *Pipeline {
	p := &Pipeline{
		places:         placesClient,
		enricher:       enricher,
		detailFetchers: 4,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run executes one search and returns an immutable result. Zero matching
// businesses is not an error: the result simply carries no leads.
func (p *Pipeline) Run(ctx context.Context, params model.SearchParams) (*model.SearchResult, error) {
	params = params.WithDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	log := zap.L().With(zap.String("location", params.Location))
	log.Info("pipeline: starting lead search",
		zap.Int("radius_km", params.RadiusKm),
		zap.String("business_type", params.BusinessType),
		zap.Bool("enrich", params.Enrich),
	)

	runID := p.createRun(ctx, params)

	result, err := p.run(ctx, params, runID)
	if err != nil {
		p.failRun(ctx, runID, err)
		return nil, err
	}

	p.completeRun(ctx, runID, result)
	log.Info("pipeline: search complete", zap.Int("leads", len(result.Leads)))
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, params model.SearchParams, runID string) (*model.SearchResult, error) {
	geo, err := p.places.Geocode(ctx, params.Location)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: geocode")
	}

	raw, err := p.places.NearbySearch(ctx, places.NearbyQuery{
		Lat:        geo.Lat,
		Lng:        geo.Lng,
		RadiusKm:   params.RadiusKm,
		Keyword:    params.BusinessType,
		MaxResults: params.MaxResults,
	})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: nearby search")
	}

	result := &model.SearchResult{
		Params: params,
		Center: model.Center{Lat: geo.Lat, Lng: geo.Lng, FormattedAddress: geo.FormattedAddress},
	}

	if len(raw) == 0 {
		zap.L().Warn("pipeline: no businesses found", zap.String("location", params.Location))
		result.Leads = []model.Lead{}
		return result, nil
	}

	candidates := p.collectLeads(ctx, raw)
	candidates = leads.Filter(candidates, params.MinRating, params.MinReviews)
	candidates = scorer.ScoreAll(candidates)

	if params.Enrich && p.enricher != nil {
		p.setStatus(ctx, runID, model.RunStatusEnriching)
		result.Leads = enrich.EnrichAll(ctx, p.enricher, candidates, params.MaxResults, p.progress)
	} else {
		result.Leads = enrich.TopByScore(candidates, params.MaxResults)
	}

	return result, nil
}

// collectLeads fetches details for each place with bounded concurrency and
// normalizes the results. Output order matches input order regardless of
// completion order. A failed detail fetch keeps the lead with its base
// search data; it never aborts the batch.
func (p *Pipeline) collectLeads(ctx context.Context, raw []places.RawPlace) []model.Lead {
	details := make([]*places.PlaceDetail, len(raw))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(p.detailFetchers)
	for i, rp := range raw {
		eg.Go(func() error {
			d, err := p.places.PlaceDetails(gCtx, rp.PlaceID)
			if err != nil {
				zap.L().Warn("pipeline: detail fetch failed",
					zap.String("place_id", rp.PlaceID),
					zap.Error(err),
				)
				return nil //nolint:nilerr // per-place failures don't fail the batch
			}
			details[i] = d
			return nil
		})
	}
	_ = eg.Wait()

	out := make([]model.Lead, 0, len(raw))
	for i, rp := range raw {
		out = append(out, leads.Normalize(rp, details[i]))
	}
	return out
}

func (p *Pipeline) createRun(ctx context.Context, params model.SearchParams) string {
	if p.store == nil {
		return ""
	}
	run, err := p.store.CreateRun(ctx, params)
	if err != nil {
		zap.L().Warn("pipeline: create run failed", zap.Error(err))
		return ""
	}
	return run.ID
}

func (p *Pipeline) setStatus(ctx context.Context, runID string, status model.RunStatus) {
	if p.store == nil || runID == "" {
		return
	}
	if err := p.store.UpdateRunStatus(ctx, runID, status); err != nil {
		zap.L().Warn("pipeline: update run status failed", zap.Error(err))
	}
}

func (p *Pipeline) completeRun(ctx context.Context, runID string, result *model.SearchResult) {
	if p.store == nil || runID == "" {
		return
	}
	if err := p.store.SetRunResult(ctx, runID, result); err != nil {
		zap.L().Warn("pipeline: save run result failed", zap.Error(err))
	}
}

func (p *Pipeline) failRun(ctx context.Context, runID string, runErr error) {
	if p.store == nil || runID == "" {
		return
	}
	if err := p.store.FailRun(ctx, runID, runErr.Error()); err != nil {
		zap.L().Warn("pipeline: mark run failed", zap.Error(err))
	}
}
