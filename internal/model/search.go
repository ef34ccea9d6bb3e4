package model

import (
	"time"

	"github.com/rotisserie/eris"
)

// DefaultMaxResults is the result cap applied when a search does not
// specify one.
const DefaultMaxResults = 8

// SearchParams describes one lead search.
type SearchParams struct {
	Location     string  `json:"location"`
	RadiusKm     int     `json:"radius_km"`
	BusinessType string  `json:"business_type,omitempty"`
	MinRating    float64 `json:"min_rating"`
	MinReviews   int     `json:"min_reviews"`
	Enrich       bool    `json:"enrich"`
	MaxResults   int     `json:"max_results"`
}

// Validate checks the user-supplied parameters before any external call.
func (p SearchParams) Validate() error {
	if p.Location == "" {
		return eris.New("search: location is required")
	}
	if p.RadiusKm < 1 || p.RadiusKm > 50 {
		return eris.Errorf("search: radius must be between 1 and 50 km, got %d", p.RadiusKm)
	}
	if p.MinRating < 0 || p.MinRating > 5 {
		return eris.Errorf("search: min rating must be between 0.0 and 5.0, got %g", p.MinRating)
	}
	if p.MinReviews < 0 {
		return eris.Errorf("search: min reviews must be non-negative, got %d", p.MinReviews)
	}
	return nil
}

// WithDefaults returns a copy with unset optional fields filled in.
func (p SearchParams) WithDefaults() SearchParams {
	if p.RadiusKm == 0 {
		p.RadiusKm = 5
	}
	if p.MaxResults <= 0 {
		p.MaxResults = DefaultMaxResults
	}
	return p
}

// Center is the geocoded origin of a search.
type Center struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formatted_address"`
}

// SearchResult is the immutable outcome of one pipeline run, handed to the
// presentation layer by the caller. No ambient session state exists.
type SearchResult struct {
	Params SearchParams `json:"params"`
	Center Center       `json:"center"`
	Leads  []Lead       `json:"leads"`
}

// RunStatus represents the current state of a persisted search run.
type RunStatus string

const (
	RunStatusSearching RunStatus = "searching"
	RunStatusEnriching RunStatus = "enriching"
	RunStatusComplete  RunStatus = "complete"
	RunStatusFailed    RunStatus = "failed"
)

// SearchRun is a persisted record of one search, including its final result.
type SearchRun struct {
	ID        string        `json:"id"`
	Params    SearchParams  `json:"params"`
	Status    RunStatus     `json:"status"`
	Result    *SearchResult `json:"result,omitempty"`
	Error     string        `json:"error,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
