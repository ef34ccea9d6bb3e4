// Package leads turns raw places-API results into canonical Lead records
// and provides the filtering and analytics applied to them.
package leads

import (
	"github.com/localleads/leads-cli/internal/model"
	"github.com/localleads/leads-cli/pkg/places"
)

// Normalize converts a raw search result and an optional detail lookup into
// a canonical Lead. It is total: every missing optional field is defaulted
// (numbers to 0, strings to empty) rather than failing. Missing strings stay
// empty internally; "N/A" appears only at the presentation boundary.
func Normalize(raw places.RawPlace, detail *places.PlaceDetail) model.Lead {
	lead := model.Lead{
		PlaceID: raw.PlaceID,
		Name:    raw.Name,
		Address: raw.Vicinity,
		Lat:     raw.Lat(),
		Lng:     raw.Lng(),
		Rating:  raw.Rating,
		Reviews: raw.Reviews,
		Types:   raw.Types,
	}

	if lead.Rating < 0 {
		lead.Rating = 0
	}
	if lead.Reviews < 0 {
		lead.Reviews = 0
	}

	if detail != nil {
		if detail.FormattedAddress != "" {
			lead.FullAddress = detail.FormattedAddress
		}
		lead.Phone = detail.Phone
		lead.Website = detail.Website
	}

	return lead
}

// Filter returns the leads meeting the rating and review thresholds,
// preserving input order.
func Filter(in []model.Lead, minRating float64, minReviews int) []model.Lead {
	out := make([]model.Lead, 0, len(in))
	for _, l := range in {
		if l.Rating >= minRating && l.Reviews >= minReviews {
			out = append(out, l)
		}
	}
	return out
}
