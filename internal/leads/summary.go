package leads

import "github.com/localleads/leads-cli/internal/model"

// Summary aggregates the analytics shown on the dashboard.
type Summary struct {
	TotalLeads       int            `json:"total_leads"`
	AverageRating    float64        `json:"average_rating"`
	AverageScore     float64        `json:"average_score"`
	HighQualityLeads int            `json:"high_quality_leads"` // score > 80
	CompanySizes     map[string]int `json:"company_sizes,omitempty"`
}

// Summarize computes dashboard analytics over a result set.
func Summarize(in []model.Lead) Summary {
	s := Summary{TotalLeads: len(in)}
	if len(in) == 0 {
		return s
	}

	var ratingSum, scoreSum float64
	sizes := make(map[string]int)
	for _, l := range in {
		ratingSum += l.Rating
		scoreSum += float64(l.LeadScore)
		if l.LeadScore > 80 {
			s.HighQualityLeads++
		}
		if l.Enrichment != nil && l.Enrichment.CompanySize != "" {
			sizes[l.Enrichment.CompanySize]++
		}
	}

	s.AverageRating = ratingSum / float64(len(in))
	s.AverageScore = scoreSum / float64(len(in))
	if len(sizes) > 0 {
		s.CompanySizes = sizes
	}
	return s
}
