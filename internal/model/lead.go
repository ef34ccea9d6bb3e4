package model

// Lead represents one business candidate for outreach. Identity fields are
// populated once during normalization and never mutated afterwards; LeadScore
// is recomputed by the scorer and Enrichment is attached by the enrichment
// orchestrator.
type Lead struct {
	PlaceID     string      `json:"place_id"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	FullAddress string      `json:"full_address,omitempty"`
	Lat         float64     `json:"lat"`
	Lng         float64     `json:"lng"`
	Rating      float64     `json:"rating"`
	Reviews     int         `json:"reviews"`
	Phone       string      `json:"phone,omitempty"`
	Website     string      `json:"website,omitempty"`
	Types       []string    `json:"types,omitempty"`
	LeadScore   int         `json:"lead_score"`
	Enrichment  *Enrichment `json:"enrichment,omitempty"`
}

// HasCoordinates reports whether the lead carries usable map coordinates.
// Places with no geometry are normalized to (0,0), which is open ocean and
// never a real business location.
func (l Lead) HasCoordinates() bool {
	return l.Lat != 0 || l.Lng != 0
}

// BestAddress returns the detail-level formatted address when present,
// falling back to the vicinity address from the search result.
func (l Lead) BestAddress() string {
	if l.FullAddress != "" {
		return l.FullAddress
	}
	return l.Address
}

// Enrichment holds the AI-generated qualitative fields attached to a lead.
// Exactly these six fields exist; each is either a genuine value or a
// sentinel string, never absent.
type Enrichment struct {
	Description         string `json:"description"`
	CompanySize         string `json:"company_size"`
	DecisionMakers      string `json:"decision_makers"`
	PainPoints          string `json:"pain_points"`
	RecommendedApproach string `json:"recommended_approach"`
	OutreachTemplate    string `json:"outreach_template"`
}

// Quality bands for the detailed-profile view.
const (
	QualityHigh   = "High Value Lead"
	QualityMedium = "Medium Value Lead"
	QualityLow    = "Low Value Lead"
)

// QualityBand maps a lead score to its quality label.
func QualityBand(score int) string {
	switch {
	case score >= 80:
		return QualityHigh
	case score >= 60:
		return QualityMedium
	default:
		return QualityLow
	}
}
