// Package scorer computes the deterministic lead score.
package scorer

import "github.com/localleads/leads-cli/internal/model"

// Additive rule set. This is the single scoring formula used across the
// system; under these rules the natural range is [50,90], but the result is
// clamped to [0,100] so the contract holds for any future rule change.
const (
	baseScore        = 50
	ratingBonus      = 10
	reviewsBonus     = 10
	websiteBonus     = 10
	phoneBonus       = 10
	ratingThreshold  = 4.5
	reviewsThreshold = 200
)

// Score computes a 0-100 lead quality score from rating, review count and
// contactability signals. Pure and deterministic.
func Score(lead model.Lead) int {
	score := baseScore
	if lead.Rating >= ratingThreshold {
		score += ratingBonus
	}
	if lead.Reviews >= reviewsThreshold {
		score += reviewsBonus
	}
	if lead.Website != "" {
		score += websiteBonus
	}
	if lead.Phone != "" {
		score += phoneBonus
	}
	return clamp(score)
}

// ScoreAll recomputes lead_score on every lead, returning the same slice.
func ScoreAll(in []model.Lead) []model.Lead {
	for i := range in {
		in[i].LeadScore = Score(in[i])
	}
	return in
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
