package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/localleads/leads-cli/internal/model"
)

func TestScore_RuleTable(t *testing.T) {
	tests := []struct {
		name string
		lead model.Lead
		want int
	}{
		{name: "base only", lead: model.Lead{}, want: 50},
		{name: "high rating", lead: model.Lead{Rating: 4.5}, want: 60},
		{name: "rating just below threshold", lead: model.Lead{Rating: 4.4}, want: 50},
		{name: "many reviews", lead: model.Lead{Reviews: 200}, want: 60},
		{name: "reviews just below threshold", lead: model.Lead{Reviews: 199}, want: 50},
		{name: "website only", lead: model.Lead{Website: "https://x.example"}, want: 60},
		{name: "phone only", lead: model.Lead{Phone: "(217) 555-0100"}, want: 60},
		{
			name: "all signals",
			lead: model.Lead{Rating: 4.9, Reviews: 450, Website: "https://x.example", Phone: "555"},
			want: 90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.lead))
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	lead := model.Lead{Rating: 4.7, Reviews: 300, Website: "https://x.example"}
	first := Score(lead)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(lead))
	}
}

func TestScore_Bounds(t *testing.T) {
	leads := []model.Lead{
		{},
		{Rating: 5, Reviews: 100000, Website: "w", Phone: "p"},
		{Rating: -3, Reviews: -10},
	}
	for _, l := range leads {
		s := Score(l)
		assert.GreaterOrEqual(t, s, 0)
		assert.LessOrEqual(t, s, 100)
	}
}

func TestScoreAll(t *testing.T) {
	in := []model.Lead{
		{PlaceID: "a", Rating: 4.9, Reviews: 450, Website: "w", Phone: "p"},
		{PlaceID: "b"},
	}

	out := ScoreAll(in)

	assert.Equal(t, 90, out[0].LeadScore)
	assert.Equal(t, 50, out[1].LeadScore)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, clamp(-5))
	assert.Equal(t, 100, clamp(120))
	assert.Equal(t, 75, clamp(75))
}
