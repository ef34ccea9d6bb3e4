package enrich

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localleads/leads-cli/internal/model"
	"github.com/localleads/leads-cli/pkg/anthropic"
)

// fakeLLM returns canned responses and records calls.
type fakeLLM struct {
	resp  *anthropic.MessageResponse
	err   error
	calls int
	last  anthropic.MessageRequest
}

func (f *fakeLLM) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{Text: text, StopReason: "end_turn"}
}

// fastClient builds a client whose rate gate never blocks the test.
func fastClient(llm anthropic.Client, gatherer ContextGatherer) *Client {
	return New(llm, gatherer, WithRateLimit(10000))
}

var testLead = model.Lead{
	PlaceID: "p1",
	Name:    "Acme Cafe",
	Address: "1 Main St, Springfield, IL",
	Rating:  4.6,
	Reviews: 210,
	Website: "https://acmecafe.example",
	Phone:   "(217) 555-0100",
	Types:   []string{"cafe", "food"},
}

func assertAllKeysPopulated(t *testing.T, e model.Enrichment) {
	t.Helper()
	assert.NotEmpty(t, e.Description)
	assert.NotEmpty(t, e.CompanySize)
	assert.NotEmpty(t, e.DecisionMakers)
	assert.NotEmpty(t, e.PainPoints)
	assert.NotEmpty(t, e.RecommendedApproach)
	assert.NotEmpty(t, e.OutreachTemplate)
}

func TestEnrich_Success(t *testing.T) {
	llm := &fakeLLM{resp: textResponse(`{
		"description": "Acme Cafe is a specialty coffee shop.",
		"company_size": "Small",
		"decision_makers": "Owner",
		"pain_points": "Seasonal demand",
		"recommended_approach": "In-person visit",
		"outreach_template": "Hi Acme team, ..."
	}`)}

	result := fastClient(llm, nil).Enrich(context.Background(), testLead)

	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, "Acme Cafe is a specialty coffee shop.", result.Description)
	assert.Equal(t, "Small", result.CompanySize)
	assert.Equal(t, "Owner", result.DecisionMakers)
	assert.Equal(t, "Seasonal demand", result.PainPoints)
	assert.Equal(t, "In-person visit", result.RecommendedApproach)
	assert.Equal(t, "Hi Acme team, ...", result.OutreachTemplate)
}

func TestEnrich_PromptEmbedsLeadFields(t *testing.T) {
	llm := &fakeLLM{resp: textResponse(`{}`)}

	fastClient(llm, nil).Enrich(context.Background(), testLead)

	require.Len(t, llm.last.Messages, 1)
	prompt := llm.last.Messages[0].Content
	assert.Contains(t, prompt, "Acme Cafe")
	assert.Contains(t, prompt, "1 Main St, Springfield, IL")
	assert.Contains(t, prompt, "cafe, food")
	assert.Contains(t, prompt, "4.6")
	assert.Contains(t, prompt, "https://acmecafe.example")
	assert.Contains(t, prompt, "description, company_size, decision_makers, pain_points, recommended_approach, outreach_template")
}

func TestEnrich_MissingName_NoExternalCall(t *testing.T) {
	llm := &fakeLLM{resp: textResponse(`{}`)}

	result := fastClient(llm, nil).Enrich(context.Background(), model.Lead{Address: "X"})

	assert.Zero(t, llm.calls)
	assert.Equal(t, SentinelMissingInput, result.Description)
	assert.Empty(t, result.CompanySize)
	assert.Empty(t, result.OutreachTemplate)
}

func TestEnrich_APIError(t *testing.T) {
	llm := &fakeLLM{err: eris.New("connection refused")}

	result := fastClient(llm, nil).Enrich(context.Background(), model.Lead{
		Name:    "Acme Cafe",
		Address: "1 Main St, Springfield, IL",
	})

	assert.Equal(t, SentinelAPIError, result.Description)
	assertAllKeysPopulated(t, result)
	assert.Contains(t, result.OutreachTemplate, "Acme Cafe")
}

func TestEnrich_MalformedJSON(t *testing.T) {
	llm := &fakeLLM{resp: textResponse("I could not produce structured output, sorry.")}

	result := fastClient(llm, nil).Enrich(context.Background(), testLead)

	assert.Equal(t, SentinelJSONError, result.Description)
	assertAllKeysPopulated(t, result)
}

func TestEnrich_EmptyResponse(t *testing.T) {
	llm := &fakeLLM{resp: textResponse("   ")}

	result := fastClient(llm, nil).Enrich(context.Background(), testLead)

	assert.Equal(t, SentinelNoResponse, result.Description)
	assertAllKeysPopulated(t, result)
}

func TestEnrich_Blocked(t *testing.T) {
	llm := &fakeLLM{resp: &anthropic.MessageResponse{Text: "", StopReason: "refusal"}}

	result := fastClient(llm, nil).Enrich(context.Background(), testLead)

	assert.Equal(t, "Blocked: refusal", result.Description)
	assertAllKeysPopulated(t, result)
}

func TestEnrich_PartialKeys(t *testing.T) {
	llm := &fakeLLM{resp: textResponse(`{"description": "A cafe", "company_size": "Small"}`)}

	result := fastClient(llm, nil).Enrich(context.Background(), testLead)

	assert.Equal(t, "A cafe", result.Description)
	assert.Equal(t, "Small", result.CompanySize)
	assert.Equal(t, SentinelParseError, result.DecisionMakers)
	assert.Equal(t, SentinelParseError, result.PainPoints)
	assert.Equal(t, SentinelParseError, result.RecommendedApproach)
	assert.Equal(t, SentinelParseError, result.OutreachTemplate)
}

// failingGatherer always errors internally and returns nil snippets.
type recordingGatherer struct {
	snippets []string
	calls    int
}

func (g *recordingGatherer) Gather(context.Context, model.Lead) []string {
	g.calls++
	return g.snippets
}

func TestEnrich_SnippetsEmbeddedInPrompt(t *testing.T) {
	llm := &fakeLLM{resp: textResponse(`{}`)}
	gatherer := &recordingGatherer{snippets: []string{"Title: Acme | LinkedIn\nSnippet: coffee shop\nURL: https://x"}}

	fastClient(llm, gatherer).Enrich(context.Background(), testLead)

	assert.Equal(t, 1, gatherer.calls)
	assert.Contains(t, llm.last.Messages[0].Content, "Additional information found online")
	assert.Contains(t, llm.last.Messages[0].Content, "Acme | LinkedIn")
}

func TestEnrich_NoGathererStillWorks(t *testing.T) {
	llm := &fakeLLM{resp: textResponse(`{}`)}

	result := New(llm, nil, WithRateLimit(10000)).Enrich(context.Background(), testLead)

	// ExtractJSON succeeds on {} so every field is a per-key sentinel.
	assert.Equal(t, SentinelParseError, result.Description)
	assert.NotContains(t, llm.last.Messages[0].Content, "Additional information found online")
}

func TestLocationFromAddress(t *testing.T) {
	assert.Equal(t, "Springfield", locationFromAddress("1 Main St, Springfield, IL"))
	assert.Equal(t, "1 Main St", locationFromAddress("1 Main St, Springfield"))
	assert.Empty(t, locationFromAddress("Springfield"))
	assert.Empty(t, locationFromAddress(""))
}

func TestDefaultEnrichment(t *testing.T) {
	e := defaultEnrichment(model.Lead{Name: "Acme Cafe", Address: "1 Main St, Springfield, IL"})
	assert.Equal(t, "A business operating as Acme Cafe in Springfield.", e.Description)
	assert.Equal(t, "Small to Medium", e.CompanySize)
	assertAllKeysPopulated(t, e)
}
