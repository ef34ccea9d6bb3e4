// Package enrich augments leads with AI-generated business intelligence.
// Enrichment is advisory and best-effort: every failure mode degrades to a
// sentinel-filled result, and nothing in this package ever aborts the
// surrounding pipeline.
package enrich

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/localleads/leads-cli/internal/model"
	"github.com/localleads/leads-cli/pkg/anthropic"
)

// Sentinel values substituted when real data is unavailable. They
// distinguish "checked but absent" from "not yet checked".
const (
	SentinelMissingInput = "Missing Input"
	SentinelAPIError     = "API Error"
	SentinelJSONError    = "JSON Parse Error"
	SentinelNoResponse   = "No Response"
	SentinelParseError   = "Parse Error"
)

const systemPrompt = "You are a business data enrichment assistant for lead generation. " +
	"Do not invent information; base your analysis on the provided business data and snippets."

// Option configures the enrichment client.
type Option func(*Client)

// WithModel overrides the model used for enrichment calls.
func WithModel(m string) Option {
	return func(c *Client) { c.model = m }
}

// WithMaxTokens sets the response token budget.
func WithMaxTokens(n int64) Option {
	return func(c *Client) { c.maxTokens = n }
}

// WithRateLimit sets the requests-per-second gate between enrichment calls.
// The default of 1 req/s reproduces the fixed one-second delay the external
// provider's quota expects.
func WithRateLimit(rps float64) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// Client produces the six enrichment fields for a lead.
type Client struct {
	llm       anthropic.Client
	gatherer  ContextGatherer
	model     string
	maxTokens int64
	limiter   *rate.Limiter
}

// New creates an enrichment client. A nil gatherer disables context
// gathering.
func New(llm anthropic.Client, gatherer ContextGatherer, opts ...Option) *Client {
	c := &Client{
		llm:       llm,
		gatherer:  gatherer,
		model:     "claude-haiku-4-5-20251001",
		maxTokens: 1024,
		limiter:   rate.NewLimiter(1, 1),
	}
	if c.gatherer == nil {
		c.gatherer = NoGatherer{}
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Enrich produces an enrichment result for the lead. It never fails: any
// error from the gatherer, the generative call, or JSON decoding is
// converted into a sentinel-filled result. The call blocks on a fixed-rate
// gate, so callers must not fan it out without their own quota gate.
func (c *Client) Enrich(ctx context.Context, lead model.Lead) model.Enrichment {
	if lead.Name == "" {
		// No external call is made for unidentifiable leads.
		return model.Enrichment{Description: SentinelMissingInput}
	}

	log := zap.L().With(zap.String("lead", lead.Name))

	if err := c.limiter.Wait(ctx); err != nil {
		log.Warn("enrich: rate gate interrupted", zap.Error(err))
		return c.fallback(lead, SentinelAPIError)
	}

	snippets := c.gatherer.Gather(ctx, lead)

	resp, err := c.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    systemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildPrompt(lead, snippets)},
		},
	})
	if err != nil {
		log.Warn("enrich: generative call failed", zap.Error(err))
		return c.fallback(lead, SentinelAPIError)
	}

	if resp.StopReason == "refusal" {
		log.Warn("enrich: response blocked", zap.String("stop_reason", resp.StopReason))
		return c.fallback(lead, "Blocked: "+resp.StopReason)
	}
	if strings.TrimSpace(resp.Text) == "" {
		log.Warn("enrich: empty response")
		return c.fallback(lead, SentinelNoResponse)
	}

	decoded, err := ExtractJSON(resp.Text)
	if err != nil {
		log.Warn("enrich: response parse failed", zap.Error(err))
		return c.fallback(lead, SentinelJSONError)
	}

	return model.Enrichment{
		Description:         stringField(decoded, "description"),
		CompanySize:         stringField(decoded, "company_size"),
		DecisionMakers:      stringField(decoded, "decision_makers"),
		PainPoints:          stringField(decoded, "pain_points"),
		RecommendedApproach: stringField(decoded, "recommended_approach"),
		OutreachTemplate:    stringField(decoded, "outreach_template"),
	}
}

// fallback builds the deterministic default result with the description
// replaced by an error sentinel. All six fields are always populated.
func (c *Client) fallback(lead model.Lead, sentinel string) model.Enrichment {
	e := defaultEnrichment(lead)
	e.Description = sentinel
	return e
}

// defaultEnrichment is the deterministic default text used when the
// generative provider cannot be consulted.
func defaultEnrichment(lead model.Lead) model.Enrichment {
	location := locationFromAddress(lead.BestAddress())
	return model.Enrichment{
		Description:         fmt.Sprintf("A business operating as %s in %s.", lead.Name, location),
		CompanySize:         "Small to Medium",
		DecisionMakers:      "Owner, General Manager",
		PainPoints:          "Customer acquisition, operational efficiency",
		RecommendedApproach: "Direct outreach highlighting value proposition",
		OutreachTemplate: fmt.Sprintf("Hello, I recently came across %s and was impressed by your services. "+
			"I'd like to connect to discuss how our solution might help streamline your operations. "+
			"Would you be available for a brief call next week?", lead.Name),
	}
}

// locationFromAddress pulls the city-level segment out of a formatted
// address (second-to-last comma-separated part).
func locationFromAddress(addr string) string {
	parts := strings.Split(addr, ",")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[len(parts)-2])
}

// buildPrompt embeds the lead's known fields and any gathered snippets into
// the enrichment prompt.
func buildPrompt(lead model.Lead, snippets []string) string {
	var b strings.Builder

	b.WriteString("I need you to analyze this business and provide enriched data for lead generation purposes.\n\n")
	b.WriteString("Business Information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", lead.Name)
	fmt.Fprintf(&b, "- Address: %s\n", orNotAvailable(lead.BestAddress()))
	fmt.Fprintf(&b, "- Type: %s\n", orNotAvailable(strings.Join(lead.Types, ", ")))
	if lead.Rating > 0 {
		fmt.Fprintf(&b, "- Rating: %.1f\n", lead.Rating)
	} else {
		b.WriteString("- Rating: Not available\n")
	}
	if lead.Reviews > 0 {
		fmt.Fprintf(&b, "- Reviews: %d\n", lead.Reviews)
	} else {
		b.WriteString("- Reviews: Not available\n")
	}
	fmt.Fprintf(&b, "- Website: %s\n", orNotAvailable(lead.Website))
	fmt.Fprintf(&b, "- Phone: %s\n", orNotAvailable(lead.Phone))

	if len(snippets) > 0 {
		b.WriteString("\nAdditional information found online:\n")
		for i, s := range snippets {
			fmt.Fprintf(&b, "--- Result %d ---\n%s\n", i+1, s)
		}
	}

	b.WriteString("\nBased on this information, please provide:\n")
	b.WriteString("1. A brief company description (2-3 sentences)\n")
	b.WriteString("2. Estimated company size (small, medium, large)\n")
	b.WriteString("3. Potential decision makers (typical roles that would make purchasing decisions)\n")
	b.WriteString("4. Company pain points (what challenges might they face?)\n")
	b.WriteString("5. Recommended approach for sales outreach\n")
	b.WriteString("6. Personalized outreach template (1 paragraph)\n\n")
	b.WriteString("Format your response as a JSON object with these fields: ")
	b.WriteString("description, company_size, decision_makers, pain_points, recommended_approach, outreach_template\n")
	b.WriteString("Only return the JSON object, nothing else.\n")

	return b.String()
}

func orNotAvailable(s string) string {
	if s == "" {
		return "Not available"
	}
	return s
}
