package enrich

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
)

// ExtractJSON locates and decodes the JSON object embedded in free-text
// model output. Markdown code fences are stripped first, then the span from
// the first '{' to the last '}' is decoded. Isolated as a pure function so
// it can be tested against malformed samples directly.
func ExtractJSON(text string) (map[string]any, error) {
	clean := strings.TrimSpace(text)

	if idx := strings.Index(clean, "```json"); idx >= 0 {
		clean = clean[idx+len("```json"):]
		if end := strings.Index(clean, "```"); end >= 0 {
			clean = clean[:end]
		}
	} else if idx := strings.Index(clean, "```"); idx >= 0 {
		clean = clean[idx+len("```"):]
		if end := strings.Index(clean, "```"); end >= 0 {
			clean = clean[:end]
		}
	}

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start < 0 || end <= start {
		return nil, eris.New("enrich: no JSON object found in response")
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(clean[start:end+1]), &decoded); err != nil {
		return nil, eris.Wrap(err, "enrich: decode JSON object")
	}
	return decoded, nil
}

// stringField returns the decoded value for key as a string, or the
// "Parse Error" sentinel when the key is absent or not a string.
func stringField(decoded map[string]any, key string) string {
	v, ok := decoded[key]
	if !ok {
		return SentinelParseError
	}
	s, ok := v.(string)
	if !ok {
		return SentinelParseError
	}
	return s
}
