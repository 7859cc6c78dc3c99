package normalize

import (
	"encoding/json"
	"strings"
)

// decodeModelJSON decodes the raw model response into a JSON document, with
// lightweight recovery for markdown code fences and surrounding prose.
// Vision models frequently wrap the object in ```json fences or lead with a
// sentence; neither should cost the caller the whole sign.
func decodeModelJSON(raw string) (any, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}

	candidates := []string{raw}
	if stripped := stripCodeFences(raw); stripped != "" && stripped != raw {
		candidates = append(candidates, stripped)
	}
	if extracted := extractJSONCandidate(raw); extracted != "" && extracted != raw {
		candidates = append(candidates, extracted)
	}

	for _, candidate := range candidates {
		var doc any
		if err := json.Unmarshal([]byte(candidate), &doc); err == nil {
			return doc, true
		}
	}
	return nil, false
}

func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}

	// Drop the opening fence line, and a trailing fence if present.
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func extractJSONCandidate(content string) string {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(trimmed, "}")
	if end < start {
		return ""
	}
	return strings.TrimSpace(trimmed[start : end+1])
}
