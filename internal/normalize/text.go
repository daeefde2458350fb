package normalize

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	freeTextSep = regexp.MustCompile(`[|\n;]`)
	// Policy text splits on sentence boundaries that are safe around prices:
	// period+space, newline, semicolon, bullet. A bare "." would break
	// "$75.00".
	policySep = regexp.MustCompile(`\.\s|\n|;|•`)
)

// ExtractJSONField unwraps scraper fields embedded as single-key JSON
// objects like {"raw": "..."} or {"policy": "..."}. Non-JSON input is
// returned as-is; malformed JSON falls back to the raw string.
func ExtractJSONField(raw any, field string) string {
	s, ok := coerce(raw)
	if !ok {
		return ""
	}
	if strings.HasPrefix(s, "{") {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(s), &parsed); err == nil {
			if v, exists := parsed[field]; exists {
				if str, isStr := v.(string); isStr {
					return str
				}
			}
		}
	}
	return s
}

// SplitFreeText splits a free-form variations field (possibly wrapped as
// {"raw": "..."}) into list items on pipe, newline, or semicolon.
func SplitFreeText(raw any) []string {
	text := ExtractJSONField(raw, "raw")
	if text == "" {
		return nil
	}
	var items []string
	for _, part := range freeTextSep.Split(text, -1) {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// SplitPolicy splits policy prose (possibly wrapped as {"policy": "..."})
// into sentence items, dropping fragments too short to be a rule.
func SplitPolicy(raw any) []string {
	text := ExtractJSONField(raw, "policy")
	if text == "" {
		return nil
	}
	var items []string
	for _, part := range policySep.Split(text, -1) {
		if p := strings.TrimSpace(part); len(p) > 5 {
			items = append(items, p)
		}
	}
	return items
}
