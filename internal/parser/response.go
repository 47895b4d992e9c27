package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"kyclens/internal/port"
)

// DecodeRawPage parses model output text into a RawPageResult, tolerating
// markdown code fences around the JSON body.
func DecodeRawPage(text string) (*port.RawPageResult, error) {
	cleaned := StripJSONFences(text)

	var raw port.RawPageResult
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("parsing LLM JSON output: %w (raw: %s)", err, truncate(cleaned, 500))
	}
	if raw.Fields == nil {
		raw.Fields = map[string]interface{}{}
	}
	if raw.ExtraFields == nil {
		raw.ExtraFields = map[string]interface{}{}
	}
	return &raw, nil
}

// StripJSONFences removes a surrounding ```json ... ``` (or bare ```) fence.
func StripJSONFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
