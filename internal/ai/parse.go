package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNoJSON = errors.New("no JSON object in model output")

// FallbackReply is shown when the model cannot be reached or its output is unusable.
const FallbackReply = "I apologize, but I'm having trouble understanding. Could you please rephrase your request?"

// FallbackExtraction is the fixed unknown-intent result used when extraction fails.
func FallbackExtraction() *Extraction {
	reply := FallbackReply
	return &Extraction{Intent: "Unknown", Slots: map[string]any{}, UserReply: &reply}
}

// ParseExtraction decodes model output, tolerating code fences and surrounding prose.
// Missing fields default to intent Unknown, empty slots and no reply.
func ParseExtraction(raw string) (*Extraction, error) {
	text := cleanJSONString(raw)

	var res Extraction
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		obj := extractJSONObject(text)
		if obj == "" {
			return nil, fmt.Errorf("%w. Raw: %s", ErrNoJSON, truncate(raw, 200))
		}
		if err := json.Unmarshal([]byte(obj), &res); err != nil {
			return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, truncate(raw, 200))
		}
	}

	if strings.TrimSpace(res.Intent) == "" {
		res.Intent = "Unknown"
	}
	if res.Slots == nil {
		res.Slots = map[string]any{}
	}
	if res.UserReply != nil && strings.TrimSpace(*res.UserReply) == "" {
		res.UserReply = nil
	}
	return &res, nil
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

// extractJSONObject returns the first balanced {...} block, ignoring braces inside strings.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
