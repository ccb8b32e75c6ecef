package ai

import (
	"context"
	"regexp"
	"strings"
)

var (
	confirmationRe = regexp.MustCompile(`(?i)\b(HTL|FLT)-[A-Z0-9]{6}\b`)
	isoDateRe      = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	fromToRe       = regexp.MustCompile(`(?i)\bfrom\s+([a-z][a-z .]*?)\s+to\s+([a-z][a-z .]*?)(?:\s+on\b|\s+\d|[,.!?]|$)`)
	inCityRe       = regexp.MustCompile(`(?i)\bin\s+([a-z][a-z .]*?)(?:\s+for\b|\s+from\b|\s+on\b|\s+\d|[,.!?]|$)`)
	guestsRe       = regexp.MustCompile(`(?i)\b(\d+)\s+(?:people|guests|adults|persons)\b`)
)

// MockExtractor classifies with keyword rules. It lets the service run without an LLM key.
type MockExtractor struct{}

func NewMockExtractor() *MockExtractor { return &MockExtractor{} }

func (MockExtractor) Name() string { return "mock" }

func (MockExtractor) Extract(ctx context.Context, utterance string, c Context) (*Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text := strings.ToLower(strings.TrimSpace(utterance))
	slots := map[string]any{}

	if m := confirmationRe.FindString(utterance); m != "" {
		slots["confirmation_number"] = strings.ToUpper(m)
	}
	dates := isoDateRe.FindAllString(utterance, 2)

	intent := "Unknown"
	switch {
	case containsAny(text, "cancel"):
		intent = "CancelBooking"
	case containsAny(text, "change", "modify"):
		intent = "ModifyBooking"
	case containsAny(text, "flight", "fly"):
		intent = "FlightSearch"
		if containsAny(text, "book", "reserve") {
			intent = "FlightBooking"
		}
		if m := fromToRe.FindStringSubmatch(utterance); m != nil {
			slots["origin"] = strings.TrimSpace(m[1])
			slots["destination"] = strings.TrimSpace(m[2])
		}
		if len(dates) > 0 {
			slots["departure_date"] = dates[0]
		}
		if len(dates) > 1 {
			slots["return_date"] = dates[1]
		}
		if containsAny(text, "nonstop", "non-stop", "direct") {
			slots["non_stop"] = true
		}
	case containsAny(text, "hotel", "stay", "room", "marriott"):
		intent = "HotelSearch"
		if containsAny(text, "book", "reserve") {
			intent = "HotelBooking"
		}
		if m := inCityRe.FindStringSubmatch(utterance); m != nil {
			slots["location"] = strings.TrimSpace(m[1])
		}
		if len(dates) > 0 {
			slots["check_in_date"] = dates[0]
		}
		if len(dates) > 1 {
			slots["check_out_date"] = dates[1]
		}
		if m := guestsRe.FindStringSubmatch(utterance); m != nil {
			slots["num_guests"] = m[1]
		}
	case containsAny(text, "thank", "bye"):
		intent = "Farewell"
	case containsAny(text, "hello", "hi ", "hey") || text == "hi":
		intent = "Greeting"
	case strings.HasSuffix(text, "?"):
		intent = "GeneralQuery"
	}

	return &Extraction{Intent: intent, Slots: slots}, nil
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
