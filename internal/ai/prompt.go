package ai

import (
	"encoding/json"
	"fmt"
	"time"
)

const maxFewShots = 3

// acknowledgement is inserted between two user turns so roles always alternate.
const acknowledgement = `{"intent":"Acknowledged","slots":{},"user_reply":null}`

type fewShot struct {
	User      string
	Assistant string
}

var fewShots = []fewShot{
	{
		User:      "I need a flight from New York to Los Angeles on June 1st",
		Assistant: `{"intent":"FlightSearch","slots":{"origin":"New York","destination":"Los Angeles","departure_date":"2025-06-01"},"user_reply":null}`,
	},
	{
		User:      "Find me a Marriott in Chicago for 2 people",
		Assistant: `{"intent":"HotelSearch","slots":{"location":"Chicago","num_guests":2},"user_reply":null}`,
	},
	{
		User:      "I want to book a hotel",
		Assistant: `{"intent":"HotelBooking","slots":{},"user_reply":"I'd be happy to help you book a hotel. Which city are you staying in, and what are your check-in and check-out dates?"}`,
	},
	{
		User:      "Cancel my reservation HTL-4F2A9C",
		Assistant: `{"intent":"CancelBooking","slots":{"confirmation_number":"HTL-4F2A9C"},"user_reply":null}`,
	},
}

// SystemPrompt returns the extraction instructions with today's date injected.
func SystemPrompt(now time.Time) string {
	return fmt.Sprintf(`Role: You are the intent engine of a travel assistant that searches and books flights and Marriott hotels.
Current date: %s

Classify the user's latest message into exactly one intent:
FlightSearch, FlightBooking, HotelSearch, HotelBooking, CancelBooking, ModifyBooking,
GeneralQuery, Greeting, Farewell, Unknown.

Extract any of these slots that the user states or clearly implies:
- Hotels: location, check_in_date, check_out_date, num_guests, room_type, hotel_name
- Flight search: origin, destination, departure_date, return_date, max_price, currency_code, travel_class (ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST), non_stop
- Flight booking: airline, flight_number, departure_time, arrival_time, price, num_passengers, passenger_name, return_flight_number
- Bookings: confirmation_number (e.g. HTL-XXXXXX or FLT-XXXXXX)

RULES:
1. Dates MUST be YYYY-MM-DD. Resolve relative dates ("tomorrow", "next Friday") against the current date.
2. Only include slots you are confident about. Use null for anything unknown. Never invent values.
3. "Current session slots" lists what is already known; do not repeat a question about a known slot.
4. When the user picks an option from a previous list ("the first one", a hotel or flight name), copy that option's details into the slots.
5. Set "user_reply" ONLY when you must ask a clarifying question that the system cannot ask itself. Otherwise use null.
6. Respond with a single JSON object and nothing else:
{"intent": "<Intent>", "slots": {"<slot>": <value or null>}, "user_reply": "<string>" | null}
`, now.Format("2006-01-02"))
}

// buildConversation assembles the provider-neutral message list: few-shots on the first
// turn, recent history with strict user/assistant alternation, then the current utterance
// annotated with the known slots. The result starts and ends with a user turn.
func buildConversation(utterance string, c Context, historyLimit int) []Turn {
	var msgs []Turn

	if len(c.History) == 0 {
		for i, ex := range fewShots {
			if i >= maxFewShots {
				break
			}
			msgs = append(msgs, Turn{Role: RoleUser, Content: ex.User}, Turn{Role: RoleAssistant, Content: ex.Assistant})
		}
	}

	history := c.History
	if historyLimit > 0 && len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	for _, t := range history {
		if t.Role != RoleUser && t.Role != RoleAssistant {
			continue
		}
		if len(msgs) == 0 && t.Role == RoleAssistant {
			continue
		}
		if len(msgs) > 0 && msgs[len(msgs)-1].Role == t.Role {
			if t.Role == RoleAssistant {
				continue
			}
			msgs = append(msgs, Turn{Role: RoleAssistant, Content: acknowledgement})
		}
		msgs = append(msgs, t)
	}

	if len(msgs) > 0 && msgs[len(msgs)-1].Role == RoleUser {
		msgs = append(msgs, Turn{Role: RoleAssistant, Content: acknowledgement})
	}

	content := utterance
	if len(c.Slots) > 0 {
		if b, err := json.Marshal(c.Slots); err == nil {
			content += "\n\nCurrent session slots: " + string(b)
		}
	}
	return append(msgs, Turn{Role: RoleUser, Content: content})
}
