// README: Closed set of conversational intents.
package routing

import "strings"

type Intent string

const (
	FlightSearch  Intent = "FlightSearch"
	FlightBooking Intent = "FlightBooking"
	HotelSearch   Intent = "HotelSearch"
	HotelBooking  Intent = "HotelBooking"
	CancelBooking Intent = "CancelBooking"
	ModifyBooking Intent = "ModifyBooking"
	GeneralQuery  Intent = "GeneralQuery"
	Greeting      Intent = "Greeting"
	Farewell      Intent = "Farewell"
	Unknown       Intent = "Unknown"
)

var AllIntents = []Intent{
	FlightSearch, FlightBooking, HotelSearch, HotelBooking, CancelBooking,
	ModifyBooking, GeneralQuery, Greeting, Farewell, Unknown,
}

var intentIndex = func() map[string]Intent {
	m := make(map[string]Intent, len(AllIntents))
	for _, in := range AllIntents {
		m[normalizeIntent(string(in))] = in
	}
	return m
}()

// ParseIntent maps a label such as "FlightSearch", "flight_search" or "hotel booking"
// to an Intent. Anything unrecognised is Unknown.
func ParseIntent(label string) Intent {
	if in, ok := intentIndex[normalizeIntent(label)]; ok {
		return in
	}
	return Unknown
}

func normalizeIntent(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case '_', '-', ' ', '\t', '\n':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
