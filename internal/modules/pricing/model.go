// README: Hotel room rate definition and pricing request/result.
package pricing

import "wayfarer/internal/types"

// Rate is a flat nightly rate with room-type and party-size multipliers.
type Rate struct {
	BaseNightly       float64
	PremiumMultiplier float64
	PremiumKeywords   []string
	GroupMultiplier   float64
	GroupThreshold    int
	Nights            int
	Currency          string
}

// DefaultRate prices every stay as three nights.
// TODO: derive Nights from check-in/check-out once booking requests validate the date range.
var DefaultRate = Rate{
	BaseNightly:       150,
	PremiumMultiplier: 1.5,
	PremiumKeywords:   []string{"suite", "deluxe"},
	GroupMultiplier:   1.2,
	GroupThreshold:    2,
	Nights:            3,
	Currency:          "USD",
}

type PricingRequest struct {
	RoomType string
	Guests   int
}

type PricingResult struct {
	Total     types.Money
	Nightly   types.Money
	Nights    int
	Breakdown map[string]float64
}
