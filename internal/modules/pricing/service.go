// README: Pricing service computes hotel stay estimates.
package pricing

import (
	"context"
	"math"
	"strings"

	"wayfarer/internal/types"
)

type Service struct {
	store *Store
}

// NewService accepts a nil store, in which case DefaultRate applies.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Estimate(ctx context.Context, req PricingRequest) (PricingResult, error) {
	rate := DefaultRate
	if s.store != nil {
		r, err := s.store.GetRate(ctx)
		if err != nil {
			return PricingResult{}, err
		}
		rate = r
	}

	nightly := rate.BaseNightly
	breakdown := map[string]float64{"base_nightly": rate.BaseNightly}

	if isPremium(req.RoomType, rate.PremiumKeywords) {
		nightly *= rate.PremiumMultiplier
		breakdown["room_multiplier"] = rate.PremiumMultiplier
	}
	if req.Guests > rate.GroupThreshold {
		nightly *= rate.GroupMultiplier
		breakdown["guest_multiplier"] = rate.GroupMultiplier
	}

	total := round2(nightly * float64(rate.Nights))
	breakdown["nights"] = float64(rate.Nights)

	return PricingResult{
		Total:     types.MoneyFromFloat(total, rate.Currency),
		Nightly:   types.MoneyFromFloat(nightly, rate.Currency),
		Nights:    rate.Nights,
		Breakdown: breakdown,
	}, nil
}

func isPremium(roomType string, keywords []string) bool {
	rt := strings.ToLower(roomType)
	for _, kw := range keywords {
		if strings.Contains(rt, kw) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
