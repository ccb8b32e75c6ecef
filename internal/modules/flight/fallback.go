// README: Deterministic synthetic flight offers used when the live provider fails or is empty.
package flight

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"
)

var fallbackCarriers = []string{"AA", "DL", "UA", "B6", "AS"}

var classMultiplier = map[string]float64{
	"ECONOMY":         1,
	"PREMIUM_ECONOMY": 1.6,
	"BUSINESS":        2.8,
	"FIRST":           4.2,
}

// FallbackFlights returns the same offers for the same route and date.
// It never returns an empty list.
func FallbackFlights(q Query) []Flight {
	origin := displayCode(q.Origin)
	dest := displayCode(q.Destination)
	class := strings.ToUpper(q.TravelClass)
	if class == "" {
		class = "ECONOMY"
	}
	mult, ok := classMultiplier[class]
	if !ok {
		mult = 1
	}
	currency := q.Currency
	if currency == "" {
		currency = "USD"
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(origin + "|" + dest + "|" + q.DepartureDate)))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	n := len(fallbackCarriers)
	out := make([]Flight, 0, n)
	for i := 0; i < n; i++ {
		code := fallbackCarriers[(i+rng.Intn(n))%n]
		depart := time.Date(2000, 1, 1, 6+i*3, rng.Intn(12)*5, 0, 0, time.UTC)
		stops := 0
		if i%3 == 2 {
			stops = 1
		}
		dur := time.Duration(120+rng.Intn(240)+stops*75) * time.Minute
		arrive := depart.Add(dur)
		base := 119 + float64(rng.Intn(400)) + 0.99
		if stops > 0 {
			base *= 0.85
		}

		out = append(out, Flight{
			ID:            fmt.Sprintf("synthetic-%s-%s-%d", strings.ToLower(origin), strings.ToLower(dest), i+1),
			Airline:       AirlineName(code),
			AirlineCode:   code,
			FlightNumber:  fmt.Sprintf("%s%d", code, 100+rng.Intn(900)),
			Origin:        origin,
			Destination:   dest,
			DepartureDate: q.DepartureDate,
			DepartureTime: depart.Format("15:04"),
			ArrivalTime:   arrive.Format("15:04"),
			Duration:      fmt.Sprintf("%dh %dm", int(dur.Hours()), int(dur.Minutes())%60),
			Stops:         stops,
			Price:         math.Round(base*mult*100) / 100,
			Currency:      currency,
			TravelClass:   class,
			Source:        "synthetic",
		})
	}
	return out
}

func displayCode(place string) string {
	if code, err := ResolveCode(place); err == nil {
		return code
	}
	return strings.TrimSpace(place)
}
