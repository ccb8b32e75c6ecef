// README: Flight search adapter; live provider with synthetic fallback, then constraint filtering.
package flight

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"wayfarer/internal/logger"
	"wayfarer/internal/modules/searchcache"
	"wayfarer/internal/modules/tool"
)

const cacheNamespace = "flights"

// Cache stores JSON-encodable values by namespace and key.
type Cache interface {
	Get(ctx context.Context, namespace, key string, dest any) (bool, error)
	Set(ctx context.Context, namespace, key string, v any) error
}

var SearchSpec = tool.Spec{
	Name: "flight_search",
	Fields: []tool.Field{
		{Name: "origin", Label: "origin city", Required: true},
		{Name: "destination", Label: "destination city", Required: true},
		{Name: "departure_date", Label: "departure date", Required: true},
		{Name: "return_date", Label: "return date"},
		{Name: "max_price", Label: "maximum price"},
		{Name: "currency_code", Label: "currency", Default: "USD"},
		{Name: "travel_class", Label: "travel class"},
		{Name: "non_stop", Label: "non-stop"},
		{Name: "num_passengers", Label: "number of passengers", Default: 1},
	},
	MissingFormat: "I need the following information: %s",
}

type SearchResult struct {
	tool.Result
	Flights []Flight `json:"flights,omitempty"`
	Source  string   `json:"source,omitempty"`
}

type SearchService struct {
	provider   Provider
	cache      Cache
	maxResults int
}

// NewSearchService accepts a nil provider (synthetic offers only) and a nil cache.
func NewSearchService(provider Provider, cache Cache, maxResults int) *SearchService {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &SearchService{provider: provider, cache: cache, maxResults: maxResults}
}

func (s *SearchService) Execute(ctx context.Context, in map[string]any) SearchResult {
	vals, missing := SearchSpec.Resolve(in)
	if len(missing) > 0 {
		return SearchResult{Result: tool.Fail(SearchSpec.MissingMessage(missing))}
	}

	q := Query{
		Origin:        vals.String("origin"),
		Destination:   vals.String("destination"),
		DepartureDate: vals.String("departure_date"),
		ReturnDate:    vals.String("return_date"),
		MaxPrice:      vals.Float("max_price"),
		Currency:      strings.ToUpper(vals.String("currency_code")),
		TravelClass:   strings.ToUpper(vals.String("travel_class")),
		NonStop:       vals.Bool("non_stop"),
		Adults:        vals.Int("num_passengers"),
		Max:           s.maxResults,
	}

	log := logger.Logger.WithFields(logrus.Fields{
		"tool":        SearchSpec.Name,
		"origin":      q.Origin,
		"destination": q.Destination,
		"date":        q.DepartureDate,
	})

	offers, source := s.offers(ctx, q, log)
	flights := applyConstraints(offers, q, s.maxResults)
	if len(flights) == 0 {
		return SearchResult{
			Result: tool.Fail(fmt.Sprintf("I couldn't find any flights from %s to %s on that date.", q.Origin, q.Destination)),
			Source: source,
		}
	}

	log.WithFields(logrus.Fields{"count": len(flights), "source": source}).Info("flight search completed")
	return SearchResult{
		Result:  tool.OK(fmt.Sprintf("I found %d flights from %s to %s.", len(flights), q.Origin, q.Destination)),
		Flights: flights,
		Source:  source,
	}
}

func (s *SearchService) offers(ctx context.Context, q Query, log *logrus.Entry) ([]Flight, string) {
	if s.provider == nil {
		return FallbackFlights(q), "synthetic"
	}

	key := cacheKey(q)
	if s.cache != nil {
		var cached []Flight
		ok, err := s.cache.Get(ctx, cacheNamespace, key, &cached)
		if err != nil {
			log.WithError(err).Warn("flight cache read failed")
		} else if ok && len(cached) > 0 {
			return cached, "cache"
		}
	}

	offers, err := s.provider.Search(ctx, q)
	if err != nil {
		log.WithError(err).Warn("live flight search failed, using synthetic offers")
		return FallbackFlights(q), "synthetic"
	}
	if len(offers) == 0 {
		log.Info("no live flight offers, using synthetic offers")
		return FallbackFlights(q), "synthetic"
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheNamespace, key, offers); err != nil {
			log.WithError(err).Warn("flight cache write failed")
		}
	}
	return offers, "live"
}

// applyConstraints filters by price and stops, sorts by ascending price, and caps the list.
func applyConstraints(offers []Flight, q Query, limit int) []Flight {
	out := make([]Flight, 0, len(offers))
	for _, f := range offers {
		if q.MaxPrice > 0 && f.Price > q.MaxPrice {
			continue
		}
		if q.NonStop && f.Stops > 0 {
			continue
		}
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func cacheKey(q Query) string {
	return searchcache.Key(q.Origin, q.Destination, q.DepartureDate, q.ReturnDate, q.Currency, q.TravelClass, strconv.Itoa(q.Adults))
}
