// README: Hotel search adapter; live Places lookup with brand filtering and dataset fallback.
package hotel

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"wayfarer/internal/logger"
	"wayfarer/internal/maps"
	"wayfarer/internal/modules/searchcache"
	"wayfarer/internal/modules/tool"
)

const cacheNamespace = "hotels"

// Finder looks up lodging near a free-text location.
type Finder interface {
	SearchLodging(ctx context.Context, location string, radiusM int) ([]maps.Place, error)
}

// Cache stores JSON-encodable values by namespace and key.
type Cache interface {
	Get(ctx context.Context, namespace, key string, dest any) (bool, error)
	Set(ctx context.Context, namespace, key string, v any) error
}

var SearchSpec = tool.Spec{
	Name: "hotel_search",
	Fields: []tool.Field{
		{Name: "location", Label: "location", Required: true},
		{Name: "check_in_date", Label: "check-in date"},
		{Name: "check_out_date", Label: "check-out date"},
		{Name: "num_guests", Label: "number of guests", Default: 1},
	},
	MissingFormat: "I need a location to search for hotels. Where would you like to stay?",
}

type SearchResult struct {
	tool.Result
	Hotels   []Hotel `json:"hotels,omitempty"`
	Location string  `json:"location,omitempty"`
	Source   string  `json:"source,omitempty"`
}

type SearchConfig struct {
	RadiusM    int
	MaxResults int
}

type SearchService struct {
	finder Finder
	cache  Cache
	cfg    SearchConfig
}

// NewSearchService accepts a nil finder (dataset only) and a nil cache.
func NewSearchService(finder Finder, cache Cache, cfg SearchConfig) *SearchService {
	if cfg.RadiusM <= 0 {
		cfg.RadiusM = 5000
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	return &SearchService{finder: finder, cache: cache, cfg: cfg}
}

func (s *SearchService) Execute(ctx context.Context, in map[string]any) SearchResult {
	vals, missing := SearchSpec.Resolve(in)
	if len(missing) > 0 {
		return SearchResult{Result: tool.Fail(SearchSpec.MissingMessage(missing))}
	}
	location := vals.String("location")

	log := logger.Logger.WithFields(logrus.Fields{"tool": SearchSpec.Name, "location": location})

	hotels, source := s.search(ctx, location, log)
	if len(hotels) == 0 {
		return SearchResult{
			Result: tool.Fail(fmt.Sprintf("I couldn't find any Marriott hotels in %s. Could you try a different location or nearby city?", location)),
		}
	}

	log.WithFields(logrus.Fields{"count": len(hotels), "source": source}).Info("hotel search completed")
	return SearchResult{
		Result:   tool.OK(fmt.Sprintf("Found %d Marriott hotels in %s", len(hotels), location)),
		Hotels:   hotels,
		Location: location,
		Source:   source,
	}
}

func (s *SearchService) search(ctx context.Context, location string, log *logrus.Entry) ([]Hotel, string) {
	if s.finder == nil {
		return FallbackHotels(location), "dataset"
	}

	key := searchcache.Key(location, fmt.Sprint(s.cfg.RadiusM))
	if s.cache != nil {
		var cached []Hotel
		ok, err := s.cache.Get(ctx, cacheNamespace, key, &cached)
		if err != nil {
			log.WithError(err).Warn("hotel cache read failed")
		} else if ok && len(cached) > 0 {
			return cached, "cache"
		}
	}

	places, err := s.finder.SearchLodging(ctx, location, s.cfg.RadiusM)
	if err != nil {
		log.WithError(err).Warn("live hotel search failed, using dataset")
		return FallbackHotels(location), "dataset"
	}

	hotels := filterBrand(places, s.cfg.MaxResults)
	if len(hotels) == 0 {
		log.Info("no brand hotels found live, using dataset")
		return FallbackHotels(location), "dataset"
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheNamespace, key, hotels); err != nil {
			log.WithError(err).Warn("hotel cache write failed")
		}
	}
	return hotels, "places"
}

func filterBrand(places []maps.Place, limit int) []Hotel {
	var out []Hotel
	for _, p := range places {
		if !IsBrand(p.Name) {
			continue
		}
		dist := p.DistanceKm
		out = append(out, Hotel{
			Name:             p.Name,
			Address:          p.Address,
			Rating:           float64(p.Rating),
			UserRatingsTotal: p.UserRatingsTotal,
			PlaceID:          p.PlaceID,
			Location:         &LatLng{Lat: p.Lat, Lng: p.Lng},
			DistanceKm:       &dist,
		})
		if len(out) >= limit {
			break
		}
	}
	return out
}
