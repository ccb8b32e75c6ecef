// README: Google Places client for lodging search around a free-text location.
package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"
)

var ErrLocationNotFound = errors.New("location could not be geocoded")

// Place represents a simplified lodging result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	PlaceID          string
	UserRatingsTotal int
	Lat              float64
	Lng              float64
	DistanceKm       float64
}

// PlacesService handles interactions with Google Geocoding and Places APIs.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// SearchLodging geocodes location and returns nearby lodging, nearest first.
func (s *PlacesService) SearchLodging(ctx context.Context, location string, radiusM int) ([]Place, error) {
	geo, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: location})
	if err != nil {
		return nil, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(geo) == 0 {
		return nil, ErrLocationNotFound
	}
	center := geo[0].Geometry.Location

	resp, err := s.client.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: &center,
		Radius:   uint(radiusM),
		Type:     maps.PlaceTypeLodging,
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	places := make([]Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		loc := r.Geometry.Location
		places = append(places, Place{
			Name:             r.Name,
			Address:          r.Vicinity,
			Rating:           r.Rating,
			PlaceID:          r.PlaceID,
			UserRatingsTotal: r.UserRatingsTotal,
			Lat:              loc.Lat,
			Lng:              loc.Lng,
			DistanceKm:       HaversineKm(center.Lat, center.Lng, loc.Lat, loc.Lng),
		})
	}
	SortByDistance(places)
	return places, nil
}
