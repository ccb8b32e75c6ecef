// README: Live flight offer provider (Amadeus Self-Service API, OAuth2 client credentials).
package flight

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const defaultProviderTimeout = 15 * time.Second

// Provider returns raw offers for a query. Constraint filtering happens in SearchService.
type Provider interface {
	Search(ctx context.Context, q Query) ([]Flight, error)
}

type AmadeusConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

type AmadeusProvider struct {
	baseURL string
	client  *http.Client
}

func NewAmadeusProvider(cfg AmadeusConfig) *AmadeusProvider {
	base := strings.TrimRight(cfg.BaseURL, "/")
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     base + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	// Token fetches use their own bounded client; the outer timeout does not cancel them.
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: timeout})
	client := cc.Client(tokenCtx)
	client.Timeout = timeout
	return &AmadeusProvider{baseURL: base, client: client}
}

type offersResponse struct {
	Data []struct {
		ID          string `json:"id"`
		Itineraries []struct {
			Duration string `json:"duration"`
			Segments []struct {
				Departure struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"departure"`
				Arrival struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"arrival"`
				CarrierCode string `json:"carrierCode"`
				Number      string `json:"number"`
			} `json:"segments"`
		} `json:"itineraries"`
		Price struct {
			Currency   string `json:"currency"`
			GrandTotal string `json:"grandTotal"`
			Total      string `json:"total"`
		} `json:"price"`
		TravelerPricings []struct {
			FareDetailsBySegment []struct {
				Cabin string `json:"cabin"`
			} `json:"fareDetailsBySegment"`
		} `json:"travelerPricings"`
	} `json:"data"`
	Dictionaries struct {
		Carriers map[string]string `json:"carriers"`
	} `json:"dictionaries"`
	Errors []struct {
		Detail string `json:"detail"`
		Title  string `json:"title"`
	} `json:"errors"`
}

func (p *AmadeusProvider) Search(ctx context.Context, q Query) ([]Flight, error) {
	origin, err := ResolveCode(q.Origin)
	if err != nil {
		return nil, fmt.Errorf("origin %q: %w", q.Origin, err)
	}
	dest, err := ResolveCode(q.Destination)
	if err != nil {
		return nil, fmt.Errorf("destination %q: %w", q.Destination, err)
	}

	params := url.Values{}
	params.Set("originLocationCode", origin)
	params.Set("destinationLocationCode", dest)
	params.Set("departureDate", q.DepartureDate)
	params.Set("adults", strconv.Itoa(max(q.Adults, 1)))
	params.Set("max", strconv.Itoa(max(q.Max, 1)*2))
	if q.ReturnDate != "" {
		params.Set("returnDate", q.ReturnDate)
	}
	if q.Currency != "" {
		params.Set("currencyCode", q.Currency)
	}
	if q.TravelClass != "" {
		params.Set("travelClass", q.TravelClass)
	}
	if q.NonStop {
		params.Set("nonStop", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v2/shopping/flight-offers?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("amadeus: build request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amadeus: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("amadeus: read response: %w", err)
	}

	var or offersResponse
	if err := json.Unmarshal(body, &or); err != nil {
		return nil, fmt.Errorf("amadeus: unmarshal response: %w", err)
	}
	if resp.StatusCode >= 300 {
		detail := string(body)
		if len(or.Errors) > 0 {
			detail = or.Errors[0].Title + ": " + or.Errors[0].Detail
		}
		return nil, fmt.Errorf("%w: amadeus status %d: %s", ErrProvider, resp.StatusCode, detail)
	}

	flights := make([]Flight, 0, len(or.Data))
	for _, offer := range or.Data {
		if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
			continue
		}
		itin := offer.Itineraries[0]
		first := itin.Segments[0]
		last := itin.Segments[len(itin.Segments)-1]

		priceStr := offer.Price.GrandTotal
		if priceStr == "" {
			priceStr = offer.Price.Total
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			continue
		}

		cabin := q.TravelClass
		if len(offer.TravelerPricings) > 0 && len(offer.TravelerPricings[0].FareDetailsBySegment) > 0 {
			cabin = offer.TravelerPricings[0].FareDetailsBySegment[0].Cabin
		}

		airline := AirlineName(first.CarrierCode)
		if name, ok := or.Dictionaries.Carriers[first.CarrierCode]; ok && airline == first.CarrierCode {
			airline = name
		}

		dep := parseLocal(first.Departure.At)
		arr := parseLocal(last.Arrival.At)
		flights = append(flights, Flight{
			ID:            "amadeus-" + offer.ID,
			Airline:       airline,
			AirlineCode:   first.CarrierCode,
			FlightNumber:  first.CarrierCode + first.Number,
			Origin:        first.Departure.IataCode,
			Destination:   last.Arrival.IataCode,
			DepartureDate: dep.Format("2006-01-02"),
			DepartureTime: dep.Format("15:04"),
			ArrivalTime:   arr.Format("15:04"),
			Duration:      formatISODuration(itin.Duration),
			Stops:         len(itin.Segments) - 1,
			Price:         price,
			Currency:      offer.Price.Currency,
			TravelClass:   cabin,
			Source:        "amadeus",
		})
	}
	return flights, nil
}

func parseLocal(v string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// formatISODuration turns "PT5H30M" into "5h 30m".
func formatISODuration(v string) string {
	v = strings.TrimPrefix(v, "PT")
	v = strings.ToLower(v)
	v = strings.Replace(v, "h", "h ", 1)
	return strings.TrimSpace(v)
}
