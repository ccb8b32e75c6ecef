// README: City name to IATA code resolution for the live flight provider.
package flight

import (
	"strings"
	"unicode"
)

var cityCodes = map[string]string{
	"new york":      "NYC",
	"nyc":           "NYC",
	"los angeles":   "LAX",
	"la":            "LAX",
	"san francisco": "SFO",
	"chicago":       "CHI",
	"boston":        "BOS",
	"seattle":       "SEA",
	"miami":         "MIA",
	"dallas":        "DFW",
	"denver":        "DEN",
	"atlanta":       "ATL",
	"washington":    "WAS",
	"las vegas":     "LAS",
	"orlando":       "MCO",
	"london":        "LON",
	"paris":         "PAR",
	"tokyo":         "TYO",
	"madrid":        "MAD",
	"rome":          "ROM",
	"berlin":        "BER",
	"amsterdam":     "AMS",
	"toronto":       "YTO",
	"mexico city":   "MEX",
	"sydney":        "SYD",
	"dubai":         "DXB",
	"singapore":     "SIN",
	"hong kong":     "HKG",
	"taipei":        "TPE",
}

var airlineNames = map[string]string{
	"AA": "American Airlines",
	"DL": "Delta Air Lines",
	"UA": "United Airlines",
	"B6": "JetBlue Airways",
	"AS": "Alaska Airlines",
	"WN": "Southwest Airlines",
	"BA": "British Airways",
	"AF": "Air France",
	"LH": "Lufthansa",
}

// ResolveCode maps a city name or IATA code to an IATA code.
func ResolveCode(place string) (string, error) {
	p := strings.TrimSpace(place)
	if len(p) == 3 && isLetters(p) {
		return strings.ToUpper(p), nil
	}
	if code, ok := cityCodes[strings.Join(strings.Fields(strings.ToLower(p)), " ")]; ok {
		return code, nil
	}
	return "", ErrUnknownAirport
}

func AirlineName(code string) string {
	if name, ok := airlineNames[code]; ok {
		return name
	}
	return code
}

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
