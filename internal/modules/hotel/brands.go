// README: Marriott brand family keywords used to filter lodging results.
package hotel

import "strings"

var BrandKeywords = []string{
	"marriott", "courtyard", "residence inn", "fairfield inn", "springhill suites",
	"towneplace suites", "jw marriott", "ritz-carlton", "ritz carlton", "w hotel",
	"westin", "sheraton", "le meridien", "st. regis", "luxury collection",
	"autograph collection", "delta hotels", "aloft", "element", "four points", "moxy",
}

// IsBrand reports whether a property name belongs to the brand family.
func IsBrand(name string) bool {
	n := strings.ToLower(name)
	for _, kw := range BrandKeywords {
		if strings.Contains(n, kw) {
			return true
		}
	}
	return false
}
