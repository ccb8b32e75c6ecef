// README: Loosely typed named fields as produced by the LLM and HTTP payloads.
package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Values maps field names to JSON-ish values (string, float64, int, bool, nil).
type Values map[string]any

// IsBlank reports whether v carries no usable information.
// nil, whitespace-only strings, numeric zero and false are blank.
func IsBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case bool:
		return !x
	case int:
		return x == 0
	case int64:
		return x == 0
	case float64:
		return x == 0
	case float32:
		return x == 0
	}
	return false
}

func (v Values) Present(key string) bool {
	return !IsBlank(v[key])
}

func (v Values) String(key string) string {
	switch x := v[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func (v Values) Float(key string) float64 {
	switch x := v[key].(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		cleaned := strings.TrimLeft(strings.TrimSpace(x), "$€£")
		f, err := strconv.ParseFloat(strings.ReplaceAll(cleaned, ",", ""), 64)
		if err == nil {
			return f
		}
	}
	return 0
}

func (v Values) Int(key string) int {
	return int(math.Round(v.Float(key)))
}

func (v Values) Bool(key string) bool {
	switch x := v[key].(type) {
	case bool:
		return x
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(x))
		return b
	}
	return false
}
