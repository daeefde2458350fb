// Package normalize converts raw scraped field values into typed candidates.
// Every function is pure and total: untrusted input of any shape comes in,
// and a typed value plus an ok flag comes out. A false ok means the
// deterministic tier could not parse the value, not that the value is bad.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	intPattern   = regexp.MustCompile(`-?\d+`)
	floatPattern = regexp.MustCompile(`\d+\.?\d*`)
)

// coerce renders any raw input as a trimmed string. Numeric inputs keep
// their literal form so digit extraction still works on them.
func coerce(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return strings.TrimSpace(v), v != ""
	case *string:
		if v == nil {
			return "", false
		}
		return strings.TrimSpace(*v), *v != ""
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		s := strings.TrimSpace(fmt.Sprint(v))
		return s, s != ""
	}
}

// Bool maps affirmative/negative word forms to a boolean.
func Bool(raw any) (bool, bool) {
	if b, ok := raw.(bool); ok {
		return b, true
	}
	s, ok := coerce(raw)
	if !ok {
		return false, false
	}
	switch strings.ToLower(s) {
	case "true", "yes", "1", "t", "y":
		return true, true
	case "false", "no", "0", "f", "n":
		return false, true
	}
	return false, false
}

// Int extracts the first signed digit run: "2 pets" → 2, "75 lbs" → 75.
func Int(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	}
	s, ok := coerce(raw)
	if !ok {
		return 0, false
	}
	m := intPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Float extracts the first decimal number, ignoring currency symbols:
// "$50.00" → 50.0, "$25 per night" → 25.0.
func Float(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	s, ok := coerce(raw)
	if !ok {
		return 0, false
	}
	m := floatPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Interval maps free text to a canonical fee-interval token. Stay wins over
// night so "per night of stay" style phrasing resolves the way the source
// data intends.
func Interval(raw any) (string, bool) {
	s, ok := coerce(raw)
	if !ok {
		return "", false
	}
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "stay"):
		return "per-stay", true
	case strings.Contains(s, "night"):
		return "per-night", true
	case strings.Contains(s, "day"):
		return "per-day", true
	case strings.Contains(s, "week"):
		return "per-week", true
	case strings.Contains(s, "one") && strings.Contains(s, "time"):
		return "one-time", true
	}
	return "", false
}

// currencyKeys is ordered: longer/ISO forms are checked before symbols so
// "usd" is not shadowed by a stray "us" elsewhere in the text.
var currencyKeys = []struct{ key, code string }{
	{"$", "usd"}, {"usd", "usd"}, {"dollar", "usd"}, {"us", "usd"},
	{"eur", "eur"}, {"euro", "eur"},
	{"gbp", "gbp"}, {"pound", "gbp"},
	{"aud", "aud"}, {"cad", "cad"}, {"chf", "chf"}, {"jpy", "jpy"},
	{"cny", "cny"}, {"inr", "inr"}, {"mxn", "mxn"}, {"hkd", "hkd"},
}

// Currency maps common symbols, names, and ISO codes to a lowercase
// 3-letter code from the fixed allow-list: "$" → "usd", "EUR" → "eur".
func Currency(raw any) (string, bool) {
	s, ok := coerce(raw)
	if !ok {
		return "", false
	}
	s = strings.ToLower(s)
	for _, c := range currencyKeys {
		if strings.Contains(s, c.key) {
			return c.code, true
		}
	}
	return "", false
}
