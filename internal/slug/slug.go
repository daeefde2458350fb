// Package slug builds the canonical hotel identity slugs used to match
// scraped records against the masterfile.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// accentFold decomposes to NFD and drops combining marks, so é → e, ñ → n.
var accentFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// RemoveAccents strips diacritics. Characters that fail to transform pass
// through untouched.
func RemoveAccents(s string) string {
	out, _, err := transform.String(accentFold, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeComponent lowercases, folds accents, and strips everything
// outside [a-z0-9].
func NormalizeComponent(s string) string {
	v := strings.TrimSpace(s)
	v = RemoveAccents(v)
	v = strings.ToLower(v)
	return nonAlnum.ReplaceAllString(v, "")
}

// Combined builds the country-state-city-name-address slug. State and
// address are required; a missing one returns "" since a partial slug would
// mis-match against the masterfile.
func Combined(countryCode, stateCode, city, hotelName, addressLine1 string) string {
	if strings.TrimSpace(stateCode) == "" || strings.TrimSpace(addressLine1) == "" {
		return ""
	}
	parts := make([]string, 0, 5)
	for _, c := range []string{countryCode, stateCode, city, hotelName, addressLine1} {
		if n := NormalizeComponent(c); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, "-")
}
