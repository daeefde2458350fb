// Package hash fingerprints scraped page content so unchanged pages skip
// re-extraction.
package hash

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// normalize strips leading/trailing space, lowercases, removes spaces, and
// flattens newlines so cosmetic markup changes do not alter the fingerprint.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "\n", " ")
}

// Context returns the hex MD5 of the normalized content. MD5 is a change
// detector here, not a security boundary.
func Context(content string) string {
	sum := md5.Sum([]byte(normalize(content)))
	return hex.EncodeToString(sum[:])
}

// RawContent fingerprints the fields of a scraped hotel page that matter
// for re-extraction decisions.
func RawContent(parts ...string) string {
	return Context(strings.Join(parts, " "))
}
