// Package chain identifies the hotel chain behind a URL or property name so
// the right site-specific extraction profile is used.
package chain

import (
	"regexp"
	"strings"
)

type profile struct {
	key  string
	url  []*regexp.Regexp
	name []*regexp.Regexp
}

// Ordered so overlapping name patterns resolve the same way every run.
var chains = []profile{
	{
		key:  "hilton",
		url:  compile(`hilton\.com`, `hamptoninn\.com`, `doubletree\.com`),
		name: compile(`(?i)hilton`, `(?i)doubletree`, `(?i)hampton`, `(?i)conrad`, `(?i)waldorf`),
	},
	{
		key:  "hyatt",
		url:  compile(`hyatt\.com`, `parkhyatt\.com`, `grandhyatt\.com`),
		name: compile(`(?i)hyatt`, `(?i)park hyatt`, `(?i)grand hyatt`, `(?i)andaz`),
	},
	{
		key:  "marriott",
		url:  compile(`marriott\.com`, `westin\.com`, `sheraton\.com`),
		name: compile(`(?i)marriott`, `(?i)westin`, `(?i)sheraton`, `(?i)ritz-carlton`),
	},
	{
		key:  "ihg",
		url:  compile(`ihg\.com`, `intercontinental\.com`, `holidayinn\.com`),
		name: compile(`(?i)intercontinental`, `(?i)holiday inn`, `(?i)crowne plaza`),
	},
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// FromURL returns the chain key for a property URL, or "" when unknown.
func FromURL(url string) string {
	lower := strings.ToLower(url)
	for _, p := range chains {
		for _, re := range p.url {
			if re.MatchString(lower) {
				return p.key
			}
		}
	}
	return ""
}

// FromName returns the chain key for a property name, or "" when unknown.
func FromName(name string) string {
	for _, p := range chains {
		for _, re := range p.name {
			if re.MatchString(name) {
				return p.key
			}
		}
	}
	return ""
}

// Verify reports whether the URL's detected chain matches the expected one.
// An empty expected chain accepts any detection.
type Verification struct {
	Detected string
	Expected string
	Match    bool
}

func Verify(url, expected string) Verification {
	detected := FromURL(url)
	return Verification{
		Detected: detected,
		Expected: expected,
		Match:    expected == "" || detected == expected,
	}
}
