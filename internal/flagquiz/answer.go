package flagquiz

import (
	"strings"

	"golang.org/x/text/cases"
)

// normalize trims surrounding whitespace and case folds s.
func normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Matches reports whether answer names the expected country. A nil answer
// never matches.
func Matches(answer *string, expected string) bool {
	if answer == nil {
		return false
	}
	return MatchesText(*answer, expected)
}

// MatchesText compares exactly after trimming and case folding both sides.
func MatchesText(answer, expected string) bool {
	return normalize(answer) == normalize(expected)
}

// Describe returns the description of the first entry whose country matches,
// scanning tiers in play order.
func Describe(country string, catalog Catalog) (string, bool) {
	target := normalize(country)
	for _, t := range Tiers {
		for _, e := range catalog[t] {
			if normalize(e.Country) == target {
				return e.Description, true
			}
		}
	}
	return "", false
}
