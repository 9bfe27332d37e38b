// Package classify maps free-text descriptions and section headers to the
// fixed ledger, expense and movement taxonomies.
package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s and strips diacritics so "Administración" and
// "ADMINISTRACION" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// ContainsAny reports whether the folded text contains any keyword.
// Keywords must already be folded.
func ContainsAny(folded string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// rule pairs a label with the keywords that select it.
type rule struct {
	label    string
	keywords []string
}

// firstMatch returns the label of the first rule whose keywords occur in
// text, or fallback.
func firstMatch(text string, rules []rule, fallback string) string {
	folded := Fold(text)
	if folded == "" {
		return fallback
	}
	for _, r := range rules {
		if ContainsAny(folded, r.keywords) {
			return r.label
		}
	}
	return fallback
}
