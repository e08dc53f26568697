// Package textnorm normalizes Portuguese-language text for heuristic
// matching: government-published headers rename the same logical field
// with varying case, accents and separators.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// RemoveAccents folds accented letters to their base Latin form.
func RemoveAccents(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		return s
	}
	return out
}

// ColumnName normalizes a raw column name for substring matching:
// trim, lowercase, accents stripped, whitespace collapsed to single
// spaces, everything that is not a letter, digit or space removed.
func ColumnName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")
	s = RemoveAccents(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Query normalizes free text for search indexing and querying: trim,
// lowercase, accents stripped, whitespace collapsed. Unlike ColumnName it
// keeps punctuation, so CNPJ digits with separators remain searchable.
func Query(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = RemoveAccents(s)
	return strings.Join(strings.Fields(s), " ")
}
