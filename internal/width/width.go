// Package width reports how many terminal cells a character occupies.
package width

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// cond is fixed to narrow East Asian ambiguous characters so the result does
// not depend on the locale the editor was started in.
var cond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Rune returns the number of cells r occupies: 0 for control and
// non-printing runes, 2 for wide and fullwidth runes, otherwise 1.
// Invalid UTF-8 decodes to U+FFFD, which the terminal draws in one cell.
func Rune(r rune) int {
	if unicode.IsControl(r) {
		return 0
	}
	if r == unicode.ReplacementChar {
		return 1
	}
	w := cond.RuneWidth(r)
	if w > 2 {
		return 2
	}
	return w
}

// String returns the total cell width of s.
func String(s string) int {
	n := 0
	for _, r := range s {
		n += Rune(r)
	}
	return n
}

// Truncate cuts s so that it fits in at most cells columns.
func Truncate(s string, cells int) string {
	if cells <= 0 {
		return ""
	}
	if String(s) <= cells {
		return s
	}
	n := 0
	for i, r := range s {
		w := Rune(r)
		if n+w > cells {
			return s[:i]
		}
		n += w
	}
	return s
}
