package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DeriveUsername concatenates the lowercased first letter of every word in
// owner. "Jonas Schmedtmann" becomes "js". Blank owners yield "".
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, word := range strings.Fields(owner) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
