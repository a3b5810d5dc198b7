package extract

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// Everything outside the allow-list is stripped: word characters,
	// whitespace, basic punctuation, and the four currency glyphs.
	disallowedRe = regexp.MustCompile(`[^\w\s.,:\-$₹€£]`)
)

// Normalize lowercases the text, collapses whitespace runs to single spaces,
// strips characters outside the allow-list, and trims. It always succeeds;
// empty input yields an empty string.
func Normalize(text string) string {
	t := strings.ToLower(text)
	t = whitespaceRe.ReplaceAllString(t, " ")
	t = disallowedRe.ReplaceAllString(t, "")
	return strings.TrimSpace(t)
}
