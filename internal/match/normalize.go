// Package match implements the title matching heuristics that score search
// results against a requested track: normalization, keyword exclusion,
// duration policy and character-level similarity.
package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	parenRegex   = regexp.MustCompile(`\([^)]*\)`)
	bracketRegex = regexp.MustCompile(`\[[^\]]*\]`)
	spaceRegex   = regexp.MustCompile(`\s+`)
)

// Normalize strips decorative text from a title so two titles can be
// compared on their substantive content. Parenthesized and bracketed
// segments are removed as a unit, every rune that is not a letter, digit,
// whitespace or hyphen is dropped, and whitespace runs collapse to a single
// space. Normalize is idempotent.
func Normalize(title string) string {
	title = norm.NFKC.String(title)
	title = parenRegex.ReplaceAllString(title, "")
	title = bracketRegex.ReplaceAllString(title, "")

	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' {
			b.WriteRune(r)
		}
	}

	title = spaceRegex.ReplaceAllString(b.String(), " ")
	return strings.TrimSpace(title)
}

// splitParts splits a normalized title on hyphens into trimmed, non-empty
// parts.
func splitParts(normalized string) []string {
	raw := strings.Split(normalized, "-")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
