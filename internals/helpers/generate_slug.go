package helper

import (
	"strings"
	"unicode"
)

const DefaultSlugMaxLen = 160

// GenerateSlug normalises s into a slug:
// - lower-case
// - spaces & non-alnum become "-"
// - runs of "-" collapse, ends trimmed
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	return cutToLen(strings.Trim(b.String(), "-"), DefaultSlugMaxLen)
}

func cutToLen(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return strings.Trim(s, "-")
	}
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return strings.Trim(string(r), "-")
}
