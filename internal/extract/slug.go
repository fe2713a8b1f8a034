// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// slugFallback is returned when a name has no ASCII letters or digits left
// after decomposition (e.g. names written entirely in Cyrillic).
const slugFallback = "item"

// nonAlnumRe matches every maximal run outside [a-zA-Z0-9].
var nonAlnumRe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Slug derives an ASCII identifier from name. The name is decomposed (NFKD)
// so accented letters keep their base character, every non-ASCII rune is
// dropped, runs of other characters collapse to a single hyphen, and the
// result is lowercased. Slug never returns the empty string.
func Slug(name string) string {
	decomposed := norm.NFKD.String(name)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}

	s := nonAlnumRe.ReplaceAllString(b.String(), "-")
	s = strings.ToLower(strings.Trim(s, "-"))
	if s == "" {
		return slugFallback
	}
	return s
}
