// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "regexp"

// quoteRe matches a span in curly double quotes or in straight double quotes.
// The leftmost match wins; at the same position the curly form is tried first.
var quoteRe = regexp.MustCompile(`“([^”]+)”|"([^"]+)"`)

// ExtractQuote returns the inner text of the first quoted span in text, or
// nil when text contains no quoted span.
func ExtractQuote(text string) *string {
	m := quoteRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	q := m[1]
	if q == "" {
		q = m[2]
	}
	return &q
}
