// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/pagedex/pkg/types"
)

// DefaultTitleMaxLen bounds the pre-colon part of a trait title line, in runes.
const DefaultTitleMaxLen = 40

// pendingTrait is a trait whose title line has been seen but whose body may
// still grow.
type pendingTrait struct {
	title string
	body  []string
}

func (p pendingTrait) close() types.Trait {
	return types.Trait{
		Title: p.title,
		Text:  strings.TrimSpace(strings.Join(p.body, " ")),
	}
}

// traitFold is the accumulator of the line scan: the traits already closed
// and at most one open trait.
type traitFold struct {
	closed []types.Trait
	open   *pendingTrait
}

// step consumes one trimmed, non-empty line.
func (f traitFold) step(line string, maxTitle int) traitFold {
	if title, body, ok := splitTitleLine(line, maxTitle); ok {
		if f.open != nil {
			f.closed = append(f.closed, f.open.close())
		}
		next := &pendingTrait{title: title}
		if body != "" {
			next.body = []string{body}
		}
		f.open = next
		return f
	}

	// Lines before the first title belong to no trait.
	if f.open != nil {
		f.open.body = append(f.open.body, line)
	}
	return f
}

// result closes the open trait, if any, and returns all traits in order.
func (f traitFold) result() []types.Trait {
	out := f.closed
	if f.open != nil {
		out = append(out, f.open.close())
	}
	if out == nil {
		out = []types.Trait{}
	}
	return out
}

// splitTitleLine reports whether line opens a trait: it contains a colon,
// starts with an uppercase letter, and the part before the first colon is
// shorter than maxTitle runes.
func splitTitleLine(line string, maxTitle int) (title, body string, ok bool) {
	head, rest, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	first, _ := utf8.DecodeRuneInString(line)
	if !unicode.IsUpper(first) {
		return "", "", false
	}
	if utf8.RuneCountInString(head) >= maxTitle {
		return "", "", false
	}
	return strings.TrimSpace(head), strings.TrimSpace(rest), true
}

// ParseTraits parses the text that follows the trait section marker into
// titled sub-entries. A line such as "Strength: +2 to melee damage." opens a
// trait; following lines extend its text until the next title line.
// Repeated titles produce separate traits. A non-positive maxTitle selects
// DefaultTitleMaxLen. The result is never nil.
func ParseTraits(text string, maxTitle int) []types.Trait {
	if maxTitle <= 0 {
		maxTitle = DefaultTitleMaxLen
	}
	var f traitFold
	for _, line := range nonEmptyLines(text) {
		f = f.step(line, maxTitle)
	}
	return f.result()
}

// nonEmptyLines splits text into trimmed lines and drops the blank ones.
// \r\n and bare \r count as line breaks.
func nonEmptyLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
