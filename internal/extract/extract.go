// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns the plain text of one entity page into the
// non-page fields of a Record: slug, quote, summary, description and traits.
package extract

import (
	"strings"

	"github.com/pdiddy/pagedex/pkg/types"
)

// DefaultSummaryWords is the number of description tokens kept in a summary.
const DefaultSummaryWords = 40

// Extractor derives a Record from page text. The zero value is not useful:
// Marker must be set. Zero SummaryWords and TitleMaxLen select the defaults.
type Extractor struct {
	// Marker is the heading that opens the trait section.
	Marker string

	// SummaryWords is the summary length in tokens.
	SummaryWords int

	// TitleMaxLen bounds trait title lines, in runes.
	TitleMaxLen int
}

// NewExtractor builds an Extractor from the extraction settings.
func NewExtractor(cfg types.ExtractionConfig) *Extractor {
	return &Extractor{
		Marker:       cfg.Marker,
		SummaryWords: cfg.SummaryWords,
		TitleMaxLen:  cfg.TitleMaxLen,
	}
}

// Extract builds the Record for the entity name from its page text. The Page
// field is left zero; the caller knows the page number.
func (e *Extractor) Extract(name, pageText string) types.Record {
	text := strings.TrimSpace(pageText)
	description, tail, found := SplitSections(text, e.Marker)

	traits := []types.Trait{}
	if found {
		traits = ParseTraits(tail, e.TitleMaxLen)
	}

	return types.Record{
		Name:        name,
		Slug:        Slug(name),
		Quote:       ExtractQuote(text),
		Summary:     Summarize(description, e.SummaryWords),
		Description: description,
		Traits:      traits,
	}
}

// SplitSections splits page text on the first occurrence of marker. The
// description is the trimmed text before the marker and tail is everything
// after it. When the marker is absent (or empty) the whole trimmed text is
// the description and found is false.
func SplitSections(text, marker string) (description, tail string, found bool) {
	if marker == "" {
		return strings.TrimSpace(text), "", false
	}
	before, after, found := strings.Cut(text, marker)
	if !found {
		return strings.TrimSpace(text), "", false
	}
	return strings.TrimSpace(before), after, true
}

// Summarize returns the first words whitespace-delimited tokens of text,
// joined by single spaces. Shorter text is returned whitespace-normalized.
// A non-positive words selects DefaultSummaryWords.
func Summarize(text string, words int) string {
	if words <= 0 {
		words = DefaultSummaryWords
	}
	fields := strings.Fields(text)
	if len(fields) > words {
		fields = fields[:words]
	}
	return strings.Join(fields, " ")
}
