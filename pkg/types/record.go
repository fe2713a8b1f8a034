// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Trait is a titled sub-entry parsed from the labeled section at the end of
// an entity page (e.g. "Strength: +2 to melee damage.").
type Trait struct {
	// Title is the text before the first colon of the opening line.
	Title string `json:"title" yaml:"title"`

	// Text is the body of the sub-entry, with its lines joined by single spaces.
	Text string `json:"text" yaml:"text"`
}

// Record is one entity extracted from its page in the source document.
// Records are built once per run and never updated.
type Record struct {
	// Name is taken verbatim from the configured entity list.
	Name string `json:"name" yaml:"name"`

	// Slug is a stable ASCII identifier derived from Name.
	Slug string `json:"slug" yaml:"slug"`

	// Quote is the first quoted span on the page, or nil when the page has none.
	Quote *string `json:"quote" yaml:"quote"`

	// Summary is the first words of Description.
	Summary string `json:"summary" yaml:"summary"`

	// Description is the page text before the trait section marker.
	Description string `json:"description" yaml:"description"`

	// Traits lists the sub-entries in page order. It is never nil so that an
	// empty list serializes as [] rather than null.
	Traits []Trait `json:"traits" yaml:"traits"`

	// Page is the 1-based physical page number in the source document.
	Page int `json:"page" yaml:"page"`
}

// QuoteText returns the quote or the empty string when absent.
func (r Record) QuoteText() string {
	if r.Quote == nil {
		return ""
	}
	return *r.Quote
}

// Mapping pairs an entity with the page that holds it.
type Mapping struct {
	// Name is the entity name.
	Name string `json:"name" yaml:"name"`

	// Page is the 1-based page number (base offset + ordinal).
	Page int `json:"page" yaml:"page"`

	// Index is the 0-based page index used for document access (Page - 1).
	Index int `json:"index" yaml:"index"`
}
