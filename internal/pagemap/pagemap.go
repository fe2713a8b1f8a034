// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pagemap assigns each entity of an ordered name list to its page in
// a document laid out as one entity per page after a fixed front matter.
package pagemap

import "github.com/pdiddy/pagedex/pkg/types"

// Map computes the page of every entity. Entity i (0-based) lands on page
// baseOffset+i, which is already a 1-based page number; its index for page
// access is one less. Entities whose index falls outside [0, pageCount) are
// returned in skipped, in entity order, and are absent from mapped.
func Map(names []string, baseOffset, pageCount int) (mapped, skipped []types.Mapping) {
	for i, name := range names {
		page := baseOffset + i
		m := types.Mapping{Name: name, Page: page, Index: page - 1}
		if !InRange(m.Index, pageCount) {
			skipped = append(skipped, m)
			continue
		}
		mapped = append(mapped, m)
	}
	return mapped, skipped
}

// InRange reports whether index addresses a page of a document with
// pageCount pages.
func InRange(index, pageCount int) bool {
	return index >= 0 && index < pageCount
}
