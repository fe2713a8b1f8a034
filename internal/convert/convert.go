// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert assembles the record list: it maps each entity to its
// page, reads the page text and extracts one Record per page, in entity order.
package convert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pdiddy/pagedex/internal/extract"
	"github.com/pdiddy/pagedex/internal/pagemap"
	"github.com/pdiddy/pagedex/pkg/types"
)

// PageSource is the part of a document the converter needs.
type PageSource interface {
	PageCount() int
	PageText(index int) (string, error)
}

// Result holds the outcome of a conversion run.
type Result struct {
	Records []types.Record
	Skipped []types.Mapping
}

// Total returns the number of entities considered.
func (r Result) Total() int {
	return len(r.Records) + len(r.Skipped)
}

// HasSkips reports whether any entity had no page in the document.
func (r Result) HasSkips() bool {
	return len(r.Skipped) > 0
}

// Converter builds records from a page source.
type Converter struct {
	extractor   *extract.Extractor
	logger      *slog.Logger
	uniqueSlugs bool
}

// NewConverter returns a Converter using the extraction settings of cfg.
// A nil logger selects slog.Default().
func NewConverter(cfg types.Config, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		extractor:   extract.NewExtractor(cfg.ExtractionConfig),
		logger:      logger,
		uniqueSlugs: cfg.UniqueSlugs,
	}
}

// Convert produces one Record per entity whose page exists in src. Entities
// whose page is out of range are logged and skipped; any page read error
// aborts the run.
func (c *Converter) Convert(ctx context.Context, src PageSource, entities []string, baseOffset int) (Result, error) {
	mapped, skipped := pagemap.Map(entities, baseOffset, src.PageCount())

	for _, m := range skipped {
		c.logger.Warn("page out of range, skipping entity",
			"entity", m.Name, "page", m.Page, "index", m.Index, "page_count", src.PageCount())
	}

	records := make([]types.Record, 0, len(mapped))
	for _, m := range mapped {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		text, err := src.PageText(m.Index)
		if err != nil {
			return Result{}, fmt.Errorf("reading page %d for %q: %w", m.Page, m.Name, err)
		}

		rec := c.extractor.Extract(m.Name, text)
		rec.Page = m.Page
		records = append(records, rec)

		c.logger.Debug("extracted record",
			"entity", m.Name, "page", m.Page, "traits", len(rec.Traits), "quote", rec.Quote != nil)
	}

	if c.uniqueSlugs {
		DedupeSlugs(records)
	}

	return Result{Records: records, Skipped: skipped}, nil
}

// DedupeSlugs makes slugs unique in place. The first record keeps its slug;
// later records with a taken slug get the first free "-N" suffix, N from 2.
func DedupeSlugs(records []types.Record) {
	taken := make(map[string]bool, len(records))
	for _, r := range records {
		taken[r.Slug] = true
	}

	seen := make(map[string]bool, len(records))
	for i := range records {
		base := records[i].Slug
		if !seen[base] {
			seen[base] = true
			continue
		}
		for n := 2; ; n++ {
			candidate := fmt.Sprintf("%s-%d", base, n)
			if !taken[candidate] {
				records[i].Slug = candidate
				taken[candidate] = true
				seen[candidate] = true
				break
			}
		}
	}
}
