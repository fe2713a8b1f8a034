// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pagedex/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "index", "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func sampleRecords() []types.Record {
	return []types.Record{
		{
			Name: "Гномы", Slug: "item", Quote: strPtr("Камень помнит."),
			Summary: "Подгорный народ.", Description: "Подгорный народ.",
			Traits: []types.Trait{{Title: "Сила", Text: "+2 к урону."}, {Title: "Слабость", Text: "Боятся воды."}},
			Page:   2,
		},
		{
			Name: "Elves", Slug: "elves",
			Summary: "Forest dwellers.", Description: "Forest dwellers who live long.",
			Traits: []types.Trait{{Title: "Darkvision", Text: "Sees in the dark."}},
			Page:   3,
		},
		{
			Name: "Trolls", Slug: "trolls",
			Summary: "Big.", Description: "Big and slow.",
			Traits: []types.Trait{},
			Page:   4,
		},
	}
}

func TestIngestAndSearch(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	n, err := s.Ingest(ctx, "races.pdf", sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "name match", query: "elves", want: []string{"elves"}},
		{name: "case-insensitive cyrillic", query: "ГНОМЫ", want: []string{"item"}},
		{name: "description match", query: "slow", want: []string{"trolls"}},
		{name: "trait title match", query: "darkvision", want: []string{"elves"}},
		{name: "trait text match", query: "воды", want: []string{"item"}},
		{name: "empty query matches all in page order", query: "  ", want: []string{"item", "elves", "trolls"}},
		{name: "no match", query: "dragons", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Search(ctx, tt.query, 0)
			require.NoError(t, err)
			var slugs []string
			for _, r := range got {
				slugs = append(slugs, r.Slug)
			}
			assert.Equal(t, tt.want, slugs)
		})
	}
}

func TestSearch_Limit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.Ingest(ctx, "races.pdf", sampleRecords())
	require.NoError(t, err)

	got, err := s.Search(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestIngest_ReplacesSource(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Ingest(ctx, "races.pdf", sampleRecords())
	require.NoError(t, err)
	_, err = s.Ingest(ctx, "races.pdf", sampleRecords()[:1])
	require.NoError(t, err)

	got, err := s.Search(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Гномы", got[0].Name)
}

func TestGet_RoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	want := sampleRecords()
	_, err := s.Ingest(ctx, "races.pdf", want)
	require.NoError(t, err)

	for _, w := range want {
		got, err := s.Get(ctx, w.Slug)
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}

	_, err = s.Get(ctx, "dragons")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
