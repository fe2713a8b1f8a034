// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store indexes converted records in SQLite and answers
// case-insensitive substring searches over names, descriptions and traits.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pagedex/pkg/types"
)

const defaultLimit = 20

// Store manages the record index database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the SQLite database at path and ensures the
// schema exists.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			slug TEXT NOT NULL,
			quote TEXT,
			summary TEXT NOT NULL,
			description TEXT NOT NULL,
			page INTEGER NOT NULL,
			haystack TEXT NOT NULL,
			UNIQUE(source, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_slug ON records(slug)`,
		`CREATE TABLE IF NOT EXISTS traits (
			record_id INTEGER NOT NULL REFERENCES records(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (record_id, position)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// haystack is the lowercased text a search query is matched against.
// SQLite's lower() only folds ASCII, so folding happens here.
func haystack(r types.Record) string {
	var b strings.Builder
	b.WriteString(r.Name)
	b.WriteString("\n")
	b.WriteString(r.Description)
	for _, t := range r.Traits {
		b.WriteString("\n")
		b.WriteString(t.Title)
		b.WriteString(" ")
		b.WriteString(t.Text)
	}
	return strings.ToLower(b.String())
}

// Ingest replaces every record previously indexed for source with records,
// in a single transaction. It returns the number of records stored.
func (s *Store) Ingest(ctx context.Context, source string, records []types.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE source = ?`, source); err != nil {
		return 0, fmt.Errorf("deleting old records: %w", err)
	}

	recStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (source, position, name, slug, quote, summary, description, page, haystack)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing record insert: %w", err)
	}
	defer recStmt.Close()

	traitStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO traits (record_id, position, title, text) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing trait insert: %w", err)
	}
	defer traitStmt.Close()

	for i, r := range records {
		var quote sql.NullString
		if r.Quote != nil {
			quote = sql.NullString{String: *r.Quote, Valid: true}
		}
		res, err := recStmt.ExecContext(ctx,
			source, i, r.Name, r.Slug, quote, r.Summary, r.Description, r.Page, haystack(r))
		if err != nil {
			return 0, fmt.Errorf("inserting record %s: %w", r.Slug, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("reading id of record %s: %w", r.Slug, err)
		}
		for j, t := range r.Traits {
			if _, err := traitStmt.ExecContext(ctx, id, j, t.Title, t.Text); err != nil {
				return 0, fmt.Errorf("inserting trait %q of %s: %w", t.Title, r.Slug, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing records: %w", err)
	}
	return len(records), nil
}

// Search returns records whose name, description or traits contain query,
// ignoring case, ordered by source and page. An empty query matches every
// record. A non-positive limit selects the default of 20.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]types.Record, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	q := strings.ToLower(strings.TrimSpace(query))

	where, args := "", []any{}
	if q != "" {
		where, args = "WHERE instr(haystack, ?) > 0", append(args, q)
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, slug, quote, summary, description, page
		 FROM records `+where+`
		 ORDER BY source, position
		 LIMIT ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("searching records: %w", err)
	}
	return s.collect(ctx, rows)
}

// Get returns the first indexed record with the given slug.
func (s *Store) Get(ctx context.Context, slug string) (types.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, slug, quote, summary, description, page
		 FROM records WHERE slug = ? ORDER BY source, position LIMIT 1`, slug)
	if err != nil {
		return types.Record{}, fmt.Errorf("querying record %s: %w", slug, err)
	}
	records, err := s.collect(ctx, rows)
	if err != nil {
		return types.Record{}, err
	}
	if len(records) == 0 {
		return types.Record{}, fmt.Errorf("record %s: %w", slug, sql.ErrNoRows)
	}
	return records[0], nil
}

// collect scans record rows, closes them, then loads each record's traits.
func (s *Store) collect(ctx context.Context, rows *sql.Rows) ([]types.Record, error) {
	var (
		ids     []int64
		records []types.Record
	)
	for rows.Next() {
		var (
			id    int64
			r     types.Record
			quote sql.NullString
		)
		if err := rows.Scan(&id, &r.Name, &r.Slug, &quote, &r.Summary, &r.Description, &r.Page); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		if quote.Valid {
			q := quote.String
			r.Quote = &q
		}
		ids = append(ids, id)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i, id := range ids {
		traits, err := s.traits(ctx, id)
		if err != nil {
			return nil, err
		}
		records[i].Traits = traits
	}
	return records, nil
}

func (s *Store) traits(ctx context.Context, recordID int64) ([]types.Trait, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, text FROM traits WHERE record_id = ? ORDER BY position`, recordID)
	if err != nil {
		return nil, fmt.Errorf("querying traits: %w", err)
	}
	defer rows.Close()

	traits := []types.Trait{}
	for rows.Next() {
		var t types.Trait
		if err := rows.Scan(&t.Title, &t.Text); err != nil {
			return nil, fmt.Errorf("scanning trait: %w", err)
		}
		traits = append(traits, t)
	}
	return traits, rows.Err()
}
