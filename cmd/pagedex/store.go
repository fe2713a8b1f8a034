// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pagedex/internal/config"
	"github.com/pdiddy/pagedex/internal/output"
	"github.com/pdiddy/pagedex/internal/store"
	"github.com/pdiddy/pagedex/pkg/types"
)

const defaultDB = "pagedex.db"

// --- index subcommand ---

var indexCmd = &cobra.Command{
	Use:   "index FILE",
	Short: "Load a record list file into the search database",
	Long: `Index reads a record list written by convert and stores it in a SQLite
database. Records previously indexed from a file with the same name are
replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	records, err := output.Read(args[0])
	if err != nil {
		return err
	}

	s, err := store.NewStore(dbPath())
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.Ingest(context.Background(), filepath.Base(args[0]), records)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d records → %s\n", successStyle.Render("indexed"), n, dbPath())
	return nil
}

// --- search subcommand ---

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed records by name, description or trait",
	Long: `Search matches the query as a case-insensitive substring of each record's
name, description, and trait titles and texts. Results are listed in page
order. Without a query every record is listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	s, err := openExisting(dbPath())
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.Search(context.Background(), query, limit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if asJSON {
		return output.Encode(w, records, types.FormatJSON)
	}
	if len(records) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no matches"))
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(w, "%4d  %-20s %s\n", r.Page, r.Name, dimStyle.Render(r.Slug))
	}
	return nil
}

// --- show subcommand ---

var showCmd = &cobra.Command{
	Use:   "show SLUG",
	Short: "Print one indexed record with its traits",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	s, err := openExisting(dbPath())
	if err != nil {
		return err
	}
	defer s.Close()

	r, err := s.Get(context.Background(), args[0])
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("no record with slug %q in %s", args[0], dbPath())
	}
	if err != nil {
		return err
	}

	if asJSON {
		return output.Encode(cmd.OutOrStdout(), []types.Record{r}, types.FormatJSON)
	}
	printRecord(cmd.OutOrStdout(), r)
	return nil
}

// printRecord renders a record for the terminal.
func printRecord(w io.Writer, r types.Record) {
	fmt.Fprintf(w, "%s %s\n", successStyle.Render(r.Name), dimStyle.Render(fmt.Sprintf("(%s, page %d)", r.Slug, r.Page)))
	if q := r.QuoteText(); q != "" {
		fmt.Fprintf(w, "\n  “%s”\n", q)
	}
	fmt.Fprintf(w, "\n%s\n", r.Description)
	for _, t := range r.Traits {
		fmt.Fprintf(w, "\n  %s: %s", t.Title, t.Text)
	}
	if len(r.Traits) > 0 {
		fmt.Fprintln(w)
	}
}

// openExisting opens the search database at path, which must already exist.
func openExisting(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("search database %s: %w (run convert --db or index first)", path, err)
	}
	return store.NewStore(path)
}

// dbPath returns the configured database path, or pagedex.db.
func dbPath() string {
	if p := viper.GetString(config.KeyDB); p != "" {
		return p
	}
	return defaultDB
}

func init() {
	indexCmd.Flags().String("db", defaultDB, "SQLite database file")

	searchCmd.Flags().String("db", defaultDB, "SQLite database file")
	searchCmd.Flags().Int("limit", 20, "maximum number of results")
	searchCmd.Flags().Bool("json", false, "print matching records as JSON")

	showCmd.Flags().String("db", defaultDB, "SQLite database file")
	showCmd.Flags().Bool("json", false, "print the record as JSON")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
}
