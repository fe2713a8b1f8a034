// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pagedex/internal/config"
	"github.com/pdiddy/pagedex/internal/convert"
	"github.com/pdiddy/pagedex/internal/document"
	"github.com/pdiddy/pagedex/internal/output"
	"github.com/pdiddy/pagedex/internal/store"
	"github.com/pdiddy/pagedex/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert SOURCE OUT",
	Short: "Convert a PDF into a record list file",
	Long: `Convert maps entity i to page base-offset+i of SOURCE, extracts one record
per page and writes the list to OUT as JSON (or YAML for .yaml/.yml paths).
The parent directory of OUT is created if missing. Entities whose page is
beyond the end of the document are skipped with a warning.

With --db the records are also indexed into a SQLite database for search.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	addConvertFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().Int("base-offset", 2, "pages before the first entity page (first entity is on page base-offset)")
	cmd.Flags().String("backend", string(types.BackendNative), "PDF text backend: native or pdftotext")
	cmd.Flags().String("format", string(types.FormatJSON), "output format when OUT has no .json/.yaml extension: json or yaml")
	cmd.Flags().String("marker", config.DefaultMarker, "heading that opens the trait section")
	cmd.Flags().Bool("unique-slugs", true, "suffix repeated slugs with -2, -3, ...")
	cmd.Flags().String("db", "", "also index the records into this SQLite database")
}

// openDocument is replaced in tests.
var openDocument = func(path string, backend types.DocumentBackend) (convert.PageSource, io.Closer, error) {
	doc, err := document.Open(path, backend)
	if err != nil {
		return nil, nil, err
	}
	return doc, doc, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	return convertFile(cmd.Context(), cfg, args[0], args[1], cmd.OutOrStdout(), logger)
}

// convertFile runs one conversion and prints the summary line to w. Nothing
// is written when the source cannot be opened or a page cannot be read.
func convertFile(ctx context.Context, cfg types.Config, src, out string, w io.Writer, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	doc, closer, err := openDocument(src, cfg.Backend)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.Debug("opened document", "path", src, "pages", doc.PageCount(), "backend", cfg.Backend)

	result, err := convert.NewConverter(cfg, logger).Convert(ctx, doc, cfg.Entities, cfg.BaseOffset)
	if err != nil {
		return err
	}

	format := output.FormatForPath(out, cfg.Format)
	if err := output.Write(out, result.Records, format); err != nil {
		return err
	}

	if cfg.DBPath != "" {
		if err := indexRecords(ctx, cfg.DBPath, filepath.Base(src), result.Records); err != nil {
			return err
		}
		logger.Debug("indexed records", "db", cfg.DBPath, "count", len(result.Records))
	}

	fmt.Fprintf(w, "%s %d records → %s (offset=%d)\n",
		successStyle.Render("OK:"), len(result.Records), out, cfg.BaseOffset)
	if result.HasSkips() {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("skipped %d of %d entities (no page in document)",
			len(result.Skipped), result.Total())))
	}
	return nil
}

func indexRecords(ctx context.Context, dbPath, source string, records []types.Record) error {
	s, err := store.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.Ingest(ctx, source, records)
	return err
}

