// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pagedex/internal/config"
	"github.com/pdiddy/pagedex/internal/document"
	"github.com/pdiddy/pagedex/internal/pagemap"
	"github.com/pdiddy/pagedex/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect SOURCE",
	Short: "Show the page count and the entity-to-page mapping",
	Long: `Inspect reads the page count of SOURCE without extracting text and prints
which page each configured entity maps to at the given base offset. Entities
that would be skipped by convert are marked.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Int("base-offset", 2, "pages before the first entity page")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	info, err := document.Inspect(args[0])
	if err != nil {
		return err
	}

	printMapping(cmd.OutOrStdout(), info, cfg)
	return nil
}

func printMapping(w io.Writer, info document.Info, cfg types.Config) {
	fmt.Fprintf(w, "%s: %d pages, %d bytes (offset=%d)\n\n", info.Path, info.PageCount, info.Size, cfg.BaseOffset)

	mapped, skipped := pagemap.Map(cfg.Entities, cfg.BaseOffset, info.PageCount)

	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%5s  %5s  %s", "page", "index", "entity")))
	for i, name := range cfg.Entities {
		page := cfg.BaseOffset + i
		line := fmt.Sprintf("%5d  %5d  %s", page, page-1, name)
		if !pagemap.InRange(page-1, info.PageCount) {
			line = warnStyle.Render(line + "  (out of range)")
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintf(w, "\n%d mapped, %d out of range\n", len(mapped), len(skipped))
}
