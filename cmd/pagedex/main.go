// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pagedex CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pagedex/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in the root PersistentPreRunE from the --verbose flag.
var logger = slog.Default()

// flagKeys maps command flags to config keys. Flags are bound for whichever
// command is executing, so the same flag may live on several commands.
var flagKeys = map[string]string{
	"base-offset":  config.KeyBaseOffset,
	"backend":      config.KeyBackend,
	"format":       config.KeyFormat,
	"db":           config.KeyDB,
	"marker":       config.KeyMarker,
	"unique-slugs": config.KeyUniqueSlugs,
}

// rootCmd is the base command. Given SOURCE and OUT it runs convert, so
// `pagedex races.pdf data/races.json --base-offset 2` works without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "pagedex [SOURCE OUT]",
	Short: "Convert a page-per-entity PDF into a structured record list",
	Long: `pagedex reads a PDF laid out as one entity per page after a fixed number
of front-matter pages, and writes one record per entity: name, slug, quote,
summary, description, traits and the page number it came from.

The entity list and the trait section marker come from configuration
(pagedex.yaml, PAGEDEX_* environment variables); the defaults match the
races document the tool was written for.`,
	Args:          cobra.RangeArgs(0, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		for name, key := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := viper.BindPFlag(key, f); err != nil {
					return fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		if len(args) != 2 {
			return fmt.Errorf("expected SOURCE and OUT, got %d argument(s)", len(args))
		}
		return runConvert(cmd, args)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pagedex.yaml or ~/.config/pagedex/pagedex.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log per-page debug output")
	addConvertFlags(rootCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")

	config.SetDefaults(viper.GetViper())
	used, err := config.ReadFile(viper.GetViper(), cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		os.Exit(1)
	}
}
