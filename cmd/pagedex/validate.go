// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pagedex/internal/output"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a record list file against the output schema",
	Long: `Validate checks a record list file (JSON, or YAML for .yaml/.yml paths)
against the record list JSON Schema exactly as written: unknown keys and
missing keys are both errors.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateFile(cmd.OutOrStdout(), args[0])
	},
}

func validateFile(w io.Writer, path string) error {
	if err := output.ValidateFile(path); err != nil {
		return err
	}
	records, err := output.Read(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %s: %d records\n", successStyle.Render("valid"), path, len(records))
	return nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
