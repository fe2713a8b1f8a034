//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	defaultSource = "assets/pdf/races.pdf"
	defaultOut    = "data/races.json"
)

// Convert builds the CLI and converts assets/pdf/races.pdf into
// data/races.json. PAGEDEX_SOURCE and PAGEDEX_OUT override the paths.
func Convert() error {
	mg.Deps(Build)

	src := envOr("PAGEDEX_SOURCE", defaultSource)
	out := envOr("PAGEDEX_OUT", defaultOut)
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("source document: %w", err)
	}
	return sh.RunV(binPath(), "convert", src, out, "--base-offset", "2")
}

// Index converts the default document and loads it into pagedex.db.
func Index() error {
	mg.Deps(Convert)
	return sh.RunV(binPath(), "index", envOr("PAGEDEX_OUT", defaultOut), "--db", "pagedex.db")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
