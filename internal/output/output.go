// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output serializes the record list to JSON or YAML and validates
// JSON output against the record list schema.
package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pagedex/pkg/types"
)

//go:embed records.schema.json
var recordsSchema string

const schemaURL = "records.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, strings.NewReader(recordsSchema)); err != nil {
			compileErr = fmt.Errorf("adding record schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile(schemaURL)
	})
	return compiled, compileErr
}

// FormatForPath returns the format implied by the file extension of path,
// or fallback when the extension is neither .yaml nor .yml nor .json.
func FormatForPath(path string, fallback types.OutputFormat) types.OutputFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return types.FormatYAML
	case ".json":
		return types.FormatJSON
	}
	return fallback
}

// Marshal renders records in the given format. JSON uses two-space
// indentation and leaves non-ASCII and HTML characters unescaped.
func Marshal(records []types.Record, format types.OutputFormat) ([]byte, error) {
	if records == nil {
		records = []types.Record{}
	}

	switch format {
	case "", types.FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return buf.Bytes(), nil
	case types.FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Encode writes records to w in the given format.
func Encode(w io.Writer, records []types.Record, format types.OutputFormat) error {
	data, err := Marshal(records, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Write serializes records to path, creating its parent directory. JSON
// output is validated against the record schema before anything is written.
func Write(path string, records []types.Record, format types.OutputFormat) error {
	data, err := Marshal(records, format)
	if err != nil {
		return err
	}

	if format == "" || format == types.FormatJSON {
		if err := Validate(data); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Validate checks a JSON record list against the record schema.
func Validate(data []byte) error {
	s, err := schema()
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding record list: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("record list does not match schema: %w", err)
	}
	return nil
}

// ValidateFile checks the record list stored at path against the record
// schema exactly as written, so unknown or missing keys are reported. YAML
// files are converted to their JSON equivalent first.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if FormatForPath(path, types.FormatJSON) == types.FormatYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		if data, err = json.Marshal(doc); err != nil {
			return fmt.Errorf("converting %s to JSON: %w", path, err)
		}
	}

	if err := Validate(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Read loads a record list written by Write. The format is taken from the
// file extension, defaulting to JSON.
func Read(path string) ([]types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var records []types.Record
	switch FormatForPath(path, types.FormatJSON) {
	case types.FormatYAML:
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for i := range records {
		if records[i].Traits == nil {
			records[i].Traits = []types.Trait{}
		}
	}
	return records, nil
}
