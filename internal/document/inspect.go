// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Info describes a source document without extracting any text.
type Info struct {
	Path      string `json:"path" yaml:"path"`
	PageCount int    `json:"page_count" yaml:"page_count"`
	Size      int64  `json:"size" yaml:"size"`
}

// Inspect reads the page count of the PDF at path with pdfcpu.
func Inspect(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("%w %s: %v", ErrOpen, path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return Info{}, fmt.Errorf("%w %s: %v", ErrOpen, path, err)
	}

	pageCount, err := api.PageCount(f, nil)
	if err != nil {
		return Info{}, fmt.Errorf("%w %s: page count: %v", ErrOpen, path, err)
	}

	return Info{Path: path, PageCount: pageCount, Size: fi.Size()}, nil
}
