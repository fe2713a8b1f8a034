// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document exposes a PDF as an indexed sequence of plain-text pages.
// Two backends are available: a pure-Go reader (native) and poppler's
// pdftotext command-line tool.
package document

import (
	"errors"
	"fmt"

	"github.com/pdiddy/pagedex/pkg/types"
)

var (
	// ErrOpen is wrapped by every failure to open a source document.
	ErrOpen = errors.New("cannot open document")

	// ErrBackendUnavailable means the text backend's tools are not installed.
	ErrBackendUnavailable = errors.New("document backend unavailable")

	// ErrPageRange is returned for a page index outside the document.
	ErrPageRange = errors.New("page index out of range")
)

// Document is an opened source document. Pages are addressed by 0-based index.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageText returns the plain text of the page at index.
	PageText(index int) (string, error)

	// Close releases the underlying file.
	Close() error
}

// Open opens the document at path with the named backend. An empty backend
// selects the native reader.
func Open(path string, backend types.DocumentBackend) (Document, error) {
	var (
		doc Document
		err error
	)
	switch backend {
	case "", types.BackendNative:
		doc, err = OpenNative(path)
	case types.BackendPdftotext:
		doc, err = OpenPdftotext(path)
	default:
		return nil, fmt.Errorf("unknown document backend %q", backend)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func checkIndex(index, count int) error {
	if index < 0 || index >= count {
		return fmt.Errorf("%w: %d (document has %d pages)", ErrPageRange, index, count)
	}
	return nil
}

// Memory is a Document held in memory, one string per page.
type Memory struct {
	pages []string
}

// NewMemory returns a Document whose pages are the given strings.
func NewMemory(pages ...string) *Memory {
	return &Memory{pages: pages}
}

func (m *Memory) PageCount() int { return len(m.pages) }

func (m *Memory) PageText(index int) (string, error) {
	if err := checkIndex(index, len(m.pages)); err != nil {
		return "", err
	}
	return m.pages[index], nil
}

func (m *Memory) Close() error { return nil }
