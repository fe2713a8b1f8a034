// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

const (
	binPdftotext = "pdftotext"
	binPdfinfo   = "pdfinfo"

	installHint = "install poppler-utils (apt install poppler-utils, brew install poppler)"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

var defaultExec executor = &osExecutor{}

// Pdftotext extracts page text by running poppler's pdftotext once per page.
type Pdftotext struct {
	path  string
	pages int
	exec  executor
}

// OpenPdftotext checks that the poppler tools are installed, then reads the
// page count of path with pdfinfo.
func OpenPdftotext(path string) (*Pdftotext, error) {
	return openPdftotext(path, defaultExec)
}

func openPdftotext(path string, exec executor) (*Pdftotext, error) {
	for _, bin := range []string{binPdftotext, binPdfinfo} {
		if _, err := exec.LookPath(bin); err != nil {
			return nil, fmt.Errorf("%w: %s not found: %s", ErrBackendUnavailable, bin, installHint)
		}
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrOpen, path, err)
	}

	out, err := exec.Output(binPdfinfo, path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: pdfinfo: %v", ErrOpen, path, err)
	}
	pages, err := parsePdfinfoPages(out)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrOpen, path, err)
	}

	return &Pdftotext{path: path, pages: pages, exec: exec}, nil
}

// parsePdfinfoPages finds the "Pages:" line of pdfinfo output.
func parsePdfinfoPages(out []byte) (int, error) {
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok || strings.TrimSpace(key) != "Pages" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, fmt.Errorf("parsing page count %q: %w", value, err)
		}
		return n, nil
	}
	return 0, fmt.Errorf("pdfinfo output has no Pages line")
}

func (p *Pdftotext) PageCount() int { return p.pages }

// PageText runs pdftotext on the single page at index and returns its output.
func (p *Pdftotext) PageText(index int) (string, error) {
	if err := checkIndex(index, p.pages); err != nil {
		return "", err
	}
	page := strconv.Itoa(index + 1)
	out, err := p.exec.Output(binPdftotext, "-enc", "UTF-8", "-f", page, "-l", page, p.path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext page %s of %s: %w", page, p.path, err)
	}
	return string(out), nil
}

func (p *Pdftotext) Close() error { return nil }
