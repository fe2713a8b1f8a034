// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor records calls and returns canned output per binary.
type fakeExecutor struct {
	missing map[string]bool
	pdfinfo string
	pages   map[string]string // page number -> text
	fail    map[string]bool   // page number -> pdftotext failure
	calls   [][]string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.missing[file] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", file)
	}
	return "/usr/bin/" + file, nil
}

func (f *fakeExecutor) Output(name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	switch name {
	case binPdfinfo:
		return []byte(f.pdfinfo), nil
	case binPdftotext:
		page := args[3] // -enc UTF-8 -f N ...
		if f.fail[page] {
			return nil, errors.New("exit status 1")
		}
		return []byte(f.pages[page]), nil
	}
	return nil, fmt.Errorf("unexpected command %s", name)
}

const samplePdfinfo = `Title:          Races
Producer:       LibreOffice 7.5
Pages:          3
Encrypted:      no
`

func TestPdftotext(t *testing.T) {
	path := writeFile(t, "races.pdf", "%PDF-1.4")
	ex := &fakeExecutor{
		pdfinfo: samplePdfinfo,
		pages:   map[string]string{"1": "cover\f", "3": "Dwarves\nStrength: +1\f"},
	}

	doc, err := openPdftotext(path, ex)
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, 3, doc.PageCount())

	text, err := doc.PageText(2)
	require.NoError(t, err)
	assert.Equal(t, "Dwarves\nStrength: +1\f", text)

	last := ex.calls[len(ex.calls)-1]
	assert.Equal(t, []string{binPdftotext, "-enc", "UTF-8", "-f", "3", "-l", "3", path, "-"}, last)

	_, err = doc.PageText(3)
	assert.ErrorIs(t, err, ErrPageRange)
}

func TestPdftotext_PageFailure(t *testing.T) {
	path := writeFile(t, "races.pdf", "%PDF-1.4")
	ex := &fakeExecutor{pdfinfo: samplePdfinfo, fail: map[string]bool{"2": true}}

	doc, err := openPdftotext(path, ex)
	require.NoError(t, err)

	_, err = doc.PageText(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext page 2")
}

func TestOpenPdftotext_MissingTools(t *testing.T) {
	for _, bin := range []string{binPdftotext, binPdfinfo} {
		t.Run(bin, func(t *testing.T) {
			ex := &fakeExecutor{missing: map[string]bool{bin: true}}
			_, err := openPdftotext("races.pdf", ex)
			assert.ErrorIs(t, err, ErrBackendUnavailable)
			assert.Contains(t, err.Error(), "install poppler-utils")
			assert.Empty(t, ex.calls)
		})
	}
}

func TestOpenPdftotext_MissingFile(t *testing.T) {
	ex := &fakeExecutor{pdfinfo: samplePdfinfo}
	_, err := openPdftotext("/nonexistent/races.pdf", ex)
	assert.ErrorIs(t, err, ErrOpen)
	assert.Empty(t, ex.calls)
}

func TestParsePdfinfoPages(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    int
		wantErr string
	}{
		{name: "standard output", out: samplePdfinfo, want: 3},
		{name: "no pages line", out: "Title: x\n", wantErr: "no Pages line"},
		{name: "bad number", out: "Pages: many\n", wantErr: "parsing page count"},
		{name: "pages key must match exactly", out: "PagesFoo: 1\nPages: 17\n", want: 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePdfinfoPages([]byte(tt.out))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, strings.Contains(err.Error(), tt.wantErr), err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
