// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pagedex/internal/extract"
	"github.com/pdiddy/pagedex/pkg/types"
)

// testPage is one page of a generated PDF: a font dictionary bound to /F1
// and text lines drawn 14pt apart with Td.
type testPage struct {
	font  string
	lines []string
}

const helvetica = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"

// buildPDF writes a minimal PDF with one content stream per page and a
// correct cross-reference table.
func buildPDF(t *testing.T, pages ...testPage) string {
	t.Helper()

	// Objects: 1 catalog, 2 pages, then per page: page, font, contents.
	var objects []string
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+3*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
	)
	for i, p := range pages {
		fontObj, contentObj := 4+3*i, 5+3*i

		var content strings.Builder
		content.WriteString("BT /F1 12 Tf 72 720 Td")
		for j, line := range p.lines {
			if j > 0 {
				content.WriteString(" 0 -14 Td")
			}
			fmt.Fprintf(&content, " (%s) Tj", line)
		}
		content.WriteString(" ET")
		stream := content.String()

		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", fontObj, contentObj),
			p.font,
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestNative_PageTextKeepsLines(t *testing.T) {
	path := buildPDF(t,
		testPage{font: helvetica, lines: []string{"Cover"}},
		testPage{font: helvetica, lines: []string{
			"Intro line",
			"Racial Bonuses and Drawbacks",
			"Strength: +2 to melee damage.",
			"Weakness: Vulnerable to fire.",
		}},
	)

	doc, err := OpenNative(path)
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, 2, doc.PageCount())

	text, err := doc.PageText(1)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Intro line",
		"Racial Bonuses and Drawbacks",
		"Strength: +2 to melee damage.",
		"Weakness: Vulnerable to fire.",
	}, strings.Split(text, "\n"))

	_, err = doc.PageText(2)
	assert.ErrorIs(t, err, ErrPageRange)

	rec := extract.NewExtractor(types.ExtractionConfig{Marker: "Racial Bonuses and Drawbacks"}).Extract("Orcs", text)
	assert.Equal(t, "Intro line", rec.Description)
	assert.Equal(t, []types.Trait{
		{Title: "Strength", Text: "+2 to melee damage."},
		{Title: "Weakness", Text: "Vulnerable to fire."},
	}, rec.Traits)
}

func TestNative_FontsResolvedPerPage(t *testing.T) {
	// Both pages call their font /F1; page 2's font maps code 'A' to glyph B.
	remapped := "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding << /Type /Encoding /Differences [65 /B] >> >>"
	path := buildPDF(t,
		testPage{font: helvetica, lines: []string{"Axe"}},
		testPage{font: remapped, lines: []string{"Axe"}},
	)

	doc, err := OpenNative(path)
	require.NoError(t, err)
	defer doc.Close()

	first, err := doc.PageText(0)
	require.NoError(t, err)
	second, err := doc.PageText(1)
	require.NoError(t, err)

	assert.Equal(t, "Axe", first)
	assert.Equal(t, "Bxe", second)
}

func TestOpen_NativeByDefault(t *testing.T) {
	doc, err := Open(buildPDF(t, testPage{font: helvetica, lines: []string{"Only"}}), "")
	require.NoError(t, err)
	defer doc.Close()

	text, err := doc.PageText(0)
	require.NoError(t, err)
	assert.Equal(t, "Only", text)
}

func TestInspect_GeneratedPDF(t *testing.T) {
	path := buildPDF(t,
		testPage{font: helvetica, lines: []string{"one"}},
		testPage{font: helvetica, lines: []string{"two"}},
		testPage{font: helvetica, lines: []string{"three"}},
	)

	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, 3, info.PageCount)
	assert.Equal(t, path, info.Path)
	assert.Positive(t, info.Size)
}

func TestJoinLines(t *testing.T) {
	glyph := func(s string, x, y float64) pdf.Text {
		return pdf.Text{S: s, X: x, Y: y, W: 6, FontSize: 12}
	}

	tests := []struct {
		name   string
		glyphs []pdf.Text
		want   string
	}{
		{name: "empty", want: ""},
		{
			name:   "top to bottom regardless of stream order",
			glyphs: []pdf.Text{glyph("b", 72, 700), glyph("a", 72, 720)},
			want:   "a\nb",
		},
		{
			name:   "left to right within a line",
			glyphs: []pdf.Text{glyph("y", 78, 720), glyph("x", 72, 720)},
			want:   "xy",
		},
		{
			name:   "small baseline jitter stays on one line",
			glyphs: []pdf.Text{glyph("a", 72, 720), glyph("b", 78, 719)},
			want:   "ab",
		},
		{
			name:   "wide gap becomes a space",
			glyphs: []pdf.Text{glyph("a", 72, 720), glyph("b", 120, 720)},
			want:   "a b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, joinLines(tt.glyphs))
		})
	}
}
