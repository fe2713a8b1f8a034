// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Native reads the PDF text layer in pure Go. Scanned (image-only) pages
// yield empty text.
type Native struct {
	path   string
	file   *os.File
	reader *pdf.Reader
}

// OpenNative opens path with the pure-Go PDF reader.
func OpenNative(path string) (*Native, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrOpen, path, err)
	}
	return &Native{path: path, file: f, reader: r}, nil
}

func (n *Native) PageCount() int { return n.reader.NumPage() }

// PageText returns the text of the page at index, one output line per
// visual line, top to bottom.
func (n *Native) PageText(index int) (text string, err error) {
	if err := checkIndex(index, n.PageCount()); err != nil {
		return "", err
	}

	// The reader panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading page %d of %s: %v", index+1, n.path, r)
		}
	}()

	p := n.reader.Page(index + 1)
	if p.V.IsNull() {
		return "", nil
	}
	// Content resolves fonts through this page's own resources.
	return joinLines(p.Content().Text), nil
}

func (n *Native) Close() error { return n.file.Close() }

// joinLines groups positioned glyphs into lines by baseline and renders
// them top to bottom. Glyphs whose baselines differ by less than half the
// font size share a line. Within a line glyphs are ordered by X, and a
// space is inserted where the horizontal gap is wider than a quarter em.
func joinLines(glyphs []pdf.Text) string {
	if len(glyphs) == 0 {
		return ""
	}

	sorted := make([]pdf.Text, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var lines [][]pdf.Text
	var current []pdf.Text
	baseline := sorted[0].Y
	for _, g := range sorted {
		if len(current) > 0 && math.Abs(g.Y-baseline) > lineTolerance(g) {
			lines = append(lines, current)
			current = nil
		}
		if len(current) == 0 {
			baseline = g.Y
		}
		current = append(current, g)
	}
	lines = append(lines, current)

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool { return line[i].X < line[j].X })
		out = append(out, renderLine(line))
	}
	return strings.Join(out, "\n")
}

func lineTolerance(g pdf.Text) float64 {
	return math.Max(g.FontSize/2, 1)
}

func renderLine(line []pdf.Text) string {
	var b strings.Builder
	for i, g := range line {
		if i > 0 {
			prev := line[i-1]
			gap := g.X - (prev.X + prev.W)
			if gap > g.FontSize/4 && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(g.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
	}
	return b.String()
}
