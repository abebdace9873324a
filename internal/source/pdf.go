package source

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFReader handles PDF exports of the admission report. Text is
// regrouped into visual rows so each table row becomes one line. It
// tries the Go library first, then falls back to pdftotext if enabled.
type PDFReader struct {
	FallbackPdftotext bool
}

func (p *PDFReader) ReadLines(r io.Reader, filename string) ([]string, error) {
	// ledongthuc/pdf requires a file path, so we write to a temp file.
	tmp, err := os.CreateTemp("", "sherlock-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	lines, err := extractPDFRows(tmpPath)
	if err != nil && p.FallbackPdftotext {
		lines, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	return lines, nil
}

func extractPDFRows(path string) ([]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		lines = append(lines, pdfRowLines(rows)...)
	}
	return lines, nil
}

// pdfRowLines orders one page's rows top to bottom and each row's text
// left to right, one line per row.
func pdfRowLines(rows pdflib.Rows) []string {
	// PDF y grows upwards.
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Position > rows[b].Position })

	var lines []string
	for _, row := range rows {
		sort.SliceStable(row.Content, func(a, b int) bool { return row.Content[a].X < row.Content[b].X })
		cells := make([]string, 0, len(row.Content))
		for _, t := range row.Content {
			cells = append(cells, t.S)
		}
		if line := joinFields(cells); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func extractPdftotext(path string) ([]string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	return layoutLines(string(out)), nil
}

// layoutLines splits pdftotext -layout output into lines, collapsing
// column padding and dropping blank lines and form feeds.
func layoutLines(out string) []string {
	var lines []string
	for _, l := range strings.Split(strings.ReplaceAll(out, "\f", "\n"), "\n") {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
