package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXReader handles Word exports of the report. Paragraphs become one
// line each; table rows become one line with cells space-joined.
type DOCXReader struct{}

func (p *DOCXReader) ReadLines(r io.Reader, filename string) ([]string, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "sherlock-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var lines []string
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			if t := docxParagraphText(it); t != "" {
				lines = append(lines, t)
			}
		case *docx.Table:
			lines = append(lines, docxTableRows(it)...)
		}
	}
	return lines, nil
}

func docxTableRows(tbl *docx.Table) []string {
	var lines []string
	for _, row := range tbl.TableRows {
		var cells []string
		for _, cell := range row.TableCells {
			for _, para := range cell.Paragraphs {
				cells = append(cells, docxParagraphText(para))
			}
		}
		if line := joinFields(cells); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return joinFields([]string{buf.String()})
}
