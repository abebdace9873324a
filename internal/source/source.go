package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Reader flattens an admission report into ordered lines, one per
// table row or paragraph.
type Reader interface {
	ReadLines(r io.Reader, filename string) ([]string, error)
}

// SupportedExtensions lists report formats this service can read.
var SupportedExtensions = map[string]bool{
	"":          true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Loader reads report files from disk.
type Loader struct {
	// PDFFallbackPdftotext shells out to pdftotext when the Go PDF
	// reader fails.
	PDFFallbackPdftotext bool
}

// ForFile returns the appropriate reader for a filename.
func (l Loader) ForFile(filename string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case "", ".txt":
		return &TextReader{}, nil
	case ".md", ".markdown":
		return &MarkdownReader{}, nil
	case ".csv":
		return &CSVReader{}, nil
	case ".html", ".htm":
		return &HTMLReader{}, nil
	case ".pdf":
		return &PDFReader{FallbackPdftotext: l.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported report extension: %s", ext)
	}
}

// Load opens path and returns its lines. A missing file yields an error
// matching fs.ErrNotExist.
func (l Loader) Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rd, err := l.ForFile(path)
	if err != nil {
		return nil, err
	}
	lines, err := rd.ReadLines(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return lines, nil
}

// IsSupportedExtension checks if a report extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// joinFields collapses cell texts into one space-separated line.
func joinFields(fields []string) string {
	var parts []string
	for _, f := range fields {
		if f = strings.Join(strings.Fields(f), " "); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}
