package source

import (
	"fmt"
	"io"
	"strings"
)

// TextReader handles plain text reports. Lines are kept verbatim apart
// from a trailing carriage return, with no limit on line length.
type TextReader struct{}

func (p *TextReader) ReadLines(r io.Reader, filename string) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	content := strings.TrimSuffix(string(data), "\n")
	if content == "" {
		return nil, nil
	}

	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, nil
}
