package source

import (
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownReader handles Markdown copies of the report using goldmark.
// Every source line of every leaf block is kept as its own line, so
// wrapped paragraphs keep their row structure.
type MarkdownReader struct{}

func (p *MarkdownReader) ReadLines(r io.Reader, filename string) ([]string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var lines []string
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
			segs := n.Lines()
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				if line := joinFields([]string{string(seg.Value(src))}); line != "" {
					lines = append(lines, line)
				}
			}
			return
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(doc)
	return lines, nil
}
