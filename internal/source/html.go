package source

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLReader handles HTML exports of the report. Each table row becomes
// one line with its cells space-joined; headings, paragraphs and list
// items become one line each.
type HTMLReader struct{}

func (p *HTMLReader) ReadLines(r io.Reader, filename string) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var lines []string
	emit := func(s string) {
		if s = joinFields([]string{s}); s != "" {
			lines = append(lines, s)
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "head":
				return
			case "tr":
				var cells []string
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
						cells = append(cells, textContent(c))
					}
				}
				emit(joinFields(cells))
				return
			case "pre":
				for _, l := range strings.Split(textContent(n), "\n") {
					emit(l)
				}
				return
			case "h1", "h2", "h3", "h4", "h5", "h6", "p", "li", "caption":
				emit(textContent(n))
				return
			}
		}
		if n.Type == html.TextNode && n.Parent != nil && isLooseTextParent(n.Parent) {
			emit(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return lines, nil
}

// isLooseTextParent reports whether bare text under this element stands
// on its own line, as with text directly inside <body> or <div>.
func isLooseTextParent(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.Data == "body" || n.Data == "div" || n.Data == "section")
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && n.Data == "br" {
			buf.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
