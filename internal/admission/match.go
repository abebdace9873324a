package admission

import (
	"regexp"
	"strings"
)

var studentMarkerRe = regexp.MustCompile(`EN\d+|[A-Z][A-Z\s]{5,}`)

// query is a normalized search term with its gap-tolerant pattern.
type query struct {
	norm  string
	fuzzy *regexp.Regexp
}

// newQuery lowercases and trims q and builds a pattern that allows
// whitespace or hyphens between every character, so "ab" also matches
// "a-b" and "a b".
func newQuery(q string) query {
	norm := strings.ToLower(strings.TrimSpace(q))
	parts := make([]string, 0, len(norm))
	for _, r := range norm {
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	return query{
		norm:  norm,
		fuzzy: regexp.MustCompile(`(?i)` + strings.Join(parts, `[\s\-]*`)),
	}
}

func (q query) matches(text string) bool {
	return strings.Contains(strings.ToLower(text), q.norm) || q.fuzzy.MatchString(text)
}

// matcher runs the primary context-window pass.
type matcher struct {
	doc           Annotated
	window        int
	fallbackTerms []string
}

func (m matcher) bounds(i int) (int, int) {
	return max(0, i-m.window), min(len(m.doc.Lines), i+m.window+1)
}

func (m matcher) windowText(start, end int) string {
	texts := make([]string, 0, end-start)
	for _, l := range m.doc.Lines[start:end] {
		texts = append(texts, l.contextText())
	}
	return strings.Join(texts, "\n")
}

func (m matcher) isStudentLine(text string) bool {
	if studentMarkerRe.MatchString(text) {
		return true
	}
	for _, term := range m.fallbackTerms {
		if strings.Contains(text, strings.ToUpper(term)) {
			return true
		}
	}
	return false
}

// match returns one result per line whose annotated text satisfies q,
// in report order.
func (m matcher) match(q query) []Result {
	var results []Result
	for i, line := range m.doc.Lines {
		if line.Kind == KindContinuation || !q.matches(line.Text) {
			continue
		}
		start, end := m.bounds(i)
		context := m.windowText(start, end)
		if label, ok := m.doc.NearestBranch(i); ok && !strings.Contains(context, label) {
			context = "Branch: " + label + "\n" + context
		}
		mt := MatchContext
		if m.isStudentLine(line.Text) {
			mt = MatchStudent
		}
		results = append(results, Result{
			LineNumber: i + 1,
			Context:    context,
			MatchLine:  strings.TrimSpace(line.Text),
			MatchType:  mt,
			start:      start,
			end:        end,
		})
	}
	return results
}
