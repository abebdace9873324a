package admission

import (
	"regexp"
	"strings"
)

var looseStudentRe = regexp.MustCompile(`\d+\s+\d+\s+EN\d+\s+[A-Z]`)

// fallbackTerm returns the configured fallback term equal to the
// normalized query, if any.
func (m matcher) fallbackTerm(q query) (string, bool) {
	for _, term := range m.fallbackTerms {
		if strings.EqualFold(term, q.norm) {
			return strings.ToUpper(term), true
		}
	}
	return "", false
}

func (m matcher) mentionsFallbackTerm(text string) bool {
	upper := strings.ToUpper(text)
	for _, term := range m.fallbackTerms {
		if strings.Contains(upper, strings.ToUpper(term)) {
			return true
		}
	}
	return false
}

// extend mines the context windows of existing results for student rows
// the line-level pass missed. New entries are deduplicated by match line
// against everything already collected, in scan order.
func (m matcher) extend(q query, results []Result) []Result {
	seen := make(map[string]bool, len(results))
	for _, r := range results {
		seen[r.MatchLine] = true
	}
	term, isTerm := m.fallbackTerm(q)

	var extra []Result
	for _, r := range results {
		for j := r.start; j < r.end; j++ {
			line := m.doc.Lines[j]
			if line.Kind == KindContinuation {
				continue
			}
			text := line.Text
			if !looseStudentRe.MatchString(text) && !m.mentionsFallbackTerm(text) {
				continue
			}
			if !q.fuzzy.MatchString(text) && !(isTerm && strings.Contains(strings.ToUpper(text), term)) {
				continue
			}
			matchLine := strings.TrimSpace(text)
			if seen[matchLine] {
				continue
			}
			seen[matchLine] = true
			extra = append(extra, Result{
				LineNumber: j + 1,
				Context:    r.Context,
				MatchLine:  matchLine,
				MatchType:  MatchStudentEntry,
				start:      r.start,
				end:        r.end,
			})
		}
	}
	return append(results, extra...)
}

// rescan scans the whole report for lines containing term and reports
// each as a student hit. Continuation lines are left to the row they
// were merged into. It does not deduplicate against results.
func (m matcher) rescan(term string, results []Result) []Result {
	for i, line := range m.doc.Lines {
		if line.Kind == KindContinuation || !strings.Contains(strings.ToUpper(line.Text), term) {
			continue
		}
		start, end := m.bounds(i)
		results = append(results, Result{
			LineNumber: i + 1,
			Context:    m.windowText(start, end),
			MatchLine:  strings.TrimSpace(line.Text),
			MatchType:  MatchStudent,
			start:      start,
			end:        end,
		})
	}
	return results
}
