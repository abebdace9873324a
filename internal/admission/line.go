package admission

import "strings"

// LineKind classifies a report line after annotation.
type LineKind int

const (
	KindPlain LineKind = iota
	KindBranchHeader
	KindSeatHeader
	KindStudent
	KindContinuation // name fragment folded into the preceding student row
)

func (k LineKind) String() string {
	switch k {
	case KindBranchHeader:
		return "branch_header"
	case KindSeatHeader:
		return "seat_header"
	case KindStudent:
		return "student"
	case KindContinuation:
		return "continuation"
	default:
		return "plain"
	}
}

// Line is one report line with its annotated text.
type Line struct {
	Index int      // 0-based position in the report
	Raw   string   // Untouched source text
	Text  string   // Trimmed, possibly name-merged, with tags appended
	Kind  LineKind
}

// contextText is the line as shown in a context window: the source text
// unless annotation rewrote it.
func (l Line) contextText() string {
	if l.Text == strings.TrimSpace(l.Raw) {
		return l.Raw
	}
	return l.Text
}

// Branch records a line that opens a new branch (choice code) section.
type Branch struct {
	LineIndex int
	Label     string // "Computer Engineering (400441110T)"
}

// Annotated is the read-only output of the annotation pass.
type Annotated struct {
	Lines    []Line
	Branches []Branch // Sorted by LineIndex
}

// MatchType is the coarse classification of a search hit.
type MatchType string

const (
	MatchStudent      MatchType = "student"
	MatchContext      MatchType = "context"
	MatchStudentEntry MatchType = "student_entry"
)

// Result is a single search hit.
type Result struct {
	LineNumber int       `json:"line_number"`
	Context    string    `json:"context"`
	MatchLine  string    `json:"match_line"`
	MatchType  MatchType `json:"match_type"`

	// Window bounds into Annotated.Lines, [start, end).
	start, end int
}

// Response is the payload returned for a successful search.
type Response struct {
	Status  string   `json:"status"`
	Query   string   `json:"query"`
	Count   int      `json:"count"`
	Results []Result `json:"results"`
}
