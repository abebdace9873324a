package admission

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	branchHeaderRe = regexp.MustCompile(`(\d{9}T?)\s*-\s*([A-Za-z &().,]+)`)
	seatHeaderRe   = regexp.MustCompile(`(?i)^(State Level Seats|Minority Seats.*|Institute Level Seats.*|TFWS|AI Seats.*)`)
	tfwsMarkerRe   = regexp.MustCompile(`[A-Z]+\s*[\^~]\s*TFWS`)
	splitNameRe    = regexp.MustCompile(`^(\d+\s+\d+\s+EN\d+\s+[A-Z]+\s+[A-Z]+)\s+([MF]\b.*)$`)
	bareTokenRe    = regexp.MustCompile(`^[A-Z]+$`)
	studentRowRe   = regexp.MustCompile(`^\d+\s+\d+\s+(EN\d+)\s+([A-Z][A-Z\s]+)\s+([MF])\s+([A-Z]+)\s*[\^~]\s*([A-Z]+)`)
	scoreRe        = regexp.MustCompile(`^\d{2}\.\d{5,}$`)
)

// section is the running header state carried down the report.
// The most recent header of each kind wins.
type section struct {
	branch string
	code   string
	seat   string
}

func (s section) known() bool {
	return s.branch != "" || s.seat != ""
}

// Annotate tags every report line with its structural context and
// collects branch headers. The returned lines have the same count and
// order as the input.
func Annotate(raw []string, knownNames []string) Annotated {
	out := Annotated{Lines: make([]Line, len(raw))}
	for i, r := range raw {
		out.Lines[i] = Line{Index: i, Raw: r, Text: strings.TrimSpace(r)}
	}

	var sec section
	for i := range out.Lines {
		line := &out.Lines[i]
		if line.Kind == KindContinuation {
			continue
		}
		text := line.Text

		if m := branchHeaderRe.FindStringSubmatch(text); m != nil {
			sec.code = strings.TrimSpace(m[1])
			sec.branch = strings.TrimSpace(m[2])
			line.Kind = KindBranchHeader
			out.Branches = append(out.Branches, Branch{
				LineIndex: i,
				Label:     fmt.Sprintf("%s (%s)", sec.branch, sec.code),
			})
		}
		if m := seatHeaderRe.FindStringSubmatch(text); m != nil {
			sec.seat = m[1]
			line.Kind = KindSeatHeader
		}
		if tfwsMarkerRe.MatchString(text) {
			sec.seat = "TFWS"
		}

		// A name wrapped onto the next line is folded back in front of
		// the gender column.
		next := i + 1
		if next < len(out.Lines) {
			if m := splitNameRe.FindStringSubmatch(text); m != nil && isNameFragment(out.Lines[next].Text) {
				text = m[1] + " " + out.Lines[next].Text + " " + m[2]
				out.Lines[next].Kind = KindContinuation
				next++
			}
		}

		var tags []string
		for _, name := range knownNames {
			if mentionsName(text, name) {
				tags = append(tags, "[KNOWN-STUDENT:"+name+"]")
			}
		}

		if studentRowRe.MatchString(text) {
			line.Kind = KindStudent
			if sec.known() {
				score := ""
				if next < len(out.Lines) && scoreRe.MatchString(out.Lines[next].Text) {
					score = out.Lines[next].Text
				}
				tags = append(tags, fmt.Sprintf("[BRANCH:%s] [CODE:%s] [SEAT:%s] [SCORE:%s]",
					sec.branch, sec.code, sec.seat, score))
			}
		}

		if len(tags) > 0 {
			text += " " + strings.Join(tags, " ")
		}
		line.Text = text
	}
	return out
}

func isNameFragment(s string) bool {
	return bareTokenRe.MatchString(s) && !seatHeaderRe.MatchString(s)
}

// mentionsName reports whether text carries the full name, or the first
// two tokens of a name longer than two tokens.
func mentionsName(text, name string) bool {
	if name == "" {
		return false
	}
	if strings.Contains(text, name) {
		return true
	}
	tokens := strings.Fields(name)
	return len(tokens) > 2 && strings.Contains(text, tokens[0]+" "+tokens[1])
}

// NearestBranch returns the label of the last branch header at or
// before line index i.
func (a Annotated) NearestBranch(i int) (string, bool) {
	n := sort.Search(len(a.Branches), func(k int) bool {
		return a.Branches[k].LineIndex > i
	})
	if n == 0 {
		return "", false
	}
	return a.Branches[n-1].Label, true
}
