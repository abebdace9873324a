package source

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
	pdflib "github.com/ledongthuc/pdf"
)

const studentRow = "1 1 EN1001 SMITH JOHN M OPEN ^ OPEN"

func TestTextReader_KeepsLineStructure(t *testing.T) {
	input := "400441110T - Computer Engineering\r\n\n" + studentRow + "\n91.1234567"
	p := &TextReader{}
	lines, err := p.ReadLines(strings.NewReader(input), "data.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"400441110T - Computer Engineering", "", studentRow, "91.1234567"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestTextReader_EmptyInput(t *testing.T) {
	p := &TextReader{}
	lines, err := p.ReadLines(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected 0 lines for empty input, got %d", len(lines))
	}
}

func TestTextReader_LongLine(t *testing.T) {
	long := strings.Repeat("EN1001 ", 400000)
	input := studentRow + "\n" + long + "\n"
	p := &TextReader{}
	lines, err := p.ReadLines(strings.NewReader(input), "data.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[1] != long {
		t.Errorf("long line truncated to %d bytes", len(lines[1]))
	}
}

func TestCSVReader_RowsBecomeLines(t *testing.T) {
	input := "sr,merit,app,name,gender,cat,sep,seat\n1,1,EN1001,SMITH JOHN,M,OPEN,^,OPEN\n"
	p := &CSVReader{}
	lines, err := p.ReadLines(strings.NewReader(input), "admission.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[1] != studentRow {
		t.Errorf("expected %q, got %q", studentRow, lines[1])
	}
}

func TestHTMLReader_TableRowsAndHeadings(t *testing.T) {
	input := `<html><head><title>Cap round</title></head><body>
<h2>400441110T - Computer Engineering</h2>
<p>State Level Seats</p>
<table>
<tr><th>Sr</th><th>Merit</th><th>App</th><th>Name</th></tr>
<tr><td>1</td><td>1</td><td>EN1001</td><td>SMITH  JOHN</td><td>M</td><td>OPEN ^ OPEN</td></tr>
</table>
<script>var x = 1;</script>
</body></html>`
	p := &HTMLReader{}
	lines, err := p.ReadLines(strings.NewReader(input), "report.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"400441110T - Computer Engineering",
		"State Level Seats",
		"Sr Merit App Name",
		studentRow,
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestMarkdownReader_WrappedParagraphKeepsRows(t *testing.T) {
	input := "# 400441110T - Computer Engineering\n\nState Level Seats\n" + studentRow + "\n91.1234567\n"
	p := &MarkdownReader{}
	lines, err := p.ReadLines(strings.NewReader(input), "report.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"400441110T - Computer Engineering", "State Level Seats", studentRow, "91.1234567"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestDOCXReader_Paragraphs(t *testing.T) {
	w := docx.New().WithDefaultTheme()
	w.AddParagraph().AddText("400441110T - Computer Engineering")
	w.AddParagraph().AddText(studentRow)
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}

	p := &DOCXReader{}
	lines, err := p.ReadLines(&buf, "report.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	if lines[1] != studentRow {
		t.Errorf("expected %q, got %q", studentRow, lines[1])
	}
}

func TestDOCXReader_TableRows(t *testing.T) {
	cells := []string{"1", "12", "EN24100001", "PATTEWAR RUTVIK MADHUKAR", "M", "OPEN ^", "OPEN"}
	w := docx.New().WithDefaultTheme()
	w.AddParagraph().AddText("400441110T - Computer Engineering")
	tbl := w.AddTable(1, len(cells), 0, nil)
	for j, c := range cells {
		tbl.TableRows[0].TableCells[j].AddParagraph().AddText(c)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}

	p := &DOCXReader{}
	lines, err := p.ReadLines(&buf, "report.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"400441110T - Computer Engineering",
		"1 12 EN24100001 PATTEWAR RUTVIK MADHUKAR M OPEN ^ OPEN",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestPDFRowLines_OrdersRowsAndCells(t *testing.T) {
	rows := pdflib.Rows{
		{Position: 700, Content: pdflib.TextHorizontal{
			{X: 300, S: "PATTEWAR RUTVIK MADHUKAR"},
			{X: 20, S: "1"},
			{X: 60, S: "12"},
			{X: 120, S: "EN24100001"},
			{X: 480, S: "M"},
			{X: 520, S: "OPEN ^"},
			{X: 580, S: "OPEN"},
		}},
		{Position: 100, Content: pdflib.TextHorizontal{{X: 20, S: "Page 1"}}},
		{Position: 760, Content: pdflib.TextHorizontal{
			{X: 150, S: "Computer Engineering"},
			{X: 20, S: "400441110T -"},
		}},
		{Position: 400, Content: pdflib.TextHorizontal{{X: 20, S: "   "}}},
	}

	lines := pdfRowLines(rows)
	want := []string{
		"400441110T - Computer Engineering",
		"1 12 EN24100001 PATTEWAR RUTVIK MADHUKAR M OPEN ^ OPEN",
		"Page 1",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestLayoutLines(t *testing.T) {
	out := "   400441110T - Computer Engineering\n\n" +
		"  1   12   EN24100001   PATTEWAR RUTVIK MADHUKAR   M   OPEN ^   OPEN  \n" +
		"\f400460210 - Information Technology\n"
	lines := layoutLines(out)
	want := []string{
		"400441110T - Computer Engineering",
		"1 12 EN24100001 PATTEWAR RUTVIK MADHUKAR M OPEN ^ OPEN",
		"400460210 - Information Technology",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestPDFReader_InvalidInput(t *testing.T) {
	p := &PDFReader{}
	if _, err := p.ReadLines(strings.NewReader("not a pdf"), "report.pdf"); err == nil {
		t.Fatal("expected an error for a non-PDF body")
	}
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := Loader{}.Load(filepath.Join(t.TempDir(), "data.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoader_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Loader{}.Load(path)
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported extension error, got %v", err)
	}
}

func TestLoader_TextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte("a\nb\nc\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	lines, err := Loader{}.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 3 {
		t.Errorf("expected 3 lines, got %d", len(lines))
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"data.txt", "*source.TextReader"},
		{"data", "*source.TextReader"},
		{"report.PDF", "*source.PDFReader"},
		{"report.htm", "*source.HTMLReader"},
		{"report.docx", "*source.DOCXReader"},
		{"report.markdown", "*source.MarkdownReader"},
		{"admission.csv", "*source.CSVReader"},
	}
	for _, tt := range tests {
		r, err := Loader{}.ForFile(tt.filename)
		if err != nil {
			t.Fatalf("filename=%q: unexpected error: %v", tt.filename, err)
		}
		if got := typeName(r); got != tt.want {
			t.Errorf("filename=%q: expected %s, got %s", tt.filename, tt.want, got)
		}
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("DATA.TXT") {
		t.Error("expected .TXT to be supported")
	}
	if IsSupportedExtension("data.xlsx") {
		t.Error("expected .xlsx to be unsupported")
	}
}

func typeName(r Reader) string {
	switch r.(type) {
	case *TextReader:
		return "*source.TextReader"
	case *PDFReader:
		return "*source.PDFReader"
	case *HTMLReader:
		return "*source.HTMLReader"
	case *DOCXReader:
		return "*source.DOCXReader"
	case *MarkdownReader:
		return "*source.MarkdownReader"
	case *CSVReader:
		return "*source.CSVReader"
	}
	return "unknown"
}
