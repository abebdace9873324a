package admission

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/sherlock/internal/source"
)

var (
	// ErrQueryTooShort is matched by every *QueryTooShortError.
	ErrQueryTooShort = errors.New("search query too short")
	// ErrDataFileNotFound means the configured report file does not exist.
	ErrDataFileNotFound = errors.New("data file not found")
)

// QueryTooShortError reports a query under the configured minimum. It
// matches ErrQueryTooShort.
type QueryTooShortError struct {
	Min int
}

func (e *QueryTooShortError) Error() string {
	return fmt.Sprintf("search query must be at least %d characters", e.Min)
}

func (e *QueryTooShortError) Is(target error) bool {
	return target == ErrQueryTooShort
}

// Options tunes the search passes.
type Options struct {
	ContextWindow int      // Lines kept on each side of a hit.
	MinQueryLen   int      // Minimum trimmed query length, in characters.
	ExtendBelow   int      // Mine context windows when fewer hits than this; 0 disables.
	RescanBelow   int      // Rescan the report for a fallback term below this; 0 disables.
	KnownNames    []string // Names tagged [KNOWN-STUDENT:...] wherever they appear.
	FallbackTerms []string // Terms that trigger a full-report rescan.
}

// DefaultOptions returns the tuning the admission report was built against.
func DefaultOptions() Options {
	return Options{
		ContextWindow: 15,
		MinQueryLen:   3,
		ExtendBelow:   5,
		RescanBelow:   2,
		KnownNames: []string{
			"PATTEWAR RUTVIK MADHUKAR",
			"MULE ABHISHEK NANDLAL",
			"SINGH ANKIT ASHOK",
			"BALBUDHE SONAL CHANDRASHEKHAR",
		},
		FallbackTerms: []string{"mule"},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ContextWindow <= 0 {
		o.ContextWindow = d.ContextWindow
	}
	if o.MinQueryLen <= 0 {
		o.MinQueryLen = d.MinQueryLen
	}
	if o.ExtendBelow < 0 {
		o.ExtendBelow = d.ExtendBelow
	}
	if o.RescanBelow < 0 {
		o.RescanBelow = d.RescanBelow
	}
	return o
}

// Find runs the matcher and, when it comes up short, the fallback passes
// over an annotated report.
func Find(doc Annotated, rawQuery string, opts Options) []Result {
	opts = opts.withDefaults()
	q := newQuery(rawQuery)
	m := matcher{doc: doc, window: opts.ContextWindow, fallbackTerms: opts.FallbackTerms}

	results := m.match(q)
	if len(results) < opts.ExtendBelow {
		results = m.extend(q, results)
	}
	if term, ok := m.fallbackTerm(q); ok && len(results) < opts.RescanBelow {
		results = m.rescan(term, results)
	}
	return results
}

// Recorder receives per-search measurements.
type Recorder interface {
	Record(durationMs int64, results int)
}

// Service answers admission searches against a report file. The report
// is loaded and annotated fresh on every call.
type Service struct {
	dataFile string
	opts     Options
	load     func(path string) ([]string, error)
	stats    Recorder
	log      *slog.Logger
}

// NewService creates a Service reading dataFile through loader. stats and
// log may be nil.
func NewService(dataFile string, opts Options, loader source.Loader, stats Recorder, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		dataFile: dataFile,
		opts:     opts.withDefaults(),
		load:     loader.Load,
		stats:    stats,
		log:      log,
	}
}

// DataFile returns the report path searched by this service.
func (s *Service) DataFile() string {
	return s.dataFile
}

// Search validates rawQuery, loads the report and returns every hit.
func (s *Service) Search(ctx context.Context, rawQuery string) (*Response, error) {
	if utf8.RuneCountInString(strings.TrimSpace(rawQuery)) < s.opts.MinQueryLen {
		return nil, &QueryTooShortError{Min: s.opts.MinQueryLen}
	}
	start := time.Now()

	lines, err := s.load(s.dataFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrDataFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load report %s: %w", s.dataFile, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := Annotate(lines, s.opts.KnownNames)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := Find(doc, rawQuery, s.opts)
	if results == nil {
		results = []Result{}
	}

	elapsed := time.Since(start).Milliseconds()
	if s.stats != nil {
		s.stats.Record(elapsed, len(results))
	}
	s.log.Info("admission search",
		"query", rawQuery,
		"lines", len(lines),
		"branches", len(doc.Branches),
		"results", len(results),
		"duration_ms", elapsed,
	)

	return &Response{
		Status:  "success",
		Query:   rawQuery,
		Count:   len(results),
		Results: results,
	}, nil
}
