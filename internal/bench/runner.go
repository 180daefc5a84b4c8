package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Anish-Chanda/textsearch-bench/internal/corpus"
	"github.com/Anish-Chanda/textsearch-bench/internal/search"
)

// Kind says whether a pattern is expected to occur in the text.
type Kind string

const (
	Real Kind = "real"
	Fake Kind = "fake"
)

// Patterns are the two patterns every document is searched for.
type Patterns struct {
	Real string
	Fake string
}

func (p Patterns) byKind() []struct {
	kind    Kind
	pattern []rune
} {
	return []struct {
		kind    Kind
		pattern []rune
	}{
		{Real, []rune(p.Real)},
		{Fake, []rune(p.Fake)},
	}
}

// Archive persists finished reports.
type Archive interface {
	SaveReport(ctx context.Context, r *Report) error
}

// Runner times every searcher against every (document, pattern) pair.
type Runner struct {
	searchers   []search.Searcher
	repetitions int
	log         *zap.Logger
}

// NewRunner returns a Runner that calls each searcher repetitions times per
// case.
func NewRunner(searchers []search.Searcher, repetitions int, log *zap.Logger) (*Runner, error) {
	if len(searchers) == 0 {
		return nil, fmt.Errorf("at least one searcher is required")
	}
	if repetitions <= 0 {
		return nil, fmt.Errorf("repetitions must be positive, got %d", repetitions)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{searchers: searchers, repetitions: repetitions, log: log.Named("bench")}, nil
}

// Run benchmarks all documents. It stops between measurements once ctx is
// done and returns ctx's error.
func (r *Runner) Run(ctx context.Context, docs []*corpus.Document, p Patterns) (*Report, error) {
	cases := p.byKind()
	for _, c := range cases {
		if err := search.Validate(c.pattern); err != nil {
			return nil, fmt.Errorf("%s pattern: %w", c.kind, err)
		}
	}

	report := &Report{
		RunID:       uuid.NewString(),
		Started:     time.Now().UTC(),
		Repetitions: r.repetitions,
		Patterns:    p,
	}
	for _, s := range r.searchers {
		report.Algorithms = append(report.Algorithms, s.String())
	}

	for _, doc := range docs {
		report.Documents = append(report.Documents, DocumentInfo{
			Name:        doc.Name,
			Runes:       doc.Len(),
			Fingerprint: doc.Fingerprint,
		})
		r.log.Info("benchmarking document", zap.String("doc", doc.Name), zap.Int("runes", doc.Len()))

		for _, c := range cases {
			indexes := make(map[string]int, len(r.searchers))
			for _, s := range r.searchers {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				t := r.measure(s, doc, c.kind, c.pattern)
				indexes[t.Algorithm] = t.Index
				report.Timings = append(report.Timings, t)
				r.log.Debug("measured",
					zap.String("doc", doc.Name),
					zap.String("alg", t.Algorithm),
					zap.String("kind", string(c.kind)),
					zap.Int("index", t.Index),
					zap.Duration("elapsed", t.Elapsed),
				)
			}
			for _, a := range checkCase(doc, c.kind, c.pattern, indexes) {
				r.log.Warn("anomaly", zap.String("doc", a.Document), zap.String("kind", string(a.Kind)), zap.String("msg", a.Message))
				report.Anomalies = append(report.Anomalies, a)
			}
		}
	}
	report.Finished = time.Now().UTC()
	return report, nil
}

func (r *Runner) measure(s search.Searcher, doc *corpus.Document, kind Kind, pattern []rune) Timing {
	idx := search.NotFound
	start := time.Now()
	for i := 0; i < r.repetitions; i++ {
		idx = s.Find(doc.Text, pattern)
	}
	return Timing{
		Document:  doc.Name,
		Algorithm: s.String(),
		Kind:      kind,
		Index:     idx,
		Elapsed:   time.Since(start),
	}
}

// checkCase compares the algorithms' answers with each other and with what
// the pattern kind and the document's gram filter predict.
func checkCase(doc *corpus.Document, kind Kind, pattern []rune, indexes map[string]int) []Anomaly {
	var out []Anomaly
	add := func(format string, args ...any) {
		out = append(out, Anomaly{Document: doc.Name, Kind: kind, Message: fmt.Sprintf(format, args...)})
	}

	first, agree := search.NotFound, true
	seen := false
	for _, idx := range indexes {
		if !seen {
			first, seen = idx, true
		} else if idx != first {
			agree = false
		}
	}
	if !agree {
		add("algorithms disagree: %v", indexes)
		return out
	}

	switch {
	case kind == Real && first == search.NotFound:
		add("real pattern not found")
	case kind == Fake && first != search.NotFound:
		add("fake pattern found at %d", first)
	}
	if first != search.NotFound && !doc.MayContain(pattern) {
		add("gram filter rejected a pattern found at %d", first)
	}
	return out
}
