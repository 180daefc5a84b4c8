package bench_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Anish-Chanda/textsearch-bench/internal/bench"
	"github.com/Anish-Chanda/textsearch-bench/internal/corpus"
	"github.com/Anish-Chanda/textsearch-bench/internal/search"
)

var patterns = bench.Patterns{Real: "сума оптимальних рішень", Fake: "орвпанкоіроавл"}

const article = "Метод динамічного програмування спирається на те, що сума оптимальних рішень підзадач дає відповідь."

// --- fakes ---

// countingSearcher wraps a real searcher and counts calls.
type countingSearcher struct {
	search.Searcher
	calls int
}

func (c *countingSearcher) Find(text, pattern []rune) int {
	c.calls++
	return c.Searcher.Find(text, pattern)
}

// fixedSearcher always answers the same index.
type fixedSearcher struct{ idx int }

func (f fixedSearcher) Find(text, pattern []rune) int { return f.idx }
func (f fixedSearcher) String() string                { return "fixed" }

func mustDoc(t *testing.T, name, text string) *corpus.Document {
	t.Helper()
	doc, err := corpus.NewDocument(name, text)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return doc
}

// --- tests ---

func TestNewRunner_Invalid(t *testing.T) {
	if _, err := bench.NewRunner(nil, 10, nil); err == nil {
		t.Error("expected error without searchers")
	}
	if _, err := bench.NewRunner(search.All(), 0, nil); err == nil {
		t.Error("expected error for zero repetitions")
	}
}

func TestRun_SixTimingsPerDocument(t *testing.T) {
	runner, err := bench.NewRunner(search.All(), 3, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	docs := []*corpus.Document{mustDoc(t, "стаття 1.txt", article), mustDoc(t, "стаття 2.txt", "Інший текст без шуканого рядка.")}

	report, err := runner.Run(context.Background(), docs, patterns)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if report.RunID == "" {
		t.Error("expected a run ID")
	}
	if len(report.Timings) != 2*6 {
		t.Fatalf("expected 12 timings, got %d", len(report.Timings))
	}

	wantReal := strings.Index(article, patterns.Real)
	wantReal = len([]rune(article[:wantReal]))
	for _, alg := range report.Algorithms {
		tm, ok := report.Lookup("стаття 1.txt", alg, bench.Real)
		if !ok {
			t.Fatalf("missing real timing for %s", alg)
		}
		if tm.Index != wantReal {
			t.Errorf("%s real index = %d, want %d", alg, tm.Index, wantReal)
		}
		tm, _ = report.Lookup("стаття 1.txt", alg, bench.Fake)
		if tm.Index != search.NotFound {
			t.Errorf("%s fake index = %d, want NotFound", alg, tm.Index)
		}
	}

	// The second document lacks the real pattern: one anomaly, not one per algorithm.
	if len(report.Anomalies) != 1 || report.Anomalies[0].Document != "стаття 2.txt" || report.Anomalies[0].Kind != bench.Real {
		t.Errorf("unexpected anomalies %+v", report.Anomalies)
	}
}

func TestRun_Repetitions(t *testing.T) {
	counter := &countingSearcher{Searcher: search.NewKnuthMorrisPratt()}
	runner, _ := bench.NewRunner([]search.Searcher{counter}, 7, nil)

	if _, err := runner.Run(context.Background(), []*corpus.Document{mustDoc(t, "a", article)}, patterns); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if counter.calls != 2*7 {
		t.Errorf("expected 14 calls, got %d", counter.calls)
	}
}

func TestRun_Disagreement(t *testing.T) {
	runner, _ := bench.NewRunner([]search.Searcher{search.NewBoyerMoore(), fixedSearcher{idx: 3}}, 1, nil)
	report, err := runner.Run(context.Background(), []*corpus.Document{mustDoc(t, "a", article)}, patterns)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(report.Anomalies) != 2 {
		t.Fatalf("expected a disagreement for each pattern, got %+v", report.Anomalies)
	}
	for _, a := range report.Anomalies {
		if !strings.Contains(a.Message, "disagree") {
			t.Errorf("unexpected anomaly %q", a.Message)
		}
	}
}

func TestRun_EmptyPattern(t *testing.T) {
	runner, _ := bench.NewRunner(search.All(), 1, nil)
	_, err := runner.Run(context.Background(), nil, bench.Patterns{Real: "", Fake: "x"})
	if !errors.Is(err, search.ErrEmptyPattern) {
		t.Fatalf("expected ErrEmptyPattern, got %v", err)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner, _ := bench.NewRunner(search.All(), 1, nil)
	_, err := runner.Run(ctx, []*corpus.Document{mustDoc(t, "a", article)}, patterns)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestReport_WriteTo(t *testing.T) {
	runner, _ := bench.NewRunner(search.All(), 2, nil)
	report, err := runner.Run(context.Background(), []*corpus.Document{mustDoc(t, "стаття 1.txt", article)}, patterns)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	var buf bytes.Buffer
	n, err := report.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo error: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo returned %d, wrote %d", n, buf.Len())
	}

	out := buf.String()
	if !strings.Contains(out, "стаття 1.txt") {
		t.Error("report is missing the document name")
	}
	for _, alg := range report.Algorithms {
		found := false
		for _, line := range strings.Split(out, "\n") {
			if strings.HasPrefix(line, alg) && strings.Contains(line, " s (real); ") && strings.HasSuffix(line, " s (fake)") {
				found = true
			}
		}
		if !found {
			t.Errorf("no timing line for %s in:\n%s", alg, out)
		}
	}
}

func TestReport_ObjectKey(t *testing.T) {
	r := &bench.Report{RunID: "0b7f"}
	if got := r.ObjectKey(); got != "reports/0b7f.txt" {
		t.Errorf("ObjectKey() = %q, want reports/0b7f.txt", got)
	}
}
