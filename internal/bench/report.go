package bench

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Timing is the total wall-clock time of all repetitions of one algorithm on
// one (document, pattern) pair, with the index the algorithm returned.
type Timing struct {
	Document  string
	Algorithm string
	Kind      Kind
	Index     int
	Elapsed   time.Duration
}

type DocumentInfo struct {
	Name        string
	Runes       int
	Fingerprint uint64
}

// Anomaly is a result that contradicts the other algorithms or the pattern's
// kind.
type Anomaly struct {
	Document string
	Kind     Kind
	Message  string
}

type Report struct {
	RunID       string
	Started     time.Time
	Finished    time.Time
	Repetitions int
	Patterns    Patterns
	Algorithms  []string
	Documents   []DocumentInfo
	Timings     []Timing
	Anomalies   []Anomaly
}

// ReportPrefix is the object-key prefix rendered reports are uploaded under.
const ReportPrefix = "reports/"

// ObjectKey is the storage key of the rendered report.
func (r *Report) ObjectKey() string {
	return ReportPrefix + r.RunID + ".txt"
}

// Lookup returns the timing for one cell of the report.
func (r *Report) Lookup(doc, alg string, kind Kind) (Timing, bool) {
	for _, t := range r.Timings {
		if t.Document == doc && t.Algorithm == alg && t.Kind == kind {
			return t, true
		}
	}
	return Timing{}, false
}

const rule = "----------------------------------------------------------------------------------------------------"

// WriteTo renders the report as text: per document, one line per algorithm
// with the real and fake timings in seconds.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	width := 0
	for _, a := range r.Algorithms {
		width = max(width, len(a))
	}

	fmt.Fprintf(&b, "run %s: %d repetitions, real %q, fake %q\n", r.RunID, r.Repetitions, r.Patterns.Real, r.Patterns.Fake)
	for _, d := range r.Documents {
		b.WriteString(rule + "\n")
		fmt.Fprintf(&b, "%s (%d chars, fingerprint %016x)\n", d.Name, d.Runes, d.Fingerprint)
		for _, alg := range r.Algorithms {
			fmt.Fprintf(&b, "%-*s : %s (real); %s (fake)\n", width, alg,
				r.cell(d.Name, alg, Real), r.cell(d.Name, alg, Fake))
		}
	}
	b.WriteString(rule + "\n")
	for _, a := range r.Anomalies {
		fmt.Fprintf(&b, "! %s [%s]: %s\n", a.Document, a.Kind, a.Message)
	}

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (r *Report) cell(doc, alg string, kind Kind) string {
	t, ok := r.Lookup(doc, alg, kind)
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.6f s", t.Elapsed.Seconds())
}
