package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Anish-Chanda/textsearch-bench/internal/bench"
	"github.com/Anish-Chanda/textsearch-bench/internal/corpus"
	"github.com/Anish-Chanda/textsearch-bench/internal/db"
	"github.com/Anish-Chanda/textsearch-bench/internal/search"
)

const (
	// AllAlgorithms selects every searcher in a request.
	AllAlgorithms = "all"

	MaxSearchBody   = 8 << 20 // bytes accepted by POST /api/search
	DefaultRunLimit = 20
)

// RunStore reads archived benchmark runs.
type RunStore interface {
	ListRuns(ctx context.Context, limit int) ([]db.RunSummary, error)
	GetTimings(ctx context.Context, runID string) ([]db.TimingRow, error)
}

// ReportLister lists uploaded report objects.
type ReportLister interface {
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}

// Handler serves searches over ad-hoc text and over the loaded documents.
// Documents and searchers are read-only, so requests share them freely.
type Handler struct {
	searchers []search.Searcher
	docs      map[string]*corpus.Document
	names     []string
	runs      RunStore
	reports   ReportLister
	log       *zap.Logger
}

func NewHandler(searchers []search.Searcher, docs []*corpus.Document, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handler{
		searchers: searchers,
		docs:      make(map[string]*corpus.Document, len(docs)),
		log:       log.Named("api"),
	}
	for _, d := range docs {
		if _, dup := h.docs[d.Name]; !dup {
			h.names = append(h.names, d.Name)
		}
		h.docs[d.Name] = d
	}
	return h
}

// WithArchive enables the run and report endpoints. Either may be nil, in
// which case its endpoints answer 503.
func (h *Handler) WithArchive(runs RunStore, reports ReportLister) *Handler {
	h.runs = runs
	h.reports = reports
	return h
}

type SearchRequest struct {
	Algorithm string `json:"algorithm"`
	Text      string `json:"text"`
	Pattern   string `json:"pattern"`
}

type Result struct {
	Algorithm string `json:"algorithm"`
	Index     int    `json:"index"`
}

type SearchResponse struct {
	Document string   `json:"document,omitempty"`
	Results  []Result `json:"results"`
}

type DocumentResponse struct {
	Name        string `json:"name"`
	Runes       int    `json:"runes"`
	Bytes       int    `json:"bytes"`
	Fingerprint string `json:"fingerprint"`
}

// HealthHandler checks if the server is alive
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// Algorithms handles GET /api/algorithms
func (h *Handler) Algorithms(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.searchers))
	for _, s := range h.searchers {
		names = append(names, s.String())
	}
	writeJSON(w, http.StatusOK, names)
}

// Search handles POST /api/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	r.Body = http.MaxBytesReader(w, r.Body, MaxSearchBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	results, err := h.run(req.Algorithm, []rune(req.Text), []rune(req.Pattern))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Documents handles GET /api/documents
func (h *Handler) Documents(w http.ResponseWriter, r *http.Request) {
	out := make([]DocumentResponse, 0, len(h.names))
	for _, name := range h.names {
		d := h.docs[name]
		out = append(out, DocumentResponse{
			Name:        d.Name,
			Runes:       d.Len(),
			Bytes:       d.Bytes,
			Fingerprint: fmt.Sprintf("%016x", d.Fingerprint),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// SearchDocument handles GET /api/documents/{name}/search?pattern=&algorithm=
func (h *Handler) SearchDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	doc, ok := h.docs[name]
	if !ok {
		http.Error(w, fmt.Sprintf("document %q not found", name), http.StatusNotFound)
		return
	}
	q := r.URL.Query()
	results, err := h.run(q.Get("algorithm"), doc.Text, []rune(q.Get("pattern")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Document: doc.Name, Results: results})
}

// Runs handles GET /api/runs?limit=
func (h *Handler) Runs(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		http.Error(w, "run archive not configured", http.StatusServiceUnavailable)
		return
	}
	limit := DefaultRunLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, fmt.Sprintf("invalid limit %q", v), http.StatusBadRequest)
			return
		}
		limit = n
	}
	runs, err := h.runs.ListRuns(r.Context(), limit)
	if err != nil {
		h.log.Error("list runs", zap.Error(err))
		http.Error(w, "failed to list runs", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []db.RunSummary{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// RunTimings handles GET /api/runs/{id}/timings
func (h *Handler) RunTimings(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		http.Error(w, "run archive not configured", http.StatusServiceUnavailable)
		return
	}
	id := chi.URLParam(r, "id")
	rows, err := h.runs.GetTimings(r.Context(), id)
	if err != nil {
		h.log.Error("get timings", zap.String("run", id), zap.Error(err))
		http.Error(w, "failed to load timings", http.StatusInternalServerError)
		return
	}
	if len(rows) == 0 {
		http.Error(w, fmt.Sprintf("run %q not found", id), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Reports handles GET /api/reports
func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	if h.reports == nil {
		http.Error(w, "report storage not configured", http.StatusServiceUnavailable)
		return
	}
	keys, err := h.reports.ListKeys(r.Context(), bench.ReportPrefix)
	if err != nil {
		h.log.Error("list reports", zap.Error(err))
		http.Error(w, "failed to list reports", http.StatusInternalServerError)
		return
	}
	if keys == nil {
		keys = []string{}
	}
	writeJSON(w, http.StatusOK, keys)
}

// run executes one named algorithm, or all of them when alg is empty or "all".
func (h *Handler) run(alg string, text, pattern []rune) ([]Result, error) {
	if err := search.Validate(pattern); err != nil {
		return nil, err
	}
	selected := h.searchers
	if alg != "" && !strings.EqualFold(alg, AllAlgorithms) {
		s, err := search.ByName(h.searchers, alg)
		if err != nil {
			return nil, err
		}
		selected = []search.Searcher{s}
	}
	if len(selected) == 0 {
		return nil, errors.New("no algorithms configured")
	}

	results := make([]Result, 0, len(selected))
	for _, s := range selected {
		results = append(results, Result{Algorithm: s.String(), Index: s.Find(text, pattern)})
	}
	h.log.Debug("search", zap.String("alg", alg), zap.Int("text_runes", len(text)), zap.Any("results", results))
	return results, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
