package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/Anish-Chanda/textsearch-bench/internal/api"
	"github.com/Anish-Chanda/textsearch-bench/internal/db"
)

var (
	serverAddr = flag.String("addr", "http://localhost:8080", "textsearch server address")
	algorithm  = flag.String("alg", api.AllAlgorithms, "algorithm name, or \"all\"")
)

func must(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func checkStatus(resp *http.Response, what string) {
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "%s failed (%d): %s\n", what, resp.StatusCode, body)
		os.Exit(1)
	}
}

func printResults(out api.SearchResponse) {
	for _, r := range out.Results {
		fmt.Printf("%-20s %d\n", r.Algorithm, r.Index)
	}
}

func searchText(text, pattern string) {
	body, err := json.Marshal(api.SearchRequest{Algorithm: *algorithm, Text: text, Pattern: pattern})
	must(err)

	resp, err := http.Post(*serverAddr+"/api/search", "application/json", bytes.NewReader(body))
	must(err)
	defer resp.Body.Close()
	checkStatus(resp, "search")

	var out api.SearchResponse
	must(json.NewDecoder(resp.Body).Decode(&out))
	printResults(out)
}

func searchDocument(name, pattern string) {
	q := url.Values{"pattern": {pattern}, "algorithm": {*algorithm}}
	resp, err := http.Get(*serverAddr + "/api/documents/" + url.PathEscape(name) + "/search?" + q.Encode())
	must(err)
	defer resp.Body.Close()
	checkStatus(resp, "document search")

	var out api.SearchResponse
	must(json.NewDecoder(resp.Body).Decode(&out))
	printResults(out)
}

func listDocuments() {
	resp, err := http.Get(*serverAddr + "/api/documents")
	must(err)
	defer resp.Body.Close()
	checkStatus(resp, "documents")

	var docs []api.DocumentResponse
	must(json.NewDecoder(resp.Body).Decode(&docs))
	for _, d := range docs {
		fmt.Printf("%s\t%d chars\t%s\n", d.Name, d.Runes, d.Fingerprint)
	}
}

func listRuns() {
	resp, err := http.Get(*serverAddr + "/api/runs")
	must(err)
	defer resp.Body.Close()
	checkStatus(resp, "runs")

	var runs []db.RunSummary
	must(json.NewDecoder(resp.Body).Decode(&runs))
	for _, r := range runs {
		fmt.Printf("%s\t%s\t%d reps\n", r.RunID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Repetitions)
	}
}

func showRun(id string) {
	resp, err := http.Get(*serverAddr + "/api/runs/" + url.PathEscape(id) + "/timings")
	must(err)
	defer resp.Body.Close()
	checkStatus(resp, "run timings")

	var rows []db.TimingRow
	must(json.NewDecoder(resp.Body).Decode(&rows))
	for _, t := range rows {
		fmt.Printf("%s\t%-20s %-4s %8d  %.6f s\n", t.Document, t.Algorithm, t.Kind, t.MatchIndex, float64(t.ElapsedNS)/1e9)
	}
}

func listReports() {
	resp, err := http.Get(*serverAddr + "/api/reports")
	must(err)
	defer resp.Body.Close()
	checkStatus(resp, "reports")

	var keys []string
	must(json.NewDecoder(resp.Body).Decode(&keys))
	for _, k := range keys {
		fmt.Println(k)
	}
}

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: client [-alg name] <search|doc-search|docs|runs|run|reports> [args]\n")
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	switch cmd {
	case "search":
		if flag.NArg() != 3 {
			fmt.Fprintf(os.Stderr, "usage: client search <text> <pattern>\n")
			os.Exit(1)
		}
		searchText(flag.Arg(1), flag.Arg(2))

	case "doc-search":
		if flag.NArg() != 3 {
			fmt.Fprintf(os.Stderr, "usage: client doc-search <document> <pattern>\n")
			os.Exit(1)
		}
		searchDocument(flag.Arg(1), flag.Arg(2))

	case "docs":
		listDocuments()

	case "runs":
		listRuns()

	case "run":
		if flag.NArg() != 2 {
			fmt.Fprintf(os.Stderr, "usage: client run <run-id>\n")
			os.Exit(1)
		}
		showRun(flag.Arg(1))

	case "reports":
		listReports()

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		os.Exit(1)
	}
}
