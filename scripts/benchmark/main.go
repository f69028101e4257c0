// Command benchmark drives a running readability server's /v1/extract
// endpoint against a handful of representative documents and reports
// latency and token savings.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"
)

var (
	apiURL = flag.String("api-url", "http://localhost:8080", "readability API base URL")
	apiKey = flag.String("api-key", "", "API key for authenticated requests")
	runs   = flag.Int("runs", 3, "Number of runs per document for averaging")
	output = flag.String("output", "benchmark-results.json", "JSON output file path")
)

// seedDocuments are representative fixtures covering a short article, a
// JSON-LD-annotated article, and a table-heavy article — the shapes the
// scoring pipeline treats differently.
var seedDocuments = []struct {
	Label string
	HTML  string
}{
	{
		Label: "Short article",
		HTML: `<html><head><title>Foo - Example</title></head><body><article><p>` +
			strings.Repeat("Lorem ipsum dolor sit amet, consectetur adipiscing elit. ", 12) +
			`</p></article></body></html>`,
	},
	{
		Label: "JSON-LD article",
		HTML: `<html><head><script type="application/ld+json">` +
			`{"@context":"https://schema.org","@type":"NewsArticle","headline":"A Headline","author":{"name":"A Writer"},"datePublished":"2024-01-02"}` +
			`</script><title>A Headline - Site</title></head><body><article><p>` +
			strings.Repeat("News content spans several sentences of body copy. ", 20) +
			`</p></article></body></html>`,
	},
	{
		Label: "Table-heavy article",
		HTML: `<html><head><title>Data Report</title></head><body><article><p>` +
			strings.Repeat("Introductory paragraph text. ", 15) +
			`</p><table><tbody><tr><td>Row 1</td></tr><tr><td>Row 2</td></tr></tbody></table><p>` +
			strings.Repeat("Closing paragraph text. ", 15) +
			`</p></article></body></html>`,
	},
}

type extractRequest struct {
	HTML         string `json:"html"`
	OutputFormat string `json:"output_format"`
}

type extractResponse struct {
	Success  bool `json:"success"`
	Metadata struct {
		Title string `json:"title"`
	} `json:"metadata"`
	Links struct {
		Internal []struct{ Href string } `json:"internal"`
		External []struct{ Href string } `json:"external"`
	} `json:"links"`
	Tokens struct {
		OriginalEstimate int     `json:"original_estimate"`
		CleanedEstimate  int     `json:"cleaned_estimate"`
		SavingsPercent   float64 `json:"savings_percent"`
	} `json:"tokens"`
	Timing struct {
		TotalMs      int64 `json:"total_ms"`
		ExtractionMs int64 `json:"extraction_ms"`
	} `json:"timing"`
	Content string `json:"content"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type runResult struct {
	Run            int     `json:"run"`
	TotalMs        int64   `json:"total_ms"`
	ExtractionMs   int64   `json:"extraction_ms"`
	SavingsPercent float64 `json:"savings_percent"`
	ContentLength  int     `json:"content_length"`
	HasTitle       bool    `json:"has_title"`
	Success        bool    `json:"success"`
	Error          string  `json:"error,omitempty"`
}

type documentAverages struct {
	TotalMs        float64 `json:"total_ms"`
	ExtractionMs   float64 `json:"extraction_ms"`
	SavingsPercent float64 `json:"savings_percent"`
	ContentLength  float64 `json:"content_length"`
}

type documentResult struct {
	Label     string            `json:"label"`
	Runs      []runResult       `json:"runs"`
	Averages  *documentAverages `json:"averages,omitempty"`
}

type benchmarkReport struct {
	Timestamp     string           `json:"timestamp"`
	APIURL        string           `json:"api_url"`
	RunsPerDoc    int              `json:"runs_per_document"`
	Results       []documentResult `json:"results"`
}

func main() {
	flag.Parse()

	fmt.Println("=== readability benchmark ===")
	fmt.Printf("API URL:  %s\n", *apiURL)
	fmt.Printf("Runs/doc: %d\n", *runs)
	fmt.Printf("Output:   %s\n", *output)
	fmt.Println()

	if err := checkAPI(*apiURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot reach API at %s: %v\n", *apiURL, err)
		fmt.Fprintf(os.Stderr, "Make sure the server is running (e.g. readability serve)\n")
		os.Exit(1)
	}

	report := benchmarkReport{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		APIURL:     *apiURL,
		RunsPerDoc: *runs,
	}

	for _, doc := range seedDocuments {
		fmt.Printf("Benchmarking [%s] ...\n", doc.Label)
		dr := documentResult{Label: doc.Label}

		for i := 1; i <= *runs; i++ {
			fmt.Printf("  Run %d/%d ... ", i, *runs)
			rr := benchmarkDocument(doc.HTML, i)
			if rr.Success {
				fmt.Printf("OK  %dms  %.1f%% saved\n", rr.TotalMs, rr.SavingsPercent)
			} else {
				fmt.Printf("FAILED: %s\n", rr.Error)
			}
			dr.Runs = append(dr.Runs, rr)
		}

		dr.Averages = computeAverages(dr.Runs)
		report.Results = append(report.Results, dr)
		fmt.Println()
	}

	printTable(report.Results)

	if err := writeJSON(*output, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JSON output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nDetailed results written to %s\n", *output)
}

func checkAPI(baseURL string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(baseURL + "/v1/health")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func benchmarkDocument(html string, run int) runResult {
	rr := runResult{Run: run}

	bodyBytes, err := json.Marshal(extractRequest{HTML: html, OutputFormat: "markdown"})
	if err != nil {
		rr.Error = fmt.Sprintf("marshal error: %v", err)
		return rr
	}

	req, err := http.NewRequest("POST", *apiURL+"/v1/extract", bytes.NewReader(bodyBytes))
	if err != nil {
		rr.Error = fmt.Sprintf("request error: %v", err)
		return rr
	}
	req.Header.Set("Content-Type", "application/json")
	if *apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+*apiKey)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		rr.Error = fmt.Sprintf("request failed: %v", err)
		return rr
	}
	defer resp.Body.Close()

	var er extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		rr.Error = fmt.Sprintf("decode error: %v", err)
		return rr
	}

	rr.Success = er.Success
	rr.TotalMs = er.Timing.TotalMs
	rr.ExtractionMs = er.Timing.ExtractionMs
	rr.SavingsPercent = er.Tokens.SavingsPercent
	rr.ContentLength = len(er.Content)
	rr.HasTitle = er.Metadata.Title != ""

	if er.Error != nil {
		rr.Error = er.Error.Message
	}

	return rr
}

func computeAverages(runs []runResult) *documentAverages {
	var successCount int
	var avg documentAverages

	for _, r := range runs {
		if !r.Success {
			continue
		}
		successCount++
		avg.TotalMs += float64(r.TotalMs)
		avg.ExtractionMs += float64(r.ExtractionMs)
		avg.SavingsPercent += r.SavingsPercent
		avg.ContentLength += float64(r.ContentLength)
	}

	if successCount == 0 {
		return nil
	}

	n := float64(successCount)
	avg.TotalMs /= n
	avg.ExtractionMs /= n
	avg.SavingsPercent /= n
	avg.ContentLength /= n
	return &avg
}

func printTable(results []documentResult) {
	fmt.Println(strings.Repeat("─", 70))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Document\tAvg Latency\tTokens Saved\tContent Len\n")
	fmt.Fprintf(w, "────────\t───────────\t────────────\t───────────\n")

	for _, r := range results {
		if r.Averages == nil {
			fmt.Fprintf(w, "%s\tFAILED\t-\t-\n", r.Label)
			continue
		}
		fmt.Fprintf(w, "%s\t%dms\t%.1f%%\t%d\n",
			r.Label,
			int64(r.Averages.TotalMs),
			r.Averages.SavingsPercent,
			int(r.Averages.ContentLength),
		)
	}

	w.Flush()
	fmt.Println(strings.Repeat("─", 70))
}

func writeJSON(path string, report benchmarkReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
