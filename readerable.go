package readability

import (
	"math"
	"strings"

	"github.com/Furafrafrfr/readability/dom"
)

// ReaderableOptions tunes IsProbablyReaderable's cheap pre-check.
type ReaderableOptions struct {
	MinContentLength int
	MinScore         float64
}

// DefaultReaderableOptions mirrors the thresholds used by the reference
// implementation's own pre-check.
func DefaultReaderableOptions() ReaderableOptions {
	return ReaderableOptions{MinContentLength: 140, MinScore: 20}
}

// IsProbablyReaderable runs a cheap heuristic over the raw document,
// without mutating it or running the full pipeline, to decide whether
// Extract is likely to produce useful content. It is intended as a fast
// pre-filter for callers batch-processing many documents.
func IsProbablyReaderable(htmlSource, documentURI string, opts ReaderableOptions) (bool, error) {
	doc, err := dom.Parse(htmlSource, documentURI)
	if err != nil {
		return false, newError(ErrCodeDOMContractViolation, "failed to parse document", err)
	}
	body := doc.Body()
	if body == nil {
		return false, nil
	}

	score := 0.0
	for _, tag := range []string{"p", "pre", "article"} {
		for _, n := range dom.GetElementsByTagName(body, tag) {
			if !isProbablyVisible(n) {
				continue
			}
			if isUnlikelyCandidate(n) {
				continue
			}
			if dom.HasAncestorTag(n, "li", 0) && !dom.HasAncestorTag(n, "main", 0) {
				continue
			}
			text := strings.TrimSpace(dom.InnerText(n))
			textLen := len(text)
			if textLen < opts.MinContentLength {
				continue
			}
			score += math.Sqrt(float64(textLen) - float64(opts.MinContentLength))
			if score > opts.MinScore {
				return true, nil
			}
		}
	}
	return false, nil
}
