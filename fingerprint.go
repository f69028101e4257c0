package readability

import "github.com/Furafrafrfr/readability/simhash"

// Fingerprint returns a SimHash of r's text content, suitable for
// near-duplicate detection across extractions (e.g. the same article
// mirrored on two different URLs).
func (r *Result) Fingerprint() uint64 {
	return simhash.Fingerprint(r.TextContent)
}

// SimilarResults reports whether a and b are likely the same underlying
// article, by Hamming distance between their text fingerprints.
func SimilarResults(a, b *Result, threshold int) bool {
	return simhash.Similar(a.Fingerprint(), b.Fingerprint(), threshold)
}
