package models

// ExtractResponse is the response for POST /v1/extract.
type ExtractResponse struct {
	// Success indicates whether extraction completed without errors.
	Success bool `json:"success"`

	// Content is the cleaned output in the requested format.
	Content string `json:"content"`

	// Metadata contains the title, byline, and other fields the metadata
	// resolver pulled from the document.
	Metadata Metadata `json:"metadata"`

	// Length is the character count of the plain-text content.
	Length int `json:"length"`

	// Fingerprint is a SimHash of the plain-text content, for
	// near-duplicate detection against other extractions.
	Fingerprint uint64 `json:"fingerprint"`

	// Links contains internal and external links found in the original
	// document, split against DocumentURL's host.
	Links LinksResult `json:"links"`

	// Images contains image src and alt text found in the original document.
	Images []Image `json:"images"`

	// OGMetadata contains Open Graph meta tags from the original document.
	OGMetadata OGMetadata `json:"og_metadata"`

	// Tokens provides token estimates before and after cleaning.
	Tokens TokenInfo `json:"tokens"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or empty (no cache configured).
	CacheStatus string `json:"cache_status,omitempty"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// LinksResult separates extracted links into internal and external groups.
type LinksResult struct {
	Internal []Link `json:"internal"`
	External []Link `json:"external"`
}

// Link represents a hyperlink found in the original document.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text,omitempty"`
}

// Image represents an image element found in the original document.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// OGMetadata contains Open Graph protocol meta tags.
type OGMetadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Type        string `json:"type,omitempty"`
}

// Metadata holds document-level information resolved during extraction.
type Metadata struct {
	Title         string `json:"title"`
	Excerpt       string `json:"excerpt,omitempty"`
	Byline        string `json:"byline,omitempty"`
	SiteName      string `json:"site_name,omitempty"`
	Lang          string `json:"lang,omitempty"`
	Dir           string `json:"dir,omitempty"`
	PublishedTime string `json:"published_time,omitempty"`
	SourceURL     string `json:"source_url,omitempty"`
}

// TokenInfo provides before/after token estimates to show cleaning efficacy.
type TokenInfo struct {
	// OriginalEstimate is the estimated token count of the raw HTML.
	OriginalEstimate int `json:"original_estimate"`

	// CleanedEstimate is the estimated token count of the cleaned output.
	CleanedEstimate int `json:"cleaned_estimate"`

	// SavingsPercent is the percentage of tokens removed (0-100).
	SavingsPercent float64 `json:"savings_percent"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// ParseMs is not measured separately and is always 0; parsing and
	// metadata resolution are counted in ExtractionMs.
	ParseMs int64 `json:"parse_ms"`

	// ExtractionMs is the time spent in readability.Extract: parsing,
	// metadata resolution, scoring/cleanup, and serialization.
	ExtractionMs int64 `json:"extraction_ms"`
}

// HealthResponse is the response for GET /v1/health.
type HealthResponse struct {
	Status     string     `json:"status"` // always "healthy"
	Uptime     string     `json:"uptime"`
	CacheStats CacheStats `json:"cache_stats"`
	Version    string     `json:"version"`
}

// CacheStats reports the state of the extraction-result cache.
type CacheStats struct {
	MaxEntries  int `json:"max_entries"`
	CurrentSize int `json:"current_size"`
}
