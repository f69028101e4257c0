package models

// BatchRequest is the payload for POST /v1/batch. Each document is
// processed independently and concurrently; there is no shared state
// between them beyond the options.
type BatchRequest struct {
	// Documents is the list of documents to extract from. Required.
	Documents []BatchDocument `json:"documents" binding:"required,min=1,max=100"`

	// Options contains shared extraction options applied to every document.
	Options BatchOptions `json:"options"`

	// WebhookURL, if set, receives a "batch.completed" webhook.Event whose
	// data is a BatchWebhookPayload, once every document has finished
	// processing.
	WebhookURL string `json:"webhook_url,omitempty" binding:"omitempty,url"`

	// WebhookSecret signs the webhook payload with HMAC-SHA256 when set.
	WebhookSecret string `json:"webhook_secret,omitempty"`
}

// BatchDocument is a single document within a batch request.
type BatchDocument struct {
	// ID is an opaque caller-supplied identifier echoed back in the
	// matching BatchResult, so callers can correlate results without
	// relying on response order.
	ID string `json:"id,omitempty"`

	// HTML is the raw document markup to extract from. Required.
	HTML string `json:"html" binding:"required"`

	// DocumentURL is the document's own URL, used for URI resolution.
	DocumentURL string `json:"document_url,omitempty" binding:"omitempty,url"`
}

// BatchOptions are the shared extraction settings applied to every
// document in a batch.
type BatchOptions struct {
	OutputFormat string `json:"output_format,omitempty" binding:"omitempty,oneof=html markdown text"`
	KeepClasses  bool   `json:"keep_classes,omitempty"`

	// CSSSelector, applied to every document before extraction. See
	// ExtractRequest.CSSSelector.
	CSSSelector string `json:"css_selector,omitempty"`

	// DetectDuplicates groups results whose fingerprints fall within
	// DuplicateThreshold Hamming distance of each other.
	DetectDuplicates   bool `json:"detect_duplicates,omitempty"`
	DuplicateThreshold int  `json:"duplicate_threshold,omitempty" binding:"omitempty,min=0,max=64"`
}

// BatchResponse is the response for POST /v1/batch. Processing is
// synchronous: every document has already been extracted by the time
// this is returned.
type BatchResponse struct {
	// ID identifies this batch run, for log correlation and for the
	// webhook payload should WebhookURL be set.
	ID string `json:"id"`

	Status    string         `json:"status"` // "completed", "partial", or "failed"
	Total     int            `json:"total"`
	Completed int            `json:"completed"`
	Results   []*BatchResult `json:"results"`

	// DuplicateGroups lists sets of result IDs flagged as near-duplicates,
	// populated only when BatchOptions.DetectDuplicates is set.
	DuplicateGroups [][]string `json:"duplicate_groups,omitempty"`
}

// BatchResult is a single document's outcome within a batch response.
type BatchResult struct {
	ID      string           `json:"id,omitempty"`
	Extract *ExtractResponse `json:"extract,omitempty"`
}

// BatchWebhookPayload is the data field of the webhook.Event POSTed to
// BatchRequest.WebhookURL.
type BatchWebhookPayload struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	CreatedAt int64  `json:"created_at"` // unix timestamp
}
