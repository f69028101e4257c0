package models

// ExtractRequest is the payload for POST /v1/extract.
type ExtractRequest struct {
	// HTML is the raw document markup to extract from. Required.
	HTML string `json:"html" binding:"required"`

	// DocumentURL is the document's own URL, used to resolve relative
	// links and images. Optional; left empty, relative URIs are returned
	// unresolved.
	DocumentURL string `json:"document_url,omitempty" binding:"omitempty,url"`

	// OutputFormat controls the response body format.
	// Allowed: "html" (default), "markdown", "text".
	OutputFormat string `json:"output_format,omitempty" binding:"omitempty,oneof=html markdown text"`

	// KeepClasses disables class-attribute stripping entirely.
	KeepClasses bool `json:"keep_classes,omitempty"`

	// CharThreshold overrides the server's configured minimum accepted
	// textContent length for this request alone.
	CharThreshold int `json:"char_threshold,omitempty" binding:"omitempty,min=1"`

	// CSSSelector, if set, narrows HTML to the matched elements' outer
	// HTML before extraction runs. Falls back to the original HTML when
	// the selector matches nothing.
	CSSSelector string `json:"css_selector,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *ExtractRequest) Defaults() {
	if r.OutputFormat == "" {
		r.OutputFormat = "html"
	}
}
