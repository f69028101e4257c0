package models

import "github.com/Furafrafrfr/readability"

// Error codes used in API responses for failures outside the extraction
// pipeline itself (readability.Error carries its own codes for pipeline
// failures, converted via DetailFromExtractError).
const (
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeWebhookFailed = "WEBHOOK_FAILED"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DetailFromExtractError converts a readability.Error into an
// API-facing ErrorDetail, falling back to ErrCodeInternal for any other
// error type.
func DetailFromExtractError(err error) *ErrorDetail {
	if rerr, ok := err.(*readability.Error); ok {
		return &ErrorDetail{Code: rerr.Code, Message: rerr.Message}
	}
	return &ErrorDetail{Code: ErrCodeInternal, Message: err.Error()}
}
