package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Furafrafrfr/readability"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"input too large", &readability.Error{Code: readability.ErrCodeInputTooLarge}, http.StatusRequestEntityTooLarge},
		{"extraction failed", &readability.Error{Code: readability.ErrCodeExtractionFailed}, http.StatusUnprocessableEntity},
		{"dom contract violation", &readability.Error{Code: readability.ErrCodeDOMContractViolation}, http.StatusInternalServerError},
		{"malformed metadata", &readability.Error{Code: readability.ErrCodeMalformedMetadata}, http.StatusInternalServerError},
		{"uri resolution failed", &readability.Error{Code: readability.ErrCodeURIResolutionFailed}, http.StatusInternalServerError},
		{"unrecognized extract error", &readability.Error{Code: "SOMETHING_ELSE"}, http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorToStatus(tt.err); got != tt.want {
				t.Errorf("mapErrorToStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
