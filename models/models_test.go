package models

import (
	"errors"
	"testing"

	"github.com/Furafrafrfr/readability"
)

func TestExtractRequestDefaults(t *testing.T) {
	r := &ExtractRequest{HTML: "<html></html>"}
	r.Defaults()
	if r.OutputFormat != "html" {
		t.Errorf("OutputFormat = %q, want html", r.OutputFormat)
	}

	r2 := &ExtractRequest{HTML: "<html></html>", OutputFormat: "markdown"}
	r2.Defaults()
	if r2.OutputFormat != "markdown" {
		t.Errorf("Defaults should not override an explicit OutputFormat, got %q", r2.OutputFormat)
	}
}

func TestDetailFromExtractError(t *testing.T) {
	rerr := &readability.Error{Code: readability.ErrCodeExtractionFailed, Message: "no content survived extraction"}
	detail := DetailFromExtractError(rerr)
	if detail.Code != readability.ErrCodeExtractionFailed {
		t.Errorf("Code = %q, want %q", detail.Code, readability.ErrCodeExtractionFailed)
	}

	plain := errors.New("boom")
	detail2 := DetailFromExtractError(plain)
	if detail2.Code != ErrCodeInternal {
		t.Errorf("Code = %q, want %q", detail2.Code, ErrCodeInternal)
	}
	if detail2.Message != "boom" {
		t.Errorf("Message = %q, want boom", detail2.Message)
	}
}
