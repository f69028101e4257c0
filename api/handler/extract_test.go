package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Furafrafrfr/readability/cache"
	"github.com/Furafrafrfr/readability/config"
	"github.com/Furafrafrfr/readability/models"
)

func testConfig() *config.Config {
	cfg, err := config.LoadFile("")
	if err != nil {
		panic(err)
	}
	cfg.Auth.Enabled = false
	return cfg
}

const sampleArticleHTML = `<html><head><title>Foo</title></head><body><article><p>` +
	`Lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod ` +
	`tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim ` +
	`veniam quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea ` +
	`commodo consequat. Duis aute irure dolor in reprehenderit in voluptate.` +
	`</p></article></body></html>`

func doExtract(t *testing.T, cfg *config.Config, cc *cache.Cache, body models.ExtractRequest) (*httptest.ResponseRecorder, models.ExtractResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/extract", Extract(cfg, cc))

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/extract", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp models.ExtractResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v (body=%s)", err, w.Body.String())
	}
	return w, resp
}

func TestExtractSuccess(t *testing.T) {
	w, resp := doExtract(t, testConfig(), nil, models.ExtractRequest{HTML: sampleArticleHTML})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body=%s)", w.Code, w.Body.String())
	}
	if !resp.Success {
		t.Fatalf("Success = false, want true; error=%v", resp.Error)
	}
	if resp.Metadata.Title != "Foo" {
		t.Errorf("Metadata.Title = %q, want %q", resp.Metadata.Title, "Foo")
	}
	if !strings.Contains(resp.Content, "Lorem ipsum") {
		t.Errorf("Content does not contain expected text: %s", resp.Content)
	}
	if resp.Fingerprint == 0 {
		t.Error("Fingerprint should be nonzero for non-empty content")
	}
}

func TestExtractInvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/extract", Extract(testConfig(), nil))

	req := httptest.NewRequest(http.MethodPost, "/v1/extract", strings.NewReader(`{"html":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestExtractCacheHit(t *testing.T) {
	cc := cache.New(10, time.Hour)
	cfg := testConfig()

	_, first := doExtract(t, cfg, cc, models.ExtractRequest{HTML: sampleArticleHTML})
	if first.CacheStatus != "miss" {
		t.Fatalf("first call CacheStatus = %q, want %q", first.CacheStatus, "miss")
	}

	_, second := doExtract(t, cfg, cc, models.ExtractRequest{HTML: sampleArticleHTML})
	if second.CacheStatus != "hit" {
		t.Fatalf("second call CacheStatus = %q, want %q", second.CacheStatus, "hit")
	}
	if second.Content != first.Content {
		t.Error("cached response content should match the original")
	}
}

func TestExtractOutputFormats(t *testing.T) {
	tests := []struct {
		format string
	}{
		{"html"}, {"text"}, {"markdown"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w, resp := doExtract(t, testConfig(), nil, models.ExtractRequest{
				HTML:         sampleArticleHTML,
				OutputFormat: tt.format,
			})
			if w.Code != http.StatusOK || !resp.Success {
				t.Fatalf("extraction failed for format %q: status=%d error=%v", tt.format, w.Code, resp.Error)
			}
		})
	}
}

func TestExtractCSSSelector(t *testing.T) {
	html := `<html><head><title>T</title></head><body>` +
		`<div id="ignore"><p>` + strings.Repeat("Ignored filler content. ", 20) + `</p></div>` +
		`<article id="keep"><p>` + strings.Repeat("Kept article content goes here. ", 20) + `</p></article>` +
		`</body></html>`

	w, resp := doExtract(t, testConfig(), nil, models.ExtractRequest{
		HTML:        html,
		CSSSelector: "#keep",
	})
	if w.Code != http.StatusOK || !resp.Success {
		t.Fatalf("extraction failed: status=%d error=%v", w.Code, resp.Error)
	}
	if strings.Contains(resp.Content, "Ignored filler") {
		t.Error("content outside the CSS selector should have been excluded")
	}
}
