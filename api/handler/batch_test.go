package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Furafrafrfr/readability/models"
)

func postBatch(t *testing.T, req models.BatchRequest) (*httptest.ResponseRecorder, models.BatchResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/batch", Batch(testConfig()))

	raw, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	httpReq := httptest.NewRequest(http.MethodPost, "/v1/batch", bytes.NewReader(raw))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httpReq)

	var resp models.BatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v (body=%s)", err, w.Body.String())
	}
	return w, resp
}

func TestBatchAllSucceed(t *testing.T) {
	w, resp := postBatch(t, models.BatchRequest{
		Documents: []models.BatchDocument{
			{ID: "a", HTML: sampleArticleHTML},
			{ID: "b", HTML: sampleArticleHTML},
		},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resp.Status != "completed" {
		t.Errorf("Status = %q, want %q", resp.Status, "completed")
	}
	if resp.Completed != 2 || resp.Total != 2 {
		t.Errorf("Completed/Total = %d/%d, want 2/2", resp.Completed, resp.Total)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(resp.Results))
	}
	for _, r := range resp.Results {
		if r.Extract == nil || !r.Extract.Success {
			t.Errorf("result %q did not succeed", r.ID)
		}
	}
	gotIDs := map[string]bool{}
	for _, r := range resp.Results {
		gotIDs[r.ID] = true
	}
	if !gotIDs["a"] || !gotIDs["b"] {
		t.Errorf("results missing expected IDs, got %v", gotIDs)
	}
}

func TestBatchPartialFailure(t *testing.T) {
	w, resp := postBatch(t, models.BatchRequest{
		Documents: []models.BatchDocument{
			{ID: "ok", HTML: sampleArticleHTML},
			{ID: "short", HTML: "<html><body><article><p>too short</p></article></body></html>"},
		},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resp.Status != "partial" {
		t.Errorf("Status = %q, want %q", resp.Status, "partial")
	}
	if resp.Completed != 1 {
		t.Errorf("Completed = %d, want 1", resp.Completed)
	}
}

func TestBatchDetectDuplicates(t *testing.T) {
	_, resp := postBatch(t, models.BatchRequest{
		Documents: []models.BatchDocument{
			{ID: "a", HTML: sampleArticleHTML},
			{ID: "b", HTML: sampleArticleHTML},
		},
		Options: models.BatchOptions{DetectDuplicates: true, DuplicateThreshold: 3},
	})

	if len(resp.DuplicateGroups) != 1 {
		t.Fatalf("len(DuplicateGroups) = %d, want 1 (identical documents should group)", len(resp.DuplicateGroups))
	}
	group := resp.DuplicateGroups[0]
	if len(group) != 2 {
		t.Errorf("duplicate group size = %d, want 2", len(group))
	}
}

func TestBatchRejectsEmptyDocuments(t *testing.T) {
	w, _ := postBatch(t, models.BatchRequest{Documents: nil})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
