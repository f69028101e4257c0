package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Furafrafrfr/readability/config"
	"github.com/Furafrafrfr/readability/models"
	"github.com/Furafrafrfr/readability/simhash"
	"github.com/Furafrafrfr/readability/webhook"
)

// maxBatchConcurrency bounds how many documents are extracted at once per
// batch request.
const maxBatchConcurrency = 8

// Batch returns a handler for POST /v1/batch.
//
// Every document is extracted concurrently (bounded by an errgroup) and
// the full result set is returned inline — there is no job-ID polling,
// since there is no network fetch latency to hide behind an async job.
func Batch(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorDetail{
				Code:    models.ErrCodeInvalidInput,
				Message: err.Error(),
			})
			return
		}

		results := make([]*models.BatchResult, len(req.Documents))

		g := new(errgroup.Group)
		g.SetLimit(maxBatchConcurrency)

		for i, doc := range req.Documents {
			i, doc := i, doc
			g.Go(func() error {
				results[i] = extractOne(doc, req.Options, cfg)
				return nil
			})
		}
		_ = g.Wait() // extractOne never returns an error; failures are carried in BatchResult

		completed := 0
		for _, r := range results {
			if r.Extract != nil && r.Extract.Success {
				completed++
			}
		}

		status := "completed"
		if completed == 0 {
			status = "failed"
		} else if completed < len(results) {
			status = "partial"
		}

		resp := &models.BatchResponse{
			ID:        uuid.NewString(),
			Status:    status,
			Total:     len(req.Documents),
			Completed: completed,
			Results:   results,
		}

		if req.Options.DetectDuplicates {
			resp.DuplicateGroups = duplicateGroups(req.Documents, results, req.Options.DuplicateThreshold)
		}

		if req.WebhookURL != "" {
			deliverBatchWebhook(req, resp)
		}

		c.JSON(http.StatusOK, resp)
	}
}

// extractOne runs the extraction for a single batch document, translating
// any error into a failed BatchResult rather than aborting the batch.
func extractOne(doc models.BatchDocument, opts models.BatchOptions, cfg *config.Config) *models.BatchResult {
	req := models.ExtractRequest{
		HTML:         doc.HTML,
		DocumentURL:  doc.DocumentURL,
		OutputFormat: opts.OutputFormat,
		KeepClasses:  opts.KeepClasses,
		CSSSelector:  opts.CSSSelector,
	}
	req.Defaults()

	resp, err := runExtract(req, cfg, time.Now())
	if err != nil {
		resp = &models.ExtractResponse{
			Success: false,
			Error:   models.DetailFromExtractError(err),
		}
	}
	return &models.BatchResult{ID: doc.ID, Extract: resp}
}

// duplicateGroups partitions results into near-duplicate sets by Hamming
// distance between their content fingerprints. Results with a failed
// extraction are excluded.
func duplicateGroups(docs []models.BatchDocument, results []*models.BatchResult, threshold int) [][]string {
	type fp struct {
		id     string
		printv uint64
	}
	var fingerprints []fp
	for i, r := range results {
		if r.Extract == nil || !r.Extract.Success {
			continue
		}
		id := r.ID
		if id == "" {
			id = docs[i].ID
		}
		fingerprints = append(fingerprints, fp{id: id, printv: r.Extract.Fingerprint})
	}

	var groups [][]string
	used := make([]bool, len(fingerprints))
	for i := range fingerprints {
		if used[i] {
			continue
		}
		group := []string{fingerprints[i].id}
		for j := i + 1; j < len(fingerprints); j++ {
			if used[j] {
				continue
			}
			if simhash.Distance(fingerprints[i].printv, fingerprints[j].printv) <= threshold {
				group = append(group, fingerprints[j].id)
				used[j] = true
			}
		}
		if len(group) > 1 {
			groups = append(groups, group)
		}
	}
	return groups
}

// deliverBatchWebhook sends the batch-completion notification, best
// effort: delivery failures are not surfaced to the caller since the
// batch response has already been assembled successfully.
func deliverBatchWebhook(req models.BatchRequest, resp *models.BatchResponse) {
	event := &webhook.Event{
		Type:      "batch.completed",
		JobID:     resp.ID,
		Timestamp: time.Now().Unix(),
		Data: models.BatchWebhookPayload{
			ID:        resp.ID,
			Status:    resp.Status,
			Total:     resp.Total,
			Completed: resp.Completed,
			CreatedAt: time.Now().Unix(),
		},
	}
	go func() {
		_ = webhook.Deliver(context.Background(), req.WebhookURL, req.WebhookSecret, event, 10*time.Second)
	}()
}
