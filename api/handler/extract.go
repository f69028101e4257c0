package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/html"

	"github.com/Furafrafrfr/readability"
	"github.com/Furafrafrfr/readability/cache"
	"github.com/Furafrafrfr/readability/config"
	"github.com/Furafrafrfr/readability/models"
	"github.com/Furafrafrfr/readability/serialize"
)

// Extract returns a handler for POST /v1/extract.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Cache lookup on a hash of the content + options.
//  3. Optional CSS-selector pre-filter.
//  4. readability.Extract.
//  5. Convenience extraction (links/images/OG) + token estimate from the
//     original HTML.
//  6. Fill Timing, cache, respond.
func Extract(cfg *config.Config, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.ExtractRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ExtractResponse{
				Success: false,
				Error:   &models.ErrorDetail{Code: models.ErrCodeInvalidInput, Message: err.Error()},
			})
			return
		}
		req.Defaults()

		var cacheKey string
		if cc != nil {
			cacheKey = cache.Key(req.HTML, req.OutputFormat, req.KeepClasses, req.CharThreshold)
			if cached, hit := cc.Get(cacheKey); hit {
				cached.CacheStatus = "hit"
				cached.Timing.TotalMs = time.Since(totalStart).Milliseconds()
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		resp, err := runExtract(req, cfg, totalStart)
		if err != nil {
			respondError(c, err, models.TimingInfo{TotalMs: time.Since(totalStart).Milliseconds()})
			return
		}

		if cc != nil {
			resp.CacheStatus = "miss"
			cc.Set(cacheKey, resp)
		}

		c.JSON(http.StatusOK, resp)
	}
}

// runExtract runs the full extraction + convenience pipeline for a single
// document. Shared by the extract and batch handlers.
func runExtract(req models.ExtractRequest, cfg *config.Config, totalStart time.Time) (*models.ExtractResponse, error) {
	rawHTML := req.HTML
	if req.CSSSelector != "" {
		if filtered, err := applyCSSSelector(rawHTML, req.CSSSelector); err == nil {
			rawHTML = filtered
		}
	}

	opts := cfg.Extract.ToOptions()
	if req.KeepClasses {
		opts.KeepClasses = true
	}
	if req.CharThreshold > 0 {
		opts.CharThreshold = req.CharThreshold
	}
	opts.Serializer = serializerFor(req.OutputFormat, req.DocumentURL)

	parseStart := time.Now()
	result, err := readability.Extract(rawHTML, req.DocumentURL, opts)
	extractionMs := time.Since(parseStart).Milliseconds()
	if err != nil {
		return nil, err
	}

	originalTokens := estimateTokens(req.HTML)
	cleanedTokens := estimateTokens(result.TextContent)
	savings := 0.0
	if originalTokens > 0 {
		savings = float64(originalTokens-cleanedTokens) / float64(originalTokens) * 100
	}

	return &models.ExtractResponse{
		Success:     true,
		Content:     result.Content,
		Length:      result.Length,
		Fingerprint: result.Fingerprint(),
		Metadata: models.Metadata{
			Title:         result.Title,
			Excerpt:       result.Excerpt,
			Byline:        result.Byline,
			SiteName:      result.SiteName,
			Lang:          result.Lang,
			Dir:           result.Dir,
			PublishedTime: result.PublishedTime,
			SourceURL:     req.DocumentURL,
		},
		Links:      extractLinks(req.HTML, req.DocumentURL),
		Images:     extractImages(req.HTML, req.DocumentURL),
		OGMetadata: extractOGMetadata(req.HTML),
		Tokens: models.TokenInfo{
			OriginalEstimate: originalTokens,
			CleanedEstimate:  cleanedTokens,
			SavingsPercent:   savings,
		},
		Timing: models.TimingInfo{
			TotalMs:      time.Since(totalStart).Milliseconds(),
			ExtractionMs: extractionMs,
		},
	}, nil
}

// serializerFor maps an output format name to a readability.Options
// serializer. Defaults to HTML for an empty or unrecognized format.
func serializerFor(format, documentURL string) func(*html.Node) (string, error) {
	switch format {
	case "text":
		return func(root *html.Node) (string, error) { return serialize.Text(root) }
	case "markdown":
		return func(root *html.Node) (string, error) { return serialize.Markdown(root, documentURL) }
	default:
		return func(root *html.Node) (string, error) { return serialize.HTML(root) }
	}
}
