package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Furafrafrfr/readability"
	"github.com/Furafrafrfr/readability/models"
)

// respondError writes a structured error response with the status code
// appropriate to err's kind.
func respondError(c *gin.Context, err error, timing models.TimingInfo) {
	c.JSON(mapErrorToStatus(err), models.ExtractResponse{
		Success: false,
		Error:   models.DetailFromExtractError(err),
		Timing:  timing,
	})
}

// mapErrorToStatus translates an extraction or request error to an HTTP
// status code.
func mapErrorToStatus(err error) int {
	rerr, ok := err.(*readability.Error)
	if !ok {
		return http.StatusInternalServerError
	}
	switch rerr.Code {
	case readability.ErrCodeInputTooLarge:
		return http.StatusRequestEntityTooLarge // 413
	case readability.ErrCodeExtractionFailed:
		return http.StatusUnprocessableEntity // 422
	case readability.ErrCodeDOMContractViolation, readability.ErrCodeMalformedMetadata, readability.ErrCodeURIResolutionFailed:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError
	}
}
