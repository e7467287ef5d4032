package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
)

const (
	msgUpstreamUnavailable = "upstream store unavailable"
	msgInternalError       = "internal server error"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// IncompleteProfileResponse is returned when a profile fails the
// completeness gate. RequiredFields marks the fields still missing.
type IncompleteProfileResponse struct {
	Error                string                 `json:"error"`
	Message              string                 `json:"message"`
	CompletionPercentage int                    `json:"completionPercentage"`
	RequiredFields       domain.CompletionCheck `json:"requiredFields"`
}

// writeError maps domain errors to status codes. Store and unexpected
// failures get a fixed message; the cause goes to the request log.
func writeError(c *gin.Context, err error) {
	var (
		validation *domain.ValidationError
		incomplete *domain.IncompleteProfileError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validation.Message})
	case errors.As(err, &incomplete):
		c.JSON(http.StatusUnprocessableEntity, IncompleteProfileResponse{
			Error:                "Profile incomplete",
			Message:              incomplete.Error(),
			CompletionPercentage: incomplete.Percentage,
			RequiredFields:       incomplete.Missing,
		})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Student not found"})
	case errors.Is(err, domain.ErrUpstream):
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: msgUpstreamUnavailable})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternalError})
	}
}
