package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gdugdh24/opportunity-matcher/internal/usecase/matching"
)

// MatchingService is the part of the matching use case the handler needs
type MatchingService interface {
	Run(ctx context.Context, req matching.RunRequest) (*matching.RunResponse, error)
	CheckCompletion(ctx context.Context, studentID string) (*matching.CompletionResponse, error)
	ListMatches(ctx context.Context, studentID string, limit int) (*matching.ListMatchesResponse, error)
}

type MatchingHandler struct {
	matchingService MatchingService
}

func NewMatchingHandler(matchingService MatchingService) *MatchingHandler {
	useJSONFieldNames()
	return &MatchingHandler{
		matchingService: matchingService,
	}
}

// RunMatching handles POST /matching/run
// @Summary Run matching
// @Description Score all opportunities for a student and store the best matches
// @Tags matching
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body matching.RunRequest true "Student to match"
// @Success 200 {object} matching.RunResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} IncompleteProfileResponse
// @Failure 502 {object} ErrorResponse
// @Router /matching/run [post]
func (h *MatchingHandler) RunMatching(c *gin.Context) {
	var req matching.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: bindingMessage(err, "studentId is required"),
		})
		return
	}

	resp, err := h.matchingService.Run(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetCompletion handles GET /matching/:student_id/completion
// @Summary Profile completion
// @Tags matching
// @Security BearerAuth
// @Produce json
// @Param student_id path string true "Student ID"
// @Success 200 {object} matching.CompletionResponse
// @Failure 404 {object} ErrorResponse
// @Router /matching/{student_id}/completion [get]
func (h *MatchingHandler) GetCompletion(c *gin.Context) {
	resp, err := h.matchingService.CheckCompletion(c.Request.Context(), c.Param("student_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListMatches handles GET /matching/:student_id/matches
// @Summary Stored matches
// @Description Matches from previous runs, newest analysis first
// @Tags matching
// @Security BearerAuth
// @Produce json
// @Param student_id path string true "Student ID"
// @Param limit query int false "Maximum number of matches (default 10, max 100)"
// @Success 200 {object} matching.ListMatchesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /matching/{student_id}/matches [get]
func (h *MatchingHandler) ListMatches(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "limit must be a number",
			})
			return
		}
		limit = parsed
	}

	resp, err := h.matchingService.ListMatches(c.Request.Context(), c.Param("student_id"), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
