package matching

import "github.com/gdugdh24/opportunity-matcher/internal/domain"

// RunRequest represents a request to run matching for one student
type RunRequest struct {
	StudentID string `json:"studentId" binding:"required"`
}

// RunResponse is the outcome of a successful run
type RunResponse struct {
	Success              bool           `json:"success"`
	CompletionPercentage int            `json:"completionPercentage"`
	TotalMatches         int            `json:"totalMatches"`
	TopMatches           []domain.Match `json:"topMatches"`
}

// CompletionResponse reports how complete a student's profile is
type CompletionResponse struct {
	StudentID            string                 `json:"studentId"`
	CompletionPercentage int                    `json:"completionPercentage"`
	Passed               bool                   `json:"passed"`
	RequiredFields       domain.CompletionCheck `json:"requiredFields"`
}

// ListMatchesResponse holds stored matches, newest analysis first
type ListMatchesResponse struct {
	StudentID string          `json:"studentId"`
	Matches   []*domain.Match `json:"matches"`
}
