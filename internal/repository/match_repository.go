package repository

import (
	"context"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
)

type MatchRepository interface {
	// CreateBatch appends every match of one run. Earlier rows are kept.
	CreateBatch(ctx context.Context, matches []domain.Match) error
	// UpsertBatch replaces any stored match for the same student and
	// opportunity, then writes the batch.
	UpsertBatch(ctx context.Context, matches []domain.Match) error
	GetStudentMatches(ctx context.Context, studentID string, limit int) ([]*domain.Match, error)
}
