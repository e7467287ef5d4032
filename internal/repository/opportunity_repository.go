package repository

import (
	"context"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
)

type OpportunityRepository interface {
	// List returns every open opportunity in a stable order
	List(ctx context.Context) ([]*domain.Opportunity, error)
}
