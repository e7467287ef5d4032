package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
	"github.com/gdugdh24/opportunity-matcher/internal/repository"
)

type opportunityRepository struct {
	db *sqlx.DB
}

func NewOpportunityRepository(db *sqlx.DB) repository.OpportunityRepository {
	return &opportunityRepository{db: db}
}

func (r *opportunityRepository) List(ctx context.Context) ([]*domain.Opportunity, error) {
	var rows []opportunityRow
	query := `
		SELECT id, title, description, required_skills, type, organization_id, work_mode
		FROM opportunities
		ORDER BY created_at, id
	`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	opportunities := make([]*domain.Opportunity, 0, len(rows))
	for i := range rows {
		opp, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		opportunities = append(opportunities, opp)
	}
	return opportunities, nil
}
