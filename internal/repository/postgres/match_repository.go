package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
	"github.com/gdugdh24/opportunity-matcher/internal/repository"
)

const insertMatchesQuery = `
	INSERT INTO matches (id, opportunity_id, student_id, score, matched_skills, reasoning, analyzed_at)
	VALUES (:id, :opportunity_id, :student_id, :score, :matched_skills, :reasoning, :analyzed_at)
`

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) CreateBatch(ctx context.Context, matches []domain.Match) error {
	if len(matches) == 0 {
		return nil
	}
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		return insertMatches(ctx, tx, matches)
	})
}

func (r *matchRepository) UpsertBatch(ctx context.Context, matches []domain.Match) error {
	if len(matches) == 0 {
		return nil
	}
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		for studentID, opportunityIDs := range groupByStudent(matches) {
			query := `DELETE FROM matches WHERE student_id = $1 AND opportunity_id = ANY($2)`
			if _, err := tx.ExecContext(ctx, query, studentID, pq.Array(opportunityIDs)); err != nil {
				return fmt.Errorf("delete previous matches: %w", err)
			}
		}
		return insertMatches(ctx, tx, matches)
	})
}

func (r *matchRepository) GetStudentMatches(ctx context.Context, studentID string, limit int) ([]*domain.Match, error) {
	var rows []matchRow
	query := `
		SELECT id, opportunity_id, student_id, score, matched_skills, reasoning, analyzed_at
		FROM matches
		WHERE student_id = $1
		ORDER BY analyzed_at DESC, score DESC
		LIMIT $2
	`
	if err := r.db.SelectContext(ctx, &rows, query, studentID, limit); err != nil {
		return nil, err
	}

	matches := make([]*domain.Match, 0, len(rows))
	for i := range rows {
		matches = append(matches, rows[i].toDomain())
	}
	return matches, nil
}

func (r *matchRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func insertMatches(ctx context.Context, tx *sqlx.Tx, matches []domain.Match) error {
	rows := make([]matchRow, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, newMatchRow(m))
	}
	if _, err := tx.NamedExecContext(ctx, insertMatchesQuery, rows); err != nil {
		return fmt.Errorf("insert matches: %w", err)
	}
	return nil
}

func groupByStudent(matches []domain.Match) map[string][]string {
	grouped := make(map[string][]string)
	for _, m := range matches {
		grouped[m.StudentID] = append(grouped[m.StudentID], m.OpportunityID)
	}
	return grouped
}
