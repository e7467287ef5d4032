package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

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
		grouped := make(map[string][]string)
		for _, m := range matches {
			grouped[m.StudentID] = append(grouped[m.StudentID], m.OpportunityID)
		}
		for studentID, opportunityIDs := range grouped {
			query, args, err := sqlx.In(
				`DELETE FROM matches WHERE student_id = ? AND opportunity_id IN (?)`,
				studentID, opportunityIDs,
			)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
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
		WHERE student_id = ?
		ORDER BY analyzed_at DESC, score DESC, rowid
		LIMIT ?
	`
	if err := r.db.SelectContext(ctx, &rows, query, studentID, limit); err != nil {
		return nil, err
	}

	matches := make([]*domain.Match, 0, len(rows))
	for i := range rows {
		m, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
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
		row, err := newMatchRow(m)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	if _, err := tx.NamedExecContext(ctx, insertMatchesQuery, rows); err != nil {
		return fmt.Errorf("insert matches: %w", err)
	}
	return nil
}
