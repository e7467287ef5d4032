package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedOpportunity(t *testing.T, db *sqlx.DB, position int, id, skills, mode string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO opportunities (id, title, required_skills, type, organization_id, work_mode, position)
		 VALUES (?, ?, ?, 'internship', 'org-1', ?, ?)`,
		id, "Opportunity "+id, skills, mode, position,
	)
	require.NoError(t, err)
}

func TestProfileRepository_GetByID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.Exec(
		`INSERT INTO profiles (id, display_name, skills, professional_summary, education, contact_email, address, links)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		"s-1", "Amina", `["Python"," SQL ","python"]`, "", `[{"institution":"UoN"}]`, "amina@example.com", "Nairobi", `{"github":"https://github.com/amina"}`,
	)
	require.NoError(t, err)

	repo := NewProfileRepository(db)

	p, err := repo.GetByID(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "Amina", p.DisplayName)
	assert.Equal(t, []string{"Python", "SQL"}, p.Skills)
	assert.Nil(t, p.ProfessionalSummary)
	assert.True(t, p.HasEducation())
	assert.False(t, p.HasEmployment())
	require.NotNil(t, p.Address)
	assert.Equal(t, "Nairobi", *p.Address)
	assert.Nil(t, p.ContactPhone)
	assert.Equal(t, "https://github.com/amina", p.Links["github"])

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrProfileNotFound))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestOpportunityRepository_ListKeepsStoreOrder(t *testing.T) {
	db := openTestDB(t)

	seedOpportunity(t, db, 2, "o-c", "go", "remote")
	seedOpportunity(t, db, 1, "o-a", "python, sql", "onsite")
	seedOpportunity(t, db, 1, "o-b", "", "hybrid")

	opportunities, err := NewOpportunityRepository(db).List(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(opportunities))
	for _, o := range opportunities {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"o-a", "o-b", "o-c"}, ids)
	assert.Equal(t, domain.WorkModeOnsite, opportunities[0].WorkMode)
	assert.Equal(t, domain.OpportunityInternship, opportunities[0].Type)
	assert.Equal(t, "python, sql", opportunities[0].RequiredSkills)
}

func TestOpportunityRepository_ListRejectsUnknownWorkMode(t *testing.T) {
	db := openTestDB(t)
	seedOpportunity(t, db, 0, "o-x", "go", "underwater")

	_, err := NewOpportunityRepository(db).List(context.Background())
	assert.ErrorContains(t, err, "o-x")
}

func newMatch(studentID, opportunityID string, score int, at time.Time) domain.Match {
	return domain.Match{
		ID:            uuid.New(),
		OpportunityID: opportunityID,
		StudentID:     studentID,
		Score:         score,
		MatchedSkills: []string{"Go"},
		Reasoning:     "Matched 1 of 1 required skills (Go)",
		AnalyzedAt:    at,
	}
}

func TestMatchRepository_CreateBatchAppends(t *testing.T) {
	db := openTestDB(t)
	repo := NewMatchRepository(db)
	ctx := context.Background()

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	require.NoError(t, repo.CreateBatch(ctx, []domain.Match{
		newMatch("s-1", "o-1", 70, first),
		newMatch("s-1", "o-2", 50, first),
	}))
	require.NoError(t, repo.CreateBatch(ctx, []domain.Match{
		newMatch("s-1", "o-1", 72, second),
	}))
	require.NoError(t, repo.CreateBatch(ctx, nil))

	matches, err := repo.GetStudentMatches(ctx, "s-1", 10)
	require.NoError(t, err)
	require.Len(t, matches, 3, "append mode keeps earlier runs")

	assert.Equal(t, 72, matches[0].Score)
	assert.True(t, second.Equal(matches[0].AnalyzedAt))
	assert.Equal(t, []string{"Go"}, matches[0].MatchedSkills)
	assert.Equal(t, 70, matches[1].Score)
	assert.Equal(t, 50, matches[2].Score)

	limited, err := repo.GetStudentMatches(ctx, "s-1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestMatchRepository_UpsertBatchReplacesSamePair(t *testing.T) {
	db := openTestDB(t)
	repo := NewMatchRepository(db)
	ctx := context.Background()

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Minute)

	require.NoError(t, repo.UpsertBatch(ctx, []domain.Match{
		newMatch("s-1", "o-1", 70, first),
		newMatch("s-1", "o-2", 50, first),
		newMatch("s-2", "o-1", 90, first),
	}))

	replacement := newMatch("s-1", "o-1", 75, second)
	require.NoError(t, repo.UpsertBatch(ctx, []domain.Match{replacement}))

	matches, err := repo.GetStudentMatches(ctx, "s-1", 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, replacement.ID, matches[0].ID)
	assert.Equal(t, 75, matches[0].Score)
	assert.Equal(t, "o-2", matches[1].OpportunityID)

	other, err := repo.GetStudentMatches(ctx, "s-2", 10)
	require.NoError(t, err)
	assert.Len(t, other, 1, "other students are untouched")
}

func TestMatchRepository_SubSecondOrdering(t *testing.T) {
	db := openTestDB(t)
	repo := NewMatchRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 5, 0, time.UTC)
	require.NoError(t, repo.CreateBatch(ctx, []domain.Match{newMatch("s-1", "o-1", 60, base)}))
	require.NoError(t, repo.CreateBatch(ctx, []domain.Match{newMatch("s-1", "o-2", 60, base.Add(500*time.Millisecond))}))

	matches, err := repo.GetStudentMatches(ctx, "s-1", 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "o-2", matches[0].OpportunityID)
}
