package postgres

import (
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
)

func TestProfileRowToDomain(t *testing.T) {
	row := profileRow{
		ID:                  "s-1",
		DisplayName:         "Amina",
		Skills:              pq.StringArray{" Python", "python", "SQL", ""},
		ProfessionalSummary: sql.NullString{String: "  ", Valid: true},
		Education:           []byte(`[{"institution":"UoN","qualification":"BSc"}]`),
		ContactEmail:        sql.NullString{String: "amina@example.com", Valid: true},
		Links:               []byte(`{"github":"https://github.com/amina"}`),
	}

	p, err := row.toDomain()
	require.NoError(t, err)

	assert.Equal(t, []string{"Python", "SQL"}, p.Skills)
	assert.Nil(t, p.ProfessionalSummary, "blank summary is absent")
	require.Len(t, p.Education, 1)
	assert.Equal(t, "UoN", p.Education[0].Institution)
	assert.Empty(t, p.EmploymentHistory)
	require.NotNil(t, p.ContactEmail)
	assert.Equal(t, "amina@example.com", *p.ContactEmail)
	assert.Nil(t, p.ContactPhone)
	assert.Equal(t, "https://github.com/amina", p.Links["github"])
}

func TestProfileRowToDomain_BadJSON(t *testing.T) {
	row := profileRow{ID: "s-1", Education: []byte(`{not json`)}

	_, err := row.toDomain()
	assert.ErrorContains(t, err, "decode education")
}

func TestOpportunityRowToDomain(t *testing.T) {
	row := opportunityRow{ID: "o-1", Type: "Internship", WorkMode: "Remote", RequiredSkills: "go"}

	opp, err := row.toDomain()
	require.NoError(t, err)
	assert.Equal(t, domain.OpportunityInternship, opp.Type)
	assert.Equal(t, domain.WorkModeRemote, opp.WorkMode)

	row.WorkMode = "sometimes"
	_, err = row.toDomain()
	assert.ErrorContains(t, err, "opportunity o-1")
}

func TestMatchRowKeepsEmptySkills(t *testing.T) {
	row := newMatchRow(domain.Match{OpportunityID: "o-1", StudentID: "s-1", Score: 50})
	assert.NotNil(t, row.MatchedSkills)

	back := (&matchRow{}).toDomain()
	assert.Equal(t, []string{}, back.MatchedSkills)
}

func TestGroupByStudent(t *testing.T) {
	grouped := groupByStudent([]domain.Match{
		{StudentID: "s-1", OpportunityID: "o-1"},
		{StudentID: "s-2", OpportunityID: "o-1"},
		{StudentID: "s-1", OpportunityID: "o-2"},
	})

	assert.Equal(t, map[string][]string{
		"s-1": {"o-1", "o-2"},
		"s-2": {"o-1"},
	}, grouped)
}
