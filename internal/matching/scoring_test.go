package matching

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
)

func summaryOf(n int) *string {
	s := strings.Repeat("a", n)
	return &s
}

func TestScore_PythonSQLScenario(t *testing.T) {
	p := &domain.Profile{
		ID:                  "s-1",
		Skills:              []string{"Python", "SQL"},
		ProfessionalSummary: summaryOf(60),
		Education:           []domain.EducationRecord{{Institution: "UoN"}},
	}
	opp := &domain.Opportunity{ID: "o-1", RequiredSkills: "python, data analysis, sql"}

	match, accepted := ScoreOpportunity(p, opp, AcceptanceThreshold)

	assert.InDelta(t, 68.33, RawScore(p, 2, 3), 0.01)
	assert.Equal(t, 68, match.Score)
	assert.True(t, accepted)
	assert.Equal(t, []string{"Python", "SQL"}, match.MatchedSkills)
	assert.Equal(t, "o-1", match.OpportunityID)
	assert.Equal(t, "s-1", match.StudentID)
	assert.Equal(t, "Matched 2 of 3 required skills (Python, SQL); has education; detailed professional summary", match.Reasoning)
}

func TestScore_EmptyProfileScenario(t *testing.T) {
	p := &domain.Profile{ProfessionalSummary: summaryOf(10)}
	opp := &domain.Opportunity{ID: "o-1", RequiredSkills: "python"}

	match, accepted := ScoreOpportunity(p, opp, AcceptanceThreshold)

	assert.Equal(t, 0, match.Score)
	assert.False(t, accepted)
}

func TestScore_NoRequiredSkillsScenario(t *testing.T) {
	p := &domain.Profile{
		Skills:              []string{"Python"},
		ProfessionalSummary: summaryOf(60),
		Education:           []domain.EducationRecord{{Institution: "UoN"}},
		EmploymentHistory:   []domain.EmploymentRecord{{Employer: "Acme"}},
	}
	opp := &domain.Opportunity{ID: "o-1", RequiredSkills: ""}

	match, accepted := ScoreOpportunity(p, opp, AcceptanceThreshold)

	assert.Equal(t, 0.0, SkillRatio(len(match.MatchedSkills), 0))
	assert.Equal(t, 50, match.Score)
	assert.True(t, accepted)
	assert.Equal(t, "No required skills listed; has education; has work experience; detailed professional summary", match.Reasoning)
}

func TestScore_SummaryBoundary(t *testing.T) {
	exact := &domain.Profile{ProfessionalSummary: summaryOf(50)}
	longer := &domain.Profile{ProfessionalSummary: summaryOf(51)}

	assert.Equal(t, 0, Score(exact, nil, 0))
	assert.Equal(t, 15, Score(longer, nil, 0))
}

func TestScore_SummaryCountsCharactersNotBytes(t *testing.T) {
	s := strings.Repeat("é", 30)
	p := &domain.Profile{ProfessionalSummary: &s}

	assert.Equal(t, 0, Score(p, nil, 0))
}

func TestScore_MaximumIsHundred(t *testing.T) {
	p := &domain.Profile{
		ProfessionalSummary: summaryOf(80),
		Education:           []domain.EducationRecord{{Institution: "UoN"}},
		EmploymentHistory:   []domain.EmploymentRecord{{Employer: "Acme"}},
	}

	assert.Equal(t, 100, Score(p, []string{"a", "b"}, 2))
}

func TestScore_SkillRatioIsCapped(t *testing.T) {
	p := &domain.Profile{Skills: []string{"Java", "JavaScript", "Java EE"}}

	overlap := Overlap(p.Skills, "java")

	assert.Len(t, overlap.Matched, 3)
	assert.Equal(t, 1.0, SkillRatio(len(overlap.Matched), overlap.RequiredCount))
	assert.Equal(t, 50, Score(p, overlap.Matched, overlap.RequiredCount))
}

func TestScore_MonotonicInMatchedCount(t *testing.T) {
	p := &domain.Profile{Education: []domain.EducationRecord{{Institution: "UoN"}}}
	required := 7

	prev := -1
	for matched := 0; matched <= required; matched++ {
		skills := make([]string, matched)
		got := Score(p, skills, required)
		assert.GreaterOrEqual(t, got, prev, "matched=%d", matched)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
		prev = got
	}
}

func TestScore_RoundsHalfAwayFromZero(t *testing.T) {
	// 1/4 * 50 = 12.5
	p := &domain.Profile{}
	assert.Equal(t, 13, Score(p, []string{"x"}, 4))
}

func TestScoreOpportunity_CustomThreshold(t *testing.T) {
	p := &domain.Profile{Skills: []string{"Go"}}
	opp := &domain.Opportunity{ID: "o-1", RequiredSkills: "go, rust"}

	match, accepted := ScoreOpportunity(p, opp, 30)
	assert.Equal(t, 25, match.Score)
	assert.False(t, accepted)

	_, accepted = ScoreOpportunity(p, opp, 25)
	assert.True(t, accepted)
}

func TestReasoning_CountsCoveredRequiredSkills(t *testing.T) {
	p := &domain.Profile{Skills: []string{"Java", "JavaScript", "Java EE"}}
	opp := &domain.Opportunity{ID: "o-1", RequiredSkills: "java, go"}

	match, _ := ScoreOpportunity(p, opp, AcceptanceThreshold)

	assert.Equal(t, []string{"Java", "JavaScript", "Java EE"}, match.MatchedSkills)
	assert.Equal(t, 50, match.Score)
	assert.Equal(t, "Matched 1 of 2 required skills (Java, JavaScript, Java EE)", match.Reasoning)
}
