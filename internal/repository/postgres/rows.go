package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
)

type profileRow struct {
	ID                  string         `db:"id"`
	DisplayName         string         `db:"display_name"`
	Skills              pq.StringArray `db:"skills"`
	ProfessionalSummary sql.NullString `db:"professional_summary"`
	Education           []byte         `db:"education"`
	EmploymentHistory   []byte         `db:"employment_history"`
	ContactEmail        sql.NullString `db:"contact_email"`
	ContactPhone        sql.NullString `db:"contact_phone"`
	Address             sql.NullString `db:"address"`
	Links               []byte         `db:"links"`
}

func (r *profileRow) toDomain() (*domain.Profile, error) {
	p := &domain.Profile{
		ID:                  r.ID,
		DisplayName:         r.DisplayName,
		Skills:              []string(r.Skills),
		ProfessionalSummary: nullString(r.ProfessionalSummary),
		ContactEmail:        nullString(r.ContactEmail),
		ContactPhone:        nullString(r.ContactPhone),
		Address:             nullString(r.Address),
	}
	if err := decodeJSON(r.Education, &p.Education); err != nil {
		return nil, fmt.Errorf("decode education: %w", err)
	}
	if err := decodeJSON(r.EmploymentHistory, &p.EmploymentHistory); err != nil {
		return nil, fmt.Errorf("decode employment history: %w", err)
	}
	if err := decodeJSON(r.Links, &p.Links); err != nil {
		return nil, fmt.Errorf("decode links: %w", err)
	}
	domain.NormalizeProfile(p)
	return p, nil
}

type opportunityRow struct {
	ID             string `db:"id"`
	Title          string `db:"title"`
	Description    string `db:"description"`
	RequiredSkills string `db:"required_skills"`
	Type           string `db:"type"`
	OrganizationID string `db:"organization_id"`
	WorkMode       string `db:"work_mode"`
}

func (r *opportunityRow) toDomain() (*domain.Opportunity, error) {
	mode, err := domain.ParseWorkMode(r.WorkMode)
	if err != nil {
		return nil, fmt.Errorf("opportunity %s: %w", r.ID, err)
	}
	return &domain.Opportunity{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		RequiredSkills: r.RequiredSkills,
		Type:           domain.ParseOpportunityType(r.Type),
		OrganizationID: r.OrganizationID,
		WorkMode:       mode,
	}, nil
}

type matchRow struct {
	ID            uuid.UUID      `db:"id"`
	OpportunityID string         `db:"opportunity_id"`
	StudentID     string         `db:"student_id"`
	Score         int            `db:"score"`
	MatchedSkills pq.StringArray `db:"matched_skills"`
	Reasoning     string         `db:"reasoning"`
	AnalyzedAt    time.Time      `db:"analyzed_at"`
}

func newMatchRow(m domain.Match) matchRow {
	skills := m.MatchedSkills
	if skills == nil {
		skills = []string{}
	}
	return matchRow{
		ID:            m.ID,
		OpportunityID: m.OpportunityID,
		StudentID:     m.StudentID,
		Score:         m.Score,
		MatchedSkills: pq.StringArray(skills),
		Reasoning:     m.Reasoning,
		AnalyzedAt:    m.AnalyzedAt,
	}
}

func (r *matchRow) toDomain() *domain.Match {
	skills := []string(r.MatchedSkills)
	if skills == nil {
		skills = []string{}
	}
	return &domain.Match{
		ID:            r.ID,
		OpportunityID: r.OpportunityID,
		StudentID:     r.StudentID,
		Score:         r.Score,
		MatchedSkills: skills,
		Reasoning:     r.Reasoning,
		AnalyzedAt:    r.AnalyzedAt,
	}
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func decodeJSON(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
