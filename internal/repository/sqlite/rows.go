package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
)

type profileRow struct {
	ID                  string         `db:"id"`
	DisplayName         string         `db:"display_name"`
	Skills              string         `db:"skills"`
	ProfessionalSummary sql.NullString `db:"professional_summary"`
	Education           string         `db:"education"`
	EmploymentHistory   string         `db:"employment_history"`
	ContactEmail        sql.NullString `db:"contact_email"`
	ContactPhone        sql.NullString `db:"contact_phone"`
	Address             sql.NullString `db:"address"`
	Links               string         `db:"links"`
}

func (r *profileRow) toDomain() (*domain.Profile, error) {
	p := &domain.Profile{
		ID:                  r.ID,
		DisplayName:         r.DisplayName,
		ProfessionalSummary: nullString(r.ProfessionalSummary),
		ContactEmail:        nullString(r.ContactEmail),
		ContactPhone:        nullString(r.ContactPhone),
		Address:             nullString(r.Address),
	}
	fields := []struct {
		name string
		data string
		dst  any
	}{
		{"skills", r.Skills, &p.Skills},
		{"education", r.Education, &p.Education},
		{"employment history", r.EmploymentHistory, &p.EmploymentHistory},
		{"links", r.Links, &p.Links},
	}
	for _, f := range fields {
		if f.data == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.data), f.dst); err != nil {
			return nil, fmt.Errorf("decode %s: %w", f.name, err)
		}
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

// Fixed width so that text order equals time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type matchRow struct {
	ID            string `db:"id"`
	OpportunityID string `db:"opportunity_id"`
	StudentID     string `db:"student_id"`
	Score         int    `db:"score"`
	MatchedSkills string `db:"matched_skills"`
	Reasoning     string `db:"reasoning"`
	AnalyzedAt    string `db:"analyzed_at"`
}

func newMatchRow(m domain.Match) (matchRow, error) {
	skills := m.MatchedSkills
	if skills == nil {
		skills = []string{}
	}
	encoded, err := json.Marshal(skills)
	if err != nil {
		return matchRow{}, err
	}
	return matchRow{
		ID:            m.ID.String(),
		OpportunityID: m.OpportunityID,
		StudentID:     m.StudentID,
		Score:         m.Score,
		MatchedSkills: string(encoded),
		Reasoning:     m.Reasoning,
		AnalyzedAt:    m.AnalyzedAt.UTC().Format(timeLayout),
	}, nil
}

func (r *matchRow) toDomain() (*domain.Match, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("match id %q: %w", r.ID, err)
	}
	analyzedAt, err := time.Parse(timeLayout, r.AnalyzedAt)
	if err != nil {
		return nil, fmt.Errorf("match %s analyzed_at: %w", r.ID, err)
	}
	skills := []string{}
	if r.MatchedSkills != "" {
		if err := json.Unmarshal([]byte(r.MatchedSkills), &skills); err != nil {
			return nil, fmt.Errorf("match %s matched_skills: %w", r.ID, err)
		}
	}
	return &domain.Match{
		ID:            id,
		OpportunityID: r.OpportunityID,
		StudentID:     r.StudentID,
		Score:         r.Score,
		MatchedSkills: skills,
		Reasoning:     r.Reasoning,
		AnalyzedAt:    analyzedAt,
	}, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
