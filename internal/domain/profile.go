package domain

import "strings"

// Profile is a candidate's career data as stored by the profile service.
// Optional scalar fields are nil when absent; NormalizeProfile guarantees a
// non-nil optional field is never blank.
type Profile struct {
	ID                  string             `json:"id"`
	DisplayName         string             `json:"display_name"`
	Skills              []string           `json:"skills"`
	ProfessionalSummary *string            `json:"professional_summary"`
	Education           []EducationRecord  `json:"education"`
	EmploymentHistory   []EmploymentRecord `json:"employment_history"`
	ContactEmail        *string            `json:"contact_email"`
	ContactPhone        *string            `json:"contact_phone"`
	Address             *string            `json:"address"`
	Links               map[string]string  `json:"links"`
}

type EducationRecord struct {
	Institution   string `json:"institution"`
	Qualification string `json:"qualification,omitempty"`
	FieldOfStudy  string `json:"field_of_study,omitempty"`
	StartDate     string `json:"start_date,omitempty"`
	EndDate       string `json:"end_date,omitempty"`
}

type EmploymentRecord struct {
	Employer    string `json:"employer"`
	Role        string `json:"role,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// HasEducation reports whether at least one education record is present
func (p *Profile) HasEducation() bool {
	return len(p.Education) > 0
}

// HasEmployment reports whether at least one employment record is present
func (p *Profile) HasEmployment() bool {
	return len(p.EmploymentHistory) > 0
}

// Summary returns the professional summary or an empty string
func (p *Profile) Summary() string {
	if p.ProfessionalSummary == nil {
		return ""
	}
	return *p.ProfessionalSummary
}

// NormalizeProfile trims skills, drops blank and case-insensitive duplicate
// skills, and turns blank optional strings into nil.
func NormalizeProfile(p *Profile) {
	if p == nil {
		return
	}

	skills := make([]string, 0, len(p.Skills))
	seen := make(map[string]struct{}, len(p.Skills))
	for _, s := range p.Skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		skills = append(skills, s)
	}
	p.Skills = skills

	p.ProfessionalSummary = nilIfBlank(p.ProfessionalSummary)
	p.ContactEmail = nilIfBlank(p.ContactEmail)
	p.ContactPhone = nilIfBlank(p.ContactPhone)
	p.Address = nilIfBlank(p.Address)
}

func nilIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
