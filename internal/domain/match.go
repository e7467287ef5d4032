package domain

import (
	"time"

	"github.com/google/uuid"
)

// Match store write modes. Append keeps every run, upsert keeps the latest
// match per student and opportunity.
const (
	PersistAppend = "append"
	PersistUpsert = "upsert"
)

// Match is a scored association between one profile and one opportunity
type Match struct {
	ID            uuid.UUID `json:"id"`
	OpportunityID string    `json:"opportunityId"`
	StudentID     string    `json:"studentId"`
	Score         int       `json:"score"`
	MatchedSkills []string  `json:"matchedSkills"`
	Reasoning     string    `json:"reasoning"`
	AnalyzedAt    time.Time `json:"analyzedAt"`
}

// CompletionCheck records which gating fields of a profile are populated
type CompletionCheck struct {
	Skills              bool `json:"skills"`
	ProfessionalSummary bool `json:"professionalSummary"`
	Education           bool `json:"education"`
	ContactEmail        bool `json:"contactEmail"`
	ContactPhone        bool `json:"contactPhone"`
	Address             bool `json:"address"`
}

// Count returns the number of true flags
func (c CompletionCheck) Count() int {
	n := 0
	for _, ok := range []bool{c.Skills, c.ProfessionalSummary, c.Education, c.ContactEmail, c.ContactPhone, c.Address} {
		if ok {
			n++
		}
	}
	return n
}

// Negate flips every flag, turning "present" into "still missing"
func (c CompletionCheck) Negate() CompletionCheck {
	return CompletionCheck{
		Skills:              !c.Skills,
		ProfessionalSummary: !c.ProfessionalSummary,
		Education:           !c.Education,
		ContactEmail:        !c.ContactEmail,
		ContactPhone:        !c.ContactPhone,
		Address:             !c.Address,
	}
}
