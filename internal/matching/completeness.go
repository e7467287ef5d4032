// Package matching holds the pure scoring logic of the engine: the profile
// completeness gate, the fuzzy skill overlap, the score formula and ranking.
// Nothing here does I/O.
package matching

import (
	"math"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
)

// MinCompletionPercentage is the lowest completion a profile needs before
// it is matched at all.
const MinCompletionPercentage = 50.0

const completionFields = 6

// Completion is the result of running the completeness gate on a profile
type Completion struct {
	Percentage float64
	Check      domain.CompletionCheck
	Passed     bool
}

// Rounded returns the percentage rounded for display. The gate itself
// compares the unrounded value.
func (c Completion) Rounded() int {
	return int(math.Round(c.Percentage))
}

// Missing returns the fields that are still empty
func (c Completion) Missing() domain.CompletionCheck {
	return c.Check.Negate()
}

// Err returns an *domain.IncompleteProfileError when the gate did not pass
func (c Completion) Err() error {
	if c.Passed {
		return nil
	}
	return &domain.IncompleteProfileError{
		Percentage: c.Rounded(),
		Missing:    c.Missing(),
	}
}

// Evaluate inspects the six gating fields of a profile. Sequences count as
// present only when non-empty.
func Evaluate(p *domain.Profile) Completion {
	check := domain.CompletionCheck{
		Skills:              len(p.Skills) > 0,
		ProfessionalSummary: p.ProfessionalSummary != nil,
		Education:           len(p.Education) > 0,
		ContactEmail:        p.ContactEmail != nil,
		ContactPhone:        p.ContactPhone != nil,
		Address:             p.Address != nil,
	}

	percentage := float64(check.Count()) / completionFields * 100

	return Completion{
		Percentage: percentage,
		Check:      check,
		Passed:     percentage >= MinCompletionPercentage,
	}
}
