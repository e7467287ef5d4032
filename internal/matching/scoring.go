package matching

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
)

// Score components. They add up to 100.
const (
	skillWeight      = 50.0
	educationPoints  = 20.0
	employmentPoints = 15.0
	summaryPoints    = 15.0

	// A summary must be longer than this many characters to count.
	summaryMinLength = 50
)

// AcceptanceThreshold is the default minimum score for a match to be kept
const AcceptanceThreshold = 40

// SkillRatio returns matched/required, capped at 1. Bidirectional substring
// matching lets several profile skills hit one required skill, so the cap
// keeps the skill component within its weight.
func SkillRatio(matchedCount, requiredCount int) float64 {
	if requiredCount <= 0 {
		return 0
	}
	return math.Min(float64(matchedCount)/float64(requiredCount), 1)
}

// RawScore is the unrounded score
func RawScore(p *domain.Profile, matchedCount, requiredCount int) float64 {
	raw := SkillRatio(matchedCount, requiredCount) * skillWeight
	if p.HasEducation() {
		raw += educationPoints
	}
	if p.HasEmployment() {
		raw += employmentPoints
	}
	if hasDetailedSummary(p) {
		raw += summaryPoints
	}
	return raw
}

// Score returns the 0..100 relevance score, rounded half away from zero
func Score(p *domain.Profile, matched []string, requiredCount int) int {
	return int(math.Round(RawScore(p, len(matched), requiredCount)))
}

// Reasoning explains a score in one line
func Reasoning(p *domain.Profile, overlap OverlapResult) string {
	parts := make([]string, 0, 4)

	switch {
	case overlap.RequiredCount == 0:
		parts = append(parts, "No required skills listed")
	case len(overlap.Matched) == 0:
		parts = append(parts, fmt.Sprintf("Matched 0 of %d required skills", overlap.RequiredCount))
	default:
		parts = append(parts, fmt.Sprintf("Matched %d of %d required skills (%s)",
			overlap.CoveredCount, overlap.RequiredCount, strings.Join(overlap.Matched, ", ")))
	}

	if p.HasEducation() {
		parts = append(parts, "has education")
	}
	if p.HasEmployment() {
		parts = append(parts, "has work experience")
	}
	if hasDetailedSummary(p) {
		parts = append(parts, "detailed professional summary")
	}

	return strings.Join(parts, "; ")
}

// ScoreOpportunity runs overlap and scoring for a single opportunity. The
// returned match carries no ID or timestamp; accepted reports whether the
// score reached threshold.
func ScoreOpportunity(p *domain.Profile, opp *domain.Opportunity, threshold int) (match domain.Match, accepted bool) {
	overlap := Overlap(p.Skills, opp.RequiredSkills)
	score := Score(p, overlap.Matched, overlap.RequiredCount)

	match = domain.Match{
		OpportunityID: opp.ID,
		StudentID:     p.ID,
		Score:         score,
		MatchedSkills: overlap.Matched,
		Reasoning:     Reasoning(p, overlap),
	}
	return match, score >= threshold
}

func hasDetailedSummary(p *domain.Profile) bool {
	return utf8.RuneCountInString(p.Summary()) > summaryMinLength
}
