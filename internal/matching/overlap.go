package matching

import "strings"

// OverlapResult lists the profile skills found in an opportunity's
// required skills, in profile order and with the profile's casing.
// CoveredCount is the number of required skills hit by at least one
// profile skill and never exceeds RequiredCount.
type OverlapResult struct {
	Matched       []string
	RequiredCount int
	CoveredCount  int
}

// ParseRequiredSkills splits comma-separated required skills into a set of
// lowercased, trimmed tokens. Order of first appearance is kept.
func ParseRequiredSkills(text string) []string {
	parts := strings.Split(text, ",")
	required := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		required = append(required, token)
	}
	return required
}

// Overlap matches profile skills against required skills text. A profile
// skill matches when it contains a required skill or is contained by one,
// ignoring case, so "React" and "React.js" count as the same skill.
func Overlap(profileSkills []string, requiredSkillsText string) OverlapResult {
	required := ParseRequiredSkills(requiredSkillsText)
	result := OverlapResult{
		Matched:       make([]string, 0),
		RequiredCount: len(required),
	}
	if len(required) == 0 {
		return result
	}

	covered := make([]bool, len(required))
	seen := make(map[string]struct{}, len(profileSkills))
	for _, skill := range profileSkills {
		skill = strings.TrimSpace(skill)
		key := strings.ToLower(skill)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		hit := false
		for i, req := range required {
			if strings.Contains(req, key) || strings.Contains(key, req) {
				covered[i] = true
				hit = true
			}
		}
		if hit {
			result.Matched = append(result.Matched, skill)
		}
	}

	for _, c := range covered {
		if c {
			result.CoveredCount++
		}
	}

	return result
}
