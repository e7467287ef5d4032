package domain

import (
	"fmt"
	"strings"
)

type OpportunityType string

const (
	OpportunityInternship OpportunityType = "internship"
	OpportunityVolunteer  OpportunityType = "volunteer"
	OpportunityAttachment OpportunityType = "attachment"
	OpportunityOther      OpportunityType = "other"
)

type WorkMode string

const (
	WorkModeRemote WorkMode = "remote"
	WorkModeOnsite WorkMode = "onsite"
	WorkModeHybrid WorkMode = "hybrid"
)

// Opportunity is an open position published by an organization
type Opportunity struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	RequiredSkills string          `json:"required_skills"`
	Type           OpportunityType `json:"type"`
	OrganizationID string          `json:"organization_id"`
	WorkMode       WorkMode        `json:"work_mode"`
}

// ParseOpportunityType maps stored text to a type; anything unknown is "other"
func ParseOpportunityType(s string) OpportunityType {
	switch t := OpportunityType(strings.ToLower(strings.TrimSpace(s))); t {
	case OpportunityInternship, OpportunityVolunteer, OpportunityAttachment:
		return t
	}
	return OpportunityOther
}

// ParseWorkMode maps stored text to a work mode
func ParseWorkMode(s string) (WorkMode, error) {
	switch m := WorkMode(strings.ToLower(strings.TrimSpace(s))); m {
	case WorkModeRemote, WorkModeOnsite, WorkModeHybrid:
		return m, nil
	}
	return "", fmt.Errorf("unknown work mode %q", s)
}
