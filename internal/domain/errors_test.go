package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIs(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{"validation", &ValidationError{Field: "studentId", Message: "studentId is required"}, ErrValidation, true},
		{"not found", &NotFoundError{Resource: "student", ID: "s-1"}, ErrNotFound, true},
		{"incomplete", &IncompleteProfileError{Percentage: 33}, ErrIncompleteProfile, true},
		{"upstream sentinel", &UpstreamError{Op: "list opportunities", Err: cause}, ErrUpstream, true},
		{"upstream cause", &UpstreamError{Op: "list opportunities", Err: cause}, cause, true},
		{"persistence sentinel", &PersistenceWarning{Count: 3, Err: cause}, ErrPersistence, true},
		{"wrapped incomplete", fmt.Errorf("run: %w", &IncompleteProfileError{}), ErrIncompleteProfile, true},
		{"profile repo sentinel is not found", ErrProfileNotFound, ErrNotFound, true},
		{"not found is not validation", &NotFoundError{Resource: "student", ID: "s-1"}, ErrValidation, false},
		{"upstream is not persistence", &UpstreamError{Op: "get profile", Err: cause}, ErrPersistence, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMatch, errors.Is(tt.err, tt.target))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "student not found with id s-1", (&NotFoundError{Resource: "student", ID: "s-1"}).Error())
	assert.Equal(t, "profile is 33% complete, at least 50% is required", (&IncompleteProfileError{Percentage: 33}).Error())
	assert.Equal(t, "get profile: boom", (&UpstreamError{Op: "get profile", Err: errors.New("boom")}).Error())
	assert.Equal(t, "profile not found", ErrProfileNotFound.Error())
}

func TestIncompleteProfileErrorAs(t *testing.T) {
	err := fmt.Errorf("gate: %w", &IncompleteProfileError{
		Percentage: 17,
		Missing:    CompletionCheck{ProfessionalSummary: true, Education: true},
	})

	var incomplete *IncompleteProfileError
	if assert.ErrorAs(t, err, &incomplete) {
		assert.Equal(t, 17, incomplete.Percentage)
		assert.True(t, incomplete.Missing.Education)
		assert.False(t, incomplete.Missing.Skills)
	}
}
