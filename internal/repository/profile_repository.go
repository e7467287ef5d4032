package repository

import (
	"context"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
)

// ProfileRepository is a read-only view of the profile store. GetByID
// returns domain.ErrProfileNotFound when no profile has the id.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
}
