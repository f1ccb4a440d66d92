package repository

import (
	"context"
	"errors"

	"lens/internal/domain/entity"
)

// ErrProfileNotFound is returned when no customer profile exists for a user_id.
var ErrProfileNotFound = errors.New("customer profile not found")

// CustomerProfileRepository persists customer profiles. Profiles reference a
// user_id by value only; no existence check against the users table is
// performed on any write.
type CustomerProfileRepository interface {
	// FindByUserID retrieves the single profile for a user_id.
	FindByUserID(ctx context.Context, userID string) (*entity.CustomerProfile, error)

	// Create persists a new profile. Returns ErrDuplicateKey when a profile
	// already exists for the user_id.
	Create(ctx context.Context, profile *entity.CustomerProfile) error

	// Update replaces an existing profile's sub-records.
	Update(ctx context.Context, profile *entity.CustomerProfile) error
}
