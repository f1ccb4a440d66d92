// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"lens/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateKey is returned when a write collides with an existing unique
// key (email or user_id). The store's unique index is the final authority on
// duplicates; callers must treat this error, not their own pre-checks, as the
// source of truth under concurrent writes.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrInvalidData is returned when a write violates a storage-level data
// constraint other than uniqueness, such as a missing required column.
var ErrInvalidData = errors.New("invalid data")

// ErrStoreUnavailable is returned when the store cannot be reached at all:
// refused or dropped connections, exhausted pools, timed-out dials. It lets
// callers distinguish an outage from a failed statement.
var ErrStoreUnavailable = errors.New("store unavailable")

// UserRepository defines the standard operations for credential persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user record. It returns ErrDuplicateKey when the
	// email or user_id is already present.
	Create(ctx context.Context, user *entity.User) error

	// UpdateLastLogin stamps the user's last successful login time.
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
}
