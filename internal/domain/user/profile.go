// Package user exposes the subset of the user account this service reads.
package user

import (
	"context"

	"github.com/google/uuid"
)

// Profile is the public part of a user account.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName,omitempty"`
	AvatarCode  string    `json:"avatarCode"`
}

// Lookup resolves user profiles by ID.
type Lookup interface {
	// GetByID returns ErrUserNotFound if no such user exists.
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
}

// ProfileCache is an optional out-of-process cache in front of Lookup.
type ProfileCache interface {
	Get(ctx context.Context, id uuid.UUID) (*Profile, error)
	Set(ctx context.Context, p *Profile) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}
