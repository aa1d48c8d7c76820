package postgres

import (
	"context"
	"fmt"

	"github.com/alem-hub/learning-progress/internal/domain/shared"
	"github.com/alem-hub/learning-progress/internal/domain/user"

	"github.com/google/uuid"
)

// UserRepository implements user.Lookup on the users table.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(q Querier) *UserRepository {
	return &UserRepository{q: q}
}

// GetByID returns a user profile by ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	var p user.Profile
	err := r.q.QueryRow(ctx,
		`SELECT id, display_name, avatar_code FROM users WHERE id = $1`, id,
	).Scan(&p.ID, &p.DisplayName, &p.AvatarCode)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &p, nil
}

// Save upserts a user profile.
func (r *UserRepository) Save(ctx context.Context, p *user.Profile) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (id, display_name, avatar_code) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET display_name = EXCLUDED.display_name, avatar_code = EXCLUDED.avatar_code, updated_at = NOW()
	`, p.ID, p.DisplayName, p.AvatarCode)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}
