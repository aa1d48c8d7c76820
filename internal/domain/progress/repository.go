package progress

import (
	"context"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Implementations live in infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateResult mirrors a single-document update: how many documents matched
// the filter and how many actually changed.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
}

// Repository stores student progress records.
type Repository interface {
	// Create persists a new record.
	// Returns ErrProgressRecordExists if the student already has one.
	Create(ctx context.Context, record *Record) error

	// GetByID returns a record by its own ID.
	// Returns ErrProgressRecordNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)

	// GetByStudentID returns the record belonging to a student.
	// Returns ErrProgressRecordNotFound if absent.
	GetByStudentID(ctx context.Context, studentID uuid.UUID) (*Record, error)

	// SetBadgeShared sets one badge flag to "YES" in a single atomic update.
	// A missing record yields MatchedCount == 0 and no error.
	SetBadgeShared(ctx context.Context, id uuid.UUID, field BadgeField) (UpdateResult, error)

	// AppendMood appends a mood entry in a single atomic update.
	// A missing record yields MatchedCount == 0 and no error.
	AppendMood(ctx context.Context, id uuid.UUID, entry MoodEntry) (UpdateResult, error)
}
