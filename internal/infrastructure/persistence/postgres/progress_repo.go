package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alem-hub/learning-progress/internal/domain/progress"
	"github.com/alem-hub/learning-progress/internal/domain/shared"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ProgressRepository implements progress.Repository on the student_tasks table.
type ProgressRepository struct {
	q Querier
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(q Querier) *ProgressRepository {
	return &ProgressRepository{q: q}
}

// Create inserts a new progress document.
func (r *ProgressRepository) Create(ctx context.Context, record *progress.Record) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal progress record: %w", err)
	}

	_, err = r.q.Exec(ctx,
		`INSERT INTO student_tasks (id, student_id, doc) VALUES ($1, $2, $3)`,
		record.ID, record.StudentID, doc,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrProgressRecordExists
		}
		return fmt.Errorf("failed to create progress record: %w", err)
	}

	return nil
}

// GetByID returns a progress document by its ID.
func (r *ProgressRepository) GetByID(ctx context.Context, id uuid.UUID) (*progress.Record, error) {
	return r.findOne(ctx, `SELECT doc FROM student_tasks WHERE id = $1`, id)
}

// GetByStudentID returns the progress document of a student.
func (r *ProgressRepository) GetByStudentID(ctx context.Context, studentID uuid.UUID) (*progress.Record, error) {
	return r.findOne(ctx, `SELECT doc FROM student_tasks WHERE student_id = $1 LIMIT 1`, studentID)
}

func (r *ProgressRepository) findOne(ctx context.Context, query string, arg uuid.UUID) (*progress.Record, error) {
	var doc []byte
	if err := r.q.QueryRow(ctx, query, arg).Scan(&doc); err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrProgressRecordNotFound
		}
		return nil, fmt.Errorf("failed to get progress record: %w", err)
	}

	var record progress.Record
	if err := json.Unmarshal(doc, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal progress record: %w", err)
	}

	return &record, nil
}

// SetBadgeShared flips one badge flag to "YES".
// A missing game2 slot is created with the flag already set. Otherwise the row
// is only rewritten when the game slot is an object and the flag is not already
// shared, so ModifiedCount reflects a real change.
func (r *ProgressRepository) SetBadgeShared(ctx context.Context, id uuid.UUID, field progress.BadgeField) (progress.UpdateResult, error) {
	path := field.Path()
	parent := path[:len(path)-1]

	var slot []byte
	if s := field.InitialSlot(); s != nil {
		b, err := json.Marshal(s)
		if err != nil {
			return progress.UpdateResult{}, fmt.Errorf("failed to marshal %s slot: %w", field.Game, err)
		}
		slot = b
	}

	tag, err := r.q.Exec(ctx, `
		UPDATE student_tasks
		SET doc = CASE
		        WHEN jsonb_typeof(doc #> $4::text[]) = 'object'
		        THEN jsonb_set(doc, $2::text[], to_jsonb($3::text), true)
		        ELSE jsonb_set(doc, $4::text[], $5::jsonb, true)
		    END,
		    updated_at = NOW()
		WHERE id = $1
		  AND (doc #>> $2::text[]) IS DISTINCT FROM $3
		  AND (jsonb_typeof(doc #> $4::text[]) = 'object' OR $5::jsonb IS NOT NULL)
	`, id, path, string(progress.Shared), parent, slot)
	if err != nil {
		return progress.UpdateResult{}, fmt.Errorf("failed to share badge %s: %w", field, err)
	}

	if tag.RowsAffected() > 0 {
		return progress.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}

	return r.matchOnly(ctx, id)
}

// AppendMood appends one entry to the moods array.
func (r *ProgressRepository) AppendMood(ctx context.Context, id uuid.UUID, entry progress.MoodEntry) (progress.UpdateResult, error) {
	doc, err := json.Marshal(entry)
	if err != nil {
		return progress.UpdateResult{}, fmt.Errorf("failed to marshal mood entry: %w", err)
	}

	tag, err := r.q.Exec(ctx, `
		UPDATE student_tasks
		SET doc = jsonb_set(doc, '{moods}', COALESCE(doc->'moods', '[]'::jsonb) || jsonb_build_array($2::jsonb), true),
		    updated_at = NOW()
		WHERE id = $1
	`, id, doc)
	if err != nil {
		return progress.UpdateResult{}, fmt.Errorf("failed to append mood: %w", err)
	}

	n := tag.RowsAffected()
	return progress.UpdateResult{MatchedCount: n, ModifiedCount: n}, nil
}

func (r *ProgressRepository) matchOnly(ctx context.Context, id uuid.UUID) (progress.UpdateResult, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM student_tasks WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return progress.UpdateResult{}, fmt.Errorf("failed to check progress record: %w", err)
	}
	if !exists {
		return progress.UpdateResult{}, nil
	}
	return progress.UpdateResult{MatchedCount: 1}, nil
}
