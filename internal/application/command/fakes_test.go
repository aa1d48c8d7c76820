package command

import (
	"context"
	"sync"

	"github.com/alem-hub/learning-progress/internal/domain/progress"
	"github.com/alem-hub/learning-progress/internal/domain/shared"

	"github.com/google/uuid"
)

// memRecords is an in-memory progress.Repository.
type memRecords struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*progress.Record
	err     error
	updates int
}

func newMemRecords() *memRecords {
	return &memRecords{byID: make(map[uuid.UUID]*progress.Record)}
}

func (m *memRecords) Create(_ context.Context, r *progress.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.byID {
		if existing.StudentID == r.StudentID {
			return shared.ErrProgressRecordExists
		}
	}
	m.byID[r.ID] = r
	return nil
}

func (m *memRecords) GetByID(_ context.Context, id uuid.UUID) (*progress.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return nil, shared.ErrProgressRecordNotFound
	}
	return r, nil
}

func (m *memRecords) GetByStudentID(_ context.Context, studentID uuid.UUID) (*progress.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.byID {
		if r.StudentID == studentID {
			return r, nil
		}
	}
	return nil, shared.ErrProgressRecordNotFound
}

func (m *memRecords) SetBadgeShared(_ context.Context, id uuid.UUID, field progress.BadgeField) (progress.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	if m.err != nil {
		return progress.UpdateResult{}, m.err
	}
	r, ok := m.byID[id]
	if !ok {
		return progress.UpdateResult{}, nil
	}
	res := progress.UpdateResult{MatchedCount: 1}
	if field.MarkShared(r) {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (m *memRecords) AppendMood(_ context.Context, id uuid.UUID, entry progress.MoodEntry) (progress.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	if m.err != nil {
		return progress.UpdateResult{}, m.err
	}
	r, ok := m.byID[id]
	if !ok {
		return progress.UpdateResult{}, nil
	}
	r.Moods = append(r.Moods, entry)
	return progress.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func seedRecord(m *memRecords) *progress.Record {
	r, err := progress.NewRecord(progress.NewRecordParams{StudentID: uuid.NewString(), StudentName: "Aru"})
	if err != nil {
		panic(err)
	}
	m.byID[r.ID] = r
	return r
}
