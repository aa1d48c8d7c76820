package query

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alem-hub/learning-progress/internal/domain/module"
	"github.com/alem-hub/learning-progress/internal/domain/progress"
	"github.com/alem-hub/learning-progress/internal/domain/shared"
	"github.com/alem-hub/learning-progress/internal/domain/user"
	"github.com/alem-hub/learning-progress/pkg/timeutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ══════════════════════════════════════════════════════════════════════════════
// FAKES
// ══════════════════════════════════════════════════════════════════════════════

type memModules struct {
	configs map[progress.ModuleCode]*module.Config
	calls   int
}

func (m *memModules) FindByCode(_ context.Context, code progress.ModuleCode) (*module.Config, error) {
	m.calls++
	c, ok := m.configs[code]
	if !ok {
		return nil, shared.ErrModuleNotFound
	}
	return c, nil
}

func (m *memModules) FindGame(_ context.Context, code progress.ModuleCode, game progress.GameCode) (*module.GameConfig, error) {
	m.calls++
	c, ok := m.configs[code]
	if !ok {
		return nil, shared.ErrGameNotFound
	}
	g, ok := c.Game(game)
	if !ok {
		return nil, shared.ErrGameNotFound
	}
	return &g, nil
}

func (m *memModules) Save(_ context.Context, c *module.Config) error {
	m.configs[c.ModuleCode] = c
	return nil
}

type memRecords struct {
	byStudent map[uuid.UUID]*progress.Record
}

func (m *memRecords) Create(_ context.Context, r *progress.Record) error {
	m.byStudent[r.StudentID] = r
	return nil
}

func (m *memRecords) GetByID(_ context.Context, id uuid.UUID) (*progress.Record, error) {
	for _, r := range m.byStudent {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, shared.ErrProgressRecordNotFound
}

func (m *memRecords) GetByStudentID(_ context.Context, id uuid.UUID) (*progress.Record, error) {
	r, ok := m.byStudent[id]
	if !ok {
		return nil, shared.ErrProgressRecordNotFound
	}
	return r, nil
}

func (m *memRecords) SetBadgeShared(context.Context, uuid.UUID, progress.BadgeField) (progress.UpdateResult, error) {
	panic("read-only query must not write")
}

func (m *memRecords) AppendMood(context.Context, uuid.UUID, progress.MoodEntry) (progress.UpdateResult, error) {
	panic("read-only query must not write")
}

type userLookupFunc func(ctx context.Context, id uuid.UUID) (*user.Profile, error)

func (f userLookupFunc) GetByID(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	return f(ctx, id)
}

// ══════════════════════════════════════════════════════════════════════════════
// FIXTURE
// ══════════════════════════════════════════════════════════════════════════════

type fixture struct {
	modules   *memModules
	records   *memRecords
	profiles  map[uuid.UUID]*user.Profile
	userErr   error
	userCalls int
	record    *progress.Record
	studentID uuid.UUID
	now       time.Time
}

func ptr(v float64) *float64 { return &v }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	exam := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	studentID := uuid.New()
	rec, err := progress.NewRecord(progress.NewRecordParams{StudentID: studentID.String(), StudentName: "Aru"})
	require.NoError(t, err)

	rec.Module1.Game1.GamePoints = 3
	rec.Module1.Game1.Tasks = []progress.Task{{Name: "a"}, {Name: "b"}}
	rec.Module1.Game2.GamePoints = 5
	rec.Module1.Game3.GamePoints = 7
	rec.Module1.Game3.QandA = []progress.QandA{
		{Question: "q1", Likes: []string{"u1", "u2"}},
		{Question: "q2"},
		{Question: "q3", Likes: []string{"u3"}},
	}
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	rec.Moods = []progress.MoodEntry{{Date: now.AddDate(0, 0, -5), Mood: "happy"}}

	return &fixture{
		modules: &memModules{configs: map[progress.ModuleCode]*module.Config{
			progress.ModuleMD01: {
				ModuleCode: progress.ModuleMD01,
				ExamDate:   &exam,
				Games: []module.GameConfig{
					{Code: progress.GameGM01, AchievementMargin1: ptr(40), AchievementMargin2: ptr(80)},
					{Code: progress.GameGM03, AchievementMargin1: ptr(10), LikesMargin: ptr(25)},
				},
			},
		}},
		records:   &memRecords{byStudent: map[uuid.UUID]*progress.Record{studentID: rec}},
		profiles:  map[uuid.UUID]*user.Profile{studentID: {ID: studentID, AvatarCode: "AV03"}},
		record:    rec,
		studentID: studentID,
		now:       now,
	}
}

func (f *fixture) handler() *GetGameMarksHandler {
	users := userLookupFunc(func(_ context.Context, id uuid.UUID) (*user.Profile, error) {
		f.userCalls++
		if f.userErr != nil {
			return nil, f.userErr
		}
		p, ok := f.profiles[id]
		if !ok {
			return nil, shared.ErrUserNotFound
		}
		return p, nil
	})
	return NewGetGameMarksHandler(f.modules, f.records, users, timeutil.FixedClock(f.now), GetGameMarksConfig{}, nil)
}

// ══════════════════════════════════════════════════════════════════════════════
// TESTS
// ══════════════════════════════════════════════════════════════════════════════

func TestGetGameMarks_Composes(t *testing.T) {
	f := newFixture(t)

	dto, err := f.handler().Handle(context.Background(), GetGameMarksQuery{StudentID: f.studentID.String()})
	require.NoError(t, err)

	assert.Equal(t, f.record.ID.String(), dto.TaskID)
	assert.Equal(t, "AV03", dto.AvatarCode)
	require.NotNil(t, dto.ExamDate)
	assert.Equal(t, 2024, dto.ExamDate.Year())

	assert.Equal(t, 2, dto.Game1CompletedTasks)
	assert.Equal(t, 3, dto.Game1Marks)
	assert.Equal(t, 40.0, *dto.Game1Margin1)
	assert.Equal(t, 80.0, *dto.Game1Margin2)

	require.NotNil(t, dto.Game2Marks)
	assert.Equal(t, 5, *dto.Game2Marks)

	assert.Equal(t, 7, dto.Game3Marks)
	assert.Equal(t, 3, dto.Game3Likes)
	assert.Equal(t, 10.0, *dto.Game3Margin1)
	assert.Nil(t, dto.Game3Margin2)
	assert.Equal(t, 25.0, *dto.Game3LikesMargin)

	assert.Equal(t, 10, dto.TotalMarks)

	require.Len(t, dto.Moods, progress.DefaultMoodWindowDays)
	assert.Equal(t, "2024-03-10", dto.Moods[0].Date)
	assert.Equal(t, progress.DailyMood{Date: "2024-03-05", Mood: "happy"}, dto.Moods[5])
	assert.Equal(t, progress.MoodMissed, dto.Moods[1].Mood)
}

func TestGetGameMarks_Game2AbsentOmitsKey(t *testing.T) {
	f := newFixture(t)
	f.record.Module1.Game2 = nil

	dto, err := f.handler().Handle(context.Background(), GetGameMarksQuery{StudentID: f.studentID.String()})
	require.NoError(t, err)
	assert.Nil(t, dto.Game2Marks)

	raw, err := json.Marshal(dto)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	assert.NotContains(t, keys, "game2Marks")
	assert.NotContains(t, keys, "game3Margin2")
	assert.Contains(t, keys, "game3LikesMargin")
	assert.Contains(t, keys, "totalMarks")
}

func TestGetGameMarks_Game2PresentWithZeroPoints(t *testing.T) {
	f := newFixture(t)
	f.record.Module1.Game2.GamePoints = 0

	dto, err := f.handler().Handle(context.Background(), GetGameMarksQuery{StudentID: f.studentID.String()})
	require.NoError(t, err)

	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"game2Marks":0`)
}

func TestGetGameMarks_Failures(t *testing.T) {
	boom := errors.New("users service unavailable")

	tests := []struct {
		name    string
		mutate  func(f *fixture)
		student func(f *fixture) string
		wantErr error
		// lookups expected before the failure stops the query
		moduleCalls int
		userCalls   int
	}{
		{
			name:    "malformed student id",
			student: func(*fixture) string { return "abc" },
			wantErr: shared.ErrInvalidStudentID,
		},
		{
			name:        "unknown student",
			student:     func(*fixture) string { return uuid.NewString() },
			wantErr:     shared.ErrProgressRecordNotFound,
			moduleCalls: 3,
		},
		{
			name:        "missing module",
			mutate:      func(f *fixture) { delete(f.modules.configs, progress.ModuleMD01) },
			wantErr:     shared.ErrModuleNotFound,
			moduleCalls: 1,
		},
		{
			name: "missing game3 config",
			mutate: func(f *fixture) {
				cfg := f.modules.configs[progress.ModuleMD01]
				cfg.Games = cfg.Games[:1]
			},
			wantErr:     shared.ErrGameNotFound,
			moduleCalls: 3,
		},
		{
			name:        "missing user",
			mutate:      func(f *fixture) { delete(f.profiles, f.studentID) },
			wantErr:     shared.ErrUserNotFound,
			moduleCalls: 3,
			userCalls:   1,
		},
		{
			name:        "user lookup error propagates unchanged",
			mutate:      func(f *fixture) { f.userErr = boom },
			wantErr:     boom,
			moduleCalls: 3,
			userCalls:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.mutate != nil {
				tt.mutate(f)
			}
			student := f.studentID.String()
			if tt.student != nil {
				student = tt.student(f)
			}

			dto, err := f.handler().Handle(context.Background(), GetGameMarksQuery{StudentID: student})
			assert.Nil(t, dto)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.moduleCalls, f.modules.calls)
			assert.Equal(t, tt.userCalls, f.userCalls)
		})
	}
}

func TestGetGameMarks_InvalidIDSkipsLookups(t *testing.T) {
	f := newFixture(t)

	_, err := f.handler().Handle(context.Background(), GetGameMarksQuery{StudentID: ""})
	assert.True(t, shared.IsValidation(err))
	assert.Zero(t, f.modules.calls)
	assert.Zero(t, f.userCalls)
}

func TestNewGetGameMarksHandler_Defaults(t *testing.T) {
	h := NewGetGameMarksHandler(nil, nil, nil, nil, GetGameMarksConfig{MoodWindowDays: -1}, nil)
	assert.Equal(t, progress.ModuleMD01, h.config.ModuleCode)
	assert.Equal(t, progress.DefaultMoodWindowDays, h.config.MoodWindowDays)
	assert.NotNil(t, h.clock)
}
