// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/alem-hub/learning-progress/internal/domain/module"
	"github.com/alem-hub/learning-progress/internal/domain/progress"
	"github.com/alem-hub/learning-progress/internal/domain/shared"
	"github.com/alem-hub/learning-progress/internal/domain/user"
	"github.com/alem-hub/learning-progress/pkg/logger"
	"github.com/alem-hub/learning-progress/pkg/timeutil"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET GAME MARKS QUERY
// Assembles the module dashboard of one student: points, likes and margins of
// the scored games, the total, and the recent mood calendar.
// ══════════════════════════════════════════════════════════════════════════════

// GetGameMarksQuery contains the parameters of the game marks query.
type GetGameMarksQuery struct {
	// StudentID is the user ID of the student. Must be a UUID.
	StudentID string
}

// GameMarksDTO is the dashboard of a student.
type GameMarksDTO struct {
	// ─────────────────────────────────────────────────────────────────────────
	// Identification
	// ─────────────────────────────────────────────────────────────────────────

	// TaskID is the ID of the progress record.
	TaskID string `json:"taskId"`

	// AvatarCode comes from the user profile.
	AvatarCode string `json:"avatarCode"`

	// ExamDate comes from the module configuration.
	ExamDate *time.Time `json:"examDate,omitempty"`

	// ─────────────────────────────────────────────────────────────────────────
	// Game 1: tasks
	// ─────────────────────────────────────────────────────────────────────────

	Game1CompletedTasks int      `json:"game1CompletedTasks"`
	Game1Marks          int      `json:"game1Marks"`
	Game1Margin1        *float64 `json:"game1Margin1,omitempty"`
	Game1Margin2        *float64 `json:"game1Margin2,omitempty"`

	// ─────────────────────────────────────────────────────────────────────────
	// Game 2: mind maps
	// ─────────────────────────────────────────────────────────────────────────

	// Game2Marks is nil, and absent from JSON, if the record has no game2.
	Game2Marks *int `json:"game2Marks,omitempty"`

	// ─────────────────────────────────────────────────────────────────────────
	// Game 3: Q&A
	// ─────────────────────────────────────────────────────────────────────────

	Game3Marks       int      `json:"game3Marks"`
	Game3Likes       int      `json:"game3Likes"`
	Game3Margin1     *float64 `json:"game3Margin1,omitempty"`
	Game3Margin2     *float64 `json:"game3Margin2,omitempty"`
	Game3LikesMargin *float64 `json:"game3LikesMargin,omitempty"`

	// ─────────────────────────────────────────────────────────────────────────
	// Summary
	// ─────────────────────────────────────────────────────────────────────────

	TotalMarks int                  `json:"totalMarks"`
	Moods      []progress.DailyMood `json:"moods"`
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// GetGameMarksConfig configures the handler.
type GetGameMarksConfig struct {
	// ModuleCode is the module the dashboard is built for.
	ModuleCode progress.ModuleCode

	// MoodWindowDays is the length of the mood calendar.
	MoodWindowDays int
}

// DefaultGetGameMarksConfig returns the default configuration.
func DefaultGetGameMarksConfig() GetGameMarksConfig {
	return GetGameMarksConfig{
		ModuleCode:     progress.ModuleMD01,
		MoodWindowDays: progress.DefaultMoodWindowDays,
	}
}

// GetGameMarksHandler handles the GetGameMarksQuery.
type GetGameMarksHandler struct {
	modules module.Repository
	records progress.Repository
	users   user.Lookup
	clock   timeutil.Clock
	config  GetGameMarksConfig
	log     *logger.Logger
}

// NewGetGameMarksHandler creates a new GetGameMarksHandler.
func NewGetGameMarksHandler(
	modules module.Repository,
	records progress.Repository,
	users user.Lookup,
	clock timeutil.Clock,
	config GetGameMarksConfig,
	log *logger.Logger,
) *GetGameMarksHandler {
	defaults := DefaultGetGameMarksConfig()
	if config.ModuleCode == "" {
		config.ModuleCode = defaults.ModuleCode
	}
	if config.MoodWindowDays <= 0 {
		config.MoodWindowDays = defaults.MoodWindowDays
	}
	if clock == nil {
		clock = timeutil.SystemClock(time.UTC)
	}
	if log == nil {
		log = logger.Nop()
	}

	return &GetGameMarksHandler{
		modules: modules,
		records: records,
		users:   users,
		clock:   clock,
		config:  config,
		log:     log.With(logger.Component("query"), logger.Operation("get_game_marks")),
	}
}

// Handle executes the query. Any failed lookup aborts the whole response.
func (h *GetGameMarksHandler) Handle(ctx context.Context, q GetGameMarksQuery) (*GameMarksDTO, error) {
	studentID, err := uuid.Parse(q.StudentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidStudentID, err)
	}

	log := h.log.With(logger.StudentID(studentID.String()), logger.ModuleCode(string(h.config.ModuleCode)))

	mod, err := h.modules.FindByCode(ctx, h.config.ModuleCode)
	if err != nil {
		log.Warn("module lookup failed", logger.Err(err))
		return nil, err
	}

	game1, err := h.modules.FindGame(ctx, h.config.ModuleCode, progress.GameGM01)
	if err != nil {
		log.Warn("game lookup failed", logger.GameCode(string(progress.GameGM01)), logger.Err(err))
		return nil, err
	}

	game3, err := h.modules.FindGame(ctx, h.config.ModuleCode, progress.GameGM03)
	if err != nil {
		log.Warn("game lookup failed", logger.GameCode(string(progress.GameGM03)), logger.Err(err))
		return nil, err
	}

	record, err := h.records.GetByStudentID(ctx, studentID)
	if err != nil {
		log.Warn("progress record lookup failed", logger.Err(err))
		return nil, err
	}

	profile, err := h.users.GetByID(ctx, studentID)
	if err != nil {
		log.Warn("user lookup failed", logger.Err(err))
		return nil, err
	}

	dto := &GameMarksDTO{
		TaskID:     record.ID.String(),
		AvatarCode: profile.AvatarCode,
		ExamDate:   mod.ExamDate,

		Game1CompletedTasks: progress.Game1CompletedTasks(record),
		Game1Marks:          record.Module1.Game1.GamePoints,
		Game1Margin1:        game1.AchievementMargin1,
		Game1Margin2:        game1.AchievementMargin2,

		Game3Marks:       record.Module1.Game3.GamePoints,
		Game3Likes:       progress.Game3TotalLikes(record),
		Game3Margin1:     game3.AchievementMargin1,
		Game3Margin2:     game3.AchievementMargin2,
		Game3LikesMargin: game3.LikesMargin,

		TotalMarks: progress.TotalMarks(record),
		Moods:      progress.CompleteMoodWindow(record.Moods, h.config.MoodWindowDays, h.clock()),
	}

	if record.HasGame2() {
		points := record.Module1.Game2.GamePoints
		dto.Game2Marks = &points
	}

	log.Debug("game marks assembled", logger.RecordID(dto.TaskID), logger.Int("total_marks", dto.TotalMarks))

	return dto, nil
}
