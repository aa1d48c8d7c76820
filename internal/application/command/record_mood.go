package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alem-hub/learning-progress/internal/domain/progress"
	"github.com/alem-hub/learning-progress/internal/domain/shared"
	"github.com/alem-hub/learning-progress/pkg/logger"
	"github.com/alem-hub/learning-progress/pkg/timeutil"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD MOOD COMMAND
// Appends one daily mood entry to a progress record.
// ══════════════════════════════════════════════════════════════════════════════

// RecordMoodCommand contains the data to record a mood.
type RecordMoodCommand struct {
	// StudentTaskID is the ID of the progress record.
	StudentTaskID string

	// Mood is a free-form mood label, e.g. "happy".
	Mood string

	// Date is when the mood was felt (defaults to now if zero).
	Date time.Time
}

// Validate validates the command.
func (c RecordMoodCommand) Validate() error {
	if strings.TrimSpace(c.Mood) == "" {
		return shared.NewDomainError("progress", "RecordMood", shared.ErrInvalidInput, "mood is required")
	}
	return nil
}

// RecordMoodResult contains the stored entry.
type RecordMoodResult struct {
	Entry progress.MoodEntry
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// RecordMoodHandler handles the RecordMoodCommand.
type RecordMoodHandler struct {
	records progress.Repository
	clock   timeutil.Clock
	log     *logger.Logger
}

// NewRecordMoodHandler creates a new RecordMoodHandler. A nil clock uses UTC
// system time.
func NewRecordMoodHandler(records progress.Repository, clock timeutil.Clock, log *logger.Logger) *RecordMoodHandler {
	if clock == nil {
		clock = timeutil.SystemClock(time.UTC)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RecordMoodHandler{
		records: records,
		clock:   clock,
		log:     log.With(logger.Component("command"), logger.Operation("record_mood")),
	}
}

// Handle executes the record mood command.
func (h *RecordMoodHandler) Handle(ctx context.Context, cmd RecordMoodCommand) (*RecordMoodResult, error) {
	id, err := uuid.Parse(cmd.StudentTaskID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidRecordID, err)
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	date := cmd.Date
	if date.IsZero() {
		date = h.clock()
	}
	entry := progress.MoodEntry{Date: date, Mood: strings.TrimSpace(cmd.Mood)}

	res, err := h.records.AppendMood(ctx, id, entry)
	if err != nil {
		h.log.Error("failed to record mood", logger.RecordID(id.String()), logger.Err(err))
		return nil, fmt.Errorf("record_mood: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, shared.ErrProgressRecordNotFound
	}

	h.log.Debug("mood recorded",
		logger.RecordID(id.String()),
		logger.String("date", timeutil.FormatDate(date)),
	)

	return &RecordMoodResult{Entry: entry}, nil
}
