// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/alem-hub/learning-progress/internal/domain/progress"
	"github.com/alem-hub/learning-progress/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE PROGRESS RECORD COMMAND
// Creates the initial progress document of a student who enrolls in the
// module: all four games at zero points, every badge unshared.
// ══════════════════════════════════════════════════════════════════════════════

// CreateProgressRecordCommand contains the data to create a progress record.
type CreateProgressRecordCommand struct {
	// StudentID is the user ID of the student. Must be a UUID.
	StudentID string

	// StudentName is the display name (optional).
	StudentName string
}

// CreateProgressRecordResult contains the created record.
type CreateProgressRecordResult struct {
	Record *progress.Record
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// CreateProgressRecordHandler handles the CreateProgressRecordCommand.
type CreateProgressRecordHandler struct {
	records progress.Repository
	log     *logger.Logger
}

// NewCreateProgressRecordHandler creates a new CreateProgressRecordHandler.
func NewCreateProgressRecordHandler(records progress.Repository, log *logger.Logger) *CreateProgressRecordHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &CreateProgressRecordHandler{
		records: records,
		log:     log.With(logger.Component("command"), logger.Operation("create_progress_record")),
	}
}

// Handle builds a fresh record and persists it.
// Returns an error matching shared.ErrInvalidID on a malformed student ID and
// shared.ErrAlreadyExists if the student already has a record.
func (h *CreateProgressRecordHandler) Handle(ctx context.Context, cmd CreateProgressRecordCommand) (*CreateProgressRecordResult, error) {
	start := time.Now()

	record, err := progress.NewRecord(progress.NewRecordParams{
		StudentID:   cmd.StudentID,
		StudentName: cmd.StudentName,
	})
	if err != nil {
		return nil, err
	}

	if err := h.records.Create(ctx, record); err != nil {
		h.log.Error("failed to create progress record",
			logger.StudentID(cmd.StudentID),
			logger.Err(err),
		)
		return nil, fmt.Errorf("create_progress_record: %w", err)
	}

	h.log.Info("progress record created",
		logger.StudentID(cmd.StudentID),
		logger.RecordID(record.ID.String()),
		logger.Latency(time.Since(start)),
	)

	return &CreateProgressRecordResult{Record: record}, nil
}
