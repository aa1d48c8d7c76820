package command

import (
	"context"
	"testing"

	"github.com/alem-hub/learning-progress/internal/domain/progress"
	"github.com/alem-hub/learning-progress/internal/domain/shared"
	"github.com/alem-hub/learning-progress/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCreateProgressRecord(t *testing.T) {
	repo := newMemRecords()
	core, logs := observer.New(zap.InfoLevel)
	h := NewCreateProgressRecordHandler(repo, logger.NewWithCore(core))
	studentID := uuid.NewString()

	res, err := h.Handle(context.Background(), CreateProgressRecordCommand{StudentID: studentID, StudentName: "Aru"})
	require.NoError(t, err)

	rec := res.Record
	assert.Equal(t, studentID, rec.StudentID.String())
	assert.Equal(t, "Aru", rec.StudentName)
	assert.Empty(t, rec.Moods)
	assert.Equal(t, progress.NotShared, rec.Module1.Game1.Badge1Shared)

	stored, err := repo.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Same(t, rec, stored)

	entries := logs.FilterMessage("progress record created").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "create_progress_record", entries[0].ContextMap()["operation"])
}

func TestCreateProgressRecord_Errors(t *testing.T) {
	repo := newMemRecords()
	h := NewCreateProgressRecordHandler(repo, nil)
	ctx := context.Background()

	_, err := h.Handle(ctx, CreateProgressRecordCommand{StudentID: "nope"})
	assert.ErrorIs(t, err, shared.ErrInvalidID)
	assert.ErrorIs(t, err, shared.ErrInvalidStudentID)

	studentID := uuid.NewString()
	_, err = h.Handle(ctx, CreateProgressRecordCommand{StudentID: studentID})
	require.NoError(t, err)

	_, err = h.Handle(ctx, CreateProgressRecordCommand{StudentID: studentID})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}
