package command

import (
	"context"
	"errors"
	"testing"

	"github.com/alem-hub/learning-progress/internal/domain/progress"
	"github.com/alem-hub/learning-progress/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareBadge_TransitionsOnlyTargetFlag(t *testing.T) {
	repo := newMemRecords()
	rec := seedRecord(repo)
	rec.Module1.Game1.GamePoints = 12
	h := NewShareBadgeHandler(repo, nil)

	res, err := h.Handle(context.Background(), ShareBadgeCommand{
		StudentTaskID: rec.ID.String(),
		GameCode:      progress.GameGM01,
		BadgeCode:     progress.BadgeBDG01,
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeShared, res.Outcome)
	assert.True(t, res.Success())
	assert.EqualValues(t, 1, res.MatchedCount)
	assert.EqualValues(t, 1, res.ModifiedCount)

	g1 := rec.Module1.Game1
	assert.Equal(t, progress.Shared, g1.Badge1Shared)
	assert.Equal(t, progress.NotShared, g1.Badge2Shared)
	assert.Equal(t, progress.NotShared, g1.Badge3Shared)
	assert.Equal(t, 12, g1.GamePoints)
	assert.Equal(t, progress.NotShared, rec.Module1.Game2.Badge1Shared)
}

func TestShareBadge_Idempotent(t *testing.T) {
	repo := newMemRecords()
	rec := seedRecord(repo)
	h := NewShareBadgeHandler(repo, nil)
	cmd := ShareBadgeCommand{StudentTaskID: rec.ID.String(), GameCode: progress.GameGM02, BadgeCode: progress.BadgeBDG03}

	_, err := h.Handle(context.Background(), cmd)
	require.NoError(t, err)

	res, err := h.Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyShared, res.Outcome)
	assert.True(t, res.Success())
	assert.EqualValues(t, 0, res.ModifiedCount)
	assert.Equal(t, progress.Shared, rec.Module1.Game2.Badge3Shared)
}

func TestShareBadge_CreatesMissingGame2(t *testing.T) {
	repo := newMemRecords()
	rec := seedRecord(repo)
	rec.Module1.Game2 = nil
	h := NewShareBadgeHandler(repo, nil)

	res, err := h.Handle(context.Background(), ShareBadgeCommand{
		StudentTaskID: rec.ID.String(),
		GameCode:      progress.GameGM02,
		BadgeCode:     progress.BadgeBDG01,
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeShared, res.Outcome)
	assert.EqualValues(t, 1, res.ModifiedCount)

	require.NotNil(t, rec.Module1.Game2)
	assert.Equal(t, progress.Shared, rec.Module1.Game2.Badge1Shared)
	assert.Equal(t, progress.NotShared, rec.Module1.Game2.Badge2Shared)
	assert.Equal(t, progress.NotShared, rec.Module1.Game2.Badge3Shared)
}

func TestShareBadge_GM01BDG03TargetsThirdSlot(t *testing.T) {
	repo := newMemRecords()
	rec := seedRecord(repo)
	h := NewShareBadgeHandler(repo, nil)

	res, err := h.Handle(context.Background(), ShareBadgeCommand{
		StudentTaskID: rec.ID.String(),
		GameCode:      progress.GameGM01,
		BadgeCode:     progress.BadgeBDG03,
	})
	require.NoError(t, err)
	assert.Equal(t, "module1.game1.badge3Shared", res.Field.String())
	assert.Equal(t, progress.Shared, rec.Module1.Game1.Badge3Shared)
	assert.Equal(t, progress.NotShared, rec.Module1.Game1.Badge2Shared)
}

func TestShareBadge_NoMatchingRule(t *testing.T) {
	tests := []struct {
		name  string
		game  progress.GameCode
		badge progress.BadgeCode
	}{
		{"game3 is not shareable", progress.GameGM03, progress.BadgeBDG01},
		{"unknown badge", progress.GameGM01, "BDG09"},
		{"unknown game", "GM99", progress.BadgeBDG01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRecords()
			rec := seedRecord(repo)
			h := NewShareBadgeHandler(repo, nil)

			res, err := h.Handle(context.Background(), ShareBadgeCommand{
				StudentTaskID: rec.ID.String(),
				GameCode:      tt.game,
				BadgeCode:     tt.badge,
			})
			require.NoError(t, err)
			assert.Equal(t, OutcomeNoMatchingRule, res.Outcome)
			assert.False(t, res.Success())
			assert.Zero(t, repo.updates)
		})
	}
}

func TestShareBadge_Errors(t *testing.T) {
	repo := newMemRecords()
	h := NewShareBadgeHandler(repo, nil)
	ctx := context.Background()

	_, err := h.Handle(ctx, ShareBadgeCommand{StudentTaskID: "not-a-uuid", GameCode: progress.GameGM01, BadgeCode: progress.BadgeBDG01})
	assert.ErrorIs(t, err, shared.ErrInvalidRecordID)
	assert.True(t, shared.IsValidation(err))

	_, err = h.Handle(ctx, ShareBadgeCommand{StudentTaskID: uuid.NewString(), GameCode: progress.GameGM01, BadgeCode: progress.BadgeBDG01})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	boom := errors.New("store down")
	repo.err = boom
	rec := seedRecord(repo)
	_, err = h.Handle(ctx, ShareBadgeCommand{StudentTaskID: rec.ID.String(), GameCode: progress.GameGM01, BadgeCode: progress.BadgeBDG01})
	assert.ErrorIs(t, err, boom)
}
