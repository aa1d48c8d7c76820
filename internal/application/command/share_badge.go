package command

import (
	"context"
	"fmt"

	"github.com/alem-hub/learning-progress/internal/domain/progress"
	"github.com/alem-hub/learning-progress/internal/domain/shared"
	"github.com/alem-hub/learning-progress/pkg/logger"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// SHARE BADGE COMMAND
// Marks one badge of one game as shared. The (game, badge) pair is resolved
// through the static share table in the progress domain.
// ══════════════════════════════════════════════════════════════════════════════

// ShareOutcome describes what a share request did.
type ShareOutcome string

const (
	// OutcomeShared - the flag went from "NO" to "YES".
	OutcomeShared ShareOutcome = "shared"

	// OutcomeAlreadyShared - the flag was already "YES", nothing changed.
	OutcomeAlreadyShared ShareOutcome = "already_shared"

	// OutcomeNoMatchingRule - the (game, badge) pair is not shareable.
	OutcomeNoMatchingRule ShareOutcome = "no_matching_rule"
)

// ShareBadgeCommand contains the data to share a badge.
type ShareBadgeCommand struct {
	// StudentTaskID is the ID of the progress record (not the student ID).
	StudentTaskID string

	// GameCode is the game the badge belongs to ("GM01" or "GM02").
	GameCode progress.GameCode

	// BadgeCode is the badge slot ("BDG01".."BDG03").
	BadgeCode progress.BadgeCode
}

// ShareBadgeResult contains the result of sharing a badge.
type ShareBadgeResult struct {
	Outcome ShareOutcome

	// Field is the flag that was targeted. Zero for OutcomeNoMatchingRule.
	Field progress.BadgeField

	MatchedCount  int64
	ModifiedCount int64
}

// Success reports whether the request hit a shareable flag.
func (r *ShareBadgeResult) Success() bool {
	return r.Outcome == OutcomeShared || r.Outcome == OutcomeAlreadyShared
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// ShareBadgeHandler handles the ShareBadgeCommand.
type ShareBadgeHandler struct {
	records progress.Repository
	log     *logger.Logger
}

// NewShareBadgeHandler creates a new ShareBadgeHandler.
func NewShareBadgeHandler(records progress.Repository, log *logger.Logger) *ShareBadgeHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ShareBadgeHandler{
		records: records,
		log:     log.With(logger.Component("command"), logger.Operation("share_badge")),
	}
}

// Handle executes the share badge command.
//
// An unknown (game, badge) pair is not an error: no write is issued and the
// result carries OutcomeNoMatchingRule.
func (h *ShareBadgeHandler) Handle(ctx context.Context, cmd ShareBadgeCommand) (*ShareBadgeResult, error) {
	id, err := uuid.Parse(cmd.StudentTaskID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidRecordID, err)
	}

	log := h.log.With(
		logger.RecordID(id.String()),
		logger.GameCode(string(cmd.GameCode)),
		logger.BadgeCode(string(cmd.BadgeCode)),
	)

	field, ok := progress.ResolveBadge(cmd.GameCode, cmd.BadgeCode)
	if !ok {
		log.Warn("no badge rule for share request")
		return &ShareBadgeResult{Outcome: OutcomeNoMatchingRule}, nil
	}

	res, err := h.records.SetBadgeShared(ctx, id, field)
	if err != nil {
		log.Error("failed to share badge", logger.Err(err))
		return nil, fmt.Errorf("share_badge: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, shared.ErrProgressRecordNotFound
	}

	outcome := OutcomeShared
	if res.ModifiedCount == 0 {
		outcome = OutcomeAlreadyShared
	}

	log.Info("badge shared",
		logger.String("field", field.String()),
		logger.String("outcome", string(outcome)),
	)

	return &ShareBadgeResult{
		Outcome:       outcome,
		Field:         field,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}
