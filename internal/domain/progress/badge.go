package progress

import (
	"fmt"
	"strings"
)

// BadgeCode identifies a badge slot inside a game.
type BadgeCode string

const (
	BadgeBDG01 BadgeCode = "BDG01"
	BadgeBDG02 BadgeCode = "BDG02"
	BadgeBDG03 BadgeCode = "BDG03"
)

// BadgeField addresses one badge{N}Shared flag of one game slot.
type BadgeField struct {
	Game GameCode
	Slot int // 1..3
}

type badgeRule struct {
	game  GameCode
	badge BadgeCode
}

// badgeRules is the complete share table. Pairs not listed here are not
// shareable.
var badgeRules = map[badgeRule]BadgeField{
	{GameGM01, BadgeBDG01}: {Game: GameGM01, Slot: 1},
	{GameGM01, BadgeBDG02}: {Game: GameGM01, Slot: 2},
	{GameGM01, BadgeBDG03}: {Game: GameGM01, Slot: 3},
	{GameGM02, BadgeBDG01}: {Game: GameGM02, Slot: 1},
	{GameGM02, BadgeBDG02}: {Game: GameGM02, Slot: 2},
	{GameGM02, BadgeBDG03}: {Game: GameGM02, Slot: 3},
}

// ResolveBadge looks up the flag a (game, badge) pair shares.
func ResolveBadge(game GameCode, badge BadgeCode) (BadgeField, bool) {
	f, ok := badgeRules[badgeRule{game: game, badge: badge}]
	return f, ok
}

func gameKey(code GameCode) string {
	switch code {
	case GameGM01:
		return "game1"
	case GameGM02:
		return "game2"
	case GameGM03:
		return "game3"
	case GameGM04:
		return "game4"
	default:
		return ""
	}
}

// Path returns the document path of the flag, e.g.
// ["module1", "game1", "badge1Shared"].
func (f BadgeField) Path() []string {
	return []string{"module1", gameKey(f.Game), fmt.Sprintf("badge%dShared", f.Slot)}
}

// String returns the dotted document path.
func (f BadgeField) String() string {
	return strings.Join(f.Path(), ".")
}

func (f BadgeField) state(r *Record) *GameState {
	switch f.Game {
	case GameGM01:
		return &r.Module1.Game1.GameState
	case GameGM02:
		if r.Module1.Game2 == nil {
			return nil
		}
		return &r.Module1.Game2.GameState
	case GameGM03:
		return &r.Module1.Game3.GameState
	case GameGM04:
		return &r.Module1.Game4.GameState
	default:
		return nil
	}
}

func (s *GameState) flag(slot int) *ShareFlag {
	switch slot {
	case 1:
		return &s.Badge1Shared
	case 2:
		return &s.Badge2Shared
	case 3:
		return &s.Badge3Shared
	default:
		return nil
	}
}

// Get returns the current flag value of f on r.
func (f BadgeField) Get(r *Record) (ShareFlag, bool) {
	if r == nil {
		return "", false
	}
	st := f.state(r)
	if st == nil {
		return "", false
	}
	p := st.flag(f.Slot)
	if p == nil {
		return "", false
	}
	return *p, true
}

// InitialSlot returns a fresh slot for f's game with f already shared, for
// records that lack the slot. Only game2 is optional; other games return nil.
func (f BadgeField) InitialSlot() *MindMapGame {
	if f.Game != GameGM02 {
		return nil
	}
	g := newMindMapGame()
	p := g.flag(f.Slot)
	if p == nil {
		return nil
	}
	*p = Shared
	return g
}

// MarkShared sets the flag to "YES" and reports whether anything changed.
// Sharing is one-directional; an already-shared flag is left untouched.
// A missing game2 slot is created with the flag set.
func (f BadgeField) MarkShared(r *Record) bool {
	if r == nil {
		return false
	}
	if f.Game == GameGM02 && r.Module1.Game2 == nil {
		slot := f.InitialSlot()
		if slot == nil {
			return false
		}
		r.Module1.Game2 = slot
		return true
	}
	st := f.state(r)
	if st == nil {
		return false
	}
	p := st.flag(f.Slot)
	if p == nil || p.IsShared() {
		return false
	}
	*p = Shared
	return true
}
