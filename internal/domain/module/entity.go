// Package module contains the read-only curriculum configuration: modules,
// their exam date, and the display thresholds of every game.
package module

import (
	"context"
	"time"

	"github.com/alem-hub/learning-progress/internal/domain/progress"
)

// Config is a module configuration document.
type Config struct {
	ModuleCode progress.ModuleCode `json:"moduleCode"`
	Name       string              `json:"name,omitempty"`
	ExamDate   *time.Time          `json:"examDate,omitempty"`
	Games      []GameConfig        `json:"games"`
}

// GameConfig describes one game of a module. Margins are display
// thresholds only; nil means the module does not define one.
type GameConfig struct {
	Code               progress.GameCode `json:"code"`
	Name               string            `json:"name,omitempty"`
	AchievementMargin1 *float64          `json:"achievementMargin1,omitempty"`
	AchievementMargin2 *float64          `json:"achievementMargin2,omitempty"`
	LikesMargin        *float64          `json:"likesMargin,omitempty"`
}

// Game returns the configuration of the game with the given code.
func (c *Config) Game(code progress.GameCode) (GameConfig, bool) {
	if c == nil {
		return GameConfig{}, false
	}
	for _, g := range c.Games {
		if g.Code == code {
			return g, true
		}
	}
	return GameConfig{}, false
}

// Repository reads module configuration.
type Repository interface {
	// FindByCode returns a module by code.
	// Returns ErrModuleNotFound if absent.
	FindByCode(ctx context.Context, code progress.ModuleCode) (*Config, error)

	// FindGame returns a single game of a module.
	// Returns ErrGameNotFound if the module or the game is absent.
	FindGame(ctx context.Context, moduleCode progress.ModuleCode, gameCode progress.GameCode) (*GameConfig, error)

	// Save creates or replaces a module document.
	Save(ctx context.Context, cfg *Config) error
}
