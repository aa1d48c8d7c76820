package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alem-hub/learning-progress/internal/domain/module"
	"github.com/alem-hub/learning-progress/internal/domain/progress"
	"github.com/alem-hub/learning-progress/internal/domain/shared"
)

// ModuleRepository implements module.Repository on the modules table.
type ModuleRepository struct {
	q Querier
}

// NewModuleRepository creates a new ModuleRepository.
func NewModuleRepository(q Querier) *ModuleRepository {
	return &ModuleRepository{q: q}
}

// FindByCode returns a module document.
func (r *ModuleRepository) FindByCode(ctx context.Context, code progress.ModuleCode) (*module.Config, error) {
	var doc []byte
	err := r.q.QueryRow(ctx, `SELECT doc FROM modules WHERE module_code = $1`, string(code)).Scan(&doc)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrModuleNotFound
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	var cfg module.Config
	if err := json.Unmarshal(doc, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal module: %w", err)
	}

	return &cfg, nil
}

// FindGame returns only the matching element of the module's games array.
func (r *ModuleRepository) FindGame(ctx context.Context, moduleCode progress.ModuleCode, gameCode progress.GameCode) (*module.GameConfig, error) {
	var doc []byte
	err := r.q.QueryRow(ctx, `
		SELECT g
		FROM modules m, jsonb_array_elements(m.doc->'games') AS g
		WHERE m.module_code = $1 AND g->>'code' = $2
		LIMIT 1
	`, string(moduleCode), string(gameCode)).Scan(&doc)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var game module.GameConfig
	if err := json.Unmarshal(doc, &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

// Save upserts a module document.
func (r *ModuleRepository) Save(ctx context.Context, cfg *module.Config) error {
	doc, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal module: %w", err)
	}

	_, err = r.q.Exec(ctx, `
		INSERT INTO modules (module_code, doc) VALUES ($1, $2)
		ON CONFLICT (module_code) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()
	`, string(cfg.ModuleCode), doc)
	if err != nil {
		return fmt.Errorf("failed to save module: %w", err)
	}

	return nil
}
