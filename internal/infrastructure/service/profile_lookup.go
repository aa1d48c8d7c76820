// Package service contains adapters that compose infrastructure pieces into
// the collaborator interfaces used by the application layer.
package service

import (
	"context"
	"errors"

	"github.com/alem-hub/learning-progress/internal/domain/user"
	rediscache "github.com/alem-hub/learning-progress/internal/infrastructure/persistence/redis"
	"github.com/alem-hub/learning-progress/pkg/logger"

	"github.com/google/uuid"
)

// CachedProfileLookup is a read-through user.Lookup. A cache failure never
// fails the lookup, it only falls back to the source.
//
// User accounts are written by the accounts service, not here, so nothing in
// this service invalidates on write. A cached profile can therefore be stale
// for up to the cache TTL (PROGRESS_PROFILE_CACHE_TTL). Writers that share
// the cache call Invalidate after changing a profile.
type CachedProfileLookup struct {
	source user.Lookup
	cache  user.ProfileCache
	log    *logger.Logger
}

// NewCachedProfileLookup creates a new CachedProfileLookup. A nil cache
// turns it into a plain pass-through.
func NewCachedProfileLookup(source user.Lookup, cache user.ProfileCache, log *logger.Logger) *CachedProfileLookup {
	if log == nil {
		log = logger.Nop()
	}
	return &CachedProfileLookup{
		source: source,
		cache:  cache,
		log:    log.With(logger.Component("profile_lookup")),
	}
}

// GetByID returns the profile from cache, or from the source on a miss.
// Source errors are returned unchanged.
func (l *CachedProfileLookup) GetByID(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	if l.cache != nil {
		p, err := l.cache.Get(ctx, id)
		if err == nil && p != nil {
			return p, nil
		}
		if err != nil && !errors.Is(err, rediscache.ErrCacheMiss) {
			l.log.Warn("profile cache read failed",
				logger.StudentID(id.String()),
				logger.Err(err),
			)
		}
	}

	p, err := l.source.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, p); err != nil {
			l.log.Warn("profile cache write failed",
				logger.StudentID(id.String()),
				logger.Err(err),
			)
		}
	}

	return p, nil
}

// Invalidate drops a cached profile so the next GetByID reads the source.
func (l *CachedProfileLookup) Invalidate(ctx context.Context, id uuid.UUID) error {
	if l.cache == nil {
		return nil
	}
	return l.cache.Invalidate(ctx, id)
}
