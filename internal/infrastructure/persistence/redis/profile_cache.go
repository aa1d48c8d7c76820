package redis

import (
	"context"
	"time"

	"github.com/alem-hub/learning-progress/internal/domain/user"

	"github.com/google/uuid"
)

// ProfileCache implements user.ProfileCache on the generic Cache.
type ProfileCache struct {
	cache *Cache
	ttl   time.Duration
}

// NewProfileCache creates a new ProfileCache. A non-positive ttl uses
// TTLProfileCache.
func NewProfileCache(cache *Cache, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = TTLProfileCache
	}
	return &ProfileCache{cache: cache, ttl: ttl}
}

// Get returns a cached profile or ErrCacheMiss.
func (p *ProfileCache) Get(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	var profile user.Profile
	if err := p.cache.Get(ctx, ProfileKey(id.String()), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Set caches a profile.
func (p *ProfileCache) Set(ctx context.Context, profile *user.Profile) error {
	if profile == nil {
		return nil
	}
	return p.cache.Set(ctx, ProfileKey(profile.ID.String()), profile, p.ttl)
}

// Invalidate removes a cached profile.
func (p *ProfileCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return p.cache.Delete(ctx, ProfileKey(id.String()))
}
