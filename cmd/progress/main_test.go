package main

import (
	"context"
	"testing"
	"time"

	"github.com/alem-hub/learning-progress/config"

	"github.com/stretchr/testify/assert"
)

func TestDispatch_Usage(t *testing.T) {
	var h handlers
	ctx := context.Background()

	for _, args := range [][]string{
		nil,
		{"create"},
		{"share", "id", "GM01"},
		{"mood", "id"},
		{"marks"},
		{"delete", "id"},
	} {
		_, err := h.dispatch(ctx, args, time.UTC)
		assert.ErrorIs(t, err, errUsage, "%v", args)
	}
}

func TestRedisConfig(t *testing.T) {
	rc := redisConfig(config.RedisConfig{Host: "cache", Port: 6380, DB: 2})
	assert.Equal(t, "cache:6380", rc.Addr())
	assert.Equal(t, 2, rc.DB)
	assert.Equal(t, 10, rc.PoolSize)

	rc = redisConfig(config.RedisConfig{})
	assert.Equal(t, "localhost:6379", rc.Addr())
}
