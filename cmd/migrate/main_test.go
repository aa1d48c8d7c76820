package main

import (
	"testing"
	"time"

	"github.com/alem-hub/learning-progress/internal/domain/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultModule(t *testing.T) {
	cfg, err := defaultModule("", "", nil)
	require.NoError(t, err)

	assert.Equal(t, progress.ModuleMD01, cfg.ModuleCode)
	assert.Nil(t, cfg.ExamDate)
	require.Len(t, cfg.Games, 4)

	gm3, ok := cfg.Game(progress.GameGM03)
	require.True(t, ok)
	require.NotNil(t, gm3.LikesMargin)
	assert.Equal(t, 10.0, *gm3.LikesMargin)

	gm2, ok := cfg.Game(progress.GameGM02)
	require.True(t, ok)
	assert.Nil(t, gm2.AchievementMargin1)
}

func TestDefaultModule_ExamDate(t *testing.T) {
	cfg, err := defaultModule("MD02", "2024-06-15", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, progress.ModuleCode("MD02"), cfg.ModuleCode)
	require.NotNil(t, cfg.ExamDate)
	assert.Equal(t, time.June, cfg.ExamDate.Month())

	_, err = defaultModule("", "15/06/2024", time.UTC)
	assert.Error(t, err)
}
