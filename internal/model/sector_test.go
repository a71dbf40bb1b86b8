package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelGroup, "group"},
		{LevelCategory, "category"},
		{LevelSubsector, "subsector"},
		{Level(7), "level(7)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}

func TestPaths(t *testing.T) {
	assert.Equal(t, Path("110"), GroupPath("110"))
	assert.Equal(t, Path("110/111"), CategoryPath("110", "111"))
	assert.Equal(t, Path("110/111/11120@0"), SubsectorPath("110", "111", 0, "11120"))
	assert.NotEqual(t, SubsectorPath("110", "111", 0, "11120"), SubsectorPath("110", "111", 1, "11120"))
}

func TestLevelUnmarshalText(t *testing.T) {
	var l Level
	assert.NoError(t, l.UnmarshalText([]byte("category")))
	assert.Equal(t, LevelCategory, l)
	assert.Error(t, l.UnmarshalText([]byte("ring")))
}
