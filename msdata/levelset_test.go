package msdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevelSet(t *testing.T) {
	s, err := ParseLevelSet("1-2,4")
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 4}, s.Levels())
	for level := 0; level <= 5; level++ {
		want := level == 1 || level == 2 || level == 4
		assert.Equal(t, want, s.Contains(level), "level %d", level)
	}
	assert.Equal(t, "1-2,4", s.String())
}

func TestParseLevelSetEmpty(t *testing.T) {
	s, err := ParseLevelSet("")
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())
	assert.Nil(t, s.Levels())
}

func TestParseLevelSetErrors(t *testing.T) {
	for _, spec := range []string{"a", "1-", "-2", "3-1", "1,,x", "1.5"} {
		_, err := ParseLevelSet(spec)
		assert.Error(t, err, "spec %q", spec)
	}
}

func TestLevelSetNil(t *testing.T) {
	var s *LevelSet
	assert.True(t, s.IsEmpty())
	assert.False(t, s.Contains(1))
	assert.Nil(t, s.Levels())
	assert.Equal(t, "", s.String())
}

func TestNewLevelSet(t *testing.T) {
	s := NewLevelSet(3, 1, 1, -2)
	assert.Equal(t, []int{1, 3}, s.Levels())
	assert.True(t, s.Contains(1))
	assert.False(t, s.Contains(-2))
	assert.Equal(t, "1,3", s.String())
}
