package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDifficulty(t *testing.T) {
	t.Run("creates each level", func(t *testing.T) {
		for _, level := range []string{DifficultyEasy, DifficultyMedium, DifficultyHard} {
			d, err := NewDifficulty(level)
			require.NoError(t, err)
			assert.Equal(t, level, d.Value())
		}
	})

	t.Run("rejects unknown levels", func(t *testing.T) {
		_, err := NewDifficulty("invalid")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid difficulty level: invalid. Must be 'easy', 'medium', or 'hard'")
	})

	t.Run("rejects empty string", func(t *testing.T) {
		_, err := NewDifficulty("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid difficulty level")
	})

	t.Run("is case-sensitive", func(t *testing.T) {
		_, err := NewDifficulty("Easy")
		require.Error(t, err)
	})
}

func TestIsValidDifficulty(t *testing.T) {
	assert.True(t, IsValidDifficulty("easy"))
	assert.True(t, IsValidDifficulty("medium"))
	assert.True(t, IsValidDifficulty("hard"))
	assert.False(t, IsValidDifficulty("Easy"))
	assert.False(t, IsValidDifficulty(""))
	assert.False(t, IsValidDifficulty("extreme"))
}

func TestDifficultyEquals(t *testing.T) {
	assert.True(t, MustNewDifficulty("medium").Equals(MustNewDifficulty("medium")))
	assert.False(t, MustNewDifficulty("easy").Equals(MustNewDifficulty("hard")))
}

func TestDifficultyString(t *testing.T) {
	assert.Equal(t, "hard", MustNewDifficulty("hard").String())
}
