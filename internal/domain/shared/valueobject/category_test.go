package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates a known category", func(t *testing.T) {
		c, err := NewCategory("Beef")
		require.NoError(t, err)
		assert.Equal(t, "Beef", c.Value())
	})

	t.Run("normalizes known categories case-insensitively", func(t *testing.T) {
		for _, raw := range []string{"beef", "Beef", "BEEF"} {
			c, err := NewCategory(raw)
			require.NoError(t, err)
			assert.Equal(t, CategoryBeef, c.Value())
		}
	})

	t.Run("keeps unrecognized values verbatim", func(t *testing.T) {
		c, err := NewCategory("CustomCategory")
		require.NoError(t, err)
		assert.Equal(t, "CustomCategory", c.Value())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		c, err := NewCategory("  Chicken  ")
		require.NoError(t, err)
		assert.Equal(t, "Chicken", c.Value())
	})

	t.Run("rejects empty category", func(t *testing.T) {
		_, err := NewCategory("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Category cannot be empty")
	})

	t.Run("rejects whitespace-only category", func(t *testing.T) {
		_, err := NewCategory("   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Category cannot be empty")
	})
}

func TestCategoryNormalizationIsIdempotent(t *testing.T) {
	first := MustNewCategory("dessert")
	second := MustNewCategory(first.Value())
	assert.Equal(t, first.Value(), second.Value())
	assert.Equal(t, CategoryDessert, second.Value())
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("Beef"))
	assert.True(t, IsValidCategory("CustomCategory"))
	assert.False(t, IsValidCategory(""))
	assert.False(t, IsValidCategory("   "))
}

func TestCategoryEquals(t *testing.T) {
	assert.True(t, MustNewCategory("Beef").Equals(MustNewCategory("beef")))
	assert.False(t, MustNewCategory("Beef").Equals(MustNewCategory("Chicken")))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "Vegetarian", MustNewCategory("Vegetarian").String())
}
