package mealapi

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mealFixture(name, id string, ingredientCount int) Meal {
	meal := Meal{
		"idMeal":          id,
		"strMeal":         name,
		"strInstructions": "Chop everything.\r\nCook it all.\n\nServe hot.",
		"strMealThumb":    "https://example.com/thumb.jpg",
	}
	for i := 1; i <= ingredientCount; i++ {
		meal[fmt.Sprintf("strIngredient%d", i)] = fmt.Sprintf("ingredient %d", i)
		meal[fmt.Sprintf("strMeasure%d", i)] = "1 cup"
	}
	return meal
}

func TestMapperToDomain(t *testing.T) {
	mapper := NewMapper(nil)

	t.Run("maps the full record", func(t *testing.T) {
		r, err := mapper.ToDomain(mealFixture("Beef Wellington", "52803", 7), "Beef")
		require.NoError(t, err)

		assert.Equal(t, "52803", r.ID())
		assert.Equal(t, "Beef Wellington", r.Name().Value())
		assert.Equal(t, "Beef", r.Category().Value())
		assert.Equal(t, "https://example.com/thumb.jpg", r.ImageURL())
		assert.Equal(t, 15, r.PrepTime().Minutes())
		assert.Equal(t, 30, r.CookTime().Minutes())
		assert.Equal(t, 4, r.Servings().Value())
		assert.True(t, strings.HasPrefix(r.Description(), "Receta de Beef Wellington."))
	})

	t.Run("joins measures with ingredients", func(t *testing.T) {
		r, err := mapper.ToDomain(mealFixture("Stew", "1", 2), "Beef")
		require.NoError(t, err)
		assert.Equal(t, []string{"1 cup ingredient 1", "1 cup ingredient 2"}, r.Ingredients())
	})

	t.Run("skips blank ingredient slots", func(t *testing.T) {
		meal := mealFixture("Stew", "1", 2)
		meal["strIngredient3"] = "   "
		meal["strIngredient4"] = "salt"
		meal["strMeasure4"] = nil

		r, err := mapper.ToDomain(meal, "Beef")
		require.NoError(t, err)
		assert.Equal(t, []string{"1 cup ingredient 1", "1 cup ingredient 2", "salt"}, r.Ingredients())
	})

	t.Run("splits instructions on any line break style", func(t *testing.T) {
		r, err := mapper.ToDomain(mealFixture("Stew", "1", 3), "Beef")
		require.NoError(t, err)
		assert.Equal(t, []string{"Chop everything.", "Cook it all.", "Serve hot."}, r.Instructions())
	})

	t.Run("empty instructions get a placeholder step", func(t *testing.T) {
		meal := mealFixture("Stew", "1", 3)
		meal["strInstructions"] = ""

		r, err := mapper.ToDomain(meal, "Beef")
		require.NoError(t, err)
		assert.Equal(t, []string{"Preparar según las instrucciones"}, r.Instructions())
	})

	t.Run("difficulty follows the ingredient count", func(t *testing.T) {
		easy, err := mapper.ToDomain(mealFixture("A", "1", 5), "Beef")
		require.NoError(t, err)
		assert.Equal(t, "easy", easy.Difficulty().Value())

		medium, err := mapper.ToDomain(mealFixture("B", "2", 7), "Beef")
		require.NoError(t, err)
		assert.Equal(t, "medium", medium.Difficulty().Value())

		hard, err := mapper.ToDomain(mealFixture("C", "3", 10), "Beef")
		require.NoError(t, err)
		assert.Equal(t, "hard", hard.Difficulty().Value())
	})

	t.Run("missing name gets the placeholder", func(t *testing.T) {
		meal := mealFixture("", "1", 3)
		r, err := mapper.ToDomain(meal, "Beef")
		require.NoError(t, err)
		assert.Equal(t, "Sin nombre", r.Name().Value())
	})

	t.Run("category labels are translated through the configured map", func(t *testing.T) {
		translated := NewMapper(map[string]string{"Beef": "Carne", "Dessert": "Postres"})

		r, err := translated.ToDomain(mealFixture("Stew", "1", 3), "Beef")
		require.NoError(t, err)
		assert.Equal(t, "Carne", r.Category().Value())

		r, err = translated.ToDomain(mealFixture("Paella", "2", 3), "Seafood")
		require.NoError(t, err)
		assert.Equal(t, "Seafood", r.Category().Value())
	})

	t.Run("long instruction text is previewed in the description", func(t *testing.T) {
		meal := mealFixture("Stew", "1", 3)
		meal["strInstructions"] = strings.Repeat("x", 400)

		r, err := mapper.ToDomain(meal, "Beef")
		require.NoError(t, err)
		assert.Equal(t, "Receta de Stew. "+strings.Repeat("x", 150)+"...", r.Description())
	})
}
