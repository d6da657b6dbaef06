package mealapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/cookbook/backend/internal/domain/recipe"
)

const (
	maxMealIngredients = 20
	descriptionPreview = 150

	defaultPrepTime = 15
	defaultCookTime = 30
	defaultServings = 4
)

// Mapper converts raw catalog records into domain recipes
type Mapper struct {
	categoryNames map[string]string
}

// NewMapper creates a mapper. categoryNames translates remote category
// labels to display names; labels without an entry pass through unchanged.
func NewMapper(categoryNames map[string]string) *Mapper {
	return &Mapper{categoryNames: categoryNames}
}

// ToDomain converts a full meal record fetched under the given category.
// The remote source carries no timing data, so prep time, cook time and
// servings get fixed defaults, and difficulty is estimated from the
// ingredient count.
func (m *Mapper) ToDomain(meal Meal, category string) (*recipe.Recipe, error) {
	name := meal.Str("strMeal")
	if name == "" {
		name = "Sin nombre"
	}

	ingredients := extractIngredients(meal)
	instructionsText := meal.Str("strInstructions")
	instructions := splitInstructions(instructionsText)
	if len(instructions) == 0 {
		instructions = []string{"Preparar según las instrucciones"}
	}

	difficulty := "medium"
	switch {
	case len(ingredients) <= 5:
		difficulty = "easy"
	case len(ingredients) >= 10:
		difficulty = "hard"
	}

	now := time.Now()
	return recipe.Reconstitute(recipe.Data{
		ID:           meal.Str("idMeal"),
		Name:         name,
		Description:  fmt.Sprintf("Receta de %s. %s...", name, preview(instructionsText)),
		Ingredients:  ingredients,
		Instructions: instructions,
		PrepTime:     defaultPrepTime,
		CookTime:     defaultCookTime,
		Servings:     defaultServings,
		Difficulty:   difficulty,
		Category:     m.translateCategory(category),
		ImageURL:     meal.Str("strMealThumb"),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (m *Mapper) translateCategory(category string) string {
	if translated, ok := m.categoryNames[category]; ok {
		return translated
	}
	return category
}

// extractIngredients walks the numbered strIngredientN/strMeasureN pairs
// and joins each measure with its ingredient
func extractIngredients(meal Meal) []string {
	ingredients := make([]string, 0, maxMealIngredients)
	for i := 1; i <= maxMealIngredients; i++ {
		ingredient := strings.TrimSpace(meal.Str(fmt.Sprintf("strIngredient%d", i)))
		if ingredient == "" {
			continue
		}
		measure := strings.TrimSpace(meal.Str(fmt.Sprintf("strMeasure%d", i)))
		ingredients = append(ingredients, strings.TrimSpace(measure+" "+ingredient))
	}
	return ingredients
}

// splitInstructions splits the instruction text on line breaks, dropping
// blank lines
func splitInstructions(text string) []string {
	lines := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	steps := make([]string, 0, len(lines))
	for _, line := range lines {
		step := strings.TrimSpace(line)
		if step != "" {
			steps = append(steps, step)
		}
	}
	return steps
}

// preview returns the first characters of the instruction text
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= descriptionPreview {
		return text
	}
	return string(runes[:descriptionPreview])
}
