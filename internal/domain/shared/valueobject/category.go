package valueobject

import (
	"encoding/json"
	"strings"

	"github.com/cookbook/backend/internal/domain/shared"
)

// Canonical category names. Categorization is open-ended: any non-empty
// value is accepted, but values matching one of these case-insensitively
// are normalized to the canonical casing.
const (
	CategoryBeef       = "Beef"
	CategoryChicken    = "Chicken"
	CategoryPork       = "Pork"
	CategorySeafood    = "Seafood"
	CategoryVegetarian = "Vegetarian"
	CategoryVegan      = "Vegan"
	CategoryPasta      = "Pasta"
	CategoryDessert    = "Dessert"
	CategoryBreakfast  = "Breakfast"
	CategorySalad      = "Salad"
	CategorySoup       = "Soup"
	CategoryAppetizer  = "Appetizer"
)

var canonicalCategories = []string{
	CategoryBeef,
	CategoryChicken,
	CategoryPork,
	CategorySeafood,
	CategoryVegetarian,
	CategoryVegan,
	CategoryPasta,
	CategoryDessert,
	CategoryBreakfast,
	CategorySalad,
	CategorySoup,
	CategoryAppetizer,
}

// Category is a value object representing a recipe's category
type Category struct {
	value string
}

// NewCategory creates a Category from a raw string, trimming whitespace
// and normalizing known category names to their canonical casing
func NewCategory(value string) (Category, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Category{}, shared.NewValidationError("Category cannot be empty")
	}
	return Category{value: normalizeCategory(trimmed)}, nil
}

// MustNewCategory creates a Category and panics on error
func MustNewCategory(value string) Category {
	c, err := NewCategory(value)
	if err != nil {
		panic(err)
	}
	return c
}

func normalizeCategory(value string) string {
	for _, canonical := range canonicalCategories {
		if strings.EqualFold(canonical, value) {
			return canonical
		}
	}
	return value
}

// IsValidCategory reports whether value is a usable category
func IsValidCategory(value string) bool {
	return strings.TrimSpace(value) != ""
}

// Value returns the category string
func (c Category) Value() string {
	return c.value
}

// Equals returns true if both categories hold the same value
func (c Category) Equals(other Category) bool {
	return c.value == other.value
}

// String returns the category for display
func (c Category) String() string {
	return c.value
}

// MarshalJSON implements json.Marshaler
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value)
}

// UnmarshalJSON implements json.Unmarshaler, validating on the way in
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	cat, err := NewCategory(s)
	if err != nil {
		return err
	}
	*c = cat
	return nil
}
