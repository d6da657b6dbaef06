package valueobject

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cookbook/backend/internal/domain/shared"
)

// Recipe name length bounds
const (
	MinNameLength = 3
	MaxNameLength = 100
)

// RecipeName is a value object representing a recipe's display name.
// Input is trimmed before validation and storage.
type RecipeName struct {
	value string
}

// NewRecipeName creates a RecipeName from a raw string
func NewRecipeName(value string) (RecipeName, error) {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		return RecipeName{}, shared.NewValidationError("Recipe name cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) < MinNameLength {
		return RecipeName{}, shared.NewValidationError(
			fmt.Sprintf("Recipe name must be at least %d characters long", MinNameLength))
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return RecipeName{}, shared.NewValidationError(
			fmt.Sprintf("Recipe name cannot exceed %d characters", MaxNameLength))
	}

	return RecipeName{value: trimmed}, nil
}

// MustNewRecipeName creates a RecipeName and panics on error
func MustNewRecipeName(value string) RecipeName {
	n, err := NewRecipeName(value)
	if err != nil {
		panic(err)
	}
	return n
}

// Value returns the underlying name string
func (n RecipeName) Value() string {
	return n.value
}

// Equals returns true if both names hold the same value
func (n RecipeName) Equals(other RecipeName) bool {
	return n.value == other.value
}

// String returns the name for display
func (n RecipeName) String() string {
	return n.value
}

// MarshalJSON implements json.Marshaler
func (n RecipeName) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.value)
}

// UnmarshalJSON implements json.Unmarshaler, validating on the way in
func (n *RecipeName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	name, err := NewRecipeName(s)
	if err != nil {
		return err
	}
	*n = name
	return nil
}
