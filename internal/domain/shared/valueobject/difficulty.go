package valueobject

import (
	"encoding/json"
	"fmt"

	"github.com/cookbook/backend/internal/domain/shared"
)

// Difficulty levels (closed set, case-sensitive)
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Difficulty is a value object representing how hard a recipe is to prepare
type Difficulty struct {
	value string
}

// NewDifficulty creates a Difficulty from a raw string
func NewDifficulty(value string) (Difficulty, error) {
	if !IsValidDifficulty(value) {
		return Difficulty{}, shared.NewValidationError(
			fmt.Sprintf("Invalid difficulty level: %s. Must be 'easy', 'medium', or 'hard'", value))
	}
	return Difficulty{value: value}, nil
}

// MustNewDifficulty creates a Difficulty and panics on error
func MustNewDifficulty(value string) Difficulty {
	d, err := NewDifficulty(value)
	if err != nil {
		panic(err)
	}
	return d
}

// IsValidDifficulty reports whether value is one of the three levels
func IsValidDifficulty(value string) bool {
	switch value {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Value returns the difficulty level string
func (d Difficulty) Value() string {
	return d.value
}

// Equals returns true if both difficulties hold the same level
func (d Difficulty) Equals(other Difficulty) bool {
	return d.value == other.value
}

// String returns the level for display
func (d Difficulty) String() string {
	return d.value
}

// MarshalJSON implements json.Marshaler
func (d Difficulty) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.value)
}

// UnmarshalJSON implements json.Unmarshaler, validating on the way in
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	df, err := NewDifficulty(s)
	if err != nil {
		return err
	}
	*d = df
	return nil
}
