package valueobject

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cookbook/backend/internal/domain/shared"
)

// Servings bounds
const (
	MinServings = 1
	MaxServings = 100
)

// Servings is a value object representing how many portions a recipe yields.
// It is immutable - scaling returns a new instance.
type Servings struct {
	value int
}

// NewServings creates a Servings from an integer count
func NewServings(value int) (Servings, error) {
	if value < MinServings {
		return Servings{}, shared.NewValidationError(
			fmt.Sprintf("Servings must be at least %d", MinServings))
	}
	if value > MaxServings {
		return Servings{}, shared.NewValidationError(
			fmt.Sprintf("Servings cannot exceed %d", MaxServings))
	}
	return Servings{value: value}, nil
}

// NewServingsFromFloat creates a Servings from a float64, rejecting
// fractional values. Used when the input arrives as a JSON number.
func NewServingsFromFloat(value float64) (Servings, error) {
	if value != float64(int(value)) {
		return Servings{}, shared.NewValidationError("Servings must be a whole number")
	}
	return NewServings(int(value))
}

// MustNewServings creates a Servings and panics on error
func MustNewServings(value int) Servings {
	s, err := NewServings(value)
	if err != nil {
		panic(err)
	}
	return s
}

// Value returns the number of servings
func (s Servings) Value() int {
	return s.value
}

// Multiply scales the servings by a factor, rounding the product to the
// nearest integer and re-validating the range
func (s Servings) Multiply(factor float64) (Servings, error) {
	scaled := decimal.NewFromInt(int64(s.value)).
		Mul(decimal.NewFromFloat(factor)).
		Round(0)
	return NewServings(int(scaled.IntPart()))
}

// Equals returns true if both servings hold the same value
func (s Servings) Equals(other Servings) bool {
	return s.value == other.value
}

// String returns a display representation such as "4 servings"
func (s Servings) String() string {
	if s.value == 1 {
		return "1 serving"
	}
	return fmt.Sprintf("%d servings", s.value)
}

// MarshalJSON implements json.Marshaler
func (s Servings) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}

// UnmarshalJSON implements json.Unmarshaler, validating on the way in
func (s *Servings) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	sv, err := NewServingsFromFloat(v)
	if err != nil {
		return err
	}
	*s = sv
	return nil
}
