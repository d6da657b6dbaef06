package valueobject

import (
	"encoding/json"
	"fmt"

	"github.com/cookbook/backend/internal/domain/shared"
)

// Cooking time bounds in minutes
const (
	MinCookingMinutes = 0
	MaxCookingMinutes = 1440 // 24 hours
)

// CookingTime is a value object representing a duration in whole minutes.
// It is immutable - arithmetic returns new instances.
type CookingTime struct {
	minutes int
}

// NewCookingTime creates a CookingTime from a number of minutes
func NewCookingTime(minutes int) (CookingTime, error) {
	if minutes < MinCookingMinutes {
		return CookingTime{}, shared.NewValidationError("Cooking time cannot be negative")
	}
	if minutes > MaxCookingMinutes {
		return CookingTime{}, shared.NewValidationError(
			fmt.Sprintf("Cooking time cannot exceed %d minutes (24 hours)", MaxCookingMinutes))
	}
	return CookingTime{minutes: minutes}, nil
}

// NewCookingTimeFromFloat creates a CookingTime from a float64, rejecting
// fractional values. Used when the input arrives as a JSON number.
func NewCookingTimeFromFloat(minutes float64) (CookingTime, error) {
	if minutes != float64(int(minutes)) {
		return CookingTime{}, shared.NewValidationError("Cooking time must be a whole number of minutes")
	}
	return NewCookingTime(int(minutes))
}

// MustNewCookingTime creates a CookingTime and panics on error
func MustNewCookingTime(minutes int) CookingTime {
	t, err := NewCookingTime(minutes)
	if err != nil {
		panic(err)
	}
	return t
}

// Minutes returns the duration in minutes
func (t CookingTime) Minutes() int {
	return t.minutes
}

// Add returns the sum of both times, re-validated against the ceiling
func (t CookingTime) Add(other CookingTime) (CookingTime, error) {
	return NewCookingTime(t.minutes + other.minutes)
}

// Equals returns true if both times hold the same number of minutes
func (t CookingTime) Equals(other CookingTime) bool {
	return t.minutes == other.minutes
}

// String returns a display representation such as "45 minutes"
func (t CookingTime) String() string {
	return fmt.Sprintf("%d minutes", t.minutes)
}

// MarshalJSON implements json.Marshaler
func (t CookingTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.minutes)
}

// UnmarshalJSON implements json.Unmarshaler, validating on the way in
func (t *CookingTime) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	ct, err := NewCookingTimeFromFloat(v)
	if err != nil {
		return err
	}
	*t = ct
	return nil
}
