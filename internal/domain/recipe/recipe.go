package recipe

import (
	"time"

	"github.com/google/uuid"

	"github.com/cookbook/backend/internal/domain/shared"
	"github.com/cookbook/backend/internal/domain/shared/valueobject"
)

// ErrNotFound is returned when no recipe matches a given id
var ErrNotFound = shared.NewNotFoundError("Recipe not found")

// Recipe is the aggregate root of the catalog. It is immutable: every
// mutation produces a new instance sharing the unchanged fields, and every
// value-object typed field is valid by construction.
type Recipe struct {
	id           string
	name         valueobject.RecipeName
	description  string
	ingredients  []string
	instructions []string
	prepTime     valueobject.CookingTime
	cookTime     valueobject.CookingTime
	servings     valueobject.Servings
	difficulty   valueobject.Difficulty
	category     valueobject.Category
	imageURL     string // empty means no image
	createdAt    time.Time
	updatedAt    time.Time
}

// NewParams carries the raw fields for creating a fresh recipe
type NewParams struct {
	Name         string
	Description  string
	Ingredients  []string
	Instructions []string
	PrepTime     int
	CookTime     int
	Servings     int
	Difficulty   string
	Category     string
	ImageURL     string
}

// New creates a recipe with a fresh identity and timestamps. Every field
// is validated through its value object's factory.
func New(params NewParams) (*Recipe, error) {
	now := time.Now()
	return build(uuid.NewString(), params, now, now)
}

// Data carries the raw fields of a stored or transmitted recipe
type Data struct {
	ID           string
	Name         string
	Description  string
	Ingredients  []string
	Instructions []string
	PrepTime     int
	CookTime     int
	Servings     int
	Difficulty   string
	Category     string
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Reconstitute rebuilds a recipe from persisted data, re-validating every
// field so corrupted records fail here instead of entering the domain.
func Reconstitute(data Data) (*Recipe, error) {
	return build(data.ID, NewParams{
		Name:         data.Name,
		Description:  data.Description,
		Ingredients:  data.Ingredients,
		Instructions: data.Instructions,
		PrepTime:     data.PrepTime,
		CookTime:     data.CookTime,
		Servings:     data.Servings,
		Difficulty:   data.Difficulty,
		Category:     data.Category,
		ImageURL:     data.ImageURL,
	}, data.CreatedAt, data.UpdatedAt)
}

func build(id string, params NewParams, createdAt, updatedAt time.Time) (*Recipe, error) {
	name, err := valueobject.NewRecipeName(params.Name)
	if err != nil {
		return nil, err
	}
	prepTime, err := valueobject.NewCookingTime(params.PrepTime)
	if err != nil {
		return nil, err
	}
	cookTime, err := valueobject.NewCookingTime(params.CookTime)
	if err != nil {
		return nil, err
	}
	servings, err := valueobject.NewServings(params.Servings)
	if err != nil {
		return nil, err
	}
	difficulty, err := valueobject.NewDifficulty(params.Difficulty)
	if err != nil {
		return nil, err
	}
	category, err := valueobject.NewCategory(params.Category)
	if err != nil {
		return nil, err
	}

	return &Recipe{
		id:           id,
		name:         name,
		description:  params.Description,
		ingredients:  params.Ingredients,
		instructions: params.Instructions,
		prepTime:     prepTime,
		cookTime:     cookTime,
		servings:     servings,
		difficulty:   difficulty,
		category:     category,
		imageURL:     params.ImageURL,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

// Patch carries a partial update. Nil fields are left unchanged; only
// ImageURL may be explicitly cleared (pointer to an empty string).
type Patch struct {
	Name         *string
	Description  *string
	Ingredients  []string
	Instructions []string
	PrepTime     *int
	CookTime     *int
	Servings     *int
	Difficulty   *string
	Category     *string
	ImageURL     *string
}

// Update merges the patch over the recipe and returns a new instance with
// a fresh updatedAt. Identity and createdAt are always carried over.
func (r *Recipe) Update(patch Patch) (*Recipe, error) {
	next := NewParams{
		Name:         r.name.Value(),
		Description:  r.description,
		Ingredients:  r.ingredients,
		Instructions: r.instructions,
		PrepTime:     r.prepTime.Minutes(),
		CookTime:     r.cookTime.Minutes(),
		Servings:     r.servings.Value(),
		Difficulty:   r.difficulty.Value(),
		Category:     r.category.Value(),
		ImageURL:     r.imageURL,
	}

	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Ingredients != nil {
		next.Ingredients = patch.Ingredients
	}
	if patch.Instructions != nil {
		next.Instructions = patch.Instructions
	}
	if patch.PrepTime != nil {
		next.PrepTime = *patch.PrepTime
	}
	if patch.CookTime != nil {
		next.CookTime = *patch.CookTime
	}
	if patch.Servings != nil {
		next.Servings = *patch.Servings
	}
	if patch.Difficulty != nil {
		next.Difficulty = *patch.Difficulty
	}
	if patch.Category != nil {
		next.Category = *patch.Category
	}
	if patch.ImageURL != nil {
		next.ImageURL = *patch.ImageURL
	}

	return build(r.id, next, r.createdAt, time.Now())
}

// ID returns the recipe's identity
func (r *Recipe) ID() string {
	return r.id
}

// Name returns the recipe name
func (r *Recipe) Name() valueobject.RecipeName {
	return r.name
}

// Description returns the free-text description
func (r *Recipe) Description() string {
	return r.description
}

// Ingredients returns a copy of the ordered ingredient list
func (r *Recipe) Ingredients() []string {
	out := make([]string, len(r.ingredients))
	copy(out, r.ingredients)
	return out
}

// Instructions returns a copy of the ordered instruction steps
func (r *Recipe) Instructions() []string {
	out := make([]string, len(r.instructions))
	copy(out, r.instructions)
	return out
}

// PrepTime returns the preparation time
func (r *Recipe) PrepTime() valueobject.CookingTime {
	return r.prepTime
}

// CookTime returns the cooking time
func (r *Recipe) CookTime() valueobject.CookingTime {
	return r.cookTime
}

// Servings returns how many portions the recipe yields
func (r *Recipe) Servings() valueobject.Servings {
	return r.servings
}

// Difficulty returns the difficulty level
func (r *Recipe) Difficulty() valueobject.Difficulty {
	return r.difficulty
}

// Category returns the recipe's category
func (r *Recipe) Category() valueobject.Category {
	return r.category
}

// ImageURL returns the image location, or empty when the recipe has none
func (r *Recipe) ImageURL() string {
	return r.imageURL
}

// CreatedAt returns when the recipe was first created
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the recipe was last modified
func (r *Recipe) UpdatedAt() time.Time {
	return r.updatedAt
}

// TotalTime returns prep plus cook time, re-validated against the
// 24 hour ceiling
func (r *Recipe) TotalTime() (valueobject.CookingTime, error) {
	return r.prepTime.Add(r.cookTime)
}

// Equals compares two recipes field by field, timestamps by value
func (r *Recipe) Equals(other *Recipe) bool {
	if other == nil {
		return false
	}
	if r.id != other.id ||
		!r.name.Equals(other.name) ||
		r.description != other.description ||
		!r.prepTime.Equals(other.prepTime) ||
		!r.cookTime.Equals(other.cookTime) ||
		!r.servings.Equals(other.servings) ||
		!r.difficulty.Equals(other.difficulty) ||
		!r.category.Equals(other.category) ||
		r.imageURL != other.imageURL ||
		!r.createdAt.Equal(other.createdAt) ||
		!r.updatedAt.Equal(other.updatedAt) {
		return false
	}
	return equalStrings(r.ingredients, other.ingredients) &&
		equalStrings(r.instructions, other.instructions)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
