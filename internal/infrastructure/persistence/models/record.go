package models

import (
	"time"

	"github.com/cookbook/backend/internal/domain/recipe"
)

// Record is the JSON interchange shape for a recipe, used for the catalog
// cache snapshot. Dates are RFC 3339 strings and imageUrl is null when the
// recipe has no image.
type Record struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PrepTime     int      `json:"prepTime"`
	CookTime     int      `json:"cookTime"`
	Servings     int      `json:"servings"`
	Difficulty   string   `json:"difficulty"`
	Category     string   `json:"category"`
	ImageURL     *string  `json:"imageUrl"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

// RecordFromDomain converts a domain Recipe to its interchange shape
func RecordFromDomain(r *recipe.Recipe) Record {
	record := Record{
		ID:           r.ID(),
		Name:         r.Name().Value(),
		Description:  r.Description(),
		Ingredients:  r.Ingredients(),
		Instructions: r.Instructions(),
		PrepTime:     r.PrepTime().Minutes(),
		CookTime:     r.CookTime().Minutes(),
		Servings:     r.Servings().Value(),
		Difficulty:   r.Difficulty().Value(),
		Category:     r.Category().Value(),
		CreatedAt:    r.CreatedAt().Format(time.RFC3339Nano),
		UpdatedAt:    r.UpdatedAt().Format(time.RFC3339Nano),
	}
	if url := r.ImageURL(); url != "" {
		record.ImageURL = &url
	}
	return record
}

// ToDomain converts the record back to a domain Recipe, re-validating
// every field
func (rec Record) ToDomain() (*recipe.Recipe, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, rec.UpdatedAt)
	if err != nil {
		return nil, err
	}

	imageURL := ""
	if rec.ImageURL != nil {
		imageURL = *rec.ImageURL
	}

	return recipe.Reconstitute(recipe.Data{
		ID:           rec.ID,
		Name:         rec.Name,
		Description:  rec.Description,
		Ingredients:  rec.Ingredients,
		Instructions: rec.Instructions,
		PrepTime:     rec.PrepTime,
		CookTime:     rec.CookTime,
		Servings:     rec.Servings,
		Difficulty:   rec.Difficulty,
		Category:     rec.Category,
		ImageURL:     imageURL,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	})
}
