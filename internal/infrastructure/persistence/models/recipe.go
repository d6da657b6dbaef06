package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cookbook/backend/internal/domain/recipe"
)

// RecipeModel is the persistence model for the Recipe aggregate. The
// ingredient and instruction lists are stored as JSON text columns.
type RecipeModel struct {
	ID           string `gorm:"type:varchar(64);primaryKey"`
	Name         string `gorm:"type:varchar(100);not null"`
	Description  string `gorm:"type:text;not null"`
	Ingredients  string `gorm:"type:text;not null"`
	Instructions string `gorm:"type:text;not null"`
	PrepTime     int    `gorm:"not null"`
	CookTime     int    `gorm:"not null"`
	Servings     int    `gorm:"not null"`
	Difficulty   string `gorm:"type:varchar(10);not null;index"`
	Category     string `gorm:"type:varchar(50);not null;index"`
	ImageURL     *string
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RecipeModel) TableName() string {
	return "recipes"
}

// ToDomain converts the persistence model to a domain Recipe. Rows that no
// longer satisfy the domain constraints fail here instead of entering the
// domain.
func (m *RecipeModel) ToDomain() (*recipe.Recipe, error) {
	var ingredients []string
	if err := json.Unmarshal([]byte(m.Ingredients), &ingredients); err != nil {
		return nil, fmt.Errorf("invalid ingredients column for recipe %s: %w", m.ID, err)
	}
	var instructions []string
	if err := json.Unmarshal([]byte(m.Instructions), &instructions); err != nil {
		return nil, fmt.Errorf("invalid instructions column for recipe %s: %w", m.ID, err)
	}

	imageURL := ""
	if m.ImageURL != nil {
		imageURL = *m.ImageURL
	}

	return recipe.Reconstitute(recipe.Data{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Ingredients:  ingredients,
		Instructions: instructions,
		PrepTime:     m.PrepTime,
		CookTime:     m.CookTime,
		Servings:     m.Servings,
		Difficulty:   m.Difficulty,
		Category:     m.Category,
		ImageURL:     imageURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	})
}

// FromDomain populates the persistence model from a domain Recipe
func (m *RecipeModel) FromDomain(r *recipe.Recipe) error {
	ingredients, err := json.Marshal(r.Ingredients())
	if err != nil {
		return fmt.Errorf("failed to encode ingredients: %w", err)
	}
	instructions, err := json.Marshal(r.Instructions())
	if err != nil {
		return fmt.Errorf("failed to encode instructions: %w", err)
	}

	m.ID = r.ID()
	m.Name = r.Name().Value()
	m.Description = r.Description()
	m.Ingredients = string(ingredients)
	m.Instructions = string(instructions)
	m.PrepTime = r.PrepTime().Minutes()
	m.CookTime = r.CookTime().Minutes()
	m.Servings = r.Servings().Value()
	m.Difficulty = r.Difficulty().Value()
	m.Category = r.Category().Value()
	m.ImageURL = nil
	if url := r.ImageURL(); url != "" {
		m.ImageURL = &url
	}
	m.CreatedAt = r.CreatedAt()
	m.UpdatedAt = r.UpdatedAt()
	return nil
}
