package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cookbook/backend/internal/domain/recipe"
	"github.com/cookbook/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LocalRecipeRepository implements recipe.Repository on the embedded
// sqlite store. Reads degrade gracefully: a failing query or a corrupted
// row is logged and surfaced as missing data, never as an error. Writes
// are authoritative and propagate their failures.
type LocalRecipeRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewLocalRecipeRepository creates a new LocalRecipeRepository
func NewLocalRecipeRepository(db *gorm.DB, logger *zap.Logger) *LocalRecipeRepository {
	return &LocalRecipeRepository{db: db, logger: logger}
}

// EnsureSeeded populates the store with the sample recipes when the table
// is empty
func (r *LocalRecipeRepository) EnsureSeeded(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RecipeModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seeds, err := sampleRecipes()
	if err != nil {
		return err
	}
	for _, seed := range seeds {
		if err := r.Save(ctx, seed); err != nil {
			return err
		}
	}
	r.logger.Info("seeded recipe store with sample data", zap.Int("count", len(seeds)))
	return nil
}

// FindAll returns every stored recipe
func (r *LocalRecipeRepository) FindAll(ctx context.Context) ([]*recipe.Recipe, error) {
	return r.query(ctx, r.db.WithContext(ctx))
}

// FindByID returns the recipe with the given id, or recipe.ErrNotFound
func (r *LocalRecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	var model models.RecipeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Error("failed to load recipe", zap.String("id", id), zap.Error(err))
		}
		return nil, recipe.ErrNotFound
	}

	domain, err := model.ToDomain()
	if err != nil {
		r.logger.Error("corrupted recipe row", zap.String("id", id), zap.Error(err))
		return nil, recipe.ErrNotFound
	}
	return domain, nil
}

// Save stores a new recipe
func (r *LocalRecipeRepository) Save(ctx context.Context, rec *recipe.Recipe) error {
	var model models.RecipeModel
	if err := model.FromDomain(rec); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update replaces the stored recipe with the same id, failing with
// recipe.ErrNotFound when the id is unknown
func (r *LocalRecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	var existing models.RecipeModel
	if err := r.db.WithContext(ctx).First(&existing, "id = ?", rec.ID()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return recipe.ErrNotFound
		}
		return err
	}

	var model models.RecipeModel
	if err := model.FromDomain(rec); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes the recipe with the given id and reports whether
// anything was removed
func (r *LocalRecipeRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.RecipeModel{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByCategory returns recipes in the given category, matched
// case-insensitively. A blank category returns everything.
func (r *LocalRecipeRepository) FindByCategory(ctx context.Context, category string) ([]*recipe.Recipe, error) {
	if strings.TrimSpace(category) == "" {
		return r.FindAll(ctx)
	}
	return r.query(ctx, r.db.WithContext(ctx).Where("LOWER(category) = LOWER(?)", category))
}

// FindByDifficulty returns recipes with the given difficulty, matched
// case-insensitively. A blank difficulty returns everything.
func (r *LocalRecipeRepository) FindByDifficulty(ctx context.Context, difficulty string) ([]*recipe.Recipe, error) {
	if strings.TrimSpace(difficulty) == "" {
		return r.FindAll(ctx)
	}
	return r.query(ctx, r.db.WithContext(ctx).Where("LOWER(difficulty) = LOWER(?)", difficulty))
}

// Search returns recipes whose name, description or category contain the
// query, case-insensitively
func (r *LocalRecipeRepository) Search(ctx context.Context, query string) ([]*recipe.Recipe, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	return r.query(ctx, r.db.WithContext(ctx).Where(
		"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?",
		pattern, pattern, pattern,
	))
}

// query runs the prepared statement and maps the rows, skipping rows that
// fail domain validation
func (r *LocalRecipeRepository) query(ctx context.Context, tx *gorm.DB) ([]*recipe.Recipe, error) {
	var rows []models.RecipeModel
	if err := tx.Order("created_at").Find(&rows).Error; err != nil {
		r.logger.Error("failed to query recipes", zap.Error(err))
		return []*recipe.Recipe{}, nil
	}

	recipes := make([]*recipe.Recipe, 0, len(rows))
	for i := range rows {
		domain, err := rows[i].ToDomain()
		if err != nil {
			r.logger.Error("skipping corrupted recipe row",
				zap.String("id", rows[i].ID), zap.Error(err))
			continue
		}
		recipes = append(recipes, domain)
	}
	return recipes, nil
}

// sampleRecipes builds the fixed set stored on first run
func sampleRecipes() ([]*recipe.Recipe, error) {
	now := time.Now()
	seeds := []recipe.Data{
		{
			ID:          "1",
			Name:        "Tortilla Española",
			Description: "Clásica tortilla española con papas y huevo",
			Ingredients: []string{
				"4 papas medianas",
				"6 huevos",
				"1 cebolla",
				"Aceite de oliva",
				"Sal",
			},
			Instructions: []string{
				"Pelar y cortar las papas en rodajas finas",
				"Picar la cebolla",
				"Freír las papas y la cebolla en aceite hasta que estén blandas",
				"Batir los huevos con sal",
				"Mezclar las papas escurridas con los huevos batidos",
				"Hacer la tortilla en una sartén con poco aceite",
				"Dar la vuelta y cocinar por el otro lado",
			},
			PrepTime:   10,
			CookTime:   20,
			Servings:   4,
			Difficulty: "easy",
			Category:   "Española",
			ImageURL:   "https://images.unsplash.com/photo-1606923829579-0cb981a83e2e?w=800",
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:          "2",
			Name:        "Arroz Blanco",
			Description: "Arroz blanco sencillo y perfecto",
			Ingredients: []string{
				"2 tazas de arroz",
				"4 tazas de agua",
				"1 cucharadita de sal",
				"2 cucharadas de aceite",
			},
			Instructions: []string{
				"Lavar el arroz con agua fría",
				"Poner el agua a hervir con sal",
				"Añadir el arroz y el aceite",
				"Cocinar a fuego medio durante 15-18 minutos",
				"Apagar el fuego y dejar reposar 5 minutos tapado",
				"Servir caliente",
			},
			PrepTime:   5,
			CookTime:   18,
			Servings:   4,
			Difficulty: "easy",
			Category:   "Básica",
			ImageURL:   "https://images.unsplash.com/photo-1516684732162-798a0062be99?w=800",
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:          "3",
			Name:        "Tostadas con Tomate",
			Description: "Pan tostado con tomate, aceite y sal",
			Ingredients: []string{
				"4 rebanadas de pan",
				"2 tomates maduros",
				"Aceite de oliva",
				"Sal",
			},
			Instructions: []string{
				"Tostar el pan",
				"Cortar el tomate por la mitad",
				"Frotar el tomate sobre el pan tostado",
				"Añadir un chorrito de aceite de oliva",
				"Espolvorear con sal",
				"Servir inmediatamente",
			},
			PrepTime:   5,
			CookTime:   3,
			Servings:   2,
			Difficulty: "easy",
			Category:   "Desayuno",
			ImageURL:   "https://images.unsplash.com/photo-1509042239860-f550ce710b93?w=800",
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}

	recipes := make([]*recipe.Recipe, 0, len(seeds))
	for _, seed := range seeds {
		rec, err := recipe.Reconstitute(seed)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

var _ recipe.Repository = (*LocalRecipeRepository)(nil)
