package recipe

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cookbook/backend/internal/domain/recipe"
	"github.com/cookbook/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service handles recipe business operations. Each operation layers its own
// checks on top of the value-object validation done inside the aggregate:
// cross-field rules fail here before any repository call, so a rejected
// request never leaves a partial write behind.
type Service struct {
	repo      recipe.Repository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates a new Service
func NewService(repo recipe.Repository, publisher shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

const minDescriptionLength = 10

// Create validates and persists a new recipe
func (s *Service) Create(ctx context.Context, input CreateInput) (*RecipeResponse, error) {
	if utf8.RuneCountInString(strings.TrimSpace(input.Description)) < minDescriptionLength {
		return nil, shared.NewBusinessRuleError("Recipe description must be at least 10 characters")
	}
	if len(input.Ingredients) == 0 {
		return nil, shared.NewBusinessRuleError("Recipe must have at least one ingredient")
	}
	if len(input.Instructions) == 0 {
		return nil, shared.NewBusinessRuleError("Recipe must have at least one instruction")
	}

	params, err := input.toParams()
	if err != nil {
		return nil, err
	}

	r, err := recipe.New(params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, r); err != nil {
		return nil, err
	}

	s.publish(ctx, recipe.NewCreatedEvent(r))
	return toResponse(r), nil
}

// Update applies a partial update to an existing recipe. Provided fields
// are checked against the update floors before the aggregate is touched;
// the prep/cook/servings floor of 1 here is stricter than the creation
// floor on purpose.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*RecipeResponse, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && utf8.RuneCountInString(strings.TrimSpace(*input.Name)) < 3 {
		return nil, shared.NewValidationError("Recipe name must be at least 3 characters")
	}
	if input.Description != nil && utf8.RuneCountInString(strings.TrimSpace(*input.Description)) < minDescriptionLength {
		return nil, shared.NewValidationError("Recipe description must be at least 10 characters")
	}
	if input.PrepTime != nil && *input.PrepTime < 1 {
		return nil, shared.NewValidationError("Preparation time must be at least 1 minute")
	}
	if input.CookTime != nil && *input.CookTime < 1 {
		return nil, shared.NewValidationError("Cooking time must be at least 1 minute")
	}
	if input.Servings != nil && *input.Servings < 1 {
		return nil, shared.NewValidationError("Servings must be at least 1")
	}

	patch, err := input.toPatch()
	if err != nil {
		return nil, err
	}

	updated, err := existing.Update(patch)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.publish(ctx, recipe.NewUpdatedEvent(updated))
	return toResponse(updated), nil
}

// Delete removes a recipe. An unknown id fails with ErrNotFound; the
// repository's boolean result is passed through, not swallowed, so a
// delete that races an external removal reports false without an error.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return false, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publish(ctx, recipe.NewDeletedEvent(id))
	}
	return deleted, nil
}

// GetByID returns a single recipe by id
func (s *Service) GetByID(ctx context.Context, id string) (*RecipeResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(r), nil
}

// List returns every stored recipe
func (s *Service) List(ctx context.Context) ([]*RecipeResponse, error) {
	recipes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(recipes), nil
}

// Search returns recipes matching the query. A blank query is the neutral
// filter and returns everything.
func (s *Service) Search(ctx context.Context, query string) ([]*RecipeResponse, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return s.List(ctx)
	}
	recipes, err := s.repo.Search(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	return toResponses(recipes), nil
}

// FilterByCategory returns recipes in the given category
func (s *Service) FilterByCategory(ctx context.Context, category string) ([]*RecipeResponse, error) {
	recipes, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return toResponses(recipes), nil
}

// FilterByDifficulty returns recipes with the given difficulty
func (s *Service) FilterByDifficulty(ctx context.Context, difficulty string) ([]*RecipeResponse, error) {
	recipes, err := s.repo.FindByDifficulty(ctx, difficulty)
	if err != nil {
		return nil, err
	}
	return toResponses(recipes), nil
}

// Categories returns the distinct categories present across all stored
// recipes, sorted lexicographically.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	recipes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(recipes))
	categories := make([]string, 0, len(recipes))
	for _, r := range recipes {
		category := r.Category().Value()
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories, nil
}

// publish dispatches events best-effort. A failed dispatch is logged and
// never fails the operation that produced the event.
func (s *Service) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events",
			zap.Int("count", len(events)),
			zap.Error(err))
	}
}
