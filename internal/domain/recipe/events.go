package recipe

import (
	"github.com/cookbook/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeRecipe = "Recipe"

// Event type constants
const (
	EventTypeRecipeCreated = "RecipeCreated"
	EventTypeRecipeUpdated = "RecipeUpdated"
	EventTypeRecipeDeleted = "RecipeDeleted"
	EventTypeCatalogLoaded = "RecipeCatalogLoaded"
)

// CreatedEvent is published when a new recipe is stored
type CreatedEvent struct {
	shared.BaseDomainEvent
	RecipeID string `json:"recipe_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// NewCreatedEvent creates a CreatedEvent for the given recipe
func NewCreatedEvent(r *Recipe) *CreatedEvent {
	return &CreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecipeCreated, AggregateTypeRecipe, r.ID()),
		RecipeID:        r.ID(),
		Name:            r.Name().Value(),
		Category:        r.Category().Value(),
	}
}

// UpdatedEvent is published when an existing recipe is replaced
type UpdatedEvent struct {
	shared.BaseDomainEvent
	RecipeID string `json:"recipe_id"`
	Name     string `json:"name"`
}

// NewUpdatedEvent creates an UpdatedEvent for the given recipe
func NewUpdatedEvent(r *Recipe) *UpdatedEvent {
	return &UpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecipeUpdated, AggregateTypeRecipe, r.ID()),
		RecipeID:        r.ID(),
		Name:            r.Name().Value(),
	}
}

// DeletedEvent is published when a recipe is removed. It carries only the
// id since the aggregate no longer exists.
type DeletedEvent struct {
	shared.BaseDomainEvent
	RecipeID string `json:"recipe_id"`
}

// NewDeletedEvent creates a DeletedEvent for the given recipe id
func NewDeletedEvent(id string) *DeletedEvent {
	return &DeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecipeDeleted, AggregateTypeRecipe, id),
		RecipeID:        id,
	}
}

// CatalogLoadedEvent is published exactly once when the remote bootstrap
// fetch completes. Subscribers should react by re-querying the repository.
type CatalogLoadedEvent struct {
	shared.BaseDomainEvent
	Count int `json:"count"`
}

// NewCatalogLoadedEvent creates a CatalogLoadedEvent
func NewCatalogLoadedEvent(count int) *CatalogLoadedEvent {
	return &CatalogLoadedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCatalogLoaded, AggregateTypeRecipe, "catalog"),
		Count:           count,
	}
}
