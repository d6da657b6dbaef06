package recipe

import "context"

// Repository defines the persistence contract for recipes. Implementations
// must swallow storage-level failures on reads (log and return empty) so
// callers only ever see domain errors.
//
// Update and Delete treat an unknown id differently on purpose: Update is
// an explicit request to mutate a specific record and fails with
// ErrNotFound, while Delete reports the outcome as data and returns false
// without an error.
type Repository interface {
	// FindAll returns every stored recipe
	FindAll(ctx context.Context) ([]*Recipe, error)

	// FindByID returns the recipe with the given id, or ErrNotFound
	FindByID(ctx context.Context, id string) (*Recipe, error)

	// Save stores a new recipe
	Save(ctx context.Context, r *Recipe) error

	// Update replaces the stored recipe with the same id
	Update(ctx context.Context, r *Recipe) error

	// Delete removes the recipe with the given id and reports whether
	// anything was removed
	Delete(ctx context.Context, id string) (bool, error)

	// FindByCategory returns recipes whose category matches
	// case-insensitively; a blank category returns everything
	FindByCategory(ctx context.Context, category string) ([]*Recipe, error)

	// FindByDifficulty returns recipes whose difficulty matches
	// case-insensitively; a blank difficulty returns everything
	FindByDifficulty(ctx context.Context, difficulty string) ([]*Recipe, error)

	// Search returns recipes whose name, description or category contain
	// the query, case-insensitively; implementations may also match
	// against ingredients
	Search(ctx context.Context, query string) ([]*Recipe, error)
}
