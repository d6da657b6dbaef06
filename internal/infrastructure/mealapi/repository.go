package mealapi

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/cookbook/backend/internal/domain/recipe"
	"github.com/cookbook/backend/internal/domain/shared"
	"github.com/cookbook/backend/internal/infrastructure/cache"
	"github.com/cookbook/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
)

// snapshotKey is the cache key holding the serialized catalog
const snapshotKey = "recipes"

// Options configures the background catalog fetch
type Options struct {
	Categories       []string
	PerCategoryLimit int
}

// CachedCatalogRepository implements recipe.Repository over an in-memory
// collection seeded from the remote catalog. On Start it serves the cache
// snapshot when one exists; otherwise it fetches the catalog in the
// background and publishes a one-shot CatalogLoadedEvent when the fetch
// lands. All mutations happen in memory under a lock with best-effort
// snapshot write-back, so a failing cache never fails an operation.
type CachedCatalogRepository struct {
	mu      sync.RWMutex
	recipes []*recipe.Recipe

	client    *Client
	store     cache.Store
	mapper    *Mapper
	publisher shared.EventPublisher
	logger    *zap.Logger
	opts      Options

	loadedOnce sync.Once
}

// NewCachedCatalogRepository creates a new CachedCatalogRepository
func NewCachedCatalogRepository(
	client *Client,
	store cache.Store,
	mapper *Mapper,
	publisher shared.EventPublisher,
	logger *zap.Logger,
	opts Options,
) *CachedCatalogRepository {
	return &CachedCatalogRepository{
		client:    client,
		store:     store,
		mapper:    mapper,
		publisher: publisher,
		logger:    logger,
		opts:      opts,
	}
}

// Start loads the cached snapshot, or kicks off the background fetch when
// no snapshot exists. It never blocks on the network.
func (r *CachedCatalogRepository) Start(ctx context.Context) {
	cached := r.loadSnapshot(ctx)
	if len(cached) > 0 {
		r.mu.Lock()
		r.recipes = cached
		r.mu.Unlock()
		r.logger.Info("serving recipe catalog from cache", zap.Int("count", len(cached)))
		return
	}

	r.logger.Info("no catalog snapshot found, fetching in background")
	go r.fetchCatalog(ctx)
}

// fetchCatalog walks the configured categories, fetching a bounded number
// of full records per category. Per-category failures are logged and
// skipped; there is no retry.
func (r *CachedCatalogRepository) fetchCatalog(ctx context.Context) {
	fetched := make([]*recipe.Recipe, 0)

	for _, category := range r.opts.Categories {
		meals, err := r.client.FilterByCategory(ctx, category)
		if err != nil {
			r.logger.Error("failed to fetch category",
				zap.String("category", category), zap.Error(err))
			continue
		}

		if len(meals) > r.opts.PerCategoryLimit {
			meals = meals[:r.opts.PerCategoryLimit]
		}

		for _, meal := range meals {
			detail, err := r.client.LookupByID(ctx, meal.Str("idMeal"))
			if err != nil {
				r.logger.Error("failed to fetch meal detail",
					zap.String("id", meal.Str("idMeal")), zap.Error(err))
				continue
			}
			if detail == nil {
				continue
			}

			mapped, err := r.mapper.ToDomain(detail, category)
			if err != nil {
				r.logger.Error("failed to map meal",
					zap.String("id", meal.Str("idMeal")), zap.Error(err))
				continue
			}
			fetched = append(fetched, mapped)
		}
	}

	if len(fetched) == 0 {
		r.logger.Warn("background catalog fetch produced no recipes")
		return
	}

	r.mu.Lock()
	r.recipes = mergeCatalog(r.recipes, fetched)
	count := len(r.recipes)
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.persistSnapshot(ctx, snapshot)
	r.logger.Info("loaded recipe catalog from remote API", zap.Int("count", count))

	r.loadedOnce.Do(func() {
		if err := r.publisher.Publish(ctx, recipe.NewCatalogLoadedEvent(count)); err != nil {
			r.logger.Warn("failed to publish catalog loaded event", zap.Error(err))
		}
	})
}

// mergeCatalog merges the fetched set into the local one. For ids present
// on both sides the newer updatedAt wins, so interim local edits survive a
// slow background fetch. Local-only entries are kept and fetched-only
// entries are added.
func mergeCatalog(local, fetched []*recipe.Recipe) []*recipe.Recipe {
	byID := make(map[string]int, len(local))
	merged := make([]*recipe.Recipe, len(local))
	copy(merged, local)
	for i, rec := range merged {
		byID[rec.ID()] = i
	}

	for _, rec := range fetched {
		if i, ok := byID[rec.ID()]; ok {
			if rec.UpdatedAt().After(merged[i].UpdatedAt()) {
				merged[i] = rec
			}
			continue
		}
		byID[rec.ID()] = len(merged)
		merged = append(merged, rec)
	}
	return merged
}

// FindAll returns every recipe in the catalog
func (r *CachedCatalogRepository) FindAll(_ context.Context) ([]*recipe.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*recipe.Recipe, len(r.recipes))
	copy(out, r.recipes)
	return out, nil
}

// FindByID returns the recipe with the given id, or recipe.ErrNotFound
func (r *CachedCatalogRepository) FindByID(_ context.Context, id string) (*recipe.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.recipes {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return nil, recipe.ErrNotFound
}

// Save appends a new recipe to the catalog
func (r *CachedCatalogRepository) Save(ctx context.Context, rec *recipe.Recipe) error {
	r.mu.Lock()
	r.recipes = append(r.recipes, rec)
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.persistSnapshot(ctx, snapshot)
	return nil
}

// Update replaces the recipe with the same id, failing with
// recipe.ErrNotFound when the id is unknown
func (r *CachedCatalogRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	r.mu.Lock()
	index := -1
	for i, existing := range r.recipes {
		if existing.ID() == rec.ID() {
			index = i
			break
		}
	}
	if index == -1 {
		r.mu.Unlock()
		return recipe.ErrNotFound
	}
	r.recipes[index] = rec
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.persistSnapshot(ctx, snapshot)
	return nil
}

// Delete removes the recipe with the given id and reports whether
// anything was removed
func (r *CachedCatalogRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	kept := r.recipes[:0:0]
	for _, rec := range r.recipes {
		if rec.ID() != id {
			kept = append(kept, rec)
		}
	}
	deleted := len(kept) < len(r.recipes)
	r.recipes = kept
	var snapshot []models.Record
	if deleted {
		snapshot = r.snapshotLocked()
	}
	r.mu.Unlock()

	if deleted {
		r.persistSnapshot(ctx, snapshot)
	}
	return deleted, nil
}

// FindByCategory returns recipes in the given category, matched
// case-insensitively. A blank category returns everything.
func (r *CachedCatalogRepository) FindByCategory(ctx context.Context, category string) ([]*recipe.Recipe, error) {
	if strings.TrimSpace(category) == "" {
		return r.FindAll(ctx)
	}
	return r.filter(func(rec *recipe.Recipe) bool {
		return strings.EqualFold(rec.Category().Value(), category)
	}), nil
}

// FindByDifficulty returns recipes with the given difficulty, matched
// case-insensitively. A blank difficulty returns everything.
func (r *CachedCatalogRepository) FindByDifficulty(ctx context.Context, difficulty string) ([]*recipe.Recipe, error) {
	if strings.TrimSpace(difficulty) == "" {
		return r.FindAll(ctx)
	}
	return r.filter(func(rec *recipe.Recipe) bool {
		return strings.EqualFold(rec.Difficulty().Value(), difficulty)
	}), nil
}

// Search returns recipes whose name, description, category or any
// ingredient contain the query, case-insensitively
func (r *CachedCatalogRepository) Search(_ context.Context, query string) ([]*recipe.Recipe, error) {
	lowered := strings.ToLower(query)
	return r.filter(func(rec *recipe.Recipe) bool {
		if strings.Contains(strings.ToLower(rec.Name().Value()), lowered) ||
			strings.Contains(strings.ToLower(rec.Description()), lowered) ||
			strings.Contains(strings.ToLower(rec.Category().Value()), lowered) {
			return true
		}
		for _, ingredient := range rec.Ingredients() {
			if strings.Contains(strings.ToLower(ingredient), lowered) {
				return true
			}
		}
		return false
	}), nil
}

func (r *CachedCatalogRepository) filter(match func(*recipe.Recipe) bool) []*recipe.Recipe {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*recipe.Recipe, 0, len(r.recipes))
	for _, rec := range r.recipes {
		if match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// snapshotLocked serializes the current catalog. Callers must hold the lock.
func (r *CachedCatalogRepository) snapshotLocked() []models.Record {
	records := make([]models.Record, 0, len(r.recipes))
	for _, rec := range r.recipes {
		records = append(records, models.RecordFromDomain(rec))
	}
	return records
}

// persistSnapshot writes the snapshot best-effort
func (r *CachedCatalogRepository) persistSnapshot(ctx context.Context, records []models.Record) {
	payload, err := json.Marshal(records)
	if err != nil {
		r.logger.Error("failed to encode catalog snapshot", zap.Error(err))
		return
	}
	if err := r.store.Set(ctx, snapshotKey, payload); err != nil {
		r.logger.Error("failed to write catalog snapshot", zap.Error(err))
	}
}

// loadSnapshot reads and decodes the snapshot. Any failure is logged and
// treated as no data.
func (r *CachedCatalogRepository) loadSnapshot(ctx context.Context) []*recipe.Recipe {
	payload, err := r.store.Get(ctx, snapshotKey)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			r.logger.Error("failed to read catalog snapshot", zap.Error(err))
		}
		return nil
	}

	var records []models.Record
	if err := json.Unmarshal(payload, &records); err != nil {
		r.logger.Error("corrupted catalog snapshot", zap.Error(err))
		return nil
	}

	recipes := make([]*recipe.Recipe, 0, len(records))
	for _, record := range records {
		rec, err := record.ToDomain()
		if err != nil {
			r.logger.Error("skipping corrupted snapshot record",
				zap.String("id", record.ID), zap.Error(err))
			continue
		}
		recipes = append(recipes, rec)
	}
	return recipes
}

var _ recipe.Repository = (*CachedCatalogRepository)(nil)
