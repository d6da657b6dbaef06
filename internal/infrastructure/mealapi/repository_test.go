package mealapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cookbook/backend/internal/domain/recipe"
	"github.com/cookbook/backend/internal/domain/shared"
	"github.com/cookbook/backend/internal/infrastructure/cache"
	"github.com/cookbook/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingPublisher captures published events
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

// newCatalogServer serves a TheMealDB-shaped API with the given meals per
// category and counts the requests it receives
func newCatalogServer(t *testing.T, mealsByCategory map[string][]Meal, requests *atomic.Int64) *httptest.Server {
	t.Helper()

	byID := make(map[string]Meal)
	for _, meals := range mealsByCategory {
		for _, meal := range meals {
			byID[meal.Str("idMeal")] = meal
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/filter.php", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		meals := mealsByCategory[r.URL.Query().Get("c")]
		summaries := make([]Meal, 0, len(meals))
		for _, meal := range meals {
			summaries = append(summaries, Meal{
				"idMeal":       meal.Str("idMeal"),
				"strMeal":      meal.Str("strMeal"),
				"strMealThumb": meal.Str("strMealThumb"),
			})
		}
		var payload any = summaries
		if len(summaries) == 0 {
			payload = nil
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"meals": payload})
	})
	mux.HandleFunc("/lookup.php", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		meal, ok := byID[r.URL.Query().Get("i")]
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]any{"meals": nil})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"meals": []Meal{meal}})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newCatalogRepository(baseURL string, store cache.Store, publisher shared.EventPublisher, opts Options) *CachedCatalogRepository {
	return NewCachedCatalogRepository(
		NewClient(baseURL, 5*time.Second),
		store,
		NewMapper(nil),
		publisher,
		zap.NewNop(),
		opts,
	)
}

func catalogFixture() map[string][]Meal {
	meals := func(category string, ids ...string) []Meal {
		out := make([]Meal, 0, len(ids))
		for _, id := range ids {
			out = append(out, mealFixture(fmt.Sprintf("%s meal %s", category, id), id, 4))
		}
		return out
	}
	return map[string][]Meal{
		"Beef":    meals("Beef", "b1", "b2"),
		"Dessert": meals("Dessert", "d1", "d2", "d3", "d4"),
	}
}

func TestCachedCatalogRepositoryFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches bounded per category and publishes one event", func(t *testing.T) {
		var requests atomic.Int64
		server := newCatalogServer(t, catalogFixture(), &requests)
		publisher := &recordingPublisher{}
		store := cache.NewMemoryStore()
		repo := newCatalogRepository(server.URL, store, publisher, Options{
			Categories:       []string{"Beef", "Dessert"},
			PerCategoryLimit: 3,
		})

		repo.fetchCatalog(ctx)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 5) // 2 beef + 3 of 4 desserts

		require.Len(t, publisher.events, 1)
		loaded, ok := publisher.events[0].(*recipe.CatalogLoadedEvent)
		require.True(t, ok)
		assert.Equal(t, 5, loaded.Count)

		// snapshot was persisted
		payload, err := store.Get(ctx, snapshotKey)
		require.NoError(t, err)
		var records []models.Record
		require.NoError(t, json.Unmarshal(payload, &records))
		assert.Len(t, records, 5)
	})

	t.Run("a failing category is skipped, the rest still load", func(t *testing.T) {
		var requests atomic.Int64
		server := newCatalogServer(t, catalogFixture(), &requests)
		publisher := &recordingPublisher{}
		repo := newCatalogRepository(server.URL, cache.NewMemoryStore(), publisher, Options{
			Categories:       []string{"Beef", "Chicken"},
			PerCategoryLimit: 3,
		})

		repo.fetchCatalog(ctx)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
		assert.Len(t, publisher.events, 1)
	})

	t.Run("an unreachable API leaves the catalog empty without an event", func(t *testing.T) {
		publisher := &recordingPublisher{}
		repo := newCatalogRepository("http://127.0.0.1:1", cache.NewMemoryStore(), publisher, Options{
			Categories:       []string{"Beef"},
			PerCategoryLimit: 3,
		})

		repo.fetchCatalog(ctx)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
		assert.Empty(t, publisher.events)
	})

	t.Run("interim local edits survive the merge", func(t *testing.T) {
		var requests atomic.Int64
		server := newCatalogServer(t, catalogFixture(), &requests)
		publisher := &recordingPublisher{}
		repo := newCatalogRepository(server.URL, cache.NewMemoryStore(), publisher, Options{
			Categories:       []string{"Beef"},
			PerCategoryLimit: 3,
		})

		// a user creates a recipe while the fetch is in flight
		local, err := recipe.New(recipe.NewParams{
			Name:         "User Recipe",
			Description:  "Created before the fetch landed",
			Ingredients:  []string{"a"},
			Instructions: []string{"b"},
			PrepTime:     1,
			CookTime:     1,
			Servings:     1,
			Difficulty:   "easy",
			Category:     "Dessert",
		})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, local))

		repo.fetchCatalog(ctx)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		found, err := repo.FindByID(ctx, local.ID())
		require.NoError(t, err)
		assert.Equal(t, "User Recipe", found.Name().Value())
	})
}

func TestCachedCatalogRepositoryCacheFirst(t *testing.T) {
	ctx := context.Background()

	t.Run("serves the snapshot without touching the network", func(t *testing.T) {
		var requests atomic.Int64
		server := newCatalogServer(t, catalogFixture(), &requests)
		store := cache.NewMemoryStore()

		// first run populates the snapshot
		first := newCatalogRepository(server.URL, store, &recordingPublisher{}, Options{
			Categories:       []string{"Beef"},
			PerCategoryLimit: 3,
		})
		first.fetchCatalog(ctx)
		requestsAfterFetch := requests.Load()

		// second run starts from the snapshot
		second := newCatalogRepository(server.URL, store, &recordingPublisher{}, Options{
			Categories:       []string{"Beef"},
			PerCategoryLimit: 3,
		})
		second.Start(ctx)

		all, err := second.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
		assert.Equal(t, requestsAfterFetch, requests.Load())
	})

	t.Run("a corrupted snapshot degrades to a fresh fetch", func(t *testing.T) {
		var requests atomic.Int64
		server := newCatalogServer(t, catalogFixture(), &requests)
		store := cache.NewMemoryStore()
		require.NoError(t, store.Set(ctx, snapshotKey, []byte("not-json")))

		repo := newCatalogRepository(server.URL, store, &recordingPublisher{}, Options{
			Categories:       []string{"Beef"},
			PerCategoryLimit: 3,
		})
		// loadSnapshot finds nothing usable
		assert.Empty(t, repo.loadSnapshot(ctx))
	})
}

func TestCachedCatalogRepositoryCRUD(t *testing.T) {
	ctx := context.Background()

	seeded := func(t *testing.T) (*CachedCatalogRepository, *recipe.Recipe) {
		t.Helper()
		repo := NewCachedCatalogRepository(nil, cache.NewMemoryStore(), NewMapper(nil), &recordingPublisher{}, zap.NewNop(), Options{})
		r, err := recipe.New(recipe.NewParams{
			Name:         "Paella",
			Description:  "Arroz con mariscos y azafrán",
			Ingredients:  []string{"arroz", "gambas", "azafrán"},
			Instructions: []string{"Sofreír", "Añadir arroz", "Cocinar"},
			PrepTime:     20,
			CookTime:     40,
			Servings:     6,
			Difficulty:   "medium",
			Category:     "Seafood",
		})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, r))
		return repo, r
	}

	t.Run("save and find", func(t *testing.T) {
		repo, saved := seeded(t)
		found, err := repo.FindByID(ctx, saved.ID())
		require.NoError(t, err)
		assert.True(t, saved.Equals(found))
	})

	t.Run("update unknown id fails", func(t *testing.T) {
		repo, _ := seeded(t)
		ghost, err := recipe.New(recipe.NewParams{
			Name:         "Ghost",
			Description:  "Nunca fue guardada aquí",
			Ingredients:  []string{"x"},
			Instructions: []string{"y"},
			Servings:     1,
			Difficulty:   "easy",
			Category:     "Dessert",
		})
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Update(ctx, ghost), recipe.ErrNotFound)
	})

	t.Run("delete reports the outcome", func(t *testing.T) {
		repo, saved := seeded(t)

		deleted, err := repo.Delete(ctx, saved.ID())
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, saved.ID())
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("filters are case-insensitive and blank-neutral", func(t *testing.T) {
		repo, _ := seeded(t)

		byCategory, err := repo.FindByCategory(ctx, "seafood")
		require.NoError(t, err)
		assert.Len(t, byCategory, 1)

		byDifficulty, err := repo.FindByDifficulty(ctx, "MEDIUM")
		require.NoError(t, err)
		assert.Len(t, byDifficulty, 1)

		everything, err := repo.FindByCategory(ctx, "")
		require.NoError(t, err)
		assert.Len(t, everything, 1)
	})

	t.Run("search also matches ingredients", func(t *testing.T) {
		repo, _ := seeded(t)

		results, err := repo.Search(ctx, "gambas")
		require.NoError(t, err)
		assert.Len(t, results, 1)

		none, err := repo.Search(ctx, "chocolate")
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
