package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	recipeapp "github.com/cookbook/backend/internal/application/recipe"
	"github.com/cookbook/backend/internal/domain/recipe"
	"github.com/cookbook/backend/internal/infrastructure/cache"
	"github.com/cookbook/backend/internal/infrastructure/config"
	"github.com/cookbook/backend/internal/infrastructure/event"
	"github.com/cookbook/backend/internal/infrastructure/logger"
	"github.com/cookbook/backend/internal/infrastructure/mealapi"
	"github.com/cookbook/backend/internal/infrastructure/persistence"
	"github.com/cookbook/backend/internal/interfaces/http/handler"
	"github.com/cookbook/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting cookbook backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("storage", cfg.Storage.Backend),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	eventBus := event.NewInMemoryEventBus(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, cleanup, err := buildRepository(ctx, cfg, eventBus, log)
	if err != nil {
		log.Fatal("Failed to initialize recipe repository", zap.Error(err))
	}
	defer cleanup()

	// Subscribe before the catalog repository starts fetching so the
	// one-shot load event cannot be missed.
	eventBus.Subscribe(recipeapp.NewCatalogLoadedHandler(repo, log))
	if catalogRepo, ok := repo.(*mealapi.CachedCatalogRepository); ok {
		catalogRepo.Start(ctx)
	}

	service := recipeapp.NewService(repo, eventBus, log)

	r := router.New(log, router.Config{CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins})
	r.Register(handler.NewRecipeHandler(service))
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r.Engine(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// buildRepository constructs the recipe repository selected by the storage
// backend. The returned cleanup releases any held connections and is safe
// to call exactly once.
func buildRepository(ctx context.Context, cfg *config.Config, bus *event.InMemoryEventBus, log *zap.Logger) (recipe.Repository, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendAPI:
		return buildCatalogRepository(cfg, bus, log)
	default:
		return buildLocalRepository(ctx, cfg, log)
	}
}

func buildLocalRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (recipe.Repository, func(), error) {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(cfg.Storage.SQLitePath, gormLog)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Database connected", zap.String("path", cfg.Storage.SQLitePath))

	repo := persistence.NewLocalRecipeRepository(db.DB, log)
	if err := repo.EnsureSeeded(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}
	return repo, cleanup, nil
}

func buildCatalogRepository(cfg *config.Config, bus *event.InMemoryEventBus, log *zap.Logger) (recipe.Repository, func(), error) {
	store, closeStore := buildSnapshotStore(cfg, log)

	client := mealapi.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.FetchTimeout)
	mapper := mealapi.NewMapper(cfg.Catalog.CategoryNames)

	repo := mealapi.NewCachedCatalogRepository(client, store, mapper, bus, log, mealapi.Options{
		Categories:       cfg.Catalog.Categories,
		PerCategoryLimit: cfg.Catalog.PerCategoryLimit,
	})
	return repo, closeStore, nil
}

// buildSnapshotStore prefers Redis when configured and falls back to the
// in-memory store, so the api backend works without any infrastructure.
func buildSnapshotStore(cfg *config.Config, log *zap.Logger) (cache.Store, func()) {
	if !cfg.Redis.Enabled() {
		log.Info("Redis not configured, using in-memory snapshot store")
		return cache.NewMemoryStore(), func() {}
	}

	store, err := cache.NewRedisStore(cache.RedisConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory snapshot store", zap.Error(err))
		return cache.NewMemoryStore(), func() {}
	}

	log.Info("Redis snapshot store connected", zap.String("addr", cfg.Redis.Addr()))
	return store, func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing Redis store", zap.Error(err))
		}
	}
}
