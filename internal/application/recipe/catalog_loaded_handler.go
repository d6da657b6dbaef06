package recipe

import (
	"context"

	"github.com/cookbook/backend/internal/domain/recipe"
	"github.com/cookbook/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CatalogLoadedHandler reacts to the one-shot catalog load signal emitted
// by the remote-backed repository once its background fetch completes. It
// re-queries the repository so consumers observe the freshly merged set,
// and logs the outcome.
type CatalogLoadedHandler struct {
	repo   recipe.Repository
	logger *zap.Logger
}

// NewCatalogLoadedHandler creates a new handler for catalog loaded events
func NewCatalogLoadedHandler(repo recipe.Repository, logger *zap.Logger) *CatalogLoadedHandler {
	return &CatalogLoadedHandler{repo: repo, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *CatalogLoadedHandler) EventTypes() []string {
	return []string{recipe.EventTypeCatalogLoaded}
}

// Handle processes a CatalogLoadedEvent
func (h *CatalogLoadedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	loaded, ok := event.(*recipe.CatalogLoadedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", recipe.EventTypeCatalogLoaded),
			zap.String("actual", event.EventType()))
		return nil
	}

	recipes, err := h.repo.FindAll(ctx)
	if err != nil {
		h.logger.Warn("failed to reload recipes after catalog load", zap.Error(err))
		return err
	}

	h.logger.Info("recipe catalog loaded",
		zap.Int("fetched", loaded.Count),
		zap.Int("available", len(recipes)),
		zap.String("event_id", loaded.EventID().String()))
	return nil
}
