package event

import (
	"context"
	"errors"
	"testing"

	"github.com/cookbook/backend/internal/domain/recipe"
	"github.com/cookbook/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captureHandler struct {
	types  []string
	events []shared.DomainEvent
	err    error
	panics bool
}

func (h *captureHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	h.events = append(h.events, event)
	return h.err
}

func (h *captureHandler) EventTypes() []string {
	return h.types
}

func TestInMemoryEventBus(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers events to handlers of the matching type", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		created := &captureHandler{types: []string{recipe.EventTypeRecipeCreated}}
		deleted := &captureHandler{types: []string{recipe.EventTypeRecipeDeleted}}
		bus.Subscribe(created)
		bus.Subscribe(deleted)

		err := bus.Publish(ctx, recipe.NewDeletedEvent("r-1"))
		require.NoError(t, err)

		assert.Empty(t, created.events)
		require.Len(t, deleted.events, 1)
		assert.Equal(t, recipe.EventTypeRecipeDeleted, deleted.events[0].EventType())
	})

	t.Run("a handler with no declared types receives everything", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		wildcard := &captureHandler{}
		bus.Subscribe(wildcard)

		err := bus.Publish(ctx,
			recipe.NewDeletedEvent("r-1"),
			recipe.NewCatalogLoadedEvent(18),
		)
		require.NoError(t, err)
		assert.Len(t, wildcard.events, 2)
	})

	t.Run("a failing handler does not block the others", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &captureHandler{types: []string{recipe.EventTypeRecipeDeleted}, err: errors.New("handler broke")}
		healthy := &captureHandler{types: []string{recipe.EventTypeRecipeDeleted}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		err := bus.Publish(ctx, recipe.NewDeletedEvent("r-1"))
		require.NoError(t, err)
		assert.Len(t, healthy.events, 1)
	})

	t.Run("a panicking handler is contained", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := &captureHandler{types: []string{recipe.EventTypeRecipeDeleted}, panics: true}
		healthy := &captureHandler{types: []string{recipe.EventTypeRecipeDeleted}}
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		require.NotPanics(t, func() {
			_ = bus.Publish(ctx, recipe.NewDeletedEvent("r-1"))
		})
		assert.Len(t, healthy.events, 1)
	})

	t.Run("unsubscribed handlers stop receiving events", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &captureHandler{types: []string{recipe.EventTypeRecipeDeleted}}
		bus.Subscribe(handler)
		bus.Unsubscribe(handler)

		err := bus.Publish(ctx, recipe.NewDeletedEvent("r-1"))
		require.NoError(t, err)
		assert.Empty(t, handler.events)
	})
}
