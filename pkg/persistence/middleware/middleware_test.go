package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/autostate/autostate/pkg/adapters/memory"
	"github.com/autostate/autostate/pkg/domain"
	"github.com/autostate/autostate/pkg/persistence/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validModel(id string) domain.Model {
	m := domain.Build("Door", []domain.Transition{
		{State: "closed", Event: "open", Action: "unlock", NextState: "opened"},
	})
	m.ID = id
	return m
}

func TestValidationMiddleware_RejectsInvalidModel(t *testing.T) {
	store := middleware.Chain(memory.NewStore(), middleware.NewValidationMiddleware())
	ctx := context.Background()

	invalid := validModel("broken")
	invalid.Transitions[0].Event = ""

	err := store.Put(ctx, invalid)
	require.Error(t, err)
	var structural *domain.StructuralError
	assert.ErrorAs(t, err, &structural)

	// Nothing was persisted.
	_, err = store.Get(ctx, "broken")
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestValidationMiddleware_PassesValidModel(t *testing.T) {
	store := middleware.Chain(memory.NewStore(), middleware.NewValidationMiddleware())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, validModel("door")))

	loaded, err := store.Get(ctx, "door")
	require.NoError(t, err)
	assert.Equal(t, "Door", loaded.Title)
}

func TestLoggingMiddleware_LogsOperations(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store := middleware.Chain(memory.NewStore(), middleware.NewLoggingMiddleware(logger))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, validModel("door")))
	_, err := store.Get(ctx, "door")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "op=put")
	assert.Contains(t, out, "op=get")
	assert.Contains(t, out, "model_id=door")
}

func TestLoggingMiddleware_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store := middleware.Chain(memory.NewStore(), middleware.NewLoggingMiddleware(logger))

	_, err := store.Get(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrModelNotFound)
	assert.Contains(t, buf.String(), "model store operation failed")
}

func TestChain_Order(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// Logging is outermost, so rejected writes still get logged.
	store := middleware.Chain(memory.NewStore(),
		middleware.NewLoggingMiddleware(logger),
		middleware.NewValidationMiddleware(),
	)

	invalid := validModel("broken")
	invalid.Transitions[0].State = ""

	err := store.Put(context.Background(), invalid)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "model store operation failed")
}
