package ports

import (
	"context"
	"testing"
	"time"

	"github.com/autostate/autostate/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunModelStoreContract runs a suite of tests to verify that a ModelStore
// implementation adheres to the defined interface contract.
func RunModelStoreContract(t *testing.T, store ModelStore) {
	ctx := context.Background()
	id := "contract-test-model-" + time.Now().Format("20060102150405")

	newModel := func() domain.Model {
		m := domain.Build("Contract Model", []domain.Transition{
			{State: "idle", Event: "start", Action: "boot", NextState: "running"},
		})
		m.ID = id
		return m
	}

	t.Run("Put and Get", func(t *testing.T) {
		model := newModel()
		require.NoError(t, store.Put(ctx, model))

		loaded, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.Title, loaded.Title)
		assert.Equal(t, model.States, loaded.States)
		assert.Equal(t, model.InitialState, loaded.InitialState)
		require.Len(t, loaded.Transitions, 1)
		assert.Equal(t, "start", loaded.Transitions[0].Event)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrModelNotFound)
	})

	t.Run("Put Overwrites", func(t *testing.T) {
		model := newModel()
		require.NoError(t, store.Put(ctx, model))

		updated := model.WithTransition(domain.Transition{
			State: "running", Event: "stop", Action: "halt", NextState: "idle",
			Source: domain.SourceLLMInferred,
		})
		require.NoError(t, store.Put(ctx, updated))

		loaded, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Len(t, loaded.Transitions, 2)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, newModel()))
		require.NoError(t, store.Delete(ctx, id))

		_, err := store.Get(ctx, id)
		assert.ErrorIs(t, err, domain.ErrModelNotFound)

		err = store.Delete(ctx, id)
		assert.ErrorIs(t, err, domain.ErrModelNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id1, id2 := id+"-1", id+"-2"
		m1, m2 := newModel(), newModel()
		m1.ID, m2.ID = id1, id2
		_ = store.Put(ctx, m1)
		_ = store.Put(ctx, m2)

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
