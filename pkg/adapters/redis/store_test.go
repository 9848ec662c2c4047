package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/autostate/autostate/pkg/adapters/redis"
	"github.com/autostate/autostate/pkg/domain"
	"github.com/autostate/autostate/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *backend.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	return backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
}

func testModel(id string) domain.Model {
	m := domain.Build("Redis Test", []domain.Transition{
		{State: "idle", Event: "start", Action: "boot", NextState: "running"},
	})
	m.ID = id
	return m
}

func TestRedisStore_Contract(t *testing.T) {
	store := redis.NewFromClient(newTestClient(t))
	ports.RunModelStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testModel("model-ttl")))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "model-ttl")

	// Key expiration is handled by Redis; the index is pruned lazily on
	// List using wall-clock scores, so we also wait past the TTL.
	mr.FastForward(2 * time.Second)
	time.Sleep(1200 * time.Millisecond)

	_, err = store.Get(ctx, "model-ttl")
	assert.ErrorIs(t, err, domain.ErrModelNotFound)

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testModel("my-model")))

	assert.True(t, mr.Exists("custom:app:my-model"), "expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "expected index with custom prefix to exist")

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "my-model")
}
