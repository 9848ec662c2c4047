// Package redis provides a ModelStore backed by Redis. Models are stored
// as JSON values with an auxiliary ZSET index for listing; write
// serialization per model id is delegated to Redis itself.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/autostate/autostate/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.ModelStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored models.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for models.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "autostate:model:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Put persists the model snapshot to Redis.
func (s *Store) Put(ctx context.Context, model domain.Model) error {
	data, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(model.ID), data, s.ttl)

	// Index score = expiry instant; effectively-never for unbounded TTL.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: model.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Get retrieves the model snapshot from Redis.
func (s *Store) Get(ctx context.Context, id string) (domain.Model, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return domain.Model{}, domain.ErrModelNotFound
		}
		return domain.Model{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var model domain.Model
	if err := json.Unmarshal([]byte(val), &model); err != nil {
		return domain.Model{}, fmt.Errorf("failed to unmarshal model: %w", err)
	}
	return model, nil
}

// List returns stored model ids after lazily pruning expired index entries.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired models: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	return ids, nil
}

// Delete removes the model and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	removed, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	if removed == 0 {
		return domain.ErrModelNotFound
	}
	return s.client.ZRem(ctx, s.indexKey(), id).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
