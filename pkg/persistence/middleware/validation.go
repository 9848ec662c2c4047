package middleware

import (
	"context"
	"fmt"

	"github.com/autostate/autostate/pkg/domain"
	"github.com/autostate/autostate/pkg/ports"
)

type validationMiddleware struct {
	next ports.ModelStore
}

// NewValidationMiddleware creates a middleware that rejects structurally
// invalid snapshots before they reach the underlying store. The service
// layer validates on its own paths; this guards direct store usage.
func NewValidationMiddleware() Middleware {
	return func(next ports.ModelStore) ports.ModelStore {
		return &validationMiddleware{next: next}
	}
}

func (m *validationMiddleware) Put(ctx context.Context, model domain.Model) error {
	if err := domain.Validate(model); err != nil {
		return fmt.Errorf("refusing to persist invalid model %q: %w", model.ID, err)
	}
	return m.next.Put(ctx, model)
}

func (m *validationMiddleware) Get(ctx context.Context, id string) (domain.Model, error) {
	return m.next.Get(ctx, id)
}

func (m *validationMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *validationMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}
