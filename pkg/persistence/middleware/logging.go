package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/autostate/autostate/pkg/domain"
	"github.com/autostate/autostate/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.ModelStore
	logger *slog.Logger
}

// NewLoggingMiddleware creates a middleware that logs every store
// operation with its duration and outcome.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.ModelStore) ports.ModelStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) Put(ctx context.Context, model domain.Model) error {
	start := time.Now()
	err := m.next.Put(ctx, model)
	m.log(ctx, "put", start, err, "model_id", model.ID, "transitions", len(model.Transitions))
	return err
}

func (m *loggingMiddleware) Get(ctx context.Context, id string) (domain.Model, error) {
	start := time.Now()
	model, err := m.next.Get(ctx, id)
	m.log(ctx, "get", start, err, "model_id", id)
	return model, err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.log(ctx, "list", start, err, "count", len(ids))
	return ids, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.log(ctx, "delete", start, err, "model_id", id)
	return err
}

func (m *loggingMiddleware) log(ctx context.Context, op string, start time.Time, err error, args ...any) {
	args = append(args, "op", op, "duration", time.Since(start).String())
	if err != nil {
		args = append(args, "err", err)
		m.logger.WarnContext(ctx, "model store operation failed", args...)
		return
	}
	m.logger.DebugContext(ctx, "model store operation", args...)
}
