package ports

import (
	"context"

	"github.com/autostate/autostate/pkg/domain"
)

// ModelStore defines the interface for persisting FSM model snapshots.
// The store owns serialization of concurrent edits to the same model id:
// at most one committed write wins and later reads observe the updated
// snapshot. The engine only requires a consistent snapshot per call.
type ModelStore interface {
	// Put persists a model snapshot under its id.
	Put(ctx context.Context, model domain.Model) error

	// Get retrieves the snapshot for a model id.
	// Returns domain.ErrModelNotFound if the id does not exist.
	Get(ctx context.Context, id string) (domain.Model, error)

	// List returns the ids of all stored models.
	List(ctx context.Context) ([]string, error)

	// Delete removes a model. Deleting an unknown id returns
	// domain.ErrModelNotFound.
	Delete(ctx context.Context, id string) error
}
