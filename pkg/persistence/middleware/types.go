// Package middleware provides composable wrappers around a ModelStore,
// adding behavior such as write-time validation and structured logging
// without touching the underlying adapter.
package middleware

import "github.com/autostate/autostate/pkg/ports"

// Middleware allows wrapping a ModelStore to add behavior.
type Middleware func(ports.ModelStore) ports.ModelStore

// Chain applies the middlewares to store in order, so the first middleware
// in the list is the outermost wrapper.
func Chain(store ports.ModelStore, middlewares ...Middleware) ports.ModelStore {
	for i := len(middlewares) - 1; i >= 0; i-- {
		store = middlewares[i](store)
	}
	return store
}
