package dsl

import (
	"fmt"

	"github.com/autostate/autostate/pkg/domain"
)

// Builder accumulates transitions for a model under construction.
type Builder struct {
	title       string
	initial     string
	transitions []*TransitionBuilder
}

// New creates a builder for a model with the given title.
func New(title string) *Builder {
	return &Builder{title: title}
}

// From starts a new transition leaving the given state. Transitions keep
// their declaration order, which is the simulation tie-break order.
func (b *Builder) From(state string) *TransitionBuilder {
	tb := &TransitionBuilder{
		transition: domain.Transition{State: state, Source: domain.SourceUser},
		builder:    b,
	}
	b.transitions = append(b.transitions, tb)
	return tb
}

// Initial overrides the inferred initial state.
func (b *Builder) Initial(state string) *Builder {
	b.initial = state
	return b
}

// Build compiles the accumulated transitions into a validated model.
func (b *Builder) Build() (domain.Model, error) {
	transitions := make([]domain.Transition, 0, len(b.transitions))
	for _, tb := range b.transitions {
		transitions = append(transitions, tb.transition)
	}

	model := domain.Build(b.title, transitions)
	if b.initial != "" {
		if !model.HasState(b.initial) {
			return domain.Model{}, fmt.Errorf("initial state %q is not referenced by any transition", b.initial)
		}
		model.InitialState = b.initial
	}

	if err := domain.Validate(model); err != nil {
		return domain.Model{}, err
	}
	return model, nil
}
