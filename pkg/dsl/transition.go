package dsl

import "github.com/autostate/autostate/pkg/domain"

// TransitionBuilder provides a fluent API for configuring one transition.
type TransitionBuilder struct {
	transition domain.Transition
	builder    *Builder
}

// On sets the event that triggers the transition.
func (t *TransitionBuilder) On(event string) *TransitionBuilder {
	t.transition.Event = event
	return t
}

// When sets an optional guard condition. The condition is free text; it is
// carried through analysis and generation verbatim.
func (t *TransitionBuilder) When(condition string) *TransitionBuilder {
	t.transition.Guard = condition
	return t
}

// Do sets the action executed when the transition fires.
func (t *TransitionBuilder) Do(action string) *TransitionBuilder {
	t.transition.Action = action
	return t
}

// To sets the target state and returns the parent builder so the next
// transition can be declared.
func (t *TransitionBuilder) To(state string) *Builder {
	t.transition.NextState = state
	return t.builder
}

// Transition returns the underlying domain.Transition.
// This is primarily used by the Builder, but exposed for advanced usage.
func (t *TransitionBuilder) Transition() domain.Transition {
	return t.transition
}
