package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Source records the provenance of a transition. It never affects
// validation or generation semantics.
type Source string

const (
	SourceUser        Source = "user"
	SourceLLMInferred Source = "llm_inferred"
)

// Transition defines a rule to move from one state to another when an
// event occurs. Guard is an optional free-text condition; it is carried
// verbatim, never evaluated.
type Transition struct {
	State     string `json:"state" yaml:"state"`
	Event     string `json:"event" yaml:"event"`
	Guard     string `json:"guard,omitempty" yaml:"guard,omitempty"`
	Action    string `json:"action" yaml:"action"`
	NextState string `json:"next_state" yaml:"next_state"`
	Source    Source `json:"source,omitempty" yaml:"source,omitempty"`
}

// Key identifies a transition for merge and rejection purposes.
// Two transitions with the same (state, event, guard) are duplicates.
func (t Transition) Key() [3]string {
	return [3]string{t.State, t.Event, t.Guard}
}

// Model is the canonical FSM representation analyzed and emitted by the
// engine. States is an ordered list with set semantics (no duplicates);
// transition order is significant only as a simulation tie-break.
type Model struct {
	ID           string         `json:"id,omitempty" yaml:"id,omitempty"`
	Title        string         `json:"title" yaml:"title"`
	States       []string       `json:"states" yaml:"states"`
	InitialState string         `json:"initial_state" yaml:"initial_state"`
	Transitions  []Transition   `json:"transitions" yaml:"transitions"`
	Metadata     map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// commonInitialNames are state names conventionally used as entry points.
// Build prefers these when inferring the initial state.
var commonInitialNames = map[string]bool{
	"idle":    true,
	"init":    true,
	"start":   true,
	"initial": true,
	"ready":   true,
}

// Build constructs a new Model from a transition list. States are
// extracted in first-appearance order and the initial state is inferred:
// a conventionally named state wins, otherwise the source state of the
// first transition.
func Build(title string, transitions []Transition) Model {
	states := ExtractStates(transitions)
	return Model{
		ID:           uuid.NewString(),
		Title:        title,
		States:       states,
		InitialState: inferInitialState(states, transitions),
		Transitions:  transitions,
		Metadata: map[string]any{
			"node_count": len(states),
			"edge_count": len(transitions),
		},
	}
}

// ExtractStates returns the unique states referenced by the transitions,
// in first-appearance order (source before target per transition).
func ExtractStates(transitions []Transition) []string {
	seen := make(map[string]bool)
	var states []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			states = append(states, s)
		}
	}
	for _, t := range transitions {
		add(t.State)
		add(t.NextState)
	}
	return states
}

func inferInitialState(states []string, transitions []Transition) string {
	for _, s := range states {
		if commonInitialNames[strings.ToLower(s)] {
			return s
		}
	}
	if len(transitions) > 0 {
		return transitions[0].State
	}
	return "initial"
}

// Events returns the unique events referenced by any transition, in
// first-appearance order.
func (m Model) Events() []string {
	seen := make(map[string]bool)
	var events []string
	for _, t := range m.Transitions {
		if t.Event != "" && !seen[t.Event] {
			seen[t.Event] = true
			events = append(events, t.Event)
		}
	}
	return events
}

// HasState reports whether name is a declared state.
func (m Model) HasState(name string) bool {
	for _, s := range m.States {
		if s == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the model. Mutation helpers operate on
// clones so callers always receive a fresh snapshot.
func (m Model) Clone() Model {
	out := m
	out.States = append([]string(nil), m.States...)
	out.Transitions = append([]Transition(nil), m.Transitions...)
	if m.Metadata != nil {
		out.Metadata = make(map[string]any, len(m.Metadata))
		for k, v := range m.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// WithTransition returns a new snapshot with t appended. States referenced
// by t but not yet declared are added. Used when accepting a suggestion;
// the caller decides the provenance tag.
func (m Model) WithTransition(t Transition) Model {
	out := m.Clone()
	out.Transitions = append(out.Transitions, t)
	for _, s := range []string{t.State, t.NextState} {
		if s != "" && !out.HasState(s) {
			out.States = append(out.States, s)
		}
	}
	out.refreshMetadata()
	return out
}

// WithoutTransition returns a new snapshot with every transition matching
// t's (state, event, guard) key removed. Removing an unknown transition
// is a no-op.
func (m Model) WithoutTransition(t Transition) Model {
	out := m.Clone()
	kept := out.Transitions[:0]
	for _, existing := range out.Transitions {
		if existing.Key() != t.Key() {
			kept = append(kept, existing)
		}
	}
	out.Transitions = kept
	out.refreshMetadata()
	return out
}

// WithTransitions returns a new snapshot with the transition set replaced
// wholesale. The state list is rebuilt from the new transitions and the
// initial state is re-inferred if the previous one is no longer declared.
func (m Model) WithTransitions(transitions []Transition) Model {
	out := m.Clone()
	out.Transitions = append([]Transition(nil), transitions...)
	out.States = ExtractStates(transitions)
	if !out.HasState(out.InitialState) {
		out.InitialState = inferInitialState(out.States, out.Transitions)
	}
	out.refreshMetadata()
	return out
}

func (m *Model) refreshMetadata() {
	if m.Metadata == nil {
		m.Metadata = make(map[string]any, 2)
	}
	m.Metadata["node_count"] = len(m.States)
	m.Metadata["edge_count"] = len(m.Transitions)
}

// MergeTransitions appends the transitions from extra that do not collide
// with an existing (state, event, guard) key.
func MergeTransitions(existing, extra []Transition) []Transition {
	keys := make(map[[3]string]bool, len(existing))
	for _, t := range existing {
		keys[t.Key()] = true
	}
	merged := append([]Transition(nil), existing...)
	for _, t := range extra {
		if !keys[t.Key()] {
			keys[t.Key()] = true
			merged = append(merged, t)
		}
	}
	return merged
}
