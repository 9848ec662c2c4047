// Package simulate replays event sequences against an FSM model and
// records the resulting trace. Replay is deterministic and fail-soft:
// an event with no matching transition truncates the trace instead of
// raising an error, so partial traces remain inspectable.
package simulate

import "github.com/autostate/autostate/pkg/domain"

// Run replays events against the model starting from startState. An empty
// startState, or one that is not a declared state, falls back to the
// model's initial state.
//
// For each event the first transition in declaration order matching
// (currentState, event) fires. Guards are opaque: a guarded transition is
// recorded with GuardEvaluated=true and assumed satisfied. When no
// transition matches, the trace returned so far is final; callers detect
// early halt by comparing trace length to input length.
func Run(m domain.Model, startState string, events []string) ([]domain.SimulationStep, error) {
	if err := domain.Validate(m); err != nil {
		return nil, err
	}

	current := m.InitialState
	if startState != "" && m.HasState(startState) {
		current = startState
	}

	trace := make([]domain.SimulationStep, 0, len(events))
	for _, event := range events {
		selected, ok := match(m, current, event)
		if !ok {
			break
		}
		trace = append(trace, domain.SimulationStep{
			CurrentState:   current,
			Event:          event,
			NextState:      selected.NextState,
			Action:         selected.Action,
			GuardEvaluated: selected.Guard != "",
		})
		current = selected.NextState
	}
	return trace, nil
}

// match returns the first transition in declaration order for the
// (state, event) pair.
func match(m domain.Model, state, event string) (domain.Transition, bool) {
	for _, t := range m.Transitions {
		if t.State == state && t.Event == event {
			return t, true
		}
	}
	return domain.Transition{}, false
}
