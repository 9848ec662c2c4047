// Package verify implements the static analysis of an FSM model:
// reachability, determinism and completeness. All findings are reported
// as data in a domain.VerificationResult; only structural invariant
// violations surface as errors.
package verify

import (
	"fmt"

	"github.com/autostate/autostate/pkg/domain"
)

// Run analyzes the model and returns a fresh VerificationResult.
// The model is validated first; a structurally invalid model fails with
// a *domain.StructuralError instead of producing findings.
//
// Run is a pure function: it never mutates the model and identical
// inputs always produce identical results.
func Run(m domain.Model) (domain.VerificationResult, error) {
	if err := domain.Validate(m); err != nil {
		return domain.VerificationResult{}, err
	}

	result := domain.VerificationResult{
		UnreachableStates:  []string{},
		MissingTransitions: []domain.MissingTransition{},
		Warnings:           []string{},
		Errors:             []string{},
	}

	reachable := reachableStates(m)
	for _, s := range m.States {
		if !reachable[s] {
			result.UnreachableStates = append(result.UnreachableStates, s)
		}
	}
	if len(result.UnreachableStates) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d state(s) unreachable from %q", len(result.UnreachableStates), m.InitialState))
	}

	result.IsDeterministic = checkDeterminism(m, &result)
	checkCompleteness(m, reachable, &result)
	result.IsComplete = len(result.MissingTransitions) == 0

	// Advisory: sink states have no outgoing transitions at all.
	outgoing := make(map[string]bool, len(m.Transitions))
	for _, t := range m.Transitions {
		outgoing[t.State] = true
	}
	for _, s := range m.States {
		if !outgoing[s] && reachable[s] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("state %q has no outgoing transitions", s))
		}
	}

	return result, nil
}

// reachableStates performs a breadth-first traversal over the directed
// transition graph starting at the initial state. Guards and events are
// ignored; any transition edge counts as reachable.
func reachableStates(m domain.Model) map[string]bool {
	next := make(map[string][]string, len(m.States))
	for _, t := range m.Transitions {
		next[t.State] = append(next[t.State], t.NextState)
	}

	visited := map[string]bool{m.InitialState: true}
	queue := []string{m.InitialState}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, target := range next[current] {
			if !visited[target] {
				visited[target] = true
				queue = append(queue, target)
			}
		}
	}
	return visited
}

// checkDeterminism partitions transitions by (state, event) and inspects
// every group of size >= 2. An unguarded member always matches, so it
// conflicts with any sibling. All-guarded groups are accepted only when
// every guard is non-empty and no two guard strings are lexically equal;
// even then a warning records that disjointness of opaque guard text is
// assumed, not proven.
func checkDeterminism(m domain.Model, result *domain.VerificationResult) bool {
	type key struct{ state, event string }
	groups := make(map[key][]domain.Transition)
	var order []key
	for _, t := range m.Transitions {
		k := key{t.State, t.Event}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], t)
	}

	deterministic := true
	for _, k := range order {
		group := groups[k]
		if len(group) < 2 {
			continue
		}

		unguarded := 0
		guardSeen := make(map[string]bool)
		duplicateGuard := false
		for _, t := range group {
			if t.Guard == "" {
				unguarded++
				continue
			}
			if guardSeen[t.Guard] {
				duplicateGuard = true
			}
			guardSeen[t.Guard] = true
		}

		switch {
		case unguarded > 0:
			deterministic = false
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("non-deterministic: state %q event %q has %d transitions and an unguarded one always matches",
					k.state, k.event, len(group)))
		case duplicateGuard:
			deterministic = false
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("non-deterministic: state %q event %q has transitions with identical guards",
					k.state, k.event))
		default:
			// Distinct non-empty guards. Accepted, but the engine cannot
			// prove the guard texts are mutually exclusive.
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("state %q event %q: %d guarded transitions assumed mutually exclusive",
					k.state, k.event, len(group)))
		}
	}
	return deterministic
}

// checkCompleteness requires every reachable state to handle every event
// referenced anywhere in the model.
func checkCompleteness(m domain.Model, reachable map[string]bool, result *domain.VerificationResult) {
	handled := make(map[[2]string]bool, len(m.Transitions))
	for _, t := range m.Transitions {
		handled[[2]string{t.State, t.Event}] = true
	}

	events := m.Events()
	for _, s := range m.States {
		if !reachable[s] {
			continue
		}
		for _, e := range events {
			if !handled[[2]string{s, e}] {
				result.MissingTransitions = append(result.MissingTransitions, domain.MissingTransition{
					State:  s,
					Event:  e,
					Reason: "no transition for event in reachable state",
				})
			}
		}
	}
}
