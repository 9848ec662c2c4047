package domain

// Validate checks the structural invariants of a model:
//
//   - at least one state, no duplicate state names
//   - initial_state is a declared state
//   - every transition has non-empty state, event and next_state
//   - every transition endpoint is a declared state
//
// Callers of the analysis and generation engines never see a partially
// invariant model; each engine validates before doing any work.
func Validate(m Model) error {
	if len(m.States) == 0 {
		return NewStructuralError("model declares no states")
	}
	seen := make(map[string]bool, len(m.States))
	for _, s := range m.States {
		if s == "" {
			return NewStructuralError("empty state name")
		}
		if seen[s] {
			return NewStructuralError("duplicate state %q", s)
		}
		seen[s] = true
	}
	if !seen[m.InitialState] {
		return NewStructuralError("initial state %q is not a declared state", m.InitialState)
	}
	for i, t := range m.Transitions {
		switch {
		case t.State == "":
			return NewStructuralError("transition %d has empty state", i)
		case t.Event == "":
			return NewStructuralError("transition %d has empty event", i)
		case t.NextState == "":
			return NewStructuralError("transition %d has empty next_state", i)
		case !seen[t.State]:
			return NewStructuralError("transition %d references undeclared state %q", i, t.State)
		case !seen[t.NextState]:
			return NewStructuralError("transition %d references undeclared state %q", i, t.NextState)
		}
	}
	return nil
}
