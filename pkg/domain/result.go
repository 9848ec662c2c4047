package domain

// MissingTransition describes a (reachable state, event) pair with no
// defined transition.
type MissingTransition struct {
	State  string `json:"state"`
	Event  string `json:"event"`
	Reason string `json:"reason"`
}

// VerificationResult is the value object returned by the verification
// engine. It is recomputed fresh on every call and never cached across
// model mutation. Findings are data, not errors: an incomplete or
// non-deterministic FSM is a legitimate, inspectable intermediate state.
type VerificationResult struct {
	IsDeterministic    bool                `json:"is_deterministic"`
	IsComplete         bool                `json:"is_complete"`
	UnreachableStates  []string            `json:"unreachable_states"`
	MissingTransitions []MissingTransition `json:"missing_transitions"`
	Warnings           []string            `json:"warnings"`
	Errors             []string            `json:"errors"`
}

// SimulationStep records one consumed input event during replay.
// GuardEvaluated is true iff the selected transition carried a non-empty
// guard; the guard itself is assumed satisfied, never interpreted.
type SimulationStep struct {
	CurrentState   string `json:"current_state"`
	Event          string `json:"event"`
	NextState      string `json:"next_state"`
	Action         string `json:"action"`
	GuardEvaluated bool   `json:"guard_evaluated"`
}

// GeneratedCode is the output of one emitter run. Pure function output;
// no persisted identity.
type GeneratedCode struct {
	Language string `json:"language"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}
