/*
Package autostate is a finite-state-machine analysis and code-generation
engine. Given a structured FSM model (states, events, guarded transitions,
one initial state) it statically verifies the model for determinism,
completeness and reachability, replays event sequences into simulation
traces, and emits the model as executable or declarative artifacts from
one canonical source of truth.

# Concept

The engine is a set of stateless, side-effect-free pure functions over an
immutable model snapshot. Persistence and natural-language parsing are
external collaborators behind the ports interfaces; the core borrows one
consistent snapshot per call and never retains state between calls. This
Hexagonal Architecture lets the engine back an HTTP API, a CLI, or be
embedded as a library.

# Key Properties

  - Opaque guards: guard and action strings are never parsed or executed.
    Determinism analysis is deliberately conservative about them.
  - Findings are data: non-determinism, incompleteness and unreachability
    are reported in a VerificationResult, never raised as errors.
  - Deterministic generation: identical model, template and options always
    produce byte-identical output.

# Usage

Wrap a ModelStore (and optionally a ScenarioParser) in a Service:

	store := memory.NewStore()
	svc := autostate.New(store, autostate.WithParser(llm))

	result, err := svc.Verify(ctx, modelID)
	trace, err := svc.Simulate(ctx, modelID, "", []string{"start", "reset"})
	code, err := svc.Generate(ctx, modelID, codegen.TemplatePythonClass, nil)
*/
package autostate
