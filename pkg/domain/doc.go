/*
Package domain contains the core domain models for the AutoState engine.

It defines the canonical FSM representation (Model, Transition) plus the
value objects produced by the analysis engines (VerificationResult,
SimulationStep, GeneratedCode, Graph). This package is kept pure and free
of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Model: the canonical state/transition structure, one initial state.
  - Transition: a guarded edge (state, event, guard?, action, next_state).
  - VerificationResult: determinism / completeness / reachability findings.
  - SimulationStep: one record of a replayed event.
  - Graph: the presentation-oriented node/edge projection.

Guard and action strings are opaque payloads. The engine never parses or
executes them.
*/
package domain
