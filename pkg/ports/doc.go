/*
Package ports defines the driven ports (interfaces) for the AutoState engine.

These interfaces decouple the analysis core from its external
collaborators: the model store that owns persistence and write
serialization, and the natural-language parser backed by a large language
model. The core borrows one consistent model snapshot per call and never
accesses storage or the LLM directly.

# Key Interfaces

  - ModelStore: get/list/put/delete of FSM model snapshots by id.
  - ScenarioParser: scenario-to-transition extraction and gap suggestion.
*/
package ports
