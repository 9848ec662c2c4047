package ports

import (
	"context"

	"github.com/autostate/autostate/pkg/domain"
)

// ScenarioParser is the boundary to the natural-language collaborator.
// Its output is treated as ordinary transition values subject to the same
// structural validation as user-authored ones; the provenance tag is the
// only distinction the engine keeps.
type ScenarioParser interface {
	// ParseScenarios extracts transitions from natural-language scenario
	// descriptions. Results are tagged domain.SourceUser.
	ParseScenarios(ctx context.Context, title string, scenarios []string) ([]domain.Transition, error)

	// SuggestTransitions proposes transitions that would make the model
	// more complete. Results are tagged domain.SourceLLMInferred.
	SuggestTransitions(ctx context.Context, model domain.Model) ([]domain.Transition, error)
}
