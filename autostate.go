package autostate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/autostate/autostate/internal/logging"
	"github.com/autostate/autostate/internal/presentation/graph"
	"github.com/autostate/autostate/pkg/codegen"
	"github.com/autostate/autostate/pkg/domain"
	"github.com/autostate/autostate/pkg/ports"
	"github.com/autostate/autostate/pkg/simulate"
	"github.com/autostate/autostate/pkg/verify"
)

// Version of the autostate module.
const Version = "0.1.0"

// ErrNoParser is returned by scenario operations when no ScenarioParser
// collaborator was configured.
var ErrNoParser = errors.New("no scenario parser configured")

// Service is the high-level entry point for the AutoState engine.
// It wires the pure analysis core to the model store and the optional
// natural-language parser. Every method borrows one model snapshot for
// the duration of the call; the Service itself holds no model state.
type Service struct {
	store  ports.ModelStore
	parser ports.ScenarioParser
	logger *slog.Logger
}

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithParser injects the natural-language collaborator used by
// ParseScenarios and SuggestTransitions.
func WithParser(p ports.ScenarioParser) Option {
	return func(s *Service) {
		s.parser = p
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a Service around a model store.
func New(store ports.ModelStore, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseScenarios extracts an FSM from natural-language scenarios, builds a
// model snapshot and persists it.
func (s *Service) ParseScenarios(ctx context.Context, title string, scenarios []string) (domain.Model, error) {
	if s.parser == nil {
		return domain.Model{}, ErrNoParser
	}

	transitions, err := s.parser.ParseScenarios(ctx, title, scenarios)
	if err != nil {
		return domain.Model{}, fmt.Errorf("parse scenarios: %w", err)
	}
	if len(transitions) == 0 {
		return domain.Model{}, fmt.Errorf("no transitions extracted from scenarios")
	}

	model := domain.Build(title, transitions)
	if err := domain.Validate(model); err != nil {
		return domain.Model{}, err
	}
	if err := s.store.Put(ctx, model); err != nil {
		return domain.Model{}, fmt.Errorf("store model: %w", err)
	}

	s.logger.Info("model parsed", "model_id", model.ID, "states", len(model.States), "transitions", len(model.Transitions))
	return model, nil
}

// Model returns the stored snapshot for id.
func (s *Service) Model(ctx context.Context, id string) (domain.Model, error) {
	return s.store.Get(ctx, id)
}

// ListModels returns the ids of all stored models.
func (s *Service) ListModels(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// DeleteModel removes a model from the store.
func (s *Service) DeleteModel(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// SuggestTransitions asks the parser collaborator for transitions that
// would make the model more complete. Suggestions are returned to the
// caller for review; nothing is persisted until one is accepted.
func (s *Service) SuggestTransitions(ctx context.Context, id string) ([]domain.Transition, error) {
	if s.parser == nil {
		return nil, ErrNoParser
	}

	model, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	suggestions, err := s.parser.SuggestTransitions(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("suggest transitions: %w", err)
	}
	for i := range suggestions {
		suggestions[i].Source = domain.SourceLLMInferred
	}
	return suggestions, nil
}

// AcceptTransition adds a suggested transition to the model and persists
// the new snapshot. The transition keeps the llm_inferred tag.
func (s *Service) AcceptTransition(ctx context.Context, id string, t domain.Transition) (domain.Model, error) {
	model, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Model{}, err
	}

	t.Source = domain.SourceLLMInferred
	updated := model.WithTransition(t)
	if err := domain.Validate(updated); err != nil {
		return domain.Model{}, err
	}
	if err := s.store.Put(ctx, updated); err != nil {
		return domain.Model{}, fmt.Errorf("store model: %w", err)
	}

	s.logger.Info("transition accepted", "model_id", id, "state", t.State, "event", t.Event)
	return updated, nil
}

// RejectTransition removes a transition (matched by state, event and
// guard) and persists the new snapshot. Rejecting an unknown transition
// is a no-op.
func (s *Service) RejectTransition(ctx context.Context, id string, t domain.Transition) (domain.Model, error) {
	model, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Model{}, err
	}

	updated := model.WithoutTransition(t)
	if err := s.store.Put(ctx, updated); err != nil {
		return domain.Model{}, fmt.Errorf("store model: %w", err)
	}
	return updated, nil
}

// ReplaceTransitions swaps the model's transition set wholesale, rebuilds
// the state list and persists the new snapshot.
func (s *Service) ReplaceTransitions(ctx context.Context, id string, transitions []domain.Transition) (domain.Model, error) {
	model, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Model{}, err
	}

	updated := model.WithTransitions(transitions)
	if err := domain.Validate(updated); err != nil {
		return domain.Model{}, err
	}
	if err := s.store.Put(ctx, updated); err != nil {
		return domain.Model{}, fmt.Errorf("store model: %w", err)
	}
	return updated, nil
}

// Verify runs the static analysis over the stored snapshot.
func (s *Service) Verify(ctx context.Context, id string) (domain.VerificationResult, error) {
	model, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.VerificationResult{}, err
	}
	return verify.Run(model)
}

// Simulate replays events against the stored snapshot.
func (s *Service) Simulate(ctx context.Context, id, startState string, events []string) ([]domain.SimulationStep, error) {
	model, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return simulate.Run(model, startState, events)
}

// Graph projects the stored snapshot into the visualization structure.
func (s *Service) Graph(ctx context.Context, id string) (domain.Graph, error) {
	model, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Graph{}, err
	}
	if err := domain.Validate(model); err != nil {
		return domain.Graph{}, err
	}
	return graph.Project(model), nil
}

// Generate emits the stored snapshot in the requested target format.
func (s *Service) Generate(ctx context.Context, id, templateID string, options codegen.Options) (domain.GeneratedCode, error) {
	model, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.GeneratedCode{}, err
	}
	return codegen.Generate(model, templateID, options)
}

// Templates returns the code generation catalog.
func (s *Service) Templates() []codegen.Info {
	return codegen.Templates()
}
