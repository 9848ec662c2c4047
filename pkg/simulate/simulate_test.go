package simulate_test

import (
	"testing"

	"github.com/autostate/autostate/pkg/domain"
	"github.com/autostate/autostate/pkg/simulate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobModel() domain.Model {
	return domain.Build("Job Lifecycle", []domain.Transition{
		{State: "idle", Event: "start", Action: "initialize_system", NextState: "running"},
		{State: "running", Event: "error_occurs", Action: "log_error", NextState: "error"},
		{State: "error", Event: "reset", Action: "clear_errors", NextState: "idle"},
	})
}

func TestRun_FullTrace(t *testing.T) {
	trace, err := simulate.Run(jobModel(), "idle", []string{"start", "error_occurs", "reset"})
	require.NoError(t, err)
	require.Len(t, trace, 3)

	assert.Equal(t, domain.SimulationStep{
		CurrentState: "idle", Event: "start", NextState: "running",
		Action: "initialize_system", GuardEvaluated: false,
	}, trace[0])
	assert.Equal(t, "idle", trace[2].NextState, "trace should end back at idle")
}

func TestRun_TruncatesOnMissingTransition(t *testing.T) {
	// "reset" is not handled in running, so replay halts after one step.
	trace, err := simulate.Run(jobModel(), "", []string{"start", "reset", "start"})
	require.NoError(t, err)
	require.Len(t, trace, 1)
	assert.Equal(t, "running", trace[0].NextState)
}

func TestRun_StartStateFallback(t *testing.T) {
	t.Run("explicit member state", func(t *testing.T) {
		trace, err := simulate.Run(jobModel(), "error", []string{"reset"})
		require.NoError(t, err)
		require.Len(t, trace, 1)
		assert.Equal(t, "error", trace[0].CurrentState)
	})

	t.Run("unknown state falls back to initial", func(t *testing.T) {
		trace, err := simulate.Run(jobModel(), "ghost", []string{"start"})
		require.NoError(t, err)
		require.Len(t, trace, 1)
		assert.Equal(t, "idle", trace[0].CurrentState)
	})
}

func TestRun_DeclarationOrderWins(t *testing.T) {
	m := domain.Build("t", []domain.Transition{
		{State: "idle", Event: "start", Guard: "cold", Action: "boot", NextState: "running"},
		{State: "idle", Event: "start", Guard: "warm", Action: "resume", NextState: "running"},
	})

	trace, err := simulate.Run(m, "", []string{"start"})
	require.NoError(t, err)
	require.Len(t, trace, 1)
	assert.Equal(t, "boot", trace[0].Action)
	assert.True(t, trace[0].GuardEvaluated)
}

func TestRun_Pure(t *testing.T) {
	m := jobModel()
	events := []string{"start", "error_occurs"}

	first, err := simulate.Run(m, "", events)
	require.NoError(t, err)
	second, err := simulate.Run(m, "", events)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRun_LengthInvariant(t *testing.T) {
	m := jobModel()
	sequences := [][]string{
		{},
		{"start"},
		{"start", "error_occurs", "reset"},
		{"reset", "reset"},
		{"start", "start", "start"},
	}
	for _, events := range sequences {
		trace, err := simulate.Run(m, "", events)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(trace), len(events))
	}
}

func TestRun_InvalidModel(t *testing.T) {
	m := jobModel()
	m.Transitions[0].NextState = "ghost"

	_, err := simulate.Run(m, "", []string{"start"})
	require.Error(t, err)
	var serr *domain.StructuralError
	assert.ErrorAs(t, err, &serr)
}
