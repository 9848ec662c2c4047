package dsl

import (
	"testing"

	"github.com/autostate/autostate/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleModel(t *testing.T) {
	b := New("Door")

	b.From("closed").On("open").Do("unlock").To("opened")
	b.From("opened").On("close").Do("latch").To("closed")

	model, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "Door", model.Title)
	assert.Equal(t, []string{"closed", "opened"}, model.States)
	require.Len(t, model.Transitions, 2)
	assert.Equal(t, "unlock", model.Transitions[0].Action)
	assert.Equal(t, domain.SourceUser, model.Transitions[0].Source)
	// No conventional entry-point name, so the first source state wins.
	assert.Equal(t, "closed", model.InitialState)
}

func TestBuilder_GuardAndOrder(t *testing.T) {
	b := New("Turnstile")

	b.From("locked").On("coin").When("coin is valid").Do("unlock").To("unlocked")
	b.From("locked").On("coin").Do("reject").To("locked")

	model, err := b.Build()
	require.NoError(t, err)

	require.Len(t, model.Transitions, 2)
	assert.Equal(t, "coin is valid", model.Transitions[0].Guard)
	assert.Empty(t, model.Transitions[1].Guard)
}

func TestBuilder_InitialOverride(t *testing.T) {
	b := New("Job")
	b.From("queued").On("run").Do("execute").To("running")
	b.From("running").On("finish").Do("report").To("done")

	model, err := b.Initial("running").Build()
	require.NoError(t, err)
	assert.Equal(t, "running", model.InitialState)
}

func TestBuilder_InitialUnknownState(t *testing.T) {
	b := New("Job")
	b.From("queued").On("run").Do("execute").To("running")

	_, err := b.Initial("paused").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paused")
}

func TestBuilder_InvalidTransition(t *testing.T) {
	b := New("Broken")
	b.From("a").Do("act").To("b") // missing event

	_, err := b.Build()
	var structural *domain.StructuralError
	require.ErrorAs(t, err, &structural)
}

func TestTransitionBuilder_Transition(t *testing.T) {
	b := New("Peek")
	tb := b.From("a").On("go").When("ready").Do("act")
	tb.To("b")

	tr := tb.Transition()
	assert.Equal(t, domain.Transition{
		State: "a", Event: "go", Guard: "ready", Action: "act", NextState: "b",
		Source: domain.SourceUser,
	}, tr)
}
