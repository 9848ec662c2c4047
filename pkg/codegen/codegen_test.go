package codegen_test

import (
	"strings"
	"testing"

	"github.com/autostate/autostate/pkg/codegen"
	"github.com/autostate/autostate/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobModel() domain.Model {
	return domain.Build("Job Lifecycle", []domain.Transition{
		{State: "idle", Event: "start", Action: "initialize_system", NextState: "running"},
		{State: "running", Event: "error_occurs", Guard: "retries < 3", Action: "log_error", NextState: "error"},
		{State: "error", Event: "reset", Action: "clear_errors", NextState: "idle"},
	})
}

func TestGenerate_UnknownTemplate(t *testing.T) {
	_, err := codegen.Generate(jobModel(), "unknown-template", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownTemplate)
}

func TestGenerate_InvalidModel(t *testing.T) {
	m := jobModel()
	m.InitialState = "ghost"

	_, err := codegen.Generate(m, codegen.TemplatePythonClass, nil)
	require.Error(t, err)
	var serr *domain.StructuralError
	assert.ErrorAs(t, err, &serr)
}

func TestGenerate_Deterministic(t *testing.T) {
	m := jobModel()
	for _, id := range []string{
		codegen.TemplatePythonClass,
		codegen.TemplateYAMLPolicy,
		codegen.TemplateCStateMachine,
	} {
		t.Run(id, func(t *testing.T) {
			first, err := codegen.Generate(m, id, codegen.Options{"name": "Custom"})
			require.NoError(t, err)
			second, err := codegen.Generate(m, id, codegen.Options{"name": "Custom"})
			require.NoError(t, err)
			assert.Equal(t, first.Content, second.Content)
			assert.Equal(t, first.Filename, second.Filename)
		})
	}
}

func TestGenerate_Python(t *testing.T) {
	code, err := codegen.Generate(jobModel(), codegen.TemplatePythonClass, nil)
	require.NoError(t, err)

	assert.Equal(t, "python", code.Language)
	assert.Equal(t, "job_lifecycle.py", code.Filename)
	assert.Contains(t, code.Content, "class JobLifecycleFSM:")
	assert.Contains(t, code.Content, "IDLE = auto()")
	assert.Contains(t, code.Content, "self.state = State.IDLE")
	// One dispatch entry per transition, guard carried verbatim.
	assert.Contains(t, code.Content, `(State.RUNNING, Event.ERROR_OCCURS, "retries < 3", "log_error", State.ERROR),`)
	assert.Contains(t, code.Content, "def action_initialize_system(self):")
	// Incomplete model is annotated, not rejected.
	assert.Contains(t, code.Content, "# WARNING: incomplete model")
	// Self-test skeleton on by default.
	assert.Contains(t, code.Content, "class TestJobLifecycleFSM(unittest.TestCase):")
}

func TestGenerate_PythonOptions(t *testing.T) {
	code, err := codegen.Generate(jobModel(), codegen.TemplatePythonClass, codegen.Options{
		"name":          "JobMachine",
		"include_tests": false,
		"bogus_key":     42, // unrecognized keys are ignored
	})
	require.NoError(t, err)
	assert.Contains(t, code.Content, "class JobMachine:")
	assert.NotContains(t, code.Content, "unittest")
}

func TestGenerate_YAMLPolicy(t *testing.T) {
	code, err := codegen.Generate(jobModel(), codegen.TemplateYAMLPolicy, nil)
	require.NoError(t, err)

	assert.Equal(t, "yaml", code.Language)
	assert.Equal(t, "job_lifecycle.yaml", code.Filename)
	assert.Contains(t, code.Content, "name: job_lifecycle_policy")
	assert.Contains(t, code.Content, "version: 1.0.0")
	assert.Contains(t, code.Content, "initial: true")
	assert.Contains(t, code.Content, "guard: retries < 3")
	assert.Contains(t, code.Content, "idle_role")

	// Exactly one transition record per model transition.
	assert.Equal(t, 3, strings.Count(code.Content, "- from:"))
}

func TestGenerate_YAMLPolicyOptions(t *testing.T) {
	code, err := codegen.Generate(jobModel(), codegen.TemplateYAMLPolicy, codegen.Options{
		"policy_name":  "custom_policy",
		"version":      "2.1.0",
		"include_rbac": false,
	})
	require.NoError(t, err)
	assert.Contains(t, code.Content, "name: custom_policy")
	assert.Contains(t, code.Content, "version: 2.1.0")
	assert.NotContains(t, code.Content, "rbac:")
}

func TestGenerate_CTable(t *testing.T) {
	code, err := codegen.Generate(jobModel(), codegen.TemplateCStateMachine, nil)
	require.NoError(t, err)

	assert.Equal(t, "c", code.Language)
	assert.Equal(t, "job_lifecycle.c", code.Filename)
	assert.Contains(t, code.Content, "STATE_IDLE,")
	assert.Contains(t, code.Content, "EVENT_ERROR_OCCURS,")
	assert.Contains(t, code.Content, "static const TransitionRow TRANSITIONS[]")
	assert.Contains(t, code.Content, `"retries < 3"`)
	assert.Contains(t, code.Content, "int main(void)")

	// One table row per transition, declaration order preserved.
	assert.Equal(t, 3, strings.Count(code.Content, "{ STATE_"))
	first := strings.Index(code.Content, "{ STATE_IDLE, EVENT_START")
	second := strings.Index(code.Content, "{ STATE_RUNNING, EVENT_ERROR_OCCURS")
	assert.True(t, first >= 0 && second > first)
}

func TestGenerate_CTableWithoutMain(t *testing.T) {
	code, err := codegen.Generate(jobModel(), codegen.TemplateCStateMachine, codegen.Options{
		"include_main": false,
	})
	require.NoError(t, err)
	assert.NotContains(t, code.Content, "int main(void)")
}

func TestGenerate_CompleteModelHasNoWarning(t *testing.T) {
	// Single state, single event handled everywhere reachable.
	m := domain.Build("Loop", []domain.Transition{
		{State: "on", Event: "tick", Action: "pulse", NextState: "on"},
	})

	code, err := codegen.Generate(m, codegen.TemplatePythonClass, nil)
	require.NoError(t, err)
	assert.NotContains(t, code.Content, "WARNING")
}

func TestTemplates(t *testing.T) {
	catalog := codegen.Templates()
	require.Len(t, catalog, 3)

	ids := make([]string, 0, len(catalog))
	for _, info := range catalog {
		ids = append(ids, info.ID)
		assert.NotEmpty(t, info.Name)
		assert.NotEmpty(t, info.Language)
	}
	assert.ElementsMatch(t, ids, []string{"python_class", "yaml_policy", "c_state_machine"})
}
