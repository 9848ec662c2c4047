package codegen

import (
	"strings"
	"text/template"
)

// PythonOptions configures the stateful-object emitter.
type PythonOptions struct {
	// Name overrides the generated class name (default: CamelCase title + "FSM").
	Name string `mapstructure:"name"`
	// IncludeTests appends a unittest self-check skeleton (default: true).
	IncludeTests bool `mapstructure:"include_tests"`
}

var pythonTemplate = template.Must(template.New("python_class").Funcs(template.FuncMap{
	"upperSnake": upperSnake,
	"lowerSnake": lowerSnake,
}).Parse(`"""{{.Title}} - generated finite state machine."""
{{- range .Warnings}}
# WARNING: {{.}}
{{- end}}

from enum import Enum, auto


class State(Enum):
{{- range .States}}
    {{upperSnake .}} = auto()
{{- end}}


class Event(Enum):
{{- range .Events}}
    {{upperSnake .}} = auto()
{{- end}}


class {{.ClassName}}:
    """{{.Title}} state machine.

    Guards are opaque expressions carried over from the model; override
    evaluate_guard to supply real logic.
    """

    # One dispatch entry per transition, in declaration order:
    # (state, event, guard, action, next_state)
    TRANSITIONS = [
{{- range .Transitions}}
        (State.{{upperSnake .State}}, Event.{{upperSnake .Event}}, {{if .Guard}}{{printf "%q" .Guard}}{{else}}None{{end}}, {{printf "%q" .Action}}, State.{{upperSnake .NextState}}),
{{- end}}
    ]

    def __init__(self):
        self.state = State.{{upperSnake .InitialState}}

    def handle_event(self, event):
        """Dispatch one event. Returns True if a transition fired."""
        for state, evt, guard, action, next_state in self.TRANSITIONS:
            if state is not self.state or evt is not event:
                continue
            if guard is not None and not self.evaluate_guard(guard):
                continue
            self.perform(action)
            self.state = next_state
            return True
        return False

    def evaluate_guard(self, guard):
        """Evaluate an opaque guard expression. Defaults to True."""
        return True

    def perform(self, action):
        handler = getattr(self, "action_" + action, None)
        if handler is not None:
            handler()

{{range .Actions}}
    def action_{{lowerSnake .}}(self):
        """Action: {{.}}"""
        pass
{{end}}
{{- if .IncludeTests}}

import unittest


class Test{{.ClassName}}(unittest.TestCase):
    def setUp(self):
        self.fsm = {{.ClassName}}()

    def test_initial_state(self):
        self.assertIs(self.fsm.state, State.{{upperSnake .InitialState}})

    def test_unknown_event_is_ignored(self):
        before = self.fsm.state
        handled = self.fsm.handle_event(None)
        self.assertFalse(handled)
        self.assertIs(self.fsm.state, before)


if __name__ == "__main__":
    unittest.main()
{{- end}}
`))

func emitPython(ctx renderContext, options Options) (string, error) {
	opts := PythonOptions{IncludeTests: true}
	if err := decodeOptions(options, &opts); err != nil {
		return "", err
	}

	name := opts.Name
	if name == "" {
		name = className(ctx.Model.Title) + "FSM"
	}

	data := struct {
		Title        string
		ClassName    string
		InitialState string
		States       []string
		Events       []string
		Actions      []string
		Transitions  []struct {
			State, Event, Guard, Action, NextState string
		}
		Warnings     []string
		IncludeTests bool
	}{
		Title:        ctx.Model.Title,
		ClassName:    name,
		InitialState: ctx.Model.InitialState,
		States:       ctx.Model.States,
		Events:       ctx.Events,
		Actions:      ctx.Actions,
		Warnings:     ctx.Warnings,
		IncludeTests: opts.IncludeTests,
	}
	for _, t := range ctx.Model.Transitions {
		data.Transitions = append(data.Transitions, struct {
			State, Event, Guard, Action, NextState string
		}{t.State, t.Event, t.Guard, t.Action, t.NextState})
	}

	var sb strings.Builder
	if err := pythonTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
