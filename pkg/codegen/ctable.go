package codegen

import (
	"strings"
	"text/template"
)

// CTableOptions configures the embedded-table emitter.
type CTableOptions struct {
	// Name overrides the generated struct name (default: CamelCase title + "FSM").
	Name string `mapstructure:"name"`
	// IncludeMain appends an example main() entry point (default: true).
	IncludeMain bool `mapstructure:"include_main"`
}

// The machine is emitted as one static const transition table with a
// first-match linear dispatch. This keeps exactly one table row per
// transition (duplicate (state, event) pairs stay representable, unlike
// switch case labels) and needs no dynamic allocation.
var cTemplate = template.Must(template.New("c_state_machine").Funcs(template.FuncMap{
	"upperSnake": upperSnake,
	"lowerSnake": lowerSnake,
}).Parse(`#include <stdio.h>
#include <stdbool.h>
#include <stddef.h>

/* {{.Title}} - generated state machine */
{{- range .Warnings}}
/* WARNING: {{.}} */
{{- end}}

/* States */
typedef enum {
{{- range .States}}
    STATE_{{upperSnake .}},
{{- end}}
    STATE_COUNT
} State;

/* Events */
typedef enum {
{{- range .Events}}
    EVENT_{{upperSnake .}},
{{- end}}
    EVENT_COUNT
} Event;

typedef struct {
    State current_state;
} {{.Name}};

/* Action handlers */
{{- range .Actions}}
void action_{{lowerSnake .}}(void);
{{- end}}

typedef void (*ActionFn)(void);

typedef struct {
    State state;
    Event event;
    const char* guard; /* opaque; NULL when unguarded */
    ActionFn action;
    State next_state;
} TransitionRow;

/* One row per transition, declaration order preserved. First match wins. */
static const TransitionRow TRANSITIONS[] = {
{{- range .Rows}}
    { STATE_{{upperSnake .State}}, EVENT_{{upperSnake .Event}}, {{if .Guard}}"{{.Guard}}"{{else}}NULL{{end}}, action_{{lowerSnake .Action}}, STATE_{{upperSnake .NextState}} },
{{- end}}
};

#define TRANSITION_COUNT (sizeof(TRANSITIONS) / sizeof(TRANSITIONS[0]))

/* Guard expressions are opaque; replace to supply real logic. */
static bool evaluate_guard(const char* guard) {
    (void)guard;
    return true;
}

void fsm_init({{.Name}}* fsm) {
    fsm->current_state = STATE_{{upperSnake .InitialState}};
}

bool fsm_handle_event({{.Name}}* fsm, Event event) {
    size_t i;
    for (i = 0; i < TRANSITION_COUNT; i++) {
        const TransitionRow* row = &TRANSITIONS[i];
        if (row->state != fsm->current_state || row->event != event) {
            continue;
        }
        if (row->guard != NULL && !evaluate_guard(row->guard)) {
            continue;
        }
        row->action();
        fsm->current_state = row->next_state;
        return true;
    }
    return false;
}

const char* fsm_state_name(State state) {
    static const char* names[] = {
{{- range .States}}
        "{{.}}",
{{- end}}
    };
    return (state < STATE_COUNT) ? names[state] : "UNKNOWN";
}

const char* fsm_event_name(Event event) {
    static const char* names[] = {
{{- range .Events}}
        "{{.}}",
{{- end}}
    };
    return (event < EVENT_COUNT) ? names[event] : "UNKNOWN";
}

{{range .Actions}}
void action_{{lowerSnake .}}(void) {
    /* Action: {{.}} */
}
{{end}}
{{- if .IncludeMain}}
int main(void) {
    {{.Name}} fsm;
    fsm_init(&fsm);
    printf("{{.Title}}: initial state %s\n", fsm_state_name(fsm.current_state));
    return 0;
}
{{- end}}
`))

type cRow struct {
	State, Event, Guard, Action, NextState string
}

func emitCTable(ctx renderContext, options Options) (string, error) {
	opts := CTableOptions{IncludeMain: true}
	if err := decodeOptions(options, &opts); err != nil {
		return "", err
	}

	name := opts.Name
	if name == "" {
		name = className(ctx.Model.Title) + "FSM"
	}

	actions := ctx.Actions
	rows := make([]cRow, 0, len(ctx.Model.Transitions))
	sawEmptyAction := false
	for _, t := range ctx.Model.Transitions {
		action := t.Action
		if action == "" {
			// An empty action still needs a callable table entry.
			action = "noop"
			sawEmptyAction = true
		}
		rows = append(rows, cRow{
			State:     t.State,
			Event:     t.Event,
			Guard:     escapeCString(t.Guard),
			Action:    action,
			NextState: t.NextState,
		})
	}
	if sawEmptyAction {
		actions = append(append([]string(nil), actions...), "noop")
	}

	data := struct {
		Title        string
		Name         string
		InitialState string
		States       []string
		Events       []string
		Actions      []string
		Rows         []cRow
		Warnings     []string
		IncludeMain  bool
	}{
		Title:        ctx.Model.Title,
		Name:         name,
		InitialState: ctx.Model.InitialState,
		States:       ctx.Model.States,
		Events:       ctx.Events,
		Actions:      actions,
		Rows:         rows,
		Warnings:     ctx.Warnings,
		IncludeMain:  opts.IncludeMain,
	}

	var sb strings.Builder
	if err := cTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func escapeCString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
