// Package codegen emits an FSM model as executable or declarative
// artifacts. The template set is closed: adding a target is a deliberate
// code change, not runtime configuration. Every emitter is deterministic;
// identical model, template and options always produce byte-identical
// output.
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/autostate/autostate/pkg/domain"
	"github.com/autostate/autostate/pkg/verify"
	"github.com/mitchellh/mapstructure"
)

// Template identifiers. These are wire-level values; renaming one is a
// breaking API change.
const (
	TemplatePythonClass   = "python_class"
	TemplateYAMLPolicy    = "yaml_policy"
	TemplateCStateMachine = "c_state_machine"
)

// Options is the per-call configuration map. Recognized keys depend on
// the template; unrecognized keys are ignored and missing keys take the
// defaults documented on the per-template option structs.
type Options map[string]any

// Info describes one entry of the template catalog.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
}

// Templates returns the catalog of recognized generation targets.
func Templates() []Info {
	return []Info{
		{
			ID:          TemplatePythonClass,
			Name:        "Python Class",
			Description: "Object-oriented Python implementation with a self-test skeleton",
			Language:    "python",
		},
		{
			ID:          TemplateYAMLPolicy,
			Name:        "YAML Policy",
			Description: "Declarative transition policy for RBAC-style consumption",
			Language:    "yaml",
		},
		{
			ID:          TemplateCStateMachine,
			Name:        "C State Machine",
			Description: "Switch-table implementation suitable for embedded targets",
			Language:    "c",
		},
	}
}

// Generate emits the model in the requested target representation.
// A model failing structural validation fails before any emission; an
// unrecognized template id fails with domain.ErrUnknownTemplate.
func Generate(m domain.Model, templateID string, options Options) (domain.GeneratedCode, error) {
	if err := domain.Validate(m); err != nil {
		return domain.GeneratedCode{}, err
	}

	ctx := newRenderContext(m)

	var content string
	var err error
	switch templateID {
	case TemplatePythonClass:
		content, err = emitPython(ctx, options)
	case TemplateYAMLPolicy:
		content, err = emitYAMLPolicy(ctx, options)
	case TemplateCStateMachine:
		content, err = emitCTable(ctx, options)
	default:
		return domain.GeneratedCode{}, fmt.Errorf("%w: %q", domain.ErrUnknownTemplate, templateID)
	}
	if err != nil {
		return domain.GeneratedCode{}, fmt.Errorf("emit %s: %w", templateID, err)
	}

	return domain.GeneratedCode{
		Language: languageOf(templateID),
		Filename: filenameOf(m.Title, templateID),
		Content:  content,
	}, nil
}

func languageOf(templateID string) string {
	switch templateID {
	case TemplatePythonClass:
		return "python"
	case TemplateYAMLPolicy:
		return "yaml"
	case TemplateCStateMachine:
		return "c"
	}
	return "text"
}

func filenameOf(title, templateID string) string {
	base := strings.ReplaceAll(strings.ToLower(title), " ", "_")
	switch templateID {
	case TemplatePythonClass:
		return base + ".py"
	case TemplateYAMLPolicy:
		return base + ".yaml"
	case TemplateCStateMachine:
		return base + ".c"
	}
	return base + ".txt"
}

// renderContext is the pre-computed view of the model shared by all
// emitters: sorted events, grouped transitions, deduplicated actions and
// the incompleteness annotation.
type renderContext struct {
	Model    domain.Model
	Events   []string // sorted for stable enum order
	Actions  []string // unique, first-appearance order
	ByState  map[string][]domain.Transition
	Warnings []string
}

func newRenderContext(m domain.Model) renderContext {
	events := m.Events()
	sort.Strings(events)

	seen := make(map[string]bool)
	var actions []string
	byState := make(map[string][]domain.Transition)
	for _, t := range m.Transitions {
		if t.Action != "" && !seen[t.Action] {
			seen[t.Action] = true
			actions = append(actions, t.Action)
		}
		byState[t.State] = append(byState[t.State], t)
	}

	ctx := renderContext{
		Model:   m,
		Events:  events,
		Actions: actions,
		ByState: byState,
	}

	// Incompleteness is passed through as an annotation, never a failure,
	// so an intentionally partial model can still be inspected.
	if result, err := verify.Run(m); err == nil && !result.IsComplete {
		ctx.Warnings = append(ctx.Warnings,
			fmt.Sprintf("incomplete model: %d (state, event) pair(s) have no transition", len(result.MissingTransitions)))
	}
	return ctx
}

// decodeOptions fills an option struct (pre-populated with defaults) from
// the caller's map. Unknown keys are ignored by mapstructure's default
// behavior.
func decodeOptions(options Options, target any) error {
	if options == nil {
		return nil
	}
	return mapstructure.Decode(options, target)
}

// upperSnake converts an identifier to UPPER_SNAKE form for enum members.
func upperSnake(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
}

// lowerSnake converts an identifier to lower_snake form for function names.
func lowerSnake(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
}

// className derives a CamelCase type name from a model title.
func className(title string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(title) {
		sb.WriteString(strings.ToUpper(word[:1]))
		sb.WriteString(word[1:])
	}
	if sb.Len() == 0 {
		return "Generated"
	}
	return sb.String()
}
