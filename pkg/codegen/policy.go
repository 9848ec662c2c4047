package codegen

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// PolicyOptions configures the declarative-policy emitter.
type PolicyOptions struct {
	// PolicyName overrides the policy identifier (default: snake_case title + "_policy").
	PolicyName string `mapstructure:"policy_name"`
	// Version is stamped into the policy header (default: "1.0.0").
	Version string `mapstructure:"version"`
	// IncludeRBAC emits the per-state role/permission mapping (default: true).
	IncludeRBAC bool `mapstructure:"include_rbac"`
}

// Struct shapes keep yaml.Marshal output ordered and therefore
// byte-deterministic; maps would randomize key order.

type policyDoc struct {
	Policy      policyHeader       `yaml:"policy"`
	States      []policyState      `yaml:"states"`
	Events      []string           `yaml:"events"`
	Transitions []policyTransition `yaml:"transitions"`
	RBAC        *policyRBAC        `yaml:"rbac,omitempty"`
}

type policyHeader struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type policyState struct {
	Name    string `yaml:"name"`
	Initial bool   `yaml:"initial,omitempty"`
}

type policyTransition struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	On     string `yaml:"on"`
	Guard  string `yaml:"guard,omitempty"`
	Action string `yaml:"action"`
	Source string `yaml:"source,omitempty"`
}

type policyRBAC struct {
	Roles []policyRole `yaml:"roles"`
}

type policyRole struct {
	Name        string             `yaml:"name"`
	Permissions []policyPermission `yaml:"permissions"`
}

type policyPermission struct {
	Action   string `yaml:"action"`
	Resource string `yaml:"resource"`
}

func emitYAMLPolicy(ctx renderContext, options Options) (string, error) {
	opts := PolicyOptions{Version: "1.0.0", IncludeRBAC: true}
	if err := decodeOptions(options, &opts); err != nil {
		return "", err
	}
	if opts.PolicyName == "" {
		opts.PolicyName = lowerSnake(ctx.Model.Title) + "_policy"
	}

	doc := policyDoc{
		Policy: policyHeader{Name: opts.PolicyName, Version: opts.Version},
		Events: ctx.Events,
	}
	for _, s := range ctx.Model.States {
		doc.States = append(doc.States, policyState{
			Name:    s,
			Initial: s == ctx.Model.InitialState,
		})
	}
	for _, t := range ctx.Model.Transitions {
		doc.Transitions = append(doc.Transitions, policyTransition{
			From:   t.State,
			To:     t.NextState,
			On:     t.Event,
			Guard:  t.Guard,
			Action: t.Action,
			Source: string(t.Source),
		})
	}
	if opts.IncludeRBAC {
		rbac := &policyRBAC{}
		for _, s := range ctx.Model.States {
			role := policyRole{
				Name:        lowerSnake(s) + "_role",
				Permissions: []policyPermission{},
			}
			for _, t := range ctx.ByState[s] {
				role.Permissions = append(role.Permissions, policyPermission{
					Action:   t.Action,
					Resource: t.NextState,
				})
			}
			rbac.Roles = append(rbac.Roles, role)
		}
		doc.RBAC = rbac
	}

	body, err := yaml.Marshal(doc)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s - access control policy\n", ctx.Model.Title)
	sb.WriteString("# Generated from FSM specification\n")
	for _, w := range ctx.Warnings {
		fmt.Fprintf(&sb, "# WARNING: %s\n", w)
	}
	sb.WriteString("\n")
	sb.Write(body)
	return sb.String(), nil
}
