package main

import (
	"fmt"
	"os"

	"github.com/autostate/autostate/pkg/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var rootCmd = &cobra.Command{
	Use:   "autostate",
	Short: "AutoState is an FSM analysis and code-generation engine",
	Long: `AutoState verifies finite state machines for determinism, completeness
and reachability, replays event sequences into simulation traces, and
emits models as code or policy artifacts.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadModelFile reads a model definition from a YAML (or JSON, which YAML
// subsumes) file and validates it.
func loadModelFile(path string) (domain.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Model{}, fmt.Errorf("read model file: %w", err)
	}

	var model domain.Model
	if err := yaml.Unmarshal(data, &model); err != nil {
		return domain.Model{}, fmt.Errorf("parse model file: %w", err)
	}

	// Files may omit the state list or initial state; recover them from
	// the transitions the same way built models do.
	if len(model.States) == 0 {
		model.States = domain.ExtractStates(model.Transitions)
	}
	if model.InitialState == "" {
		rebuilt := domain.Build(model.Title, model.Transitions)
		model.InitialState = rebuilt.InitialState
	}
	if err := domain.Validate(model); err != nil {
		return domain.Model{}, err
	}
	return model, nil
}
