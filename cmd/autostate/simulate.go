package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/autostate/autostate/pkg/simulate"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <model.yaml> <event> [event...]",
	Short: "Replay an event sequence against a model",
	Long: `Replays the given events in order and prints the trace. The trace is
shorter than the input when an event finds no matching transition.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		model, err := loadModelFile(args[0])
		if err != nil {
			fmt.Printf("Error loading model: %v\n", err)
			os.Exit(1)
		}

		start, _ := cmd.Flags().GetString("start")
		events := args[1:]

		trace, err := simulate.Run(model, start, events)
		if err != nil {
			fmt.Printf("Error simulating model: %v\n", err)
			os.Exit(1)
		}

		out, _ := json.MarshalIndent(trace, "", "  ")
		fmt.Println(string(out))

		if len(trace) < len(events) {
			fmt.Fprintf(os.Stderr, "simulation halted early: %d of %d events consumed\n", len(trace), len(events))
		}
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringP("start", "s", "", "Start state (defaults to the model's initial state)")
}
