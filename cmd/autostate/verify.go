package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/autostate/autostate/pkg/verify"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <model.yaml>",
	Short: "Verify a model for determinism, completeness and reachability",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		model, err := loadModelFile(args[0])
		if err != nil {
			fmt.Printf("Error loading model: %v\n", err)
			os.Exit(1)
		}

		result, err := verify.Run(model)
		if err != nil {
			fmt.Printf("Error verifying model: %v\n", err)
			os.Exit(1)
		}

		out, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(out))

		if !result.IsDeterministic || len(result.Errors) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
