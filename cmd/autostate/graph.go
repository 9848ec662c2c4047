package main

import (
	"fmt"
	"os"

	"github.com/autostate/autostate/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <model.yaml>",
	Short: "Render a model as a Mermaid state diagram",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		model, err := loadModelFile(args[0])
		if err != nil {
			fmt.Printf("Error loading model: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(graph.GenerateMermaid(model))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
