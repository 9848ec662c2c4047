package main

import (
	"fmt"

	"github.com/autostate/autostate"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of AutoState",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("autostate version %s\n", autostate.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
