package cmd

import (
	"github.com/spf13/cobra"
)

// solveCmd is an explicit alias for the root pipeline run.
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Build the model, solve it and write the reports",
	RunE:  run,
}

func init() {
	rootCmd.AddCommand(solveCmd)
}
