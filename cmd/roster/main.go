package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hospitalroster/duty-scheduler/cmd/roster/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "Duty Scheduler CLI - build and inspect hospital duty rosters",
		Long:  `A command-line tool for running the evolutionary duty-roster scheduler against a problem instance, validating instances, and generating synthetic sample data.`,
	}

	rootCmd.AddCommand(commands.GenerateCmd())
	rootCmd.AddCommand(commands.ValidateCmd())
	rootCmd.AddCommand(commands.SampleCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
