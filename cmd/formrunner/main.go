package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "formrunner",
		Short: "Formrunner - Automated web form submission",
		Long: `Formrunner drives a real browser to fill out and submit web forms from
declarative JSON field data. It resolves fields by their visible labels,
confirms the submission succeeded, and records every run with a screenshot.`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "app-config", "", "application config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
