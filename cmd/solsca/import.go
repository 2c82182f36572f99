package main

import (
	"github.com/spf13/cobra"

	"github.com/omensec/solsca/internal/service/analysis"
)

var importCmd = &cobra.Command{
	Use:   "import <report.json>",
	Short: "Load a previously emitted JSON report and print its summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	rpt, err := analysis.ImportReport(args[0])
	if err != nil {
		return err
	}
	printSummary(rpt)
	return nil
}
