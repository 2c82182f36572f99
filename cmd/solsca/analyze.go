package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/omensec/solsca/internal/service/analysis"
	"github.com/omensec/solsca/pkg/models"
)

var (
	analyzeFormat string
	analyzeOutput string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <path>",
	Short: "Analyze a Solidity file or directory and emit a security report",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "json", "report format: json|sarif|junit|html")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "report.json", "output file path")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	target := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc := analysis.New(cfg)
	rpt, err := svc.AnalyzeAndEmit(cmd.Context(), target, analyzeFormat, analyzeOutput)
	if err != nil {
		return err
	}

	printSummary(rpt)
	color.Green("Report written to %s", analyzeOutput)
	return nil
}

func printSummary(rpt models.Report) {
	fmt.Printf("Analyzed %d contract(s) in %.2fs\n", rpt.Summary.TotalContractsAnalyzed, rpt.AnalysisMetadata.AnalysisDurationSeconds)
	if rpt.Summary.TotalVulnerabilities == 0 {
		color.Green("No vulnerabilities found")
		return
	}
	if rpt.Summary.HighSeverity > 0 {
		color.Red("High:   %d", rpt.Summary.HighSeverity)
	}
	if rpt.Summary.MediumSeverity > 0 {
		color.Yellow("Medium: %d", rpt.Summary.MediumSeverity)
	}
	if rpt.Summary.LowSeverity > 0 {
		fmt.Printf("Low:    %d\n", rpt.Summary.LowSeverity)
	}
	if rpt.Summary.Informational > 0 {
		color.Cyan("Info:   %d", rpt.Summary.Informational)
	}
}
