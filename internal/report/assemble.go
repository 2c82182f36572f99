// Package report implements the Report Assembler: turning a flat list of
// enriched findings into the final structured report, and rendering that
// report in each of the supported output formats.
package report

import (
	"fmt"

	"github.com/omensec/solsca/pkg/attribution"
	"github.com/omensec/solsca/pkg/models"
)

// Assemble partitions findings into vulnerabilities and informational notes,
// assigns each a stable VULN-NNN/INFO-NNN identifier in input order, and
// computes the report's summary and metadata.
func Assemble(findings []models.Finding, contracts []attribution.ContractSpanInfo, meta models.Metadata) models.Report {
	rpt := models.Report{
		SCAVersion:       models.SCAVersion,
		AnalysisMetadata: meta,
	}

	vulnN, infoN := 0, 0
	for _, f := range findings {
		if f.Severity == models.SeverityInformational {
			infoN++
			f.ID = fmt.Sprintf("INFO-%03d", infoN)
			rpt.InformationalFindings = append(rpt.InformationalFindings, f)
			continue
		}
		vulnN++
		f.ID = fmt.Sprintf("VULN-%03d", vulnN)
		rpt.Vulnerabilities = append(rpt.Vulnerabilities, f)

		switch f.Severity {
		case models.SeverityHigh:
			rpt.Summary.HighSeverity++
		case models.SeverityMedium:
			rpt.Summary.MediumSeverity++
		case models.SeverityLow:
			rpt.Summary.LowSeverity++
		}
	}
	rpt.Summary.TotalVulnerabilities = vulnN
	rpt.Summary.Informational = infoN
	rpt.Summary.TotalContractsAnalyzed = len(contracts)

	for _, c := range contracts {
		rpt.ContractsAnalyzed = append(rpt.ContractsAnalyzed, models.ContractInfo{
			Name:          c.Name,
			SourceFile:    meta.Target,
			SourceLines:   models.LineRange{Start: c.StartLine, End: c.EndLine},
			IsUpgradeable: c.IsUpgradeable,
		})
	}

	return rpt
}
