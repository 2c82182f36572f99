// Package models holds the data model shared across the analysis pipeline:
// findings, the final report shape, and the error taxonomy.
package models

// Severity is a finding's risk level.
type Severity string

const (
	SeverityHigh          Severity = "High"
	SeverityMedium        Severity = "Medium"
	SeverityLow           Severity = "Low"
	SeverityInformational Severity = "Informational"
)

// SCAVersion is the stable version stamped into every emitted report.
const SCAVersion = "1.0.0"

// Issue is what a detector emits before the runner enriches it into a
// Finding: just the triggering line and a human-readable message.
type Issue struct {
	Line    int
	Message string
}

// Location pinpoints a finding within a source file.
type Location struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// Finding is a fully enriched detector result, ready for report assembly.
type Finding struct {
	ID            string   `json:"id,omitempty"`
	Detector      string   `json:"detector"`
	Severity      Severity `json:"severity"`
	SWCID         string   `json:"swc_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Contract      string   `json:"contract,omitempty"`
	Function      *string  `json:"function"`
	Location      Location `json:"location"`
	CodeSnippet   string   `json:"code_snippet"`
	FixSuggestion string   `json:"fix_suggestion"`
	Confidence    string   `json:"confidence"`
}

// LineRange is an inclusive [Start, End] line span.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ContractInfo describes one contract discovered while analyzing a file.
type ContractInfo struct {
	Name          string    `json:"name"`
	SourceFile    string    `json:"source_file"`
	SourceLines   LineRange `json:"source_lines"`
	IsUpgradeable bool      `json:"is_upgradeable"`
}

// Metadata records the circumstances of an analysis run.
type Metadata struct {
	Timestamp               string  `json:"timestamp"`
	Target                  string  `json:"target"`
	AnalysisDurationSeconds float64 `json:"analysis_duration_seconds"`
	SolidityVersion         string  `json:"solidity_version,omitempty"`
	Framework               string  `json:"framework,omitempty"`
}

// Summary aggregates finding counts for quick reporting.
type Summary struct {
	TotalVulnerabilities   int `json:"total_vulnerabilities"`
	HighSeverity           int `json:"high_severity"`
	MediumSeverity         int `json:"medium_severity"`
	LowSeverity            int `json:"low_severity"`
	Informational          int `json:"informational"`
	TotalContractsAnalyzed int `json:"total_contracts_analyzed"`
}

// Report is the final aggregate produced by the report assembler.
type Report struct {
	SCAVersion            string         `json:"sca_version"`
	AnalysisMetadata       Metadata       `json:"analysis_metadata"`
	ContractsAnalyzed      []ContractInfo `json:"contracts_analyzed"`
	Vulnerabilities        []Finding      `json:"vulnerabilities"`
	InformationalFindings  []Finding      `json:"informational_findings"`
	Summary                Summary        `json:"summary"`
}
