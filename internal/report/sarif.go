package report

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/omensec/solsca/pkg/models"
)

const sarifSchema = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// WriteSARIF emits a SARIF 2.1.0 log (§6.2) with one result per finding.
func WriteSARIF(r models.Report, w io.Writer) error {
	log := sarifLog{
		Schema:  sarifSchema,
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{Name: "Smart-Contract-Analyzer", Version: models.SCAVersion}},
		}},
	}

	all := make([]models.Finding, 0, len(r.Vulnerabilities)+len(r.InformationalFindings))
	all = append(all, r.Vulnerabilities...)
	all = append(all, r.InformationalFindings...)

	for _, f := range all {
		level := "warning"
		if f.Severity == models.SeverityHigh {
			level = "error"
		}
		log.Runs[0].Results = append(log.Runs[0].Results, sarifResult{
			RuleID:  f.Detector,
			Level:   level,
			Message: sarifMessage{Text: f.Description},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: normalizeURI(f.Location.File)},
					Region:           sarifRegion{StartLine: f.Location.StartLine},
				},
			}},
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

func normalizeURI(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), "\\", "/")
}
