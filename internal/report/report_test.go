package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omensec/solsca/pkg/attribution"
	"github.com/omensec/solsca/pkg/models"
)

func sampleFindings() []models.Finding {
	return []models.Finding{
		{Detector: "reentrancy", Severity: models.SeverityHigh, Title: "Reentrancy", Location: models.Location{File: "Vault.sol", StartLine: 10, EndLine: 12}},
		{Detector: "public-state-visibility", Severity: models.SeverityInformational, Title: "Public state variable", Location: models.Location{File: "Vault.sol", StartLine: 3, EndLine: 3}},
		{Detector: "tx-origin", Severity: models.SeverityMedium, Title: "tx.origin", Location: models.Location{File: "Vault.sol", StartLine: 20, EndLine: 20}},
	}
}

func sampleContracts() []attribution.ContractSpanInfo {
	return []attribution.ContractSpanInfo{
		{Name: "Vault", StartLine: 1, EndLine: 30, IsUpgradeable: false},
	}
}

func TestAssembleAssignsStableIDsAndSummary(t *testing.T) {
	rpt := Assemble(sampleFindings(), sampleContracts(), models.Metadata{Target: "Vault.sol"})

	require.Len(t, rpt.Vulnerabilities, 2)
	require.Len(t, rpt.InformationalFindings, 1)
	assert.Equal(t, "VULN-001", rpt.Vulnerabilities[0].ID)
	assert.Equal(t, "VULN-002", rpt.Vulnerabilities[1].ID)
	assert.Equal(t, "INFO-001", rpt.InformationalFindings[0].ID)

	assert.Equal(t, 1, rpt.Summary.HighSeverity)
	assert.Equal(t, 1, rpt.Summary.MediumSeverity)
	assert.Equal(t, 1, rpt.Summary.Informational)
	assert.Equal(t, 1, rpt.Summary.TotalContractsAnalyzed)
}

func TestJSONRoundTrip(t *testing.T) {
	rpt := Assemble(sampleFindings(), sampleContracts(), models.Metadata{Target: "Vault.sol"})

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(rpt, &buf))

	parsed, err := ParseJSON(&buf)
	require.NoError(t, err)
	assert.Len(t, parsed.Vulnerabilities, len(rpt.Vulnerabilities))
	assert.Equal(t, rpt.SCAVersion, parsed.SCAVersion)
}

func TestParseJSONRejectsMalformedReport(t *testing.T) {
	_, err := ParseJSON(strings.NewReader(`{"not_a_report": true}`))
	assert.Error(t, err, "expected an error for a report missing required keys")
}

func TestWriteSARIFProducesAResultPerFinding(t *testing.T) {
	rpt := Assemble(sampleFindings(), sampleContracts(), models.Metadata{Target: "Vault.sol"})

	var buf bytes.Buffer
	require.NoError(t, WriteSARIF(rpt, &buf))

	out := buf.String()
	assert.True(t, strings.Contains(out, `"version": "2.1.0"`) || strings.Contains(out, `"version":"2.1.0"`), "expected SARIF version 2.1.0 in output: %s", out)
	assert.Equal(t, len(sampleFindings()), strings.Count(out, `"ruleId"`))
}

func TestWriteJUnitProducesOneTestcasePerFinding(t *testing.T) {
	rpt := Assemble(sampleFindings(), sampleContracts(), models.Metadata{Target: "Vault.sol"})

	var buf bytes.Buffer
	require.NoError(t, WriteJUnit(rpt, &buf))

	out := buf.String()
	assert.Equal(t, len(sampleFindings()), strings.Count(out, "<testcase"))
}
