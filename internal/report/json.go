package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/omensec/solsca/pkg/models"
)

// WriteJSON emits the structured JSON report (§6.1). models.Report's field
// tags already match the wire shape, so this is a direct encode.
func WriteJSON(r models.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// ParseJSON reads a previously emitted JSON report back into a models.Report.
// Returns a models.ErrReportFormat-wrapped error when the required summary
// or vulnerabilities keys are absent, per import_report's contract (§6.5).
func ParseJSON(r io.Reader) (models.Report, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return models.Report{}, fmt.Errorf("%w: %v", models.ErrReportFormat, err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return models.Report{}, fmt.Errorf("%w: %v", models.ErrReportFormat, err)
	}
	if _, ok := keys["summary"]; !ok {
		return models.Report{}, fmt.Errorf("%w: missing summary key", models.ErrReportFormat)
	}
	if _, ok := keys["vulnerabilities"]; !ok {
		return models.Report{}, fmt.Errorf("%w: missing vulnerabilities key", models.ErrReportFormat)
	}

	var rpt models.Report
	if err := json.Unmarshal(raw, &rpt); err != nil {
		return models.Report{}, fmt.Errorf("%w: %v", models.ErrReportFormat, err)
	}
	return rpt, nil
}
