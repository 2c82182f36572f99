package rules

import (
	"strings"

	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/detector"
	"github.com/omensec/solsca/pkg/models"
)

var outdatedPragmaMarkers = []string{"^0.4", "^0.5", "^0.6", "^0.7"}

// pragmaVersion flags a pragma declaration pinned to a compiler line known
// to lack Solidity 0.8's built-in overflow checks and other hardening.
type pragmaVersion struct{ detector.Meta }

func newPragmaVersion() detector.Detector {
	return pragmaVersion{detector.NewMeta(
		"SWC-103", "Outdated compiler pragma", models.SeverityLow,
		detector.WithFixSuggestion("Pin the pragma to a recent 0.8.x Solidity release."),
	)}
}

func (pragmaVersion) Run(ctx *analysisctx.Context) []models.Issue {
	var issues []models.Issue
	for i, line := range ctx.Snapshot.Lines {
		if !strings.Contains(line, "pragma solidity") {
			continue
		}
		for _, marker := range outdatedPragmaMarkers {
			if strings.Contains(line, marker) {
				issues = append(issues, models.Issue{Line: i + 1, Message: "Pragma pins an outdated compiler version"})
				break
			}
		}
	}
	return issues
}
