package rules

import (
	"regexp"
	"strings"

	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/detector"
	"github.com/omensec/solsca/pkg/models"
)

var (
	callValuePattern   = regexp.MustCompile(`\.call\.value\s*\(`)
	callBraceValuePat  = regexp.MustCompile(`\.call\s*\{[^}]*value:`)
)

// reentrancyText is the pure text-level companion to reentrancyIR, catching
// the legacy `.call.value(...)` and the `.call{value: ...}` spelling
// directly without needing an AST or IR.
type reentrancyText struct{ detector.Meta }

func newReentrancyText() detector.Detector {
	return reentrancyText{detector.NewMeta(
		"SWC-107-TEXT", "Reentrancy Vulnerability", models.SeverityHigh,
		detector.WithSWCID("SWC-107"),
	)}
}

func (reentrancyText) Run(ctx *analysisctx.Context) []models.Issue {
	var issues []models.Issue
	for i, line := range ctx.Snapshot.Lines {
		if strings.Contains(line, "//") {
			continue
		}
		if callValuePattern.MatchString(line) || callBraceValuePat.MatchString(line) {
			issues = append(issues, models.Issue{Line: i + 1, Message: "Value-carrying low-level call may allow reentrancy"})
		}
	}
	return issues
}
