package rules

import (
	"regexp"
	"strings"

	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/detector"
	"github.com/omensec/solsca/pkg/models"
)

var lowLevelCallPattern = regexp.MustCompile(`\.(call|send|delegatecall)\s*\(|\.call\s*\{[^}]*\}\s*\(`)

// uncheckedReturnText is the text-level companion to uncheckedReturnIR,
// catching low-level calls whose return value is neither asserted nor
// assigned, without needing an AST or IR.
type uncheckedReturnText struct{ detector.Meta }

func newUncheckedReturnText() detector.Detector {
	return uncheckedReturnText{detector.NewMeta(
		"SWC-104-TEXT", "Unchecked Call Return Value", models.SeverityMedium,
		detector.WithSWCID("SWC-104"),
	)}
}

func (uncheckedReturnText) Run(ctx *analysisctx.Context) []models.Issue {
	var issues []models.Issue
	for i, line := range ctx.Snapshot.Lines {
		if strings.Contains(line, "//") {
			continue
		}
		if !lowLevelCallPattern.MatchString(line) {
			continue
		}
		if strings.Contains(line, "require(") || strings.Contains(line, "assert(") ||
			strings.Contains(line, "if(") || strings.Contains(line, "if (") ||
			strings.Contains(line, "=") {
			continue
		}
		issues = append(issues, models.Issue{Line: i + 1, Message: "low-level call return value is not checked"})
	}
	return issues
}
