package rules

import (
	"strings"

	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/detector"
	"github.com/omensec/solsca/pkg/models"
)

// delegatecallText flags any use of delegatecall at the text level, a blunt
// but AST-independent companion to controlledDelegatecall.
type delegatecallText struct{ detector.Meta }

func newDelegatecallText() detector.Detector {
	return delegatecallText{detector.NewMeta(
		"SWC-112", "Use of delegatecall", models.SeverityHigh,
		detector.WithFixSuggestion("Avoid delegatecall to untrusted or user-controlled addresses; it executes foreign code in the caller's storage context."),
	)}
}

func (delegatecallText) Run(ctx *analysisctx.Context) []models.Issue {
	var issues []models.Issue
	for i, line := range ctx.Snapshot.Lines {
		if strings.Contains(line, "//") {
			continue
		}
		if strings.Contains(line, ".delegatecall") {
			issues = append(issues, models.Issue{Line: i + 1, Message: "Use of delegatecall"})
		}
	}
	return issues
}
