package rules

import (
	"strings"

	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/detector"
	"github.com/omensec/solsca/pkg/models"
)

var accessControlMarkers = []string{"owner", "msg.sender", "require", "onlyowner"}

// unprotectedWithdraw flags a selfdestruct or an ether withdrawal whose line
// carries none of the usual access-control markers nearby. It is a coarse,
// line-local heuristic: it does not track control flow into an enclosing
// require/modifier, so a guard placed on a prior line is invisible to it.
type unprotectedWithdraw struct{ detector.Meta }

func newUnprotectedWithdraw() detector.Detector {
	return unprotectedWithdraw{detector.NewMeta(
		"SWC-105", "Unprotected ether withdrawal", models.SeverityHigh,
		detector.WithFixSuggestion("Restrict withdrawal and selfdestruct paths to an authorized caller, e.g. via an onlyOwner modifier."),
	)}
}

func isGuarded(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range accessControlMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func (unprotectedWithdraw) Run(ctx *analysisctx.Context) []models.Issue {
	var issues []models.Issue
	for i, line := range ctx.Snapshot.Lines {
		if strings.Contains(line, "//") {
			continue
		}
		switch {
		case strings.Contains(line, "selfdestruct"):
			if !isGuarded(line) {
				issues = append(issues, models.Issue{Line: i + 1, Message: "selfdestruct without an apparent access-control check"})
			}
		case strings.Contains(line, "msg.sender.transfer") || strings.Contains(line, "msg.sender.call"):
			if !isGuarded(strings.Replace(line, "msg.sender", "", 1)) {
				issues = append(issues, models.Issue{Line: i + 1, Message: "ether withdrawal without an apparent access-control check"})
			}
		}
	}
	return issues
}
