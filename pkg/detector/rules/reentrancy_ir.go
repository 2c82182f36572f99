package rules

import (
	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/detector"
	"github.com/omensec/solsca/pkg/ir"
	"github.com/omensec/solsca/pkg/models"
)

// reentrancyIR flags functions where a low-level call or value transfer is
// followed, in instruction-stream order, by a state write, without a
// nonReentrant guard.
type reentrancyIR struct{ detector.Meta }

func newReentrancyIR() detector.Detector {
	return reentrancyIR{detector.NewMeta(
		"SWC-107-IR", "Reentrancy Vulnerability", models.SeverityHigh,
		detector.WithTitle("Reentrancy Vulnerability"),
		detector.WithSWCID("SWC-107"),
		detector.WithFixSuggestion("Follow the checks-effects-interactions pattern: update state before making external calls, or use a reentrancy guard (e.g. OpenZeppelin's ReentrancyGuard), or prefer pull-payment withdrawal patterns over pushing value in the same transaction."),
	)}
}

func (reentrancyIR) Run(ctx *analysisctx.Context) []models.Issue {
	if ctx.IR == nil {
		return nil
	}
	var issues []models.Issue
	for _, fn := range ctx.IR.Functions {
		if fn.HasModifier("nonReentrant") {
			continue
		}
		seenExternal := false
		firstExternalLine := 0
		for _, inst := range fn.Instructions {
			if (inst.Op == ir.EXTERNAL_CALL || inst.Op == ir.SEND) && !seenExternal {
				seenExternal = true
				firstExternalLine = inst.Line
				continue
			}
			if inst.Op == ir.STATE_WRITE && seenExternal {
				issues = append(issues, models.Issue{Line: firstExternalLine, Message: "External call followed by a state write with no reentrancy guard"})
				break // one finding per function; stop scanning
			}
		}
	}
	return issues
}
