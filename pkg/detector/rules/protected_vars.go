package rules

import (
	"strings"

	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/detector"
	"github.com/omensec/solsca/pkg/ir"
	"github.com/omensec/solsca/pkg/models"
)

var ownerModifiers = map[string]bool{
	"onlyowner": true, "owneronly": true, "onlyadmin": true, "admin": true,
}

// protectedVars flags a function's first state write when the function
// carries none of the common owner/admin modifiers and its body does not
// contain an inline msg.sender-against-owner require check. The require
// check is detected as a text proxy over the function's approximate line
// span, since the IR does not retain REQUIRE condition expressions.
type protectedVars struct{ detector.Meta }

func newProtectedVars() detector.Detector {
	return protectedVars{detector.NewMeta(
		"protected-vars", "Unprotected state-changing function", models.SeverityHigh,
		detector.WithFixSuggestion("Gate state-changing functions with an onlyOwner/onlyAdmin modifier or an equivalent msg.sender check."),
	)}
}

func hasOwnerModifier(fn *ir.Function) bool {
	for _, m := range fn.Modifiers {
		if ownerModifiers[strings.ToLower(m)] {
			return true
		}
	}
	return false
}

func (protectedVars) Run(ctx *analysisctx.Context) []models.Issue {
	if ctx.IR == nil {
		return nil
	}
	var issues []models.Issue
	for _, fn := range ctx.IR.Functions {
		if hasOwnerModifier(fn) {
			continue
		}
		var firstWrite *models.Issue
		lastLine := fn.Instructions[0].Line
		for _, inst := range fn.Instructions {
			if inst.Line > lastLine {
				lastLine = inst.Line
			}
			if inst.Op == ir.STATE_WRITE && firstWrite == nil {
				firstWrite = &models.Issue{Line: inst.Line, Message: "state-changing write with no apparent owner/admin guard"}
			}
		}
		if firstWrite == nil {
			continue
		}
		if requireGuardsOwner(ctx, fn.Instructions[0].Line, lastLine) {
			continue
		}
		issues = append(issues, *firstWrite)
	}
	return issues
}

func requireGuardsOwner(ctx *analysisctx.Context, start, end int) bool {
	body := strings.ToLower(ctx.Snapshot.Snippet(start, end))
	return strings.Contains(body, "require(") && strings.Contains(body, "msg.sender") && strings.Contains(body, "owner")
}
