package rules

import (
	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/ast"
	"github.com/omensec/solsca/pkg/detector"
	"github.com/omensec/solsca/pkg/models"
)

var sendingMembers = map[string]bool{"transfer": true, "send": true, "call": true}

// arbitrarySendEth flags ether sent to an address that is a direct function
// parameter. Access control on the enclosing function is not checked.
type arbitrarySendEth struct{ detector.Meta }

func newArbitrarySendEth() detector.Detector {
	return arbitrarySendEth{detector.NewMeta(
		"arbitrary-send-eth", "Arbitrary send of ether", models.SeverityMedium,
		detector.WithFixSuggestion("Restrict the recipient of value transfers to a trusted, pre-validated address."),
	)}
}

func (arbitrarySendEth) Run(ctx *analysisctx.Context) []models.Issue {
	if !ctx.HasAST() {
		return nil
	}
	var issues []models.Issue
	ast.Walk(ctx.AST, ast.Cursor{}, func(n *ast.Node, cur ast.Cursor) {
		if n.Type() != "MemberAccess" || !sendingMembers[n.String("memberName")] {
			return
		}
		expr := n.Node("expression")
		if expr == nil || expr.Type() != "Identifier" {
			return
		}
		if !cur.InParams(expr.String("name")) {
			return
		}
		off, _, ok := n.SrcRange()
		line := 1
		if ok {
			line = ctx.Snapshot.LineAt(off)
		}
		issues = append(issues, models.Issue{Line: line, Message: "ether sent to a caller-controlled address"})
	})
	return issues
}
