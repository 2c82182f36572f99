package rules

import (
	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/ast"
	"github.com/omensec/solsca/pkg/detector"
	"github.com/omensec/solsca/pkg/models"
)

// controlledDelegatecall flags a delegatecall whose target is a direct
// function-parameter identifier — a caller-controlled address. Aliases
// (a local copied from a parameter) are not tracked; see DESIGN.md.
type controlledDelegatecall struct{ detector.Meta }

func newControlledDelegatecall() detector.Detector {
	return controlledDelegatecall{detector.NewMeta(
		"controlled-delegatecall", "Controlled delegatecall", models.SeverityHigh,
	)}
}

func (controlledDelegatecall) Run(ctx *analysisctx.Context) []models.Issue {
	if !ctx.HasAST() {
		return nil
	}
	var issues []models.Issue
	ast.Walk(ctx.AST, ast.Cursor{}, func(n *ast.Node, cur ast.Cursor) {
		if n.Type() != "MemberAccess" || n.String("memberName") != "delegatecall" {
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
		issues = append(issues, models.Issue{Line: line, Message: "delegatecall target is a caller-controlled parameter"})
	})
	return issues
}
