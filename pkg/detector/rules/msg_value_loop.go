package rules

import (
	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/ast"
	"github.com/omensec/solsca/pkg/detector"
	"github.com/omensec/solsca/pkg/models"
)

// msgValueLoop flags msg.value read inside a loop body. msg.value is fixed
// for the whole transaction, so reading it per iteration usually signals a
// broken accounting assumption (each iteration "receiving" the same value).
type msgValueLoop struct{ detector.Meta }

func newMsgValueLoop() detector.Detector {
	return msgValueLoop{detector.NewMeta(
		"msg-value-loop", "msg.value used inside a loop", models.SeverityMedium,
		detector.WithFixSuggestion("Capture msg.value once before the loop; it does not change between iterations."),
	)}
}

func (msgValueLoop) Run(ctx *analysisctx.Context) []models.Issue {
	if !ctx.HasAST() {
		return nil
	}
	var issues []models.Issue
	ast.Walk(ctx.AST, ast.Cursor{}, func(n *ast.Node, cur ast.Cursor) {
		if !cur.InLoop {
			return
		}
		if n.Type() != "MemberAccess" || n.String("memberName") != "value" {
			return
		}
		expr := n.Node("expression")
		if expr == nil || expr.Type() != "Identifier" || expr.String("name") != "msg" {
			return
		}
		off, _, ok := n.SrcRange()
		line := 1
		if ok {
			line = ctx.Snapshot.LineAt(off)
		}
		issues = append(issues, models.Issue{Line: line, Message: "msg.value read inside a loop"})
	})
	return issues
}
