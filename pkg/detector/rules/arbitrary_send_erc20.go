package rules

import (
	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/ast"
	"github.com/omensec/solsca/pkg/detector"
	"github.com/omensec/solsca/pkg/models"
)

// arbitrarySendERC20 flags an ERC-20 transferFrom whose source account (the
// `from` argument) is a direct function parameter rather than msg.sender,
// allowing a caller to move tokens out of an arbitrary account.
type arbitrarySendERC20 struct{ detector.Meta }

func newArbitrarySendERC20() detector.Detector {
	return arbitrarySendERC20{detector.NewMeta(
		"arbitrary-send-erc20", "Arbitrary transferFrom source", models.SeverityHigh,
		detector.WithFixSuggestion("Require the transferFrom source account to be msg.sender, or otherwise authorize the caller for that account."),
	)}
}

func (arbitrarySendERC20) Run(ctx *analysisctx.Context) []models.Issue {
	if !ctx.HasAST() {
		return nil
	}
	var issues []models.Issue
	ast.Walk(ctx.AST, ast.Cursor{}, func(n *ast.Node, cur ast.Cursor) {
		if n.Type() != "FunctionCall" {
			return
		}
		callee := n.Node("expression")
		if callee == nil || callee.Type() != "MemberAccess" || callee.String("memberName") != "transferFrom" {
			return
		}
		args := n.Nodes("arguments")
		if len(args) == 0 || args[0].Type() != "Identifier" {
			return
		}
		if !cur.InParams(args[0].String("name")) {
			return
		}
		off, _, ok := n.SrcRange()
		line := 1
		if ok {
			line = ctx.Snapshot.LineAt(off)
		}
		issues = append(issues, models.Issue{Line: line, Message: "transferFrom source account is a caller-controlled parameter"})
	})
	return issues
}
