package rules

import (
	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/ast"
	"github.com/omensec/solsca/pkg/detector"
	"github.com/omensec/solsca/pkg/models"
)

// uninitializedState flags a state variable declared without an initializer.
// Solidity zero-initializes these, but an address left at its zero value is
// a common source of unexpected authorization or transfer-target bugs.
type uninitializedState struct{ detector.Meta }

func newUninitializedState() detector.Detector {
	return uninitializedState{detector.NewMeta(
		"uninitialized-state", "Uninitialized state variable", models.SeverityMedium,
		detector.WithFixSuggestion("Give the state variable an explicit initial value, or set it in the constructor."),
	)}
}

func (uninitializedState) Run(ctx *analysisctx.Context) []models.Issue {
	if !ctx.HasAST() {
		return nil
	}
	var issues []models.Issue
	ast.Walk(ctx.AST, ast.Cursor{}, func(n *ast.Node, _ ast.Cursor) {
		if n.Type() != "VariableDeclaration" || !n.Bool("stateVariable") {
			return
		}
		if n.Node("value") != nil {
			return
		}
		off, _, ok := n.SrcRange()
		line := 1
		if ok {
			line = ctx.Snapshot.LineAt(off)
		}
		issues = append(issues, models.Issue{Line: line, Message: "state variable declared without an initializer"})
	})
	return issues
}
