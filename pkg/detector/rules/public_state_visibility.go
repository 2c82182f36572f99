package rules

import (
	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/ast"
	"github.com/omensec/solsca/pkg/detector"
	"github.com/omensec/solsca/pkg/models"
)

// publicStateVisibility flags a state variable explicitly declared public.
// Not a bug by itself — Solidity generates an accessor regardless of
// visibility — but worth surfacing wherever the detector catalog expects an
// informational note on the contract's public surface.
type publicStateVisibility struct{ detector.Meta }

func newPublicStateVisibility() detector.Detector {
	return publicStateVisibility{detector.NewMeta(
		"SWC-108", "Public state variable", models.SeverityInformational,
	)}
}

func (publicStateVisibility) Run(ctx *analysisctx.Context) []models.Issue {
	if !ctx.HasAST() {
		return nil
	}
	var issues []models.Issue
	ast.Walk(ctx.AST, ast.Cursor{}, func(n *ast.Node, _ ast.Cursor) {
		if n.Type() != "VariableDeclaration" || !n.Bool("stateVariable") {
			return
		}
		if n.String("visibility") != "public" {
			return
		}
		off, _, ok := n.SrcRange()
		line := 1
		if ok {
			line = ctx.Snapshot.LineAt(off)
		}
		issues = append(issues, models.Issue{Line: line, Message: "state variable is public"})
	})
	return issues
}
