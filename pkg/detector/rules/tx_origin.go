package rules

import (
	"regexp"
	"strings"

	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/ast"
	"github.com/omensec/solsca/pkg/detector"
	"github.com/omensec/solsca/pkg/models"
)

var txOriginPattern = regexp.MustCompile(`tx\.origin`)

// txOrigin flags use of tx.origin for authorization, which breaks under a
// malicious intermediate contract. AST-based when an AST is available,
// falling back to a literal-text scan otherwise.
type txOrigin struct{ detector.Meta }

func newTxOrigin() detector.Detector {
	return txOrigin{detector.NewMeta(
		"SWC-115", "Use of tx.origin", models.SeverityHigh,
		detector.WithFixSuggestion("Use msg.sender for authorization checks instead of tx.origin."),
	)}
}

func (txOrigin) Run(ctx *analysisctx.Context) []models.Issue {
	if ctx.HasAST() {
		var issues []models.Issue
		ast.Walk(ctx.AST, ast.Cursor{}, func(n *ast.Node, _ ast.Cursor) {
			if n.Type() != "MemberAccess" || n.String("memberName") != "origin" {
				return
			}
			expr := n.Node("expression")
			if expr != nil && expr.Type() == "Identifier" && expr.String("name") == "tx" {
				off, _, ok := n.SrcRange()
				line := 1
				if ok {
					line = ctx.Snapshot.LineAt(off)
				}
				issues = append(issues, models.Issue{Line: line, Message: "tx.origin used for authorization"})
			}
		})
		return issues
	}

	var issues []models.Issue
	for i, line := range ctx.Snapshot.Lines {
		if strings.Contains(line, "//") {
			continue
		}
		if txOriginPattern.MatchString(line) {
			issues = append(issues, models.Issue{Line: i + 1, Message: "tx.origin used for authorization"})
		}
	}
	return issues
}
