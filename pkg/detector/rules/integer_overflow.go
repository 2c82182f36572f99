package rules

import (
	"regexp"
	"strings"

	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/compiler"
	"github.com/omensec/solsca/pkg/detector"
	"github.com/omensec/solsca/pkg/models"
)

var arithmeticPattern = regexp.MustCompile(`[a-zA-Z0-9_\])]\s*[+\-*]=?\s*[a-zA-Z0-9_(]`)

// integerOverflow flags raw arithmetic in source compiled against a Solidity
// version below 0.8, which lacks built-in overflow/underflow reverts. It is
// a blunt line-level heuristic and over-matches on subtraction in
// particular; see DESIGN.md.
type integerOverflow struct{ detector.Meta }

func newIntegerOverflow() detector.Detector {
	return integerOverflow{detector.NewMeta(
		"SWC-101", "Integer Overflow and Underflow", models.SeverityHigh,
		detector.WithConfidence("Medium"),
		detector.WithFixSuggestion("Upgrade to Solidity >=0.8.0, or use a checked-arithmetic library such as SafeMath."),
	)}
}

func (integerOverflow) Run(ctx *analysisctx.Context) []models.Issue {
	if !compiler.IsBelowV080(ctx.Snapshot.Version) {
		return nil
	}

	var issues []models.Issue
	for i, line := range ctx.Snapshot.Lines {
		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, "//") || strings.HasPrefix(trimmed, "for (") ||
			strings.HasPrefix(trimmed, "import") ||
			strings.Contains(trimmed, ".add(") || strings.Contains(trimmed, ".sub(") || strings.Contains(trimmed, ".mul(") {
			continue
		}
		if arithmeticPattern.MatchString(trimmed) {
			issues = append(issues, models.Issue{Line: i + 1, Message: "unchecked arithmetic on a pre-0.8 compiler"})
		}
	}
	return issues
}
