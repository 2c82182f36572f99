package rules

import (
	"fmt"

	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/detector"
	"github.com/omensec/solsca/pkg/ir"
	"github.com/omensec/solsca/pkg/models"
)

// uncheckedReturnIR flags EXTERNAL_CALL/SEND instructions whose return
// value is never consumed, excluding transfer (which reverts on failure
// and so needs no check).
type uncheckedReturnIR struct{ detector.Meta }

func newUncheckedReturnIR() detector.Detector {
	return uncheckedReturnIR{detector.NewMeta(
		"SWC-104-IR", "Unchecked call return value", models.SeverityMedium,
		detector.WithSWCID("SWC-104"),
	)}
}

func (uncheckedReturnIR) Run(ctx *analysisctx.Context) []models.Issue {
	if ctx.IR == nil {
		return nil
	}
	var issues []models.Issue
	for _, fn := range ctx.IR.Functions {
		for _, inst := range fn.Instructions {
			if (inst.Op != ir.EXTERNAL_CALL && inst.Op != ir.SEND) || inst.Name == "transfer" {
				continue
			}
			if !inst.Checked {
				issues = append(issues, models.Issue{Line: inst.Line, Message: fmt.Sprintf("Return value of .%s(...) is not checked", inst.Name)})
			}
		}
	}
	return issues
}
