package detector

import (
	"context"
	"fmt"
	"os"

	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/attribution"
	"github.com/omensec/solsca/pkg/models"
)

// Runner invokes a fixed set of detectors over one file's Analysis Context
// and turns their raw Issues into enriched Findings.
type Runner struct {
	detectors []Detector
}

// NewRunner builds a Runner over the given detectors, in registration
// order. Finding order (and therefore VULN-*/INFO-* ID assignment) follows
// this order, then each detector's own emission order.
func NewRunner(detectors []Detector) *Runner {
	return &Runner{detectors: detectors}
}

// Run executes every detector against ctx, attributing each resulting
// finding to its enclosing contract/function via attributor. A detector
// that panics is caught and contributes zero findings; the rest proceed.
// cancel is checked between detectors so a caller cancelling mid-file gets
// back whatever findings were already collected instead of blocking for
// the remaining detectors.
func (r *Runner) Run(cancel context.Context, ctx *analysisctx.Context, attributor *attribution.Attributor) []models.Finding {
	var findings []models.Finding

	for _, d := range r.detectors {
		if err := cancel.Err(); err != nil {
			break
		}
		issues := r.runOne(d, ctx)
		for _, issue := range issues {
			findings = append(findings, r.enrich(d, ctx, attributor, issue))
		}
	}

	return findings
}

func (r *Runner) runOne(d Detector, ctx *analysisctx.Context) (issues []models.Issue) {
	defer func() {
		if rec := recover(); rec != nil {
			fmt.Fprintf(os.Stderr, "%v: detector %s: %v\n", models.ErrDetector, d.ID(), rec)
			issues = nil
		}
	}()
	return d.Run(ctx)
}

func (r *Runner) enrich(d Detector, ctx *analysisctx.Context, attributor *attribution.Attributor, issue models.Issue) models.Finding {
	desc := issue.Message
	if desc == "" {
		desc = d.Description()
	}

	endLine := issue.Line
	snippet := ""
	if issue.Line >= 1 {
		start, end := issue.Line-2, issue.Line+2
		snippet = ctx.Snapshot.Snippet(start, end)
		if end > ctx.Snapshot.LineCount() {
			end = ctx.Snapshot.LineCount()
		}
		endLine = end
	}

	contract, function := attributor.Attribute(issue.Line)
	var fnPtr *string
	if function != "" {
		fnPtr = &function
	}

	return models.Finding{
		Detector:      d.ID(),
		Severity:      d.Severity(),
		SWCID:         d.SWCID(),
		Title:         d.Title(),
		Description:   desc,
		Contract:      contract,
		Function:      fnPtr,
		Location:      models.Location{File: ctx.Filename(), StartLine: issue.Line, EndLine: endLine},
		CodeSnippet:   snippet,
		FixSuggestion: d.FixSuggestion(),
		Confidence:    d.Confidence(),
	}
}
