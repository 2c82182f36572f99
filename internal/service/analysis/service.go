// Package analysis implements the Analysis Service (C13): the orchestration
// layer gluing the Source Loader, Compiler Adapter, SCA-IR Builder,
// Detector Runner, Attribution, and Report Assembler into the three
// core-facing operations (analyze, analyze_and_emit, import_report).
package analysis

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/omensec/solsca/internal/progress"
	"github.com/omensec/solsca/internal/report"
	"github.com/omensec/solsca/internal/scanner"
	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/attribution"
	"github.com/omensec/solsca/pkg/compiler"
	"github.com/omensec/solsca/pkg/config"
	"github.com/omensec/solsca/pkg/detector"
	"github.com/omensec/solsca/pkg/detector/rules"
	"github.com/omensec/solsca/pkg/ir"
	"github.com/omensec/solsca/pkg/models"
	"github.com/omensec/solsca/pkg/source"
)

// Service orchestrates the analysis pipeline across one or many files.
type Service struct {
	cfg      *config.Config
	runner   *detector.Runner
	compiler *compiler.Adapter
	scanner  *scanner.Scanner
}

// New builds a Service from cfg, wiring the default reference detector
// catalog filtered by cfg.Detectors.Disabled. A nil cfg falls back to
// config.DefaultConfig().
func New(cfg *config.Config) *Service {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	var enabled []detector.Detector
	for _, d := range rules.All() {
		if cfg.IsDetectorEnabled(d.ID()) {
			enabled = append(enabled, d)
		}
	}
	return &Service{
		cfg:      cfg,
		runner:   detector.NewRunner(enabled),
		compiler: compiler.New(&cfg.Compiler),
		scanner:  scanner.NewScanner(cfg),
	}
}

// fileResult holds one file's findings and discovered contracts, keyed by
// its position in the input file list so results can be reassembled in a
// stable order regardless of completion order.
type fileResult struct {
	findings  []models.Finding
	contracts []attribution.ContractSpanInfo
	version   string
}

// Analyze runs the full pipeline over path (a single .sol file or a
// directory tree) and returns the assembled report.
func (s *Service) Analyze(ctx context.Context, path string) (models.Report, error) {
	start := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return models.Report{}, fmt.Errorf("%w: %s: %v", models.ErrSourceIO, path, err)
	}

	var files []string
	if info.IsDir() {
		files, err = s.scanner.ScanDir(path)
		if err != nil {
			return models.Report{}, fmt.Errorf("%w: %s: %v", models.ErrSourceIO, path, err)
		}
	} else {
		files = []string{path}
	}
	files, _ = scanner.FilterBySize(files, s.cfg.Detectors.MaxFileSize)

	results := make([]*fileResult, len(files))
	var mu sync.Mutex

	tracker := progress.NewTracker("analyzing", len(files))
	p := pool.New().WithMaxGoroutines(runtime.NumCPU())
	for i, file := range files {
		if ctx.Err() != nil {
			break
		}
		i, file := i, file
		p.Go(func() {
			if ctx.Err() != nil {
				tracker.Tick()
				return
			}
			res, err := s.analyzeFile(ctx, file)
			mu.Lock()
			if err == nil {
				results[i] = res
			}
			mu.Unlock()
			tracker.Tick()
		})
	}
	p.Wait()
	tracker.FinishSuccess()

	var allFindings []models.Finding
	var allContracts []attribution.ContractSpanInfo
	version := ""
	for _, r := range results {
		if r == nil {
			continue
		}
		allFindings = append(allFindings, r.findings...)
		allContracts = append(allContracts, r.contracts...)
		if version == "" && r.version != "" && r.version != "unknown" {
			version = r.version
		}
	}
	if version == "" {
		version = "unknown"
	}

	meta := models.Metadata{
		Timestamp:               start.UTC().Format("2006-01-02T15:04:05Z"),
		Target:                  path,
		AnalysisDurationSeconds: round2(time.Since(start).Seconds()),
		SolidityVersion:         version,
	}

	return report.Assemble(allFindings, allContracts, meta), nil
}

func (s *Service) analyzeFile(ctx context.Context, path string) (*fileResult, error) {
	snap, err := source.Load(path)
	if err != nil {
		return nil, err
	}

	root, _ := s.compiler.Parse(ctx, snap)

	var irData *ir.IR
	if root != nil {
		irData = ir.BuildFromAST(root, snap)
	} else {
		irData = ir.BuildFromText(snap)
	}

	actx := analysisctx.New(snap, root, irData)
	attributor := attribution.Build(root, snap)

	findings := s.runner.Run(ctx, actx, attributor)
	version := snap.Version
	if root == nil {
		// Text-only fallback: no compiler confirmed the version.
		version = "unknown"
	}
	return &fileResult{
		findings:  findings,
		contracts: attributor.Contracts(),
		version:   version,
	}, nil
}

// AnalyzeAndEmit runs Analyze and writes the result to outputPath in the
// requested format (§6.5).
func (s *Service) AnalyzeAndEmit(ctx context.Context, path, format, outputPath string) (models.Report, error) {
	rpt, err := s.Analyze(ctx, path)
	if err != nil {
		return models.Report{}, err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return models.Report{}, fmt.Errorf("%w: creating %s: %v", models.ErrSourceIO, outputPath, err)
	}
	defer f.Close()

	switch format {
	case "json", "slither-json":
		err = report.WriteJSON(rpt, f)
	case "sarif":
		err = report.WriteSARIF(rpt, f)
	case "junit":
		err = report.WriteJUnit(rpt, f)
	case "html":
		err = report.WriteHTML(rpt, f)
	default:
		return models.Report{}, fmt.Errorf("%w: unknown format %q", models.ErrReportFormat, format)
	}
	if err != nil {
		return models.Report{}, err
	}
	return rpt, nil
}

// ImportReport reads a previously emitted JSON report from path.
func ImportReport(path string) (models.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Report{}, fmt.Errorf("%w: %s: %v", models.ErrSourceIO, path, err)
	}
	defer f.Close()
	return report.ParseJSON(f)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
