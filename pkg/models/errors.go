package models

import "errors"

// Error taxonomy for the analysis pipeline. Each sentinel is wrapped with
// %w at the call site so errors.Is keeps working through the stack.
var (
	// ErrSourceIO covers read failures or invalid encoding in the source
	// loader. Fatal for the file it names.
	ErrSourceIO = errors.New("source io error")

	// ErrCompilerUnavailable means no matching solc binary could be found
	// or installed. Non-fatal: analysis downgrades to text-only mode.
	ErrCompilerUnavailable = errors.New("compiler unavailable")

	// ErrParse means the compiler ran but failed to produce an AST.
	// Non-fatal: analysis downgrades to text-only mode.
	ErrParse = errors.New("parse error")

	// ErrDetector wraps a panic or error raised by a single detector.
	// Caught per-detector by the runner; does not abort the run.
	ErrDetector = errors.New("detector error")

	// ErrReportFormat means an imported report JSON is missing required
	// top-level keys. Fatal for the import_report operation.
	ErrReportFormat = errors.New("report format error")
)
