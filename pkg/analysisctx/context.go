// Package analysisctx defines the Analysis Context: the immutable bundle of
// source, AST, and IR threaded through every detector call.
package analysisctx

import (
	"github.com/omensec/solsca/pkg/ast"
	"github.com/omensec/solsca/pkg/ir"
	"github.com/omensec/solsca/pkg/source"
)

// Context is built once per file and never mutated during detector
// execution. AST and IR may both be present, or AST may be nil with IR
// built from the text fallback.
type Context struct {
	Snapshot *source.Snapshot
	AST      *ast.Node // nil when the compiler could not produce one
	IR       *ir.IR
}

// New builds a Context from its three parts.
func New(snap *source.Snapshot, root *ast.Node, irData *ir.IR) *Context {
	return &Context{Snapshot: snap, AST: root, IR: irData}
}

// Filename returns the analyzed file's path.
func (c *Context) Filename() string {
	return c.Snapshot.Filename
}

// HasAST reports whether a compiler AST is available for this file.
func (c *Context) HasAST() bool {
	return c.AST != nil
}
