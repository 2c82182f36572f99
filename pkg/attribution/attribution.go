// Package attribution implements Contract/Function Attribution (C8):
// mapping a line number back to its enclosing contract and function by
// walking the AST's src spans.
package attribution

import (
	"strings"

	"github.com/omensec/solsca/pkg/ast"
	"github.com/omensec/solsca/pkg/source"
)

type lineSpan struct {
	start, end int
}

func (s lineSpan) size() int { return s.end - s.start }

func (s lineSpan) contains(line int) bool { return s.start <= line && line <= s.end }

type funcEntry struct {
	name string
	span lineSpan
}

type contractEntry struct {
	name          string
	span          lineSpan
	funcs         []funcEntry
	isUpgradeable bool
}

// Attributor answers contract/function queries for a single analyzed file.
// Built once per file, queried once per finding.
type Attributor struct {
	contracts []contractEntry
}

// Build walks root's ContractDefinition nodes (and their nested
// FunctionDefinition children) into an Attributor. root may be nil, in
// which case every query returns empty strings.
func Build(root *ast.Node, snap *source.Snapshot) *Attributor {
	a := &Attributor{}
	if root == nil {
		return a
	}

	ast.Walk(root, ast.Cursor{}, func(n *ast.Node, _ ast.Cursor) {
		if n.Type() != "ContractDefinition" {
			return
		}
		entry := contractEntry{
			name:          n.String("name"),
			span:          spanOf(n, snap),
			isUpgradeable: isUpgradeableContract(n),
		}
		for _, child := range n.Nodes("nodes") {
			if child.Type() != "FunctionDefinition" {
				continue
			}
			name := child.String("name")
			if name == "" && child.String("kind") == "constructor" {
				name = "constructor"
			}
			entry.funcs = append(entry.funcs, funcEntry{name: name, span: spanOf(child, snap)})
		}
		a.contracts = append(a.contracts, entry)
	})
	return a
}

// isUpgradeableContract reports whether any of the contract's declared base
// contracts has a name containing "Upgradeable" or "Proxy".
func isUpgradeableContract(n *ast.Node) bool {
	for _, base := range n.Nodes("baseContracts") {
		name := baseContractName(base)
		if strings.Contains(name, "Upgradeable") || strings.Contains(name, "Proxy") {
			return true
		}
	}
	return false
}

// baseContractName extracts the referenced type name from an
// InheritanceSpecifier, across the baseName shapes solc's AST has used
// (a "name" field, or a dotted "namePath").
func baseContractName(spec *ast.Node) string {
	baseName := spec.Node("baseName")
	if baseName == nil {
		return ""
	}
	if name := baseName.String("name"); name != "" {
		return name
	}
	return baseName.String("namePath")
}

func spanOf(n *ast.Node, snap *source.Snapshot) lineSpan {
	offset, length, ok := n.SrcRange()
	if !ok {
		return lineSpan{start: 1, end: 1}
	}
	return lineSpan{start: snap.LineAt(offset), end: snap.LineAt(offset + length)}
}

// Attribute returns the enclosing contract and function names for line,
// each empty when no enclosing node is found. Overlapping candidates are
// broken by smallest range.
func (a *Attributor) Attribute(line int) (contract, function string) {
	best := -1
	for i, c := range a.contracts {
		if !c.span.contains(line) {
			continue
		}
		if best == -1 || c.span.size() < a.contracts[best].span.size() {
			best = i
		}
	}
	if best == -1 {
		return "", ""
	}
	contract = a.contracts[best].name

	bestFn := -1
	funcs := a.contracts[best].funcs
	for i, f := range funcs {
		if !f.span.contains(line) {
			continue
		}
		if bestFn == -1 || f.span.size() < funcs[bestFn].span.size() {
			bestFn = i
		}
	}
	if bestFn != -1 {
		function = funcs[bestFn].name
	}
	return contract, function
}

// Contracts returns the discovered contracts as report-ready info.
func (a *Attributor) Contracts() []ContractSpanInfo {
	out := make([]ContractSpanInfo, 0, len(a.contracts))
	for _, c := range a.contracts {
		out = append(out, ContractSpanInfo{
			Name:          c.name,
			StartLine:     c.span.start,
			EndLine:       c.span.end,
			IsUpgradeable: c.isUpgradeable,
		})
	}
	return out
}

// ContractSpanInfo is a contract's name, line range, and upgradeability
// flag, independent of the report-facing models.ContractInfo shape.
type ContractSpanInfo struct {
	Name          string
	StartLine     int
	EndLine       int
	IsUpgradeable bool
}
