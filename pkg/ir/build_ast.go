package ir

import (
	"github.com/omensec/solsca/pkg/ast"
	"github.com/omensec/solsca/pkg/source"
)

// BuildFromAST lowers a parsed AST into SCA-IR. First pass collects the set
// of state-variable names; second pass walks every FunctionDefinition's body
// statement-by-statement, emitting the fixed IR opcode set.
func BuildFromAST(root *ast.Node, snap *source.Snapshot) *IR {
	stateVars := collectStateVars(root)

	result := &IR{}
	ast.Walk(root, ast.Cursor{}, func(n *ast.Node, _ ast.Cursor) {
		if n.Type() != "FunctionDefinition" {
			return
		}
		result.add(buildFunction(n, stateVars, snap))
	})
	return result
}

func collectStateVars(root *ast.Node) map[string]bool {
	vars := map[string]bool{}
	ast.Walk(root, ast.Cursor{}, func(n *ast.Node, _ ast.Cursor) {
		if n.Type() == "VariableDeclaration" && n.Bool("stateVariable") {
			if name := n.String("name"); name != "" {
				vars[name] = true
			}
		}
	})
	return vars
}

func buildFunction(fnNode *ast.Node, stateVars map[string]bool, snap *source.Snapshot) *Function {
	name := fnNode.String("name")
	kind := fnNode.String("kind")
	if name == "" && kind == "constructor" {
		name = "constructor"
	}

	fn := &Function{Name: name, Modifiers: modifierNames(fnNode)}
	fn.emit(FUNC, lineOf(fnNode, snap), name, false)

	lowerBody(fnNode.Node("body"), fn, stateVars, snap)
	return fn
}

func modifierNames(fnNode *ast.Node) []string {
	var names []string
	for _, m := range fnNode.Nodes("modifiers") {
		if sub := m.Node("modifierName"); sub != nil {
			if n := sub.String("name"); n != "" {
				names = append(names, n)
				continue
			}
		}
		if n := m.String("modifierName"); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func lineOf(n *ast.Node, snap *source.Snapshot) int {
	if n == nil || snap == nil {
		return 1
	}
	off, _, ok := n.SrcRange()
	if !ok {
		return 1
	}
	return snap.LineAt(off)
}

// lowerBody walks a function/branch body statement-by-statement. body may be
// a Block (with a "statements" list) or, for brace-less if-branches, a
// single statement node directly.
func lowerBody(body *ast.Node, fn *Function, stateVars map[string]bool, snap *source.Snapshot) {
	if body == nil {
		return
	}
	if body.Type() == "Block" {
		for _, stmt := range body.Nodes("statements") {
			lowerStatement(stmt, fn, stateVars, snap)
		}
		return
	}
	lowerStatement(body, fn, stateVars, snap)
}

func lowerStatement(stmt *ast.Node, fn *Function, stateVars map[string]bool, snap *source.Snapshot) {
	if stmt == nil {
		return
	}
	switch stmt.Type() {
	case "ExpressionStatement":
		lowerExpression(stmt.Node("expression"), fn, stateVars, snap)
	case "IfStatement":
		fn.emit(IF, lineOf(stmt, snap), "", false)
		lowerBody(stmt.Node("trueBody"), fn, stateVars, snap)
		lowerBody(stmt.Node("falseBody"), fn, stateVars, snap)
	case "Return":
		fn.emit(RETURN, lineOf(stmt, snap), "", false)
	case "VariableDeclarationStatement":
		if initial := stmt.Node("initialValue"); initial != nil && initial.Type() == "FunctionCall" {
			if callee := initial.Node("expression"); callee != nil && callee.Type() == "MemberAccess" {
				switch callee.String("memberName") {
				case "call":
					fn.emit(EXTERNAL_CALL, lineOf(initial, snap), "call", true)
				case "send":
					fn.emit(SEND, lineOf(initial, snap), "send", true)
				}
			}
		}
		for _, decl := range stmt.Nodes("declarations") {
			if name := decl.String("name"); stateVars[name] {
				fn.emit(STATE_DECL, lineOf(stmt, snap), name, false)
			}
		}
	case "ForStatement", "WhileStatement", "DoWhileStatement":
		fn.emit(LOOP, lineOf(stmt, snap), "", false)
	}
}

func lowerExpression(expr *ast.Node, fn *Function, stateVars map[string]bool, snap *source.Snapshot) {
	if expr == nil {
		return
	}
	switch expr.Type() {
	case "FunctionCall":
		callee := expr.Node("expression")
		if callee == nil {
			return
		}
		switch callee.Type() {
		case "Identifier":
			switch callee.String("name") {
			case "require":
				fn.emit(REQUIRE, lineOf(expr, snap), "", false)
			case "selfdestruct":
				fn.emit(SELFDESTRUCT, lineOf(expr, snap), "", false)
			}
		case "MemberAccess":
			switch callee.String("memberName") {
			case "call", "delegatecall":
				fn.emit(EXTERNAL_CALL, lineOf(expr, snap), callee.String("memberName"), false)
			case "transfer":
				fn.emit(SEND, lineOf(expr, snap), "transfer", true)
			case "send":
				fn.emit(SEND, lineOf(expr, snap), "send", false)
			}
		}
	case "Assignment":
		if lhs := expr.Node("leftHandSide"); lhs != nil && lhs.Type() == "Identifier" {
			if name := lhs.String("name"); stateVars[name] {
				fn.emit(STATE_WRITE, lineOf(expr, snap), name, false)
			}
		}
		if rhs := expr.Node("rightHandSide"); rhs != nil && rhs.Type() == "FunctionCall" {
			if callee := rhs.Node("expression"); callee != nil && callee.Type() == "MemberAccess" {
				switch callee.String("memberName") {
				case "call":
					fn.emit(EXTERNAL_CALL, lineOf(rhs, snap), "call", true)
				case "send":
					fn.emit(SEND, lineOf(rhs, snap), "send", true)
				}
			}
		}
	}
}
