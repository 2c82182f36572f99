package ast

// Cursor carries the walker's per-position context: the parameter-name set
// of the innermost enclosing function, and whether the current position is
// inside a loop body. It is passed by value and threaded explicitly through
// the recursion rather than held as mutable state on a receiver.
type Cursor struct {
	Params map[string]bool
	InLoop bool
}

// InParams reports whether name is a parameter of the enclosing function.
func (c Cursor) InParams(name string) bool {
	return c.Params != nil && c.Params[name]
}

// Visitor is called once per visited node, with the Cursor describing the
// walker's position at that node.
type Visitor func(n *Node, cur Cursor)

// Walk performs a generic depth-first traversal of n, invoking visit on
// every node exactly once. FunctionDefinition nodes refresh the Cursor's
// parameter set for their subtree; For/While/DoWhile nodes set InLoop for
// theirs. Nil nodes are ignored.
func Walk(n *Node, cur Cursor, visit Visitor) {
	if n == nil {
		return
	}
	visit(n, cur)

	childCur := cur
	switch n.Type() {
	case "FunctionDefinition":
		childCur.Params = paramNames(n)
	case "ForStatement", "WhileStatement", "DoWhileStatement":
		childCur.InLoop = true
	}

	for _, child := range n.children() {
		Walk(child, childCur, visit)
	}
}

// paramNames collects the parameter identifier names of a FunctionDefinition
// node from its "parameters" ParameterList.
func paramNames(fn *Node) map[string]bool {
	params := fn.Node("parameters")
	if params == nil {
		return map[string]bool{}
	}
	names := map[string]bool{}
	for _, p := range params.Nodes("parameters") {
		if name := p.String("name"); name != "" {
			names[name] = true
		}
	}
	return names
}
