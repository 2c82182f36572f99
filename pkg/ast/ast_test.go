package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndAccessors(t *testing.T) {
	data := []byte(`{
		"nodeType": "SourceUnit",
		"src": "0:100:0",
		"nodes": [
			{"nodeType": "ContractDefinition", "src": "0:100:0", "name": "Token", "baseContracts": []}
		]
	}`)

	n, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "SourceUnit", n.Type())

	off, length, ok := n.SrcRange()
	require.True(t, ok)
	assert.Equal(t, 0, off)
	assert.Equal(t, 100, length)

	children := n.Nodes("nodes")
	require.Len(t, children, 1)
	assert.Equal(t, "Token", children[0].String("name"))
}

func TestNilNodeIsSafe(t *testing.T) {
	var n *Node
	assert.Equal(t, "", n.Type())
	assert.Equal(t, "", n.Src())
	assert.Equal(t, "", n.String("x"))
	assert.False(t, n.Bool("x"))
	assert.Nil(t, n.Node("x"))
	assert.Nil(t, n.Nodes("x"))
}

func TestWalkVisitsEachNodeOnceAndSetsParams(t *testing.T) {
	fn := FromMap(map[string]any{
		"nodeType": "FunctionDefinition",
		"src":      "10:50:0",
		"name":     "withdraw",
		"parameters": map[string]any{
			"nodeType": "ParameterList",
			"parameters": []any{
				map[string]any{"nodeType": "VariableDeclaration", "name": "amount"},
			},
		},
		"body": map[string]any{
			"nodeType": "Block",
			"statements": []any{
				map[string]any{"nodeType": "ExpressionStatement", "src": "20:10:0"},
			},
		},
	})

	var visited []string
	var paramsAtStmt map[string]bool
	Walk(fn, Cursor{}, func(n *Node, cur Cursor) {
		visited = append(visited, n.Type())
		if n.Type() == "ExpressionStatement" {
			paramsAtStmt = cur.Params
		}
	})

	require.NotEmpty(t, visited)
	assert.Equal(t, "FunctionDefinition", visited[0])
	assert.Equal(t, []string{"FunctionDefinition", "Block", "ExpressionStatement", "ParameterList", "VariableDeclaration"}, visited)
	require.NotNil(t, paramsAtStmt)
	assert.True(t, paramsAtStmt["amount"])
}

func TestWalkSetsInLoop(t *testing.T) {
	loop := FromMap(map[string]any{
		"nodeType": "ForStatement",
		"body": map[string]any{
			"nodeType": "Block",
			"statements": []any{
				map[string]any{"nodeType": "ExpressionStatement"},
			},
		},
	})

	var inLoopAtOuter, inLoopAtInner bool
	Walk(loop, Cursor{}, func(n *Node, cur Cursor) {
		switch n.Type() {
		case "ForStatement":
			inLoopAtOuter = cur.InLoop
		case "ExpressionStatement":
			inLoopAtInner = cur.InLoop
		}
	})

	assert.False(t, inLoopAtOuter, "InLoop should not be set at the ForStatement itself")
	assert.True(t, inLoopAtInner, "InLoop should be set for nodes inside the loop body")
}
