// Package ast models the Solidity compiler's JSON AST as a tagged-variant
// tree and provides a generic depth-first walker over it.
package ast

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Node is a single AST node, keyed by its nodeType tag. It wraps the raw
// decoded JSON object so that unknown node kinds and unexpected fields
// (the compiler's schema evolves across versions) are tolerated rather
// than rejected.
type Node struct {
	raw map[string]any
}

// Parse decodes a solc-style AST JSON document into a Node tree.
func Parse(data []byte) (*Node, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ast: decode: %w", err)
	}
	return &Node{raw: raw}, nil
}

// FromMap wraps an already-decoded JSON object as a Node. Used by tests
// that build small AST fixtures by hand.
func FromMap(raw map[string]any) *Node {
	return &Node{raw: raw}
}

// Type returns the node's nodeType tag, or "" if absent.
func (n *Node) Type() string {
	if n == nil {
		return ""
	}
	return n.String("nodeType")
}

// Src returns the raw "offset:length:fileIndex" source span string.
func (n *Node) Src() string {
	if n == nil {
		return ""
	}
	return n.String("src")
}

// SrcRange parses Src into a byte offset and length. ok is false when no
// valid span is present.
func (n *Node) SrcRange() (offset, length int, ok bool) {
	parts := strings.Split(n.Src(), ":")
	if len(parts) < 2 {
		return 0, 0, false
	}
	o, err1 := strconv.Atoi(parts[0])
	l, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return o, l, true
}

// String returns the string-valued field named key, or "" if absent or
// not a string.
func (n *Node) String(key string) string {
	if n == nil {
		return ""
	}
	v, ok := n.raw[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Bool returns the bool-valued field named key, or false if absent.
func (n *Node) Bool(key string) bool {
	if n == nil {
		return false
	}
	v, ok := n.raw[key]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Node returns the single child node stored at key, or nil if absent or
// not a node-shaped object.
func (n *Node) Node(key string) *Node {
	if n == nil {
		return nil
	}
	v, ok := n.raw[key]
	if !ok || v == nil {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return &Node{raw: m}
}

// Nodes returns the list of child nodes stored at key, skipping any
// elements that aren't node-shaped objects (e.g. nulls in a parameter list).
func (n *Node) Nodes(key string) []*Node {
	if n == nil {
		return nil
	}
	v, ok := n.raw[key]
	if !ok || v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]*Node, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, &Node{raw: m})
		}
	}
	return out
}

// isNodeShaped reports whether v looks like a decoded AST node object.
func isNodeShaped(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	_, hasType := m["nodeType"]
	return hasType
}

// childOrder lists the generic child slots named in the walker contract,
// visited in this fixed order before any other declared child slot.
var childOrder = []string{"nodes", "children", "body", "statements", "expression", "components"}

// children returns this node's child nodes in a deterministic order: the
// named generic slots first, then every remaining field (sorted by key)
// whose value is a node object or a list of node objects. Each field is
// consulted exactly once.
func (n *Node) children() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	visited := make(map[string]bool, len(n.raw))

	appendValue := func(v any) {
		switch vv := v.(type) {
		case map[string]any:
			if _, hasType := vv["nodeType"]; hasType {
				out = append(out, &Node{raw: vv})
			}
		case []any:
			for _, item := range vv {
				if isNodeShaped(item) {
					out = append(out, &Node{raw: item.(map[string]any)})
				}
			}
		}
	}

	for _, key := range childOrder {
		if v, ok := n.raw[key]; ok {
			visited[key] = true
			appendValue(v)
		}
	}

	rest := make([]string, 0, len(n.raw))
	for key := range n.raw {
		if visited[key] || key == "nodeType" || key == "src" {
			continue
		}
		rest = append(rest, key)
	}
	sort.Strings(rest)
	for _, key := range rest {
		appendValue(n.raw[key])
	}

	return out
}
