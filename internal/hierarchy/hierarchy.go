// Package hierarchy builds the fixed-arity rank trees attached to generated
// records (line managers for employees, professors for students).
package hierarchy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyUID is returned when a node is built without an identifier.
	ErrEmptyUID = errors.New("hierarchy: empty uid")
	// ErrEmptyLabel is returned when a node is built without a type label.
	ErrEmptyLabel = errors.New("hierarchy: empty label")
)

// Node is one position in a rank tree. A node exclusively owns its children.
// Leaves carry an empty, non-nil Children slice.
type Node struct {
	UID      string `json:"uid" validate:"required"`
	Label    string `json:"label" validate:"required"`
	Children []Node `json:"children" validate:"dive"`
}

// NewNode builds a node, rejecting empty identifiers and labels.
// The children slice is copied.
func NewNode(uid, label string, children []Node) (Node, error) {
	if uid == "" {
		return Node{}, ErrEmptyUID
	}
	if label == "" {
		return Node{}, ErrEmptyLabel
	}
	return Node{UID: uid, Label: label, Children: clone(children)}, nil
}

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// ChildrenCopy returns a copy of the children slice, never nil.
func (n Node) ChildrenCopy() []Node {
	return clone(n.Children)
}

func (n Node) String() string {
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s[uid=%s, children=[%s], label='%s']",
		n.Label, n.UID, strings.Join(parts, ", "), n.Label)
}

func clone(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	copy(out, nodes)
	return out
}

// Generate builds one root per label and recurses until depth levels exist.
// Every non-leaf node gets one child per label, so a tree of depth d has
// len(labels)^d leaves. depth <= 1 yields leaf roots. uid is called once per
// node in pre-order, which keeps output stable for a seeded uid source.
func Generate(depth int, labels []string, uid func() string) []Node {
	nodes := make([]Node, 0, len(labels))
	for _, label := range labels {
		nodes = append(nodes, generate(depth, label, labels, uid))
	}
	return nodes
}

func generate(depth int, label string, labels []string, uid func() string) Node {
	n := Node{UID: uid(), Label: label}
	if depth <= 1 {
		n.Children = []Node{}
		return n
	}
	n.Children = Generate(depth-1, labels, uid)
	return n
}

// Walk visits every node in pre-order with its zero-based level.
// Returning false from fn skips the node's subtree.
func Walk(nodes []Node, fn func(n Node, level int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []Node, level int, fn func(Node, int) bool) {
	for _, n := range nodes {
		if fn(n, level) {
			walk(n.Children, level+1, fn)
		}
	}
}

// Depth returns the number of levels in the forest; 0 for an empty forest.
func Depth(nodes []Node) int {
	deepest := 0
	for _, n := range nodes {
		if d := 1 + Depth(n.Children); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// Count returns the total number of nodes.
func Count(nodes []Node) int {
	total := 0
	Walk(nodes, func(Node, int) bool {
		total++
		return true
	})
	return total
}

// CountLeaves returns the number of nodes without children.
func CountLeaves(nodes []Node) int {
	total := 0
	Walk(nodes, func(n Node, _ int) bool {
		if n.IsLeaf() {
			total++
		}
		return true
	})
	return total
}

// Render draws the forest as an indented outline, one node per line.
func Render(nodes []Node) string {
	var b strings.Builder
	Walk(nodes, func(n Node, level int) bool {
		fmt.Fprintf(&b, "%s- %s (%s)\n", strings.Repeat("  ", level), n.Label, n.UID)
		return true
	})
	return b.String()
}
