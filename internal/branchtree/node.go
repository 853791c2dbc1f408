// Package branchtree builds the forest of local branches linked by their
// upstream configuration and renders it as an aligned text tree.
package branchtree

import (
	"cmp"
	"slices"
)

// Node is one local branch. Nodes are not modified after Build returns.
type Node struct {
	Name string
	// Upstream is the normalized upstream name, "" when the branch tracks
	// nothing or tracks a remote-tracking branch.
	Upstream string
	// Children are the branches whose upstream is this branch, sorted by name.
	Children []*Node

	IsActive bool
	// IsRoot is set when Upstream is "" or names a branch that does not exist locally.
	IsRoot bool

	// Ahead and Behind count commits relative to the upstream. Both are nil
	// for roots.
	Ahead  *int
	Behind *int

	Hash  string
	Title string
}

// Forest maps branch names to their nodes.
type Forest map[string]*Node

// Roots returns the root nodes ordered by child count, then name.
func (f Forest) Roots() []*Node {
	var roots []*Node
	for _, node := range f {
		if node.IsRoot {
			roots = append(roots, node)
		}
	}
	slices.SortFunc(roots, func(a, b *Node) int {
		if c := cmp.Compare(len(a.Children), len(b.Children)); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return roots
}

// Active returns the checked-out branch, or nil when HEAD is not on a local branch.
func (f Forest) Active() *Node {
	for _, node := range f {
		if node.IsActive {
			return node
		}
	}
	return nil
}

// WalkEdges visits every (parent, child) edge below n in pre-order: a child
// is visited before any of its own children. Walking stops at the first error.
func (n *Node) WalkEdges(visit func(parent, child *Node) error) error {
	for _, child := range n.Children {
		if err := visit(n, child); err != nil {
			return err
		}
		if err := child.WalkEdges(visit); err != nil {
			return err
		}
	}
	return nil
}

// Descendants returns every node below n in pre-order.
func (n *Node) Descendants() []*Node {
	var nodes []*Node
	_ = n.WalkEdges(func(_, child *Node) error {
		nodes = append(nodes, child)
		return nil
	})
	return nodes
}
