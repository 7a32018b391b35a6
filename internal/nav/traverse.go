package nav

import "github.com/smileynet/treenav/internal/tree"

// Traversal primitives. Each considers only nodes that are navigable at
// query time and reports failure as (nil, false).

// FirstTopLevel returns the first navigable top-level node.
func (e *Engine) FirstTopLevel() (*tree.Node, bool) {
	for _, n := range e.model.Roots() {
		if e.model.IsNavigable(n) {
			return n, true
		}
	}
	return nil, false
}

// LastTopLevel returns the last navigable top-level node.
func (e *Engine) LastTopLevel() (*tree.Node, bool) {
	roots := e.model.Roots()
	for i := len(roots) - 1; i >= 0; i-- {
		if e.model.IsNavigable(roots[i]) {
			return roots[i], true
		}
	}
	return nil, false
}

// NextSibling returns the first navigable sibling after n.
// It never descends into n.
func (e *Engine) NextSibling(n *tree.Node) (*tree.Node, bool) {
	siblings := e.model.Siblings(n)
	for i := indexOf(siblings, n) + 1; i > 0 && i < len(siblings); i++ {
		if e.model.IsNavigable(siblings[i]) {
			return siblings[i], true
		}
	}
	return nil, false
}

// PreviousSibling returns the first navigable sibling before n, resolved to
// its deepest visible descendant when it has one.
func (e *Engine) PreviousSibling(n *tree.Node) (*tree.Node, bool) {
	siblings := e.model.Siblings(n)
	for i := indexOf(siblings, n) - 1; i >= 0; i-- {
		s := siblings[i]
		if !e.model.IsNavigable(s) {
			continue
		}
		if last, ok := e.LastDescendant(s); ok {
			return last, true
		}
		return s, true
	}
	return nil, false
}

// FirstDescendant returns the first navigable child of an expanded group.
func (e *Engine) FirstDescendant(n *tree.Node) (*tree.Node, bool) {
	if n == nil || !e.model.ChildListVisible(n) {
		return nil, false
	}
	for _, c := range n.Children {
		if e.model.IsNavigable(c) {
			return c, true
		}
	}
	return nil, false
}

// LastDescendant returns the deepest node reached by repeatedly taking the
// last navigable child of a visible child list.
func (e *Engine) LastDescendant(n *tree.Node) (*tree.Node, bool) {
	if n == nil || !e.model.ChildListVisible(n) {
		return nil, false
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		c := n.Children[i]
		if !e.model.IsNavigable(c) {
			continue
		}
		if deeper, ok := e.LastDescendant(c); ok {
			return deeper, true
		}
		return c, true
	}
	return nil, false
}

// NearestAncestor returns the closest navigable group containing n.
// Top-level nodes have none.
func (e *Engine) NearestAncestor(n *tree.Node) (*tree.Node, bool) {
	for p, ok := e.model.Parent(n); ok; p, ok = e.model.Parent(p) {
		if e.model.IsNavigable(p) {
			return p, true
		}
	}
	return nil, false
}

func indexOf(nodes []*tree.Node, n *tree.Node) int {
	for i, c := range nodes {
		if c == n {
			return i
		}
	}
	return -1
}
