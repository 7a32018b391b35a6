package tree

// Model is a read-only view over a forest. The only field callers mutate
// through it is Node.Expanded.
//
// Model assumes a well-formed forest: ids are unique and the structure is
// acyclic. Use Load or Validate to check host input before building a Model.
type Model struct {
	roots  []*Node
	index  map[string]*Node
	parent map[string]*Node
}

// NewModel indexes roots for identity and parent lookups.
func NewModel(roots []*Node) *Model {
	m := &Model{
		roots:  roots,
		index:  make(map[string]*Node),
		parent: make(map[string]*Node),
	}
	for _, r := range roots {
		m.indexNode(r, nil)
	}
	return m
}

func (m *Model) indexNode(n, parent *Node) {
	if n == nil {
		return
	}
	m.index[n.ID] = n
	if parent != nil {
		m.parent[n.ID] = parent
	}
	for _, c := range n.Children {
		m.indexNode(c, n)
	}
}

// Roots returns the top-level nodes in document order.
func (m *Model) Roots() []*Node {
	return m.roots
}

// Len returns the number of indexed nodes.
func (m *Model) Len() int {
	return len(m.index)
}

// Resolve looks a node up by ID.
func (m *Model) Resolve(id string) (*Node, bool) {
	if id == "" {
		return nil, false
	}
	n, ok := m.index[id]
	return n, ok
}

// Parent returns the group that directly contains n, or false for top-level nodes.
func (m *Model) Parent(n *Node) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	p, ok := m.parent[n.ID]
	return p, ok
}

// Siblings returns the ordered sequence n belongs to, including n itself.
func (m *Model) Siblings(n *Node) []*Node {
	if p, ok := m.Parent(n); ok {
		return p.Children
	}
	return m.roots
}

// ChildListVisible reports whether n's child list is currently shown.
func (m *Model) ChildListVisible(n *Node) bool {
	return n.IsGroup() && n.Expanded
}

// HasCollapsedAncestor reports whether any group above n is collapsed.
func (m *Model) HasCollapsedAncestor(n *Node) bool {
	for p, ok := m.Parent(n); ok; p, ok = m.Parent(p) {
		if !p.Expanded {
			return true
		}
	}
	return false
}

// IsNavigable reports whether n can receive focus or selection right now:
// it is not disabled and no ancestor hides it.
func (m *Model) IsNavigable(n *Node) bool {
	if n == nil || n.Disabled {
		return false
	}
	return !m.HasCollapsedAncestor(n)
}

// FirstAnywhere returns the first non-disabled node in document order.
// Ancestor visibility is ignored, so the result may sit inside a collapsed group.
func (m *Model) FirstAnywhere() (*Node, bool) {
	var found *Node
	m.Walk(func(n *Node, _ int) bool {
		if n.Disabled {
			return true
		}
		found = n
		return false
	})
	return found, found != nil
}

// Walk visits every node depth-first in document order, hidden or not.
// Returning false from fn stops the walk.
func (m *Model) Walk(fn func(n *Node, depth int) bool) {
	for _, r := range m.roots {
		if !walk(r, 0, fn) {
			return
		}
	}
}

func walk(n *Node, depth int, fn func(*Node, int) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n, depth) {
		return false
	}
	for _, c := range n.Children {
		if !walk(c, depth+1, fn) {
			return false
		}
	}
	return true
}

// ExpandedIDs captures the expansion flag of every group, keyed by ID.
func (m *Model) ExpandedIDs() map[string]bool {
	ids := make(map[string]bool)
	m.Walk(func(n *Node, _ int) bool {
		if n.IsGroup() {
			ids[n.ID] = n.Expanded
		}
		return true
	})
	return ids
}

// RestoreExpanded applies expansion flags captured by ExpandedIDs.
// Groups missing from ids keep the state they were loaded with.
func (m *Model) RestoreExpanded(ids map[string]bool) {
	for id, expanded := range ids {
		if n, ok := m.index[id]; ok && n.IsGroup() {
			n.Expanded = expanded
		}
	}
}
