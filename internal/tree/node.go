// Package tree holds the host-supplied hierarchy the navigation engine reads:
// nodes, the forest index and the visibility rules that decide which nodes
// can receive focus.
package tree

// Kind distinguishes group nodes, which own a collapsible child list, from leaves.
type Kind string

const (
	KindLeaf  Kind = "leaf"
	KindGroup Kind = "group"
)

// Node is one tree item.
// Parent links are not stored; Model resolves them on demand.
type Node struct {
	ID       string  `yaml:"id" json:"id"`
	Label    string  `yaml:"label,omitempty" json:"label,omitempty"`
	Kind     Kind    `yaml:"kind,omitempty" json:"kind,omitempty"`
	Disabled bool    `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	Expanded bool    `yaml:"expanded,omitempty" json:"expanded,omitempty"`
	Children []*Node `yaml:"children,omitempty" json:"children,omitempty"`
}

// IsGroup reports whether n owns a child list.
// A group with no children still keeps its group affordances.
func (n *Node) IsGroup() bool {
	return n != nil && n.Kind == KindGroup
}

// Title returns the display label, falling back to the ID.
func (n *Node) Title() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Leaf returns a leaf node with the given ID.
func Leaf(id string) *Node {
	return &Node{ID: id, Kind: KindLeaf}
}

// Group returns a group node with the given ID, expansion state and children.
func Group(id string, expanded bool, children ...*Node) *Node {
	return &Node{ID: id, Kind: KindGroup, Expanded: expanded, Children: children}
}

// Disable marks n as disabled and returns it, for inline tree literals.
func (n *Node) Disable() *Node {
	n.Disabled = true
	return n
}
