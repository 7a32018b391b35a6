package nav

import "github.com/smileynet/treenav/internal/tree"

// GroupIntent reports a group opening or closing.
type GroupIntent struct {
	Node           *tree.Node
	Opened         bool // "opened" visual class
	AriaExpanded   bool
	ListHidden     bool
	ListAriaHidden bool
}

// ToggleGroup opens a collapsed group or closes an expanded one.
// Unknown IDs and leaves are ignored. Focus never moves, even when the
// focused node is inside the subtree being hidden.
func (e *Engine) ToggleGroup(id string) bool {
	n, ok := e.model.Resolve(id)
	if !ok || !n.IsGroup() {
		return false
	}
	if !n.Expanded {
		e.openGroup(n)
	} else {
		e.closeGroup(n)
	}
	return true
}

func (e *Engine) openGroup(n *tree.Node) {
	n.Expanded = true
	e.renderer.ApplyGroup(GroupIntent{
		Node:         n,
		Opened:       true,
		AriaExpanded: true,
	})
}

func (e *Engine) closeGroup(n *tree.Node) {
	n.Expanded = false
	e.renderer.ApplyGroup(GroupIntent{
		Node:           n,
		ListHidden:     true,
		ListAriaHidden: true,
	})
}
