package nav

import "github.com/smileynet/treenav/internal/tree"

// FocusIntent moves the roving tab stop.
// Previous loses its tab stop marker. Next gains it and receives input focus;
// a nil Next hands the tab stop back to the root container.
type FocusIntent struct {
	Previous *tree.Node
	Next     *tree.Node
}

// RootTabStop reports whether the root container holds the tab stop after
// this intent is applied.
func (i FocusIntent) RootTabStop() bool {
	return i.Next == nil
}

// Focused returns the focused node. Focus is not retracted when the node is
// later hidden by a collapsing ancestor, so the node may not be navigable.
func (e *Engine) Focused() (*tree.Node, bool) {
	return e.model.Resolve(e.state.FocusedID)
}

// SetFocused moves focus to n, or back to the root container when n is nil.
// Setting the current value is a no-op.
func (e *Engine) SetFocused(n *tree.Node) {
	var id string
	if n != nil {
		id = n.ID
	}
	if id == e.state.FocusedID {
		return
	}
	prev, _ := e.Focused()
	e.state.FocusedID = id
	e.renderer.ApplyFocus(FocusIntent{Previous: prev, Next: n})
}

// focus is the traversal form of SetFocused: it reports success so actions
// can return it directly.
func (e *Engine) focus(n *tree.Node) bool {
	e.SetFocused(n)
	return true
}
