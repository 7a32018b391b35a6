package nav

import (
	"fmt"

	"github.com/smileynet/treenav/internal/tree"
)

// Action is a directional or activation command.
type Action int

const (
	ActionNone Action = iota
	MoveRight
	MoveLeft
	MoveDown
	MoveUp
	MoveHome
	MoveEnd
	Activate
)

var actionNames = [...]string{
	ActionNone: "none",
	MoveRight:  "right",
	MoveLeft:   "left",
	MoveDown:   "down",
	MoveUp:     "up",
	MoveHome:   "home",
	MoveEnd:    "end",
	Activate:   "activate",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction maps an action name back to its Action.
func ParseAction(s string) (Action, bool) {
	for i, name := range actionNames {
		if Action(i) != ActionNone && name == s {
			return Action(i), true
		}
	}
	return ActionNone, false
}

// Perform runs a relative to target and reports whether anything changed.
// Home and End ignore target.
func (e *Engine) Perform(a Action, target *tree.Node) bool {
	var handled bool
	switch a {
	case MoveHome:
		handled = e.Home()
	case MoveEnd:
		handled = e.End()
	default:
		if target == nil {
			return false
		}
		switch a {
		case MoveRight:
			handled = e.Right(target)
		case MoveLeft:
			handled = e.Left(target)
		case MoveDown:
			handled = e.Down(target)
		case MoveUp:
			handled = e.Up(target)
		case Activate:
			handled = e.Activate(target)
		}
	}

	var id string
	if target != nil {
		id = target.ID
	}
	e.logger.Debug("nav: action",
		"action", a.String(),
		"target", id,
		"handled", handled,
		"focused", e.state.FocusedID,
		"selected", e.state.SelectedID,
	)
	return handled
}

// Do runs a relative to the focused node.
func (e *Engine) Do(a Action) bool {
	n, _ := e.Focused()
	return e.Perform(a, n)
}

// Right opens a collapsed group, or focuses the first child of an open one.
// Leaves are ignored.
func (e *Engine) Right(n *tree.Node) bool {
	if !n.IsGroup() {
		return false
	}
	if !n.Expanded {
		e.openGroup(n)
		return true
	}
	if c, ok := e.FirstDescendant(n); ok {
		return e.focus(c)
	}
	return false
}

// Left closes an open group, otherwise focuses the nearest ancestor.
func (e *Engine) Left(n *tree.Node) bool {
	if n.IsGroup() && n.Expanded {
		e.closeGroup(n)
		return true
	}
	if p, ok := e.NearestAncestor(n); ok {
		return e.focus(p)
	}
	return false
}

// Down focuses the next visible node in document order without opening or
// closing anything.
func (e *Engine) Down(n *tree.Node) bool {
	if n.IsGroup() {
		if c, ok := e.FirstDescendant(n); ok {
			return e.focus(c)
		}
	}
	if s, ok := e.NextSibling(n); ok {
		return e.focus(s)
	}
	for p, ok := e.NearestAncestor(n); ok; p, ok = e.NearestAncestor(p) {
		if s, found := e.NextSibling(p); found {
			return e.focus(s)
		}
	}
	return false
}

// Up focuses the previous visible node in document order.
func (e *Engine) Up(n *tree.Node) bool {
	if s, ok := e.PreviousSibling(n); ok {
		return e.focus(s)
	}
	if p, ok := e.NearestAncestor(n); ok {
		return e.focus(p)
	}
	return false
}

// Home scans the top-level nodes forward and focuses the last navigable one
// it visits.
//
// The scan does not stop at the first match, so Home lands on the last
// top-level node.
func (e *Engine) Home() bool {
	var last *tree.Node
	for _, n := range e.model.Roots() {
		if e.model.IsNavigable(n) {
			last = n
		}
	}
	if last == nil {
		return false
	}
	return e.focus(last)
}

// End is Home scanning backward, so it lands on the first top-level node.
func (e *Engine) End() bool {
	var last *tree.Node
	roots := e.model.Roots()
	for i := len(roots) - 1; i >= 0; i-- {
		if e.model.IsNavigable(roots[i]) {
			last = roots[i]
		}
	}
	if last == nil {
		return false
	}
	return e.focus(last)
}

// Activate performs n's default action: groups toggle, then n is selected.
// Selection applies to leaves and groups alike.
func (e *Engine) Activate(n *tree.Node) bool {
	if n.IsGroup() {
		e.ToggleGroup(n.ID)
	}
	e.SetSelected(n.ID)
	return true
}
