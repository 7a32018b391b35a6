// Package browser is the terminal host for the navigation engine: a Bubble
// Tea program that turns keys and mouse clicks into input events and paints
// the intents the engine reports.
package browser

import (
	"github.com/smileynet/treenav/internal/nav"
	"github.com/smileynet/treenav/internal/tree"
)

// Surface is the painted state of the widget. It implements nav.Renderer and
// is the only thing the view consults for styling.
type Surface struct {
	tabStop      string // node holding the tab stop; "" means the root container
	selected     map[string]bool
	ariaSelected map[string]bool
	opened       map[string]bool
	ariaExpanded map[string]bool
	hidden       map[string]bool // groups whose child list is hidden
	ariaHidden   map[string]bool
}

var _ nav.Renderer = (*Surface)(nil)

// NewSurface paints the initial state of m: the root container owns the tab
// stop, nothing is selected, and group markers follow each group's expanded
// flag.
func NewSurface(m *tree.Model) *Surface {
	s := &Surface{
		selected:     make(map[string]bool),
		ariaSelected: make(map[string]bool),
		opened:       make(map[string]bool),
		ariaExpanded: make(map[string]bool),
		hidden:       make(map[string]bool),
		ariaHidden:   make(map[string]bool),
	}
	m.Walk(func(n *tree.Node, _ int) bool {
		if n.IsGroup() {
			s.opened[n.ID] = n.Expanded
			s.ariaExpanded[n.ID] = n.Expanded
			s.hidden[n.ID] = !n.Expanded
			s.ariaHidden[n.ID] = !n.Expanded
		}
		return true
	})
	return s
}

// ApplyFocus moves the tab stop marker.
func (s *Surface) ApplyFocus(i nav.FocusIntent) {
	if i.RootTabStop() {
		s.tabStop = ""
		return
	}
	s.tabStop = i.Next.ID
}

// ApplySelection applies each selection intent in order.
func (s *Surface) ApplySelection(intents ...nav.SelectionIntent) {
	for _, in := range intents {
		s.selected[in.ID] = in.Selected
		s.ariaSelected[in.ID] = in.AriaSelected
	}
}

// ApplyGroup sets a group's open marker and its child list visibility.
func (s *Surface) ApplyGroup(i nav.GroupIntent) {
	id := i.Node.ID
	s.opened[id] = i.Opened
	s.ariaExpanded[id] = i.AriaExpanded
	s.hidden[id] = i.ListHidden
	s.ariaHidden[id] = i.ListAriaHidden
}

// TabStop returns the node holding the tab stop, or "" for the root container.
func (s *Surface) TabStop() string {
	return s.tabStop
}

// RootHasTabStop reports whether the root container holds the tab stop.
func (s *Surface) RootHasTabStop() bool {
	return s.tabStop == ""
}

// IsSelected reports whether id is painted as selected.
func (s *Surface) IsSelected(id string) bool {
	return s.selected[id] && s.ariaSelected[id]
}

// IsOpen reports whether the group id carries the open marker.
func (s *Surface) IsOpen(id string) bool {
	return s.opened[id]
}

// ChildrenHidden reports whether the child list of group id is hidden.
// Leaves have no child list and report true.
func (s *Surface) ChildrenHidden(id string) bool {
	h, ok := s.hidden[id]
	return !ok || h
}

// Consistent reports whether the visual and accessibility attributes agree
// for every node the surface knows about.
func (s *Surface) Consistent() bool {
	for id, v := range s.selected {
		if s.ariaSelected[id] != v {
			return false
		}
	}
	for id, v := range s.opened {
		if s.ariaExpanded[id] != v || s.hidden[id] == v || s.ariaHidden[id] == v {
			return false
		}
	}
	return true
}
