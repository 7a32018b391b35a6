package nav

// SelectionIntent toggles one node's selected presentation.
// Selected drives the visual class and AriaSelected the accessibility
// attribute; renderers apply both together.
type SelectionIntent struct {
	ID           string
	Selected     bool
	AriaSelected bool
}

// Selected returns the selected node ID, or "" when nothing is selected.
// The ID is kept even if the node later becomes hidden.
func (e *Engine) Selected() string {
	return e.state.SelectedID
}

// SetSelected changes the selection to id ("" clears it). The renderer gets
// a single call with the deselect intent first and the select intent second.
func (e *Engine) SetSelected(id string) {
	old := e.state.SelectedID
	if old == id {
		return
	}
	e.state.SelectedID = id

	intents := make([]SelectionIntent, 0, 2)
	if old != "" {
		intents = append(intents, SelectionIntent{ID: old})
	}
	if id != "" {
		intents = append(intents, SelectionIntent{ID: id, Selected: true, AriaSelected: true})
	}
	e.renderer.ApplySelection(intents...)
}
