package browser

import "github.com/smileynet/treenav/internal/tree"

// Snapshot is the part of a browsing session that survives a restart.
type Snapshot struct {
	Expanded map[string]bool
	Focused  string
	Selected string
}

// WithSnapshot restores a previous session when the model is built.
// IDs that no longer exist are ignored.
func WithSnapshot(s Snapshot) Option {
	return func(m *Model) {
		m.restore = &s
	}
}

// Snapshot captures the current expansion, focus and selection.
func (m Model) Snapshot() Snapshot {
	state := m.engine.State()
	return Snapshot{
		Expanded: m.engine.Model().ExpandedIDs(),
		Focused:  state.FocusedID,
		Selected: state.SelectedID,
	}
}

// applySnapshot restores focus and selection from s.
func (m *Model) applySnapshot(s Snapshot) {
	m.restoreState(s.Focused, s.Selected)
	m.logger.Debug("browser: session restored",
		"focused", m.engine.State().FocusedID,
		"selected", m.engine.State().SelectedID,
	)
	m.refresh()
}

// restoreState puts focus back on focused when that node is navigable and
// selection back on selected when that node is enabled. Anything else is
// dropped.
func (m *Model) restoreState(focused, selected string) {
	model := m.engine.Model()
	if n, ok := model.Resolve(focused); ok && model.IsNavigable(n) {
		m.engine.SetFocused(n)
	}
	if n, ok := model.Resolve(selected); ok && !n.Disabled {
		m.engine.SetSelected(n.ID)
	}
}

// newTreeModel builds the tree model, applying saved expansion first.
func (m *Model) newTreeModel(roots []*tree.Node) *tree.Model {
	model := tree.NewModel(roots)
	if m.restore != nil {
		model.RestoreExpanded(m.restore.Expanded)
	}
	return model
}
