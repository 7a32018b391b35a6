package browser

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/smileynet/treenav/internal/debug"
	"github.com/smileynet/treenav/internal/input"
	"github.com/smileynet/treenav/internal/nav"
	"github.com/smileynet/treenav/internal/tree"
	"github.com/smileynet/treenav/internal/watch"
)

// headerHeight is the number of lines above the tree (the title).
const headerHeight = 1

// DefaultDoubleClick is the longest gap between two clicks on one row that
// still counts as a double activation.
const DefaultDoubleClick = 400 * time.Millisecond

// Model is the Bubble Tea model for the tree browser.
type Model struct {
	title      string
	engine     *nav.Engine
	dispatcher *input.Dispatcher
	surface    *Surface
	rows       []Row

	keys     KeyMap
	help     help.Model
	viewport viewport.Model
	width    int
	height   int

	mouse       bool
	doubleClick time.Duration
	indent      int
	logger      *slog.Logger
	now         func() time.Time

	loader  Loader
	watcher *watch.Watcher
	restore *Snapshot

	lastClickID string
	lastClickAt time.Time

	status string
	err    error
}

// Option configures a Model.
type Option func(*Model)

// WithTitle sets the header line.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// WithMouse enables click handling.
func WithMouse(on bool) Option {
	return func(m *Model) {
		m.mouse = on
	}
}

// WithVimKeys binds hjkl and g/G in addition to the arrows.
func WithVimKeys(on bool) Option {
	return func(m *Model) {
		m.keys = DefaultKeyMap(on)
	}
}

// WithDoubleClick sets the double-activation window.
func WithDoubleClick(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.doubleClick = d
		}
	}
}

// WithIndent sets the width of one nesting level.
func WithIndent(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.indent = n
		}
	}
}

// WithLogger sets the logger shared by the engine and dispatcher.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithWatcher reloads the tree through load whenever w reports a change.
func WithWatcher(w *watch.Watcher, load Loader) Option {
	return func(m *Model) {
		m.watcher = w
		m.loader = load
	}
}

// WithClock replaces time.Now for double-click timing.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// NewModel creates a browser over roots.
func NewModel(roots []*tree.Node, opts ...Option) (Model, error) {
	m := Model{
		title:        "treenav",
		keys:         DefaultKeyMap(true),
		help:         help.New(),
		viewport:     viewport.New(0, 0),
		mouse:        true,
		doubleClick:  DefaultDoubleClick,
		indent:       2,
		logger:       debug.Discard(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if err := m.attach(m.newTreeModel(roots)); err != nil {
		return Model{}, err
	}
	if m.restore != nil {
		m.applySnapshot(*m.restore)
		m.restore = nil
	}
	return m, nil
}

// attach wires a fresh surface, engine and dispatcher to model.
func (m *Model) attach(model *tree.Model) error {
	surface := NewSurface(model)
	engine, err := nav.New(model, surface, nav.WithLogger(m.logger))
	if err != nil {
		return fmt.Errorf("browser: %w", err)
	}
	dispatcher, err := input.NewDispatcher(engine, input.WithLogger(m.logger))
	if err != nil {
		return fmt.Errorf("browser: %w", err)
	}
	m.surface = surface
	m.engine = engine
	m.dispatcher = dispatcher
	m.refresh()
	return nil
}

// Engine returns the navigation engine.
func (m Model) Engine() *nav.Engine {
	return m.engine
}

// Surface returns the painted widget state.
func (m Model) Surface() *Surface {
	return m.surface
}

// Rows returns the rows currently painted.
func (m Model) Rows() []Row {
	return m.rows
}

// Err returns the last reload or watch error.
func (m Model) Err() error {
	return m.err
}

// Init focuses the widget and starts watching when configured.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{enterCmd}
	if m.watcher != nil && m.loader != nil {
		cmds = append(cmds, waitForChange(m.watcher, m.loader))
	}
	return tea.Batch(cmds...)
}

// Update routes terminal input into the dispatcher.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = m.contentHeight()
		m.refresh()
		return m, nil

	case enterMsg:
		m.dispatch(input.RootFocused())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.mouse {
			return m, nil
		}
		return m.handleMouse(msg)

	case ReloadMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.status = "reload failed"
		} else if err := m.reload(msg.Roots); err != nil {
			m.err = err
			m.status = "reload failed"
		} else {
			m.err = nil
			m.status = "reloaded"
		}
		return m, m.watchCmd()

	case WatchErrMsg:
		m.err = msg.Err
		if errors.Is(msg.Err, watch.ErrFileRemoved) {
			m.status = "tree file removed"
		} else {
			m.status = "watch failed"
		}
		return m, m.watchCmd()
	}

	return m, nil
}

func (m Model) watchCmd() tea.Cmd {
	if m.watcher == nil || m.loader == nil {
		return nil
	}
	return waitForChange(m.watcher, m.loader)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.viewport.Height = m.contentHeight()
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.dispatch(input.RootFocused())
		return m, nil
	}

	if k, ok := m.keys.navKey(msg); ok {
		// Keys target whatever holds the tab stop. With the root container
		// focused there is no node target and the dispatcher ignores them.
		m.dispatch(input.KeyOn(m.surface.TabStop(), k))
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.LineUp(3)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.viewport.LineDown(3)
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	idx := msg.Y - headerHeight + m.viewport.YOffset
	if msg.Y < headerHeight || msg.Y >= headerHeight+m.viewport.Height || idx < 0 || idx >= len(m.rows) {
		return m, nil
	}
	row := m.rows[idx]
	start, end := row.ToggleSpan()
	if row.Node.IsGroup() && msg.X >= start && msg.X < end {
		m.lastClickID = ""
		m.dispatch(input.ToggleClickOn(row.Node.ID))
		return m, nil
	}

	now := m.now()
	// Compared by node, since rows can shift between the two clicks.
	double := row.Node.ID == m.lastClickID && now.Sub(m.lastClickAt) <= m.doubleClick
	m.dispatch(input.ClickOn(row.Node.ID))
	if double {
		m.dispatch(input.DoubleActivateOn(row.Node.ID))
		m.lastClickID = ""
		return m, nil
	}
	m.lastClickID = row.Node.ID
	m.lastClickAt = now
	return m, nil
}

// dispatch sends ev to the engine and repaints.
func (m *Model) dispatch(ev input.Event) {
	m.dispatcher.Dispatch(ev)
	m.refresh()
}

// reload swaps in a new forest, carrying over expansion, focus and selection
// for ids that still exist. Focus that can no longer be held re-enters
// through the root container.
func (m *Model) reload(roots []*tree.Node) error {
	if err := tree.Validate(roots); err != nil {
		return err
	}
	old := m.engine
	model := tree.NewModel(roots)
	model.RestoreExpanded(old.Model().ExpandedIDs())
	if err := m.attach(model); err != nil {
		return err
	}

	state := old.State()
	m.restoreState(state.FocusedID, state.SelectedID)
	if state.FocusedID != "" && m.engine.State().FocusedID == "" {
		m.dispatcher.Dispatch(input.RootFocused())
	}
	m.lastClickID = ""
	m.logger.Debug("browser: reloaded",
		"nodes", model.Len(),
		"focused", m.engine.State().FocusedID,
		"selected", m.engine.State().SelectedID,
	)
	m.refresh()
	return nil
}

// contentHeight returns the usable height for the tree rows.
func (m Model) contentHeight() int {
	h := m.height - headerHeight - m.footerHeight()
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) footerHeight() int {
	return 1 + lipgloss.Height(m.help.View(m.keys))
}

// refresh rebuilds the rows and scrolls the tab stop row into view.
func (m *Model) refresh() {
	m.rows = Flatten(m.engine.Model(), m.surface, m.indent)
	m.viewport.SetContent(m.renderRows())

	idx, ok := RowIndex(m.rows, m.surface.TabStop())
	if !ok || m.viewport.Height <= 0 {
		return
	}
	switch {
	case idx < m.viewport.YOffset:
		m.viewport.SetYOffset(idx)
	case idx >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(idx - m.viewport.Height + 1)
	}
}

func (m Model) renderRows() string {
	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		lines[i] = m.renderRow(r)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(r Row) string {
	id := r.Node.ID
	focused := m.surface.TabStop() == id
	selected := m.surface.IsSelected(id)

	cursor := "  "
	if focused {
		cursor = CursorMarker
	}
	icon := IconLeaf
	if r.Node.IsGroup() {
		icon = IconClosed
		if m.surface.IsOpen(id) {
			icon = IconOpen
		}
	}

	label := r.Node.Title()
	if m.width > 0 {
		room := m.width - cursorWidth - runewidth.StringWidth(r.Prefix) - iconWidth
		if selected {
			room -= runewidth.StringWidth(SelectedMarker)
		}
		label = truncate(label, room)
	}

	switch {
	case r.Node.Disabled:
		label = mutedText.Render(label)
	case selected:
		label = selectedStyle.Render(label) + SelectedMarker
	}
	if focused {
		label = focusedStyle.Render(label)
	}
	return cursor + prefixStyle.Render(r.Prefix) + icon + label
}

// View renders the title, the tree and the help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	status := m.statusLine()
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(truncate(m.title, m.width)),
		m.viewport.View(),
		status,
		m.help.View(m.keys),
	)
}

func (m Model) statusLine() string {
	if m.err != nil {
		return errorStyle.Render(truncate(fmt.Sprintf("%s: %v", m.status, m.err), m.width))
	}
	var parts []string
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if m.engine.Model().Len() == 0 {
		parts = append(parts, "empty tree")
	}
	if sel := m.engine.Selected(); sel != "" {
		n, _ := m.engine.Model().Resolve(sel)
		parts = append(parts, "selected: "+n.Title())
	}
	return mutedText.Render(truncate(strings.Join(parts, "  "), m.width))
}
