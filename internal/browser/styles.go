package browser

import "github.com/charmbracelet/lipgloss"

// CursorMarker is the prefix shown on the row holding the tab stop.
const CursorMarker = "› "

// Toggle icons painted on group rows.
const (
	IconOpen   = "▾ "
	IconClosed = "▸ "
	IconLeaf   = "  "
)

// SelectedMarker is appended to the selected row.
const SelectedMarker = " ✓"

const (
	cursorWidth = 2
	iconWidth   = 2
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	focusedStyle  = lipgloss.NewStyle().Reverse(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
	mutedText     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
	prefixStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "250", Dark: "240"})
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})
)
