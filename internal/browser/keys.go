package browser

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/treenav/internal/input"
)

// KeyMap holds the browser key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Home     key.Binding
	End      key.Binding
	Activate key.Binding
	Tab      key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns the bindings for the help bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Activate, k.Help, k.Quit}
}

// FullHelp returns the bindings grouped for expanded help.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Home, k.End, k.Activate},
		{k.Tab, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the key bindings. With vim set, hjkl and g/G are
// bound alongside the arrows and home/end.
func DefaultKeyMap(vim bool) KeyMap {
	keys := func(plain, vimKey string) []string {
		if vim {
			return []string{plain, vimKey}
		}
		return []string{plain}
	}
	label := func(plain, vimKey string) string {
		if vim {
			return plain + "/" + vimKey
		}
		return plain
	}
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys(keys("up", "k")...),
			key.WithHelp(label("↑", "k"), "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(keys("down", "j")...),
			key.WithHelp(label("↓", "j"), "down"),
		),
		Left: key.NewBinding(
			key.WithKeys(keys("left", "h")...),
			key.WithHelp(label("←", "h"), "collapse/parent"),
		),
		Right: key.NewBinding(
			key.WithKeys(keys("right", "l")...),
			key.WithHelp(label("→", "l"), "expand/child"),
		),
		Home: key.NewBinding(
			key.WithKeys(keys("home", "g")...),
			key.WithHelp(label("home", "g"), "home"),
		),
		End: key.NewBinding(
			key.WithKeys(keys("end", "G")...),
			key.WithHelp(label("end", "G"), "end"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus tree"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// navKey maps a key message to the widget key it stands for.
func (k KeyMap) navKey(msg tea.KeyMsg) (input.Key, bool) {
	bindings := []struct {
		b   key.Binding
		key input.Key
	}{
		{k.Up, input.KeyArrowUp},
		{k.Down, input.KeyArrowDown},
		{k.Left, input.KeyArrowLeft},
		{k.Right, input.KeyArrowRight},
		{k.Home, input.KeyHome},
		{k.End, input.KeyEnd},
		{k.Activate, input.KeyEnter},
	}
	for _, kb := range bindings {
		if key.Matches(msg, kb.b) {
			return kb.key, true
		}
	}
	return "", false
}
