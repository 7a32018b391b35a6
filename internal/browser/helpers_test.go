package browser

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/treenav/internal/tree"
)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

// fixtureRoots builds A(group,expanded)[B, C(group,collapsed)[D]], E, X(disabled).
func fixtureRoots() []*tree.Node {
	return []*tree.Node{
		tree.Group("A", true,
			tree.Leaf("B"),
			tree.Group("C", false, tree.Leaf("D")),
		),
		tree.Leaf("E"),
		tree.Leaf("X").Disable(),
	}
}

// newSizedModel returns a browser over roots that has been sized and entered.
func newSizedModel(t *testing.T, w, h int, roots []*tree.Node, opts ...Option) Model {
	t.Helper()
	m, err := NewModel(roots, opts...)
	if err != nil {
		t.Fatalf("NewModel() error: %v", err)
	}
	m = update(t, m, tea.WindowSizeMsg{Width: w, Height: h})
	return update(t, m, enterMsg{})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, k)
	}
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

// fakeClock returns each time in turn, then repeats the last one.
func fakeClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

func focusedID(m Model) string {
	return m.Engine().State().FocusedID
}
