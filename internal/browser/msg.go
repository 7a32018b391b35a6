package browser

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/treenav/internal/tree"
	"github.com/smileynet/treenav/internal/watch"
)

// Loader reads the current forest from the tree source.
type Loader func() ([]*tree.Node, error)

// ReloadMsg carries a freshly loaded forest, or the error that prevented it.
type ReloadMsg struct {
	Roots []*tree.Node
	Err   error
}

// WatchErrMsg reports a watcher failure.
type WatchErrMsg struct {
	Err error
}

// enterMsg gives the widget its initial focus, as if the user tabbed into it.
type enterMsg struct{}

func enterCmd() tea.Msg {
	return enterMsg{}
}

// waitForChange blocks until the watcher reports a settled change, then loads
// the tree.
func waitForChange(w *watch.Watcher, load Loader) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-w.Changes():
			roots, err := load()
			return ReloadMsg{Roots: roots, Err: err}
		case err := <-w.Errors():
			return WatchErrMsg{Err: err}
		}
	}
}
