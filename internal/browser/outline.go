package browser

import (
	"fmt"
	"io"

	"github.com/smileynet/treenav/internal/tree"
)

// WriteOutline prints the rows a freshly opened browser would show, without
// styling. Groups carry their toggle icon and disabled nodes are marked.
func WriteOutline(w io.Writer, m *tree.Model, indent int) error {
	s := NewSurface(m)
	for _, r := range Flatten(m, s, indent) {
		icon := IconLeaf
		if r.Node.IsGroup() {
			icon = IconClosed
			if s.IsOpen(r.Node.ID) {
				icon = IconOpen
			}
		}
		line := r.Prefix + icon + r.Node.Title()
		if r.Node.Disabled {
			line += " (disabled)"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
