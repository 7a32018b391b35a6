package browser

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/smileynet/treenav/internal/tree"
)

// Row is one painted line of the tree with its pre-computed prefix.
type Row struct {
	Node   *tree.Node
	Prefix string // box-drawing prefix, e.g. "├─ ", "│  └─ "
	Depth  int
}

// connectors holds the prefix segments for one indentation width.
type connectors struct {
	branch, last, pipe, blank string
}

func newConnectors(indent int) connectors {
	if indent < 1 {
		indent = 1
	}
	dash := strings.Repeat("─", indent-1)
	return connectors{
		branch: "├" + dash + " ",
		last:   "└" + dash + " ",
		pipe:   "│" + strings.Repeat(" ", indent),
		blank:  strings.Repeat(" ", indent+1),
	}
}

// Flatten converts the forest into painted rows. Children of a group are
// included only while the surface shows its child list.
func Flatten(m *tree.Model, s *Surface, indent int) []Row {
	c := newConnectors(indent)
	var rows []Row
	for _, root := range m.Roots() {
		rows = flattenNode(root, s, c, "", 0, false, rows)
	}
	return rows
}

func flattenNode(n *tree.Node, s *Surface, c connectors, parentPrefix string, depth int, isLast bool, rows []Row) []Row {
	var prefix string
	if depth > 0 {
		if isLast {
			prefix = parentPrefix + c.last
		} else {
			prefix = parentPrefix + c.branch
		}
	}

	rows = append(rows, Row{
		Node:   n,
		Prefix: prefix,
		Depth:  depth,
	})

	if !n.IsGroup() || s.ChildrenHidden(n.ID) {
		return rows
	}

	var childPrefix string
	if depth > 0 {
		if isLast {
			childPrefix = parentPrefix + c.blank
		} else {
			childPrefix = parentPrefix + c.pipe
		}
	}

	for i, child := range n.Children {
		rows = flattenNode(child, s, c, childPrefix, depth+1, i == len(n.Children)-1, rows)
	}
	return rows
}

// RowIndex returns the index of the row showing id.
func RowIndex(rows []Row, id string) (int, bool) {
	if id == "" {
		return 0, false
	}
	for i, r := range rows {
		if r.Node.ID == id {
			return i, true
		}
	}
	return 0, false
}

// ToggleSpan returns the column range [start, end) holding a row's toggle
// icon, measured from the start of the tree area.
func (r Row) ToggleSpan() (start, end int) {
	start = cursorWidth + runewidth.StringWidth(r.Prefix)
	return start, start + iconWidth
}

// truncate shortens s to fit width cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
