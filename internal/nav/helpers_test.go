package nav

import (
	"strings"
	"testing"

	"github.com/smileynet/treenav/internal/tree"
)

// recorder is a Renderer that logs each intent as a short string.
type recorder struct {
	calls []string
}

func (r *recorder) ApplyFocus(i FocusIntent) {
	r.calls = append(r.calls, "focus "+nodeID(i.Previous)+"->"+nodeID(i.Next))
}

func (r *recorder) ApplySelection(intents ...SelectionIntent) {
	parts := make([]string, len(intents))
	for i, in := range intents {
		if in.Selected && in.AriaSelected {
			parts[i] = "+" + in.ID
		} else {
			parts[i] = "-" + in.ID
		}
	}
	r.calls = append(r.calls, "select "+strings.Join(parts, " "))
}

func (r *recorder) ApplyGroup(i GroupIntent) {
	if i.Opened {
		r.calls = append(r.calls, "open "+i.Node.ID)
		return
	}
	r.calls = append(r.calls, "close "+i.Node.ID)
}

func (r *recorder) reset() {
	r.calls = nil
}

func nodeID(n *tree.Node) string {
	if n == nil {
		return "root"
	}
	return n.ID
}

// fixtureTree builds A(group,expanded)[B, C(group,collapsed)[D]], E.
func fixtureTree() *tree.Model {
	return tree.NewModel([]*tree.Node{
		tree.Group("A", true,
			tree.Leaf("B"),
			tree.Group("C", false, tree.Leaf("D")),
		),
		tree.Leaf("E"),
	})
}

func newTestEngine(t *testing.T, m *tree.Model) (*Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	e, err := New(m, rec)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return e, rec
}

func node(t *testing.T, e *Engine, id string) *tree.Node {
	t.Helper()
	n, ok := e.Model().Resolve(id)
	if !ok {
		t.Fatalf("node %q not in tree", id)
	}
	return n
}

// focusOn puts focus on id and clears the recorded intents.
func focusOn(t *testing.T, e *Engine, rec *recorder, id string) {
	t.Helper()
	e.SetFocused(node(t, e, id))
	rec.reset()
}

func assertFocused(t *testing.T, e *Engine, want string) {
	t.Helper()
	if got := e.State().FocusedID; got != want {
		t.Errorf("focused = %q, want %q", got, want)
	}
}

func assertCalls(t *testing.T, rec *recorder, want ...string) {
	t.Helper()
	if len(rec.calls) != len(want) {
		t.Fatalf("renderer calls = %q, want %q", rec.calls, want)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Errorf("call[%d] = %q, want %q", i, rec.calls[i], want[i])
		}
	}
}
