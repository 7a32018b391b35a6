package nav

import (
	"testing"

	"github.com/smileynet/treenav/internal/tree"
)

func assertNode(t *testing.T, name string, got *tree.Node, ok bool, want string) {
	t.Helper()
	if want == "" {
		if ok {
			t.Errorf("%s = %s, want failure", name, got.ID)
		}
		return
	}
	if !ok {
		t.Errorf("%s failed, want %s", name, want)
		return
	}
	if got.ID != want {
		t.Errorf("%s = %s, want %s", name, got.ID, want)
	}
}

func TestTraversal_Fixture(t *testing.T) {
	e, _ := newTestEngine(t, fixtureTree())
	a, c, d, e2 := node(t, e, "A"), node(t, e, "C"), node(t, e, "D"), node(t, e, "E")

	n, ok := e.FirstDescendant(a)
	assertNode(t, "FirstDescendant(A)", n, ok, "B")

	// C is collapsed, so D is out of reach.
	n, ok = e.FirstDescendant(c)
	assertNode(t, "FirstDescendant(C)", n, ok, "")

	// C's subtree is hidden, so E's previous sibling resolves to C, not D.
	n, ok = e.PreviousSibling(e2)
	assertNode(t, "PreviousSibling(E)", n, ok, "C")

	n, ok = e.NextSibling(a)
	assertNode(t, "NextSibling(A)", n, ok, "E")

	n, ok = e.NearestAncestor(d)
	assertNode(t, "NearestAncestor(D)", n, ok, "C")

	n, ok = e.NearestAncestor(a)
	assertNode(t, "NearestAncestor(A)", n, ok, "")
}

func TestTopLevel(t *testing.T) {
	m := tree.NewModel([]*tree.Node{
		tree.Leaf("x").Disable(),
		tree.Leaf("first"),
		tree.Leaf("mid"),
		tree.Leaf("last"),
		tree.Leaf("y").Disable(),
	})
	e, _ := newTestEngine(t, m)

	n, ok := e.FirstTopLevel()
	assertNode(t, "FirstTopLevel", n, ok, "first")
	n, ok = e.LastTopLevel()
	assertNode(t, "LastTopLevel", n, ok, "last")

	empty, _ := newTestEngine(t, tree.NewModel(nil))
	n, ok = empty.FirstTopLevel()
	assertNode(t, "FirstTopLevel(empty)", n, ok, "")
	n, ok = empty.LastTopLevel()
	assertNode(t, "LastTopLevel(empty)", n, ok, "")
}

func TestSiblings_SkipDisabled(t *testing.T) {
	// Given: P[a, x(disabled), y(disabled), b]
	m := tree.NewModel([]*tree.Node{
		tree.Group("P", true,
			tree.Leaf("a"),
			tree.Leaf("x").Disable(),
			tree.Leaf("y").Disable(),
			tree.Leaf("b"),
		),
	})
	e, _ := newTestEngine(t, m)

	n, ok := e.NextSibling(node(t, e, "a"))
	assertNode(t, "NextSibling(a)", n, ok, "b")
	n, ok = e.PreviousSibling(node(t, e, "b"))
	assertNode(t, "PreviousSibling(b)", n, ok, "a")
	n, ok = e.NextSibling(node(t, e, "b"))
	assertNode(t, "NextSibling(b)", n, ok, "")
	n, ok = e.PreviousSibling(node(t, e, "a"))
	assertNode(t, "PreviousSibling(a)", n, ok, "")
}

func TestNextSibling_DoesNotDescend(t *testing.T) {
	e, _ := newTestEngine(t, fixtureTree())

	// A is expanded with children, but NextSibling looks only sideways.
	n, ok := e.NextSibling(node(t, e, "A"))
	assertNode(t, "NextSibling(A)", n, ok, "E")
}

func TestLastDescendant(t *testing.T) {
	// Given: R[a, b[c, d[e, f(disabled)]], g(disabled)] with everything open
	m := tree.NewModel([]*tree.Node{
		tree.Group("R", true,
			tree.Leaf("a"),
			tree.Group("b", true,
				tree.Leaf("c"),
				tree.Group("d", true,
					tree.Leaf("e"),
					tree.Leaf("f").Disable(),
				),
			),
			tree.Leaf("g").Disable(),
		),
	})
	e, _ := newTestEngine(t, m)

	n, ok := e.LastDescendant(node(t, e, "R"))
	assertNode(t, "LastDescendant(R)", n, ok, "e")

	// When: d collapses, the deepest visible node becomes d itself.
	node(t, e, "d").Expanded = false
	n, ok = e.LastDescendant(node(t, e, "R"))
	assertNode(t, "LastDescendant(R) with d closed", n, ok, "d")

	n, ok = e.LastDescendant(node(t, e, "a"))
	assertNode(t, "LastDescendant(leaf)", n, ok, "")

	n, ok = e.LastDescendant(node(t, e, "d"))
	assertNode(t, "LastDescendant(collapsed)", n, ok, "")
}

func TestLastDescendant_AllChildrenDisabled(t *testing.T) {
	m := tree.NewModel([]*tree.Node{
		tree.Group("G", true, tree.Leaf("x").Disable()),
	})
	e, _ := newTestEngine(t, m)

	n, ok := e.LastDescendant(node(t, e, "G"))
	assertNode(t, "LastDescendant(G)", n, ok, "")
	n, ok = e.FirstDescendant(node(t, e, "G"))
	assertNode(t, "FirstDescendant(G)", n, ok, "")
}

func TestNearestAncestor_SkipsDisabled(t *testing.T) {
	// Given: top[mid(disabled)[leaf]] all open
	m := tree.NewModel([]*tree.Node{
		tree.Group("top", true,
			tree.Group("mid", true, tree.Leaf("leaf")).Disable(),
		),
	})
	e, _ := newTestEngine(t, m)

	n, ok := e.NearestAncestor(node(t, e, "leaf"))
	assertNode(t, "NearestAncestor(leaf)", n, ok, "top")
}

func TestTraversal_FromHiddenNode(t *testing.T) {
	// Given: focus retained on D after C closes
	e, _ := newTestEngine(t, fixtureTree())
	d := node(t, e, "D")

	// Then: D has no navigable siblings but its visible ancestor is reachable
	n, ok := e.NextSibling(d)
	assertNode(t, "NextSibling(D)", n, ok, "")
	n, ok = e.NearestAncestor(d)
	assertNode(t, "NearestAncestor(D)", n, ok, "C")
}
