package ripple

import "testing"

func TestAddChildRejectsAncestorCycle(t *testing.T) {
	eng := newTestEngine(t)
	a := NewWidget("a")
	b := NewWidget("b")
	c := NewWidget("c")
	eng.Tree().SetRoot(a)
	a.AddChild(b)
	b.AddChild(c)

	// Closing the loop a -> b -> c -> a must be refused.
	c.AddChild(a)

	if a.Parent() != nil {
		t.Error("root gained a parent from a rejected cycle")
	}
	if len(c.Children()) != 0 {
		t.Errorf("c has %d children, want 0", len(c.Children()))
	}

	// Self-append is the degenerate cycle.
	b.AddChild(b)
	if got := len(b.Children()); got != 1 {
		t.Errorf("b has %d children after self-append, want 1", got)
	}
	if b.Parent() != a {
		t.Error("self-append disturbed b's parent")
	}

	// The tree must still be finitely walkable.
	count := 0
	eng.Tree().Walk(func(*Widget) bool {
		count++
		return count <= 10
	})
	if count != 3 {
		t.Errorf("Walk visited %d widgets, want 3", count)
	}
}
