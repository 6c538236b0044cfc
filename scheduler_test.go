package ripple

import "testing"

func TestSchedulerClearOnConsume(t *testing.T) {
	eng := newTestEngine(t)
	root := NewWidget("root")
	eng.Tree().SetRoot(root)
	w := NewWidget("label")
	root.AddChild(w)
	eng.Scheduler().ConsumeAll()

	w.MarkDirty()
	w.MarkDirty() // dirtied twice before a render

	snap := eng.Scheduler().Snapshot()
	if len(snap) != 1 || snap[0] != w {
		t.Fatalf("Snapshot() = %v, want exactly [w]", snap)
	}
	if !w.IsDirty() {
		t.Error("Snapshot cleared the dirty flag; flags clear on consume, not on read")
	}

	eng.Scheduler().Consume(w)
	if w.IsDirty() {
		t.Error("widget still dirty after Consume")
	}
	if got := eng.Scheduler().Len(); got != 0 {
		t.Errorf("Len() after Consume = %d, want 0", got)
	}
}

func TestSchedulerMarkOrder(t *testing.T) {
	eng := newTestEngine(t)
	root := NewWidget("root")
	eng.Tree().SetRoot(root)
	a := NewWidget("a")
	b := NewWidget("b")
	c := NewWidget("c")
	root.AddChild(a).AddChild(b).AddChild(c)
	eng.Scheduler().ConsumeAll()

	b.MarkDirty()
	a.MarkDirty()
	c.MarkDirty()

	got := eng.Scheduler().ConsumeAll()
	want := []*Widget{b, a, c}
	if len(got) != len(want) {
		t.Fatalf("ConsumeAll() returned %d widgets, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ConsumeAll()[%d] = %s, want %s", i, got[i].Kind(), want[i].Kind())
		}
	}

	for _, w := range want {
		if w.IsDirty() {
			t.Errorf("%s still dirty after ConsumeAll", w.Kind())
		}
	}
	if got := eng.Scheduler().Len(); got != 0 {
		t.Errorf("Len() after ConsumeAll = %d, want 0", got)
	}
}

func TestSchedulerRedirtyAfterConsume(t *testing.T) {
	eng := newTestEngine(t)
	root := NewWidget("root")
	eng.Tree().SetRoot(root)
	w := NewWidget("label")
	root.AddChild(w)
	eng.Scheduler().ConsumeAll()

	w.MarkDirty()
	eng.Scheduler().Consume(w)
	w.MarkDirty() // same frame, after render

	snap := eng.Scheduler().Snapshot()
	if len(snap) != 1 || snap[0] != w {
		t.Fatalf("Snapshot() after consume+redirty = %d entries, want exactly one", len(snap))
	}
}

func TestSchedulerForgetsRemovedWidgets(t *testing.T) {
	eng := newTestEngine(t)
	root := NewWidget("root")
	eng.Tree().SetRoot(root)
	w := NewWidget("label")
	root.AddChild(w)
	eng.Scheduler().ConsumeAll()

	w.MarkDirty()
	eng.Tree().Remove(w)

	if got := eng.Scheduler().Len(); got != 0 {
		t.Errorf("Len() after removing the only dirty widget = %d, want 0", got)
	}
	if w.IsDirty() {
		t.Error("removed widget kept its dirty flag")
	}
}

func TestSchedulerQueueBoundedAcrossFrames(t *testing.T) {
	eng := newTestEngine(t)
	root := NewWidget("root")
	eng.Tree().SetRoot(root)
	w := NewWidget("label")
	root.AddChild(w)
	eng.Scheduler().ConsumeAll()

	// The documented frame pattern: mark, Snapshot, render, Consume.
	// Per-widget Consume must not let the queue accumulate one
	// tombstone per frame forever.
	for frame := 0; frame < 1000; frame++ {
		w.MarkDirty()
		snap := eng.Scheduler().Snapshot()
		if len(snap) != 1 || snap[0] != w {
			t.Fatalf("frame %d: Snapshot() = %d entries, want exactly [w]", frame, len(snap))
		}
		eng.Scheduler().Consume(w)
	}

	if got := len(eng.Scheduler().queue); got > 1 {
		t.Errorf("queue holds %d entries after 1000 consume-only frames, want at most 1", got)
	}
}
