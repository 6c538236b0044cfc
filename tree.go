package ripple

import "log"

// Tree owns the widget hierarchy and the liveness registry that backs
// every handle lookup in the core. Cells, the spatial index, and the
// event manager never keep a widget alive: they hold ids (or pointers
// validated against this registry) and a removed widget simply stops
// resolving.
type Tree struct {
	root  *Widget
	nodes map[WidgetID]*Widget

	sched  *Scheduler
	index  *SpatialIndex
	events *EventManager // set by Engine after the manager exists

	logger      *log.Logger
	maxSetDepth int // re-entrancy guard for Link callbacks
}

func newTree(sched *Scheduler, index *SpatialIndex, logger *log.Logger, maxSetDepth int) *Tree {
	return &Tree{
		nodes:       make(map[WidgetID]*Widget),
		sched:       sched,
		index:       index,
		logger:      logger,
		maxSetDepth: maxSetDepth,
	}
}

// Root returns the root widget, or nil.
func (t *Tree) Root() *Widget { return t.root }

// SetRoot attaches w (and its subtree) as the tree's root, detaching
// any previous root first.
func (t *Tree) SetRoot(w *Widget) {
	if t.root == w {
		return
	}
	if t.root != nil {
		t.detach(t.root)
	}
	t.root = w
	if w != nil {
		if w.parent != nil {
			w.parent.RemoveChild(w)
		} else if w.tree != nil && w.tree != t {
			w.tree.removeRoot(w)
		}
		t.attach(w)
	}
}

// Lookup resolves a widget id against the liveness registry. Returns
// nil for ids of removed (or never-attached) widgets.
func (t *Tree) Lookup(id WidgetID) *Widget {
	return t.nodes[id]
}

// Len returns the number of attached widgets.
func (t *Tree) Len() int { return len(t.nodes) }

// Remove detaches w and its whole subtree from the tree. Every removed
// widget leaves the spatial index, drops out of the dirty set, and
// releases any focus/hover/pressed reference the event manager holds.
func (t *Tree) Remove(w *Widget) {
	if w == nil || w.tree != t {
		return
	}
	w.Remove()
}

// attach registers w's subtree with the registry and inserts visible
// widgets into the spatial index. Widgets still awaiting layout carry
// empty bounds; their entries exist but can never match a query.
func (t *Tree) attach(w *Widget) {
	w.tree = t
	t.nodes[w.id] = w
	if w.visible {
		t.index.Update(w, w.bounds)
	}
	if w.dirty {
		// Was marked while detached; enroll now.
		t.sched.add(w)
	}
	for _, c := range w.children {
		t.attach(c)
	}
}

// detach unregisters w's subtree. Interaction state held elsewhere is
// cleared silently: a torn-down widget receives no blur or leave
// notification.
func (t *Tree) detach(w *Widget) {
	for _, c := range w.children {
		t.detach(c)
	}
	t.index.Remove(w)
	t.sched.forget(w)
	if t.events != nil {
		t.events.widgetDetached(w)
	}
	delete(t.nodes, w.id)
	w.tree = nil
	if t.root == w {
		t.root = nil
	}
}

func (t *Tree) removeRoot(w *Widget) {
	if t.root == w {
		t.detach(w)
	}
}

// Walk visits w and its descendants in depth-first paint order and is
// the traversal order used for focus cycling. Returning false from fn
// stops the walk.
func (t *Tree) Walk(fn func(*Widget) bool) {
	if t.root == nil {
		return
	}
	walk(t.root, fn)
}

func walk(w *Widget, fn func(*Widget) bool) bool {
	if !fn(w) {
		return false
	}
	for _, c := range w.children {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
