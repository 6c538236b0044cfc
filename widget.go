package ripple

import "sync/atomic"

// WidgetID uniquely identifies a widget for the lifetime of the
// process. IDs are stable handles: everything outside the tree
// (reactive cells, the spatial index, focus) refers to widgets by id
// and resolves through the tree's liveness registry, so a reference to
// a removed widget degrades to a lookup miss rather than a dangling
// pointer.
type WidgetID uint64

var nextWidgetID atomic.Uint64

func newWidgetID() WidgetID {
	return WidgetID(nextWidgetID.Add(1))
}

// Widget represents a UI element in the retained tree.
//
// The parent exclusively owns its children; the parent pointer on a
// child exists for traversal only and never extends a lifetime. Bounds
// are written only by the layout engine through SetBounds.
type Widget struct {
	id       WidgetID
	kind     string
	parent   *Widget
	children []*Widget
	tree     *Tree // nil while detached

	bounds Bounds

	dirty     bool
	visible   bool
	enabled   bool
	focusable bool

	// Interaction state maintained by the EventManager.
	focused bool
	hovered bool
	pressed bool

	handler Handler
	onFocus FocusHandler
	onBlur  FocusHandler
}

// NewWidget creates a detached widget. The kind is a free-form label
// used only for diagnostics; the widget catalog lives above this
// layer. Widgets start visible and enabled, not focusable.
func NewWidget(kind string) *Widget {
	return &Widget{
		id:      newWidgetID(),
		kind:    kind,
		visible: true,
		enabled: true,
	}
}

// ID returns the widget's stable identifier.
func (w *Widget) ID() WidgetID { return w.id }

// Kind returns the diagnostic label given at construction.
func (w *Widget) Kind() string { return w.kind }

// Parent returns the parent widget, or nil for a root or detached widget.
func (w *Widget) Parent() *Widget { return w.parent }

// Children returns a copy of the child list in paint order.
func (w *Widget) Children() []*Widget {
	out := make([]*Widget, len(w.children))
	copy(out, w.children)
	return out
}

// Tree returns the tree the widget is attached to, or nil.
func (w *Widget) Tree() *Tree { return w.tree }

// ============================================================================
// Hierarchy
// ============================================================================

// AddChild appends a child in paint order. A child already parented
// elsewhere is reparented. If w is attached, the child's subtree is
// attached to the same tree. Appending w itself or one of its own
// ancestors is rejected as a no-op: it would close a parent/child
// cycle and make the tree untraversable.
func (w *Widget) AddChild(child *Widget) *Widget {
	if child == nil {
		return w
	}
	for a := w; a != nil; a = a.parent {
		if a == child {
			return w
		}
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	} else if child.tree != nil {
		child.tree.removeRoot(child)
	}
	child.parent = w
	w.children = append(w.children, child)
	if w.tree != nil {
		w.tree.attach(child)
	}
	return w
}

// RemoveChild detaches a child (and its subtree) from w and from the
// tree. Returns false if child is not a child of w.
func (w *Widget) RemoveChild(child *Widget) bool {
	for i, c := range w.children {
		if c == child {
			w.children = append(w.children[:i], w.children[i+1:]...)
			child.parent = nil
			if child.tree != nil {
				child.tree.detach(child)
			}
			return true
		}
	}
	return false
}

// Remove detaches w from its parent and tree. A detached root is
// removed from the tree directly.
func (w *Widget) Remove() {
	if w.parent != nil {
		w.parent.RemoveChild(w)
		return
	}
	if w.tree != nil {
		w.tree.removeRoot(w)
	}
}

// ============================================================================
// Geometry
// ============================================================================

// Bounds returns the widget's current screen-space bounds.
func (w *Widget) Bounds() Bounds { return w.bounds }

// SetBounds assigns new bounds. Called by the layout engine after
// constraint solving; the spatial index entry is refreshed in the same
// call so index staleness is never observable across a frame boundary.
func (w *Widget) SetBounds(b Bounds) *Widget {
	w.bounds = b
	w.MarkDirty()
	if w.tree != nil && w.visible {
		w.tree.index.Update(w, b)
	}
	return w
}

// ============================================================================
// Flags
// ============================================================================

// SetVisible shows or hides the widget. A hidden widget leaves the
// spatial index and can no longer be hit.
func (w *Widget) SetVisible(visible bool) *Widget {
	if w.visible == visible {
		return w
	}
	w.visible = visible
	w.MarkDirty()
	if w.tree != nil {
		if visible {
			w.tree.index.Update(w, w.bounds)
		} else {
			w.tree.index.Remove(w)
		}
	}
	return w
}

// Visible reports whether the widget is rendered and hit-testable.
func (w *Widget) Visible() bool { return w.visible }

// SetEnabled controls whether the widget receives events.
func (w *Widget) SetEnabled(enabled bool) *Widget {
	if w.enabled != enabled {
		w.enabled = enabled
		w.MarkDirty()
	}
	return w
}

// Enabled reports whether the widget receives events.
func (w *Widget) Enabled() bool { return w.enabled }

// SetFocusable marks the widget as eligible for keyboard focus.
func (w *Widget) SetFocusable(focusable bool) *Widget {
	w.focusable = focusable
	return w
}

// Focusable reports whether the widget can take keyboard focus.
func (w *Widget) Focusable() bool { return w.focusable }

// Interactive reports whether the widget currently receives events.
func (w *Widget) Interactive() bool { return w.visible && w.enabled }

// Focused reports whether the widget holds keyboard focus.
func (w *Widget) Focused() bool { return w.focused }

// Hovered reports whether the pointer is currently over the widget.
func (w *Widget) Hovered() bool { return w.hovered }

// Pressed reports whether a pointer button went down on the widget and
// has not been released.
func (w *Widget) Pressed() bool { return w.pressed }

// ============================================================================
// Dirty tracking
// ============================================================================

// MarkDirty flags the widget as needing re-layout/re-render before the
// next present and enrolls it with the tree's scheduler. O(1); marking
// an already-dirty widget is a no-op.
func (w *Widget) MarkDirty() {
	if w.dirty {
		return
	}
	w.dirty = true
	if w.tree != nil {
		w.tree.sched.add(w)
	}
}

// IsDirty reports whether the widget is flagged for re-render.
func (w *Widget) IsDirty() bool { return w.dirty }

// ============================================================================
// Handlers
// ============================================================================

// OnEvent registers the widget's event handler. The handler returns
// true to consume the event and stop bubbling.
func (w *Widget) OnEvent(h Handler) *Widget {
	w.handler = h
	return w
}

// OnFocus registers a callback invoked when the widget gains focus.
func (w *Widget) OnFocus(h FocusHandler) *Widget {
	w.onFocus = h
	return w
}

// OnBlur registers a callback invoked when the widget loses focus.
func (w *Widget) OnBlur(h FocusHandler) *Widget {
	w.onBlur = h
	return w
}

// handleEvent invokes the widget's handler, if any.
func (w *Widget) handleEvent(e Event) bool {
	if w.handler == nil {
		return false
	}
	return w.handler(w, e)
}
