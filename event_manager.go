package ripple

import (
	"log"
	"time"
)

// Stats counts event-manager activity since construction. Diagnostics
// only; nothing in the core reads these back.
type Stats struct {
	Posted    uint64 // raw events posted
	Coalesced uint64 // posts collapsed into an already-queued event
	Processed uint64 // events dispatched
	Discarded uint64 // events with no resolvable target
	Deferred  uint64 // drain calls that ran out of budget with work left
	Faults    uint64 // handler panics recovered at the dispatch boundary
}

// EventManager coalesces raw input events, resolves their targets
// through the spatial index (pointer class) or the focus reference
// (keyboard class), and dispatches them within a per-frame time
// budget. It is Idle between frames and Draining inside a Drain call;
// no state machine survives across frames beyond the pending queue and
// the focus/hover/pressed references.
type EventManager struct {
	tree  *Tree
	index *SpatialIndex

	queue []Event

	// Coalescing window: only a short trailing slice of the queue is
	// eligible for collapse, bounded both by entry count and by
	// timestamp age.
	coalesceDepth  int
	coalesceWindow time.Duration

	focused       *Widget
	hovered       *Widget
	pressed       *Widget
	pressedButton MouseButton

	logger *log.Logger
	now    func() time.Time // injectable for deterministic budget tests
	stats  Stats
}

// NewEventManager creates a manager resolving against the given tree
// and index. Coalescing parameters come from cfg.
func NewEventManager(tree *Tree, index *SpatialIndex, cfg EventsConfig, logger *log.Logger) *EventManager {
	if logger == nil {
		logger = log.Default()
	}
	return &EventManager{
		tree:           tree,
		index:          index,
		coalesceDepth:  cfg.CoalesceDepth,
		coalesceWindow: cfg.CoalesceWindow(),
		logger:         logger,
		now:            time.Now,
	}
}

// Post appends a raw event to the pending queue. If an event of a
// coalescable kind with the same target already sits in the coalescing
// window it is replaced in place with the new data instead of
// appended, which bounds queue growth under event floods such as rapid
// pointer motion. Discrete kinds (presses, releases, key input) are
// always appended; see EventType.Coalesces.
//
// The input source must timestamp events monotonically; events posted
// with a zero Time are stamped here.
func (m *EventManager) Post(e Event) {
	if e.Time.IsZero() {
		e.Time = m.now()
	}
	e.coalesceTarget = m.resolveCoalesceTarget(e)
	m.stats.Posted++

	if e.Kind.Coalesces() {
		oldest := len(m.queue) - m.coalesceDepth
		if oldest < 0 {
			oldest = 0
		}
		for i := len(m.queue) - 1; i >= oldest; i-- {
			q := m.queue[i]
			if e.Time.Sub(q.Time) > m.coalesceWindow {
				break
			}
			if q.Kind == e.Kind && q.coalesceTarget == e.coalesceTarget {
				m.queue[i] = e
				m.stats.Coalesced++
				return
			}
		}
	}
	m.queue = append(m.queue, e)
}

// resolveCoalesceTarget computes the identity the coalescing window
// keys on. Pointer events hit-test at post time; the authoritative
// resolution still happens at dispatch, against whatever bounds are
// current then.
func (m *EventManager) resolveCoalesceTarget(e Event) WidgetID {
	switch {
	case e.Kind.Pointer():
		if w := m.hitTest(e.X, e.Y); w != nil {
			return w.id
		}
	case e.Kind.Keyboard():
		if m.focused != nil {
			return m.focused.id
		}
	}
	return 0
}

// HasPendingEvents reports whether the queue is non-empty.
func (m *EventManager) HasPendingEvents() bool { return len(m.queue) > 0 }

// PendingEvents returns the number of queued events.
func (m *EventManager) PendingEvents() int { return len(m.queue) }

// Stats returns a copy of the activity counters.
func (m *EventManager) Stats() Stats { return m.stats }

// FaultCount returns the number of handler panics recovered so far.
func (m *EventManager) FaultCount() uint64 { return m.stats.Faults }

// Drain processes pending events in post order until the queue is
// empty or elapsed wall-clock time reaches budget, and returns the
// number processed. The budget is advisory backpressure, not
// preemption: a long handler overruns it, the manager merely declines
// to start more work afterwards. Unprocessed events stay queued, in
// order, for the next call. Budget exhaustion defers, never drops.
func (m *EventManager) Drain(budget time.Duration) int {
	start := m.now()
	processed := 0
	for len(m.queue) > 0 {
		if m.now().Sub(start) >= budget {
			m.stats.Deferred++
			break
		}
		e := m.queue[0]
		m.queue = m.queue[1:]
		m.dispatch(e)
		processed++
	}
	if len(m.queue) == 0 {
		m.queue = nil
	}
	return processed
}

// dispatch resolves one event's target and delivers it.
func (m *EventManager) dispatch(e Event) {
	switch {
	case e.Kind.Pointer():
		m.dispatchPointer(e)
	case e.Kind.Keyboard():
		m.dispatchKey(e)
	default:
		m.stats.Discarded++
	}
}

func (m *EventManager) dispatchPointer(e Event) {
	target := m.hitTest(e.X, e.Y)

	if e.Kind == EventPointerMove {
		m.updateHover(target, e)
	}

	if target == nil {
		// A press on empty space still clears focus; the event
		// itself has no default target and is discarded.
		switch e.Kind {
		case EventPointerDown:
			m.SetFocus(nil)
			m.clearPressed()
		case EventPointerUp:
			// Release off every widget ends any press in flight.
			m.clearPressed()
		}
		m.stats.Discarded++
		return
	}

	switch e.Kind {
	case EventPointerDown:
		m.pressed = target
		m.pressedButton = e.Button
		target.pressed = true
		if target.focusable {
			m.SetFocus(target)
		}
	case EventPointerUp:
		wasPressed := m.pressed
		button := m.pressedButton
		m.clearPressed()
		m.stats.Processed++
		m.bubble(target, e)
		// Press and release on the same widget is a click.
		if wasPressed == target && button == e.Button {
			click := e
			click.Kind = EventClick
			m.bubble(target, click)
		}
		return
	}

	m.stats.Processed++
	m.bubble(target, e)
}

func (m *EventManager) dispatchKey(e Event) {
	if m.focused == nil || !m.focused.Interactive() {
		m.stats.Discarded++
		return
	}
	m.stats.Processed++
	m.bubble(m.focused, e)
}

// hitTest returns the topmost interactive widget at the point. A
// disabled widget sitting on top does not pass the hit through to
// whatever it covers only visually. It is skipped, matching what the
// user perceives as an inert surface.
func (m *EventManager) hitTest(x, y float32) *Widget {
	for _, w := range m.index.QueryPointAll(x, y) {
		if w.Interactive() {
			return w
		}
	}
	return nil
}

// bubble delivers the event to the target, then offers it to each
// ancestor in turn until a handler consumes it or the root is reached.
// A button inside a scroll view ignoring a drag is how the scroll view
// gets it.
func (m *EventManager) bubble(target *Widget, e Event) {
	e.Target = target
	for w := target; w != nil; w = w.parent {
		if !w.Interactive() {
			continue
		}
		if m.invoke(w, e) {
			return
		}
	}
}

// invoke runs one widget handler with the dispatch boundary around it:
// a panicking handler is recovered and logged as a recoverable fault,
// and dispatch moves on. One broken handler must not halt the frame's
// input processing.
func (m *EventManager) invoke(w *Widget, e Event) (consumed bool) {
	defer func() {
		if r := recover(); r != nil {
			m.stats.Faults++
			m.logger.Printf("ripple: handler fault on widget %d (%s) during %s: %v", w.id, w.kind, e.Kind, r)
			consumed = false
		}
	}()
	return w.handleEvent(e)
}

// updateHover synthesizes enter/leave events when the widget under the
// pointer changes.
func (m *EventManager) updateHover(target *Widget, e Event) {
	if m.hovered == target {
		return
	}
	if m.hovered != nil {
		m.hovered.hovered = false
		leave := e
		leave.Kind = EventPointerLeave
		leave.Target = m.hovered
		m.invoke(m.hovered, leave)
	}
	m.hovered = target
	if target != nil {
		target.hovered = true
		enter := e
		enter.Kind = EventPointerEnter
		enter.Target = target
		m.invoke(target, enter)
	}
}

// ============================================================================
// Focus
// ============================================================================

// SetFocus moves keyboard focus. At most one widget holds focus; the
// previous holder receives its blur notification before the new one
// receives focus, both synchronously, before SetFocus returns. Passing
// nil clears focus.
func (m *EventManager) SetFocus(w *Widget) {
	if m.focused == w {
		return
	}
	old := m.focused
	if old != nil {
		old.focused = false
		if old.onBlur != nil {
			old.onBlur(old)
		}
	}
	m.focused = w
	if w != nil {
		w.focused = true
		if w.onFocus != nil {
			w.onFocus(w)
		}
	}
}

// FocusedWidget returns the current focus holder, or nil.
func (m *EventManager) FocusedWidget() *Widget { return m.focused }

// Blur clears focus.
func (m *EventManager) Blur() { m.SetFocus(nil) }

// FocusNext moves focus to the next focusable, interactive widget in
// depth-first tree order after the current holder, wrapping around.
// With no current focus it picks the first candidate. Returns the new
// holder, or nil when the tree has none.
func (m *EventManager) FocusNext() *Widget {
	var candidates []*Widget
	m.tree.Walk(func(w *Widget) bool {
		if w.focusable && w.Interactive() {
			candidates = append(candidates, w)
		}
		return true
	})
	if len(candidates) == 0 {
		return nil
	}
	next := candidates[0]
	if m.focused != nil {
		for i, w := range candidates {
			if w == m.focused {
				next = candidates[(i+1)%len(candidates)]
				break
			}
		}
	}
	m.SetFocus(next)
	return next
}

// ============================================================================
// Teardown
// ============================================================================

func (m *EventManager) clearPressed() {
	if m.pressed != nil {
		m.pressed.pressed = false
	}
	m.pressed = nil
	m.pressedButton = MouseButtonNone
}

// widgetDetached drops any reference to a removed widget. The widget
// is gone, so no blur or leave notification fires; future events
// simply stop resolving to it.
func (m *EventManager) widgetDetached(w *Widget) {
	if m.focused == w {
		w.focused = false
		m.focused = nil
	}
	if m.hovered == w {
		w.hovered = false
		m.hovered = nil
	}
	if m.pressed == w {
		m.clearPressed()
	}
}
