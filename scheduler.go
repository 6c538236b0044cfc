package ripple

// Scheduler collects the widgets dirtied during a frame (by reactive
// cell writes, by external mutation, by layout re-bounding) and hands
// them to the downstream layout/render passes in mark order.
//
// Flags clear on consume, not on set: a widget dirtied twice before a
// render happens still renders exactly once. Enrollment is O(1); the
// widget's own dirty flag is the dedup guard, so the queue never holds
// a live widget twice.
type Scheduler struct {
	// queue holds widgets in mark order. Consumed entries linger as
	// tombstones only until the next Snapshot, which compacts the
	// queue in place so memory stays bounded by the live dirty set
	// under the per-widget Consume frame pattern.
	queue []*Widget
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// add enrolls a widget. Called from Widget.MarkDirty under the dirty
// flag guard.
func (s *Scheduler) add(w *Widget) {
	s.queue = append(s.queue, w)
}

// forget drops a removed widget from the frame's work. The widget's
// flag clears so a later re-attach starts clean.
func (s *Scheduler) forget(w *Widget) {
	w.dirty = false
}

// Len returns the number of widgets currently dirty.
func (s *Scheduler) Len() int {
	return len(s.Snapshot())
}

// Snapshot returns the dirty widgets in mark order without clearing
// any flags. Layout reads this to know which subtrees to re-run.
//
// The scan compacts the queue as a side effect: tombstones left by
// Consume and forget are dropped, and a widget consumed then
// re-dirtied within the same frame keeps only its first live entry.
func (s *Scheduler) Snapshot() []*Widget {
	live := s.queue[:0]
	seen := make(map[WidgetID]struct{}, len(s.queue))
	for _, w := range s.queue {
		if !w.dirty {
			continue
		}
		if _, dup := seen[w.id]; dup {
			continue
		}
		seen[w.id] = struct{}{}
		live = append(live, w)
	}
	// Release the tombstones' references.
	for i := len(live); i < len(s.queue); i++ {
		s.queue[i] = nil
	}
	s.queue = live

	out := make([]*Widget, len(live))
	copy(out, live)
	return out
}

// Consume clears one widget's dirty flag after it has been rendered.
// The queue entry becomes a tombstone compacted on the next Snapshot.
func (s *Scheduler) Consume(w *Widget) {
	w.dirty = false
}

// ConsumeAll returns the dirty set in mark order and clears every
// flag, resetting the scheduler for the next frame.
func (s *Scheduler) ConsumeAll() []*Widget {
	out := s.Snapshot()
	for _, w := range out {
		w.dirty = false
	}
	for i := range s.queue {
		s.queue[i] = nil
	}
	s.queue = s.queue[:0]
	return out
}
