package ripple

// SpatialIndex answers "which widget is at point (x, y)" and "which
// widgets overlap rectangle R" in O(log n) as the tree mutates. It
// keeps one interval tree per axis over the widgets' bounds; a 2-D
// query intersects the two 1-D results, the smaller set driving.
//
// The index holds exactly one entry per attached-and-visible widget.
// Each entry remembers the z-sequence assigned on first insert, which
// stands in for paint order: among widgets overlapping a point, the
// later-inserted one is on top. Update preserves the sequence so
// re-layout never reshuffles stacking.
type SpatialIndex struct {
	xs, ys  intervalTree
	entries map[WidgetID]indexEntry
	nextSeq uint64
}

type indexEntry struct {
	widget *Widget
	bounds Bounds
	seq    uint64
}

// NewSpatialIndex creates an empty index.
func NewSpatialIndex() *SpatialIndex {
	return &SpatialIndex{entries: make(map[WidgetID]indexEntry)}
}

// Len returns the number of indexed widgets.
func (s *SpatialIndex) Len() int { return len(s.entries) }

// Insert adds the widget's rectangle to both axis trees. Inserting a
// widget that is already present re-bounds it (see Update). Zero-area
// rectangles are tracked but can never match a query.
func (s *SpatialIndex) Insert(w *Widget, bounds Bounds) {
	if w == nil {
		return
	}
	seq := s.nextSeq
	if prev, ok := s.entries[w.id]; ok {
		s.removeIntervals(w.id, prev.bounds)
		seq = prev.seq
	} else {
		s.nextSeq++
	}
	s.entries[w.id] = indexEntry{widget: w, bounds: bounds, seq: seq}
	s.xs.insert(bounds.X, bounds.X+bounds.Width, w.id)
	s.ys.insert(bounds.Y, bounds.Y+bounds.Height, w.id)
}

// Remove deletes the widget's entries from both trees. Removing a
// widget that is not present is a no-op.
func (s *SpatialIndex) Remove(w *Widget) {
	if w == nil {
		return
	}
	entry, ok := s.entries[w.id]
	if !ok {
		return
	}
	s.removeIntervals(w.id, entry.bounds)
	delete(s.entries, w.id)
}

// Update re-bounds a widget: remove then reinsert, never an in-place
// interval mutation. Updating a widget not currently indexed is an
// insert, so call sites need not track index membership.
func (s *SpatialIndex) Update(w *Widget, bounds Bounds) {
	s.Insert(w, bounds)
}

func (s *SpatialIndex) removeIntervals(id WidgetID, b Bounds) {
	s.xs.remove(b.X, b.X+b.Width, id)
	s.ys.remove(b.Y, b.Y+b.Height, id)
}

// QueryPoint returns the topmost widget whose rectangle contains the
// point, or nil. Rectangles are half-open, so a point on the far edge
// misses. Querying an empty index returns nil.
func (s *SpatialIndex) QueryPoint(x, y float32) *Widget {
	var top *Widget
	var topSeq uint64
	s.stabPoint(x, y, func(e indexEntry) bool {
		if top == nil || e.seq > topSeq {
			top = e.widget
			topSeq = e.seq
		}
		return true
	})
	return top
}

// QueryPointAll returns every widget containing the point, topmost
// first. Callers that need to skip occluding widgets (the event
// manager gating on Interactive, for one) walk this list instead of
// taking QueryPoint's single answer.
func (s *SpatialIndex) QueryPointAll(x, y float32) []*Widget {
	var hits []indexEntry
	s.stabPoint(x, y, func(e indexEntry) bool {
		hits = append(hits, e)
		return true
	})
	// Insertion sort by descending seq; overlap counts at one point
	// stay small in practice.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].seq > hits[j-1].seq; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
	out := make([]*Widget, len(hits))
	for i, e := range hits {
		out[i] = e.widget
	}
	return out
}

// stabPoint intersects the per-axis stab sets. Both axis queries run
// in O(log n + k); the smaller result drives the candidate scan, with
// containment re-checked against the stored bounds.
func (s *SpatialIndex) stabPoint(x, y float32, fn func(indexEntry) bool) {
	var xids, yids []WidgetID
	s.xs.stab(x, func(id WidgetID) { xids = append(xids, id) })
	if len(xids) == 0 {
		return
	}
	s.ys.stab(y, func(id WidgetID) { yids = append(yids, id) })
	if len(yids) == 0 {
		return
	}
	driver := xids
	if len(yids) < len(xids) {
		driver = yids
	}
	for _, id := range driver {
		e, ok := s.entries[id]
		if !ok || !e.bounds.Contains(x, y) {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

// QueryRegion returns all widgets whose rectangle intersects rect, in
// unspecified order. Used for damage and visibility culling. A
// zero-area rect matches nothing.
func (s *SpatialIndex) QueryRegion(rect Bounds) []*Widget {
	if rect.Empty() {
		return nil
	}
	var xids, yids []WidgetID
	s.xs.overlap(rect.X, rect.X+rect.Width, func(id WidgetID) { xids = append(xids, id) })
	if len(xids) == 0 {
		return nil
	}
	s.ys.overlap(rect.Y, rect.Y+rect.Height, func(id WidgetID) { yids = append(yids, id) })
	if len(yids) == 0 {
		return nil
	}
	driver := xids
	if len(yids) < len(xids) {
		driver = yids
	}
	var out []*Widget
	for _, id := range driver {
		e, ok := s.entries[id]
		if !ok || !e.bounds.Intersects(rect) {
			continue
		}
		out = append(out, e.widget)
	}
	return out
}
