package ripple

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func widgetIDs(ws []*Widget) []WidgetID {
	ids := make([]WidgetID, len(ws))
	for i, w := range ws {
		ids[i] = w.ID()
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func TestQueryPointDisjoint(t *testing.T) {
	idx := NewSpatialIndex()
	a := NewWidget("a")
	b := NewWidget("b")
	idx.Insert(a, Bounds{X: 0, Y: 0, Width: 50, Height: 50})
	idx.Insert(b, Bounds{X: 100, Y: 100, Width: 50, Height: 50})

	tests := []struct {
		name string
		x, y float32
		want *Widget
	}{
		{"inside a", 10, 10, a},
		{"inside b", 120, 130, b},
		{"between", 75, 75, nil},
		{"far outside", -5, -5, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.QueryPoint(tt.x, tt.y); got != tt.want {
				t.Errorf("QueryPoint(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestQueryPointZOrder(t *testing.T) {
	idx := NewSpatialIndex()
	a := NewWidget("a")
	b := NewWidget("b")
	// A inserted (painted) first, B second: B is on top.
	idx.Insert(a, Bounds{X: 0, Y: 0, Width: 50, Height: 50})
	idx.Insert(b, Bounds{X: 25, Y: 25, Width: 50, Height: 50})

	if got := idx.QueryPoint(30, 30); got != b {
		t.Fatalf("QueryPoint(30,30) = %v, want later-painted b", got)
	}

	idx.Remove(b)
	if got := idx.QueryPoint(30, 30); got != a {
		t.Errorf("QueryPoint(30,30) after Remove(b) = %v, want a", got)
	}
}

func TestQueryPointHalfOpenEdges(t *testing.T) {
	idx := NewSpatialIndex()
	w := NewWidget("w")
	idx.Insert(w, Bounds{X: 0, Y: 0, Width: 10, Height: 10})

	tests := []struct {
		name string
		x, y float32
		hit  bool
	}{
		{"interior corner", 9, 9, true},
		{"far corner", 10, 10, false},
		{"right edge", 10, 5, false},
		{"bottom edge", 5, 10, false},
		{"origin", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.QueryPoint(tt.x, tt.y)
			if (got != nil) != tt.hit {
				t.Errorf("QueryPoint(%v, %v) hit = %v, want %v", tt.x, tt.y, got != nil, tt.hit)
			}
		})
	}
}

func TestUpdateNoStaleHit(t *testing.T) {
	idx := NewSpatialIndex()
	w := NewWidget("w")
	idx.Insert(w, Bounds{X: 0, Y: 0, Width: 20, Height: 20})

	idx.Update(w, Bounds{X: 100, Y: 100, Width: 20, Height: 20})

	if got := idx.QueryPoint(10, 10); got != nil {
		t.Errorf("QueryPoint inside old bounds = %v, want nil", got)
	}
	if got := idx.QueryPoint(110, 110); got != w {
		t.Errorf("QueryPoint inside new bounds = %v, want w", got)
	}
	if got := idx.Len(); got != 1 {
		t.Errorf("Len() after update = %d, want 1", got)
	}
}

func TestUpdatePreservesZOrder(t *testing.T) {
	idx := NewSpatialIndex()
	a := NewWidget("a")
	b := NewWidget("b")
	idx.Insert(a, Bounds{X: 0, Y: 0, Width: 50, Height: 50})
	idx.Insert(b, Bounds{X: 0, Y: 0, Width: 50, Height: 50})

	// Re-layout nudges a; paint order must not change.
	idx.Update(a, Bounds{X: 5, Y: 5, Width: 50, Height: 50})

	if got := idx.QueryPoint(30, 30); got != b {
		t.Errorf("QueryPoint after re-bounding a = %v, want b still on top", got)
	}
}

func TestUpdateAbsentIsInsert(t *testing.T) {
	idx := NewSpatialIndex()
	w := NewWidget("w")

	idx.Update(w, Bounds{X: 0, Y: 0, Width: 10, Height: 10})

	if got := idx.QueryPoint(5, 5); got != w {
		t.Errorf("QueryPoint after upsert = %v, want w", got)
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	idx := NewSpatialIndex()
	idx.Remove(NewWidget("w")) // must not panic
	if got := idx.QueryPoint(0, 0); got != nil {
		t.Errorf("QueryPoint on empty index = %v, want nil", got)
	}
	if got := idx.QueryRegion(Bounds{Width: 100, Height: 100}); len(got) != 0 {
		t.Errorf("QueryRegion on empty index returned %d widgets, want 0", len(got))
	}
}

func TestZeroAreaNeverMatches(t *testing.T) {
	idx := NewSpatialIndex()
	flat := NewWidget("flat")
	thin := NewWidget("thin")
	idx.Insert(flat, Bounds{X: 0, Y: 0, Width: 10, Height: 0})
	idx.Insert(thin, Bounds{X: 0, Y: 0, Width: 0, Height: 10})

	if got := idx.QueryPoint(0, 0); got != nil {
		t.Errorf("QueryPoint over zero-area widgets = %v, want nil", got)
	}
	if got := idx.QueryRegion(Bounds{X: -5, Y: -5, Width: 20, Height: 20}); len(got) != 0 {
		t.Errorf("QueryRegion over zero-area widgets returned %d, want 0", len(got))
	}
	// Degenerate query rects match nothing either.
	if got := idx.QueryRegion(Bounds{X: 0, Y: 0, Width: 0, Height: 50}); got != nil {
		t.Errorf("zero-width QueryRegion = %v, want nil", got)
	}
}

func TestQueryRegion(t *testing.T) {
	idx := NewSpatialIndex()
	a := NewWidget("a")
	b := NewWidget("b")
	c := NewWidget("c")
	idx.Insert(a, Bounds{X: 0, Y: 0, Width: 10, Height: 10})
	idx.Insert(b, Bounds{X: 20, Y: 0, Width: 10, Height: 10})
	idx.Insert(c, Bounds{X: 40, Y: 40, Width: 10, Height: 10})

	tests := []struct {
		name string
		rect Bounds
		want []*Widget
	}{
		{"covers a and b", Bounds{X: 0, Y: 0, Width: 30, Height: 10}, []*Widget{a, b}},
		{"covers all", Bounds{X: -10, Y: -10, Width: 100, Height: 100}, []*Widget{a, b, c}},
		{"edge-adjacent to a", Bounds{X: 10, Y: 0, Width: 5, Height: 10}, nil},
		{"covers none", Bounds{X: 60, Y: 60, Width: 10, Height: 10}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.QueryRegion(tt.rect)
			if diff := cmp.Diff(widgetIDs(tt.want), widgetIDs(got)); diff != "" {
				t.Errorf("QueryRegion(%+v) mismatch (-want +got):\n%s", tt.rect, diff)
			}
		})
	}
}

// TestIndexChurn exercises the treaps against a brute-force reference
// through a mixed insert/update/remove sequence.
func TestIndexChurn(t *testing.T) {
	idx := NewSpatialIndex()
	ref := make(map[*Widget]Bounds)

	widgets := make([]*Widget, 40)
	for i := range widgets {
		widgets[i] = NewWidget("cell")
		b := Bounds{
			X:      float32((i % 8) * 12),
			Y:      float32((i / 8) * 12),
			Width:  10,
			Height: 10,
		}
		idx.Insert(widgets[i], b)
		ref[widgets[i]] = b
	}

	// Shift every third widget, remove every seventh.
	for i, w := range widgets {
		switch {
		case i%7 == 0:
			idx.Remove(w)
			delete(ref, w)
		case i%3 == 0:
			b := ref[w]
			b.X += 37
			b.Y += 5
			idx.Update(w, b)
			ref[w] = b
		}
	}

	if idx.Len() != len(ref) {
		t.Fatalf("Len() = %d, want %d", idx.Len(), len(ref))
	}

	for probeY := float32(0); probeY < 80; probeY += 7 {
		for probeX := float32(0); probeX < 140; probeX += 7 {
			var want []*Widget
			for w, b := range ref {
				if b.Contains(probeX, probeY) {
					want = append(want, w)
				}
			}
			got := idx.QueryPointAll(probeX, probeY)
			if diff := cmp.Diff(widgetIDs(want), widgetIDs(got)); diff != "" {
				t.Fatalf("QueryPointAll(%v, %v) mismatch (-want +got):\n%s", probeX, probeY, diff)
			}
		}
	}
}
