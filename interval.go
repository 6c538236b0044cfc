package ripple

import "math/rand"

// intervalTree is one axis of the spatial index: an augmented treap
// mapping half-open intervals [start, end) to widget ids. Randomized
// priorities keep insert and remove at expected O(log n); every node
// carries the maximum interval end of its subtree so stabbing queries
// can prune whole subtrees.
//
// Widgets sharing the exact same interval share a node. Re-bounding is
// always remove-then-reinsert at the SpatialIndex level; intervals are
// never resized in place, which would invalidate the cached subtree
// maxima.
type intervalTree struct {
	root *intervalNode
}

type intervalNode struct {
	start, end float32
	maxEnd     float32
	prio       uint32
	ids        []WidgetID
	left       *intervalNode
	right      *intervalNode
}

// less orders nodes by (start, end) so the BST property holds even for
// intervals sharing a start coordinate.
func intervalLess(aStart, aEnd, bStart, bEnd float32) bool {
	if aStart != bStart {
		return aStart < bStart
	}
	return aEnd < bEnd
}

func (n *intervalNode) recalc() {
	n.maxEnd = n.end
	if n.left != nil && n.left.maxEnd > n.maxEnd {
		n.maxEnd = n.left.maxEnd
	}
	if n.right != nil && n.right.maxEnd > n.maxEnd {
		n.maxEnd = n.right.maxEnd
	}
}

func rotateRight(n *intervalNode) *intervalNode {
	l := n.left
	n.left = l.right
	l.right = n
	n.recalc()
	l.recalc()
	return l
}

func rotateLeft(n *intervalNode) *intervalNode {
	r := n.right
	n.right = r.left
	r.left = n
	n.recalc()
	r.recalc()
	return r
}

func (t *intervalTree) insert(start, end float32, id WidgetID) {
	t.root = insertNode(t.root, start, end, id)
}

func insertNode(n *intervalNode, start, end float32, id WidgetID) *intervalNode {
	if n == nil {
		return &intervalNode{
			start:  start,
			end:    end,
			maxEnd: end,
			prio:   rand.Uint32(),
			ids:    []WidgetID{id},
		}
	}
	switch {
	case start == n.start && end == n.end:
		for _, existing := range n.ids {
			if existing == id {
				return n
			}
		}
		n.ids = append(n.ids, id)
	case intervalLess(start, end, n.start, n.end):
		n.left = insertNode(n.left, start, end, id)
		if n.left.prio > n.prio {
			return rotateRight(n)
		}
	default:
		n.right = insertNode(n.right, start, end, id)
		if n.right.prio > n.prio {
			return rotateLeft(n)
		}
	}
	n.recalc()
	return n
}

func (t *intervalTree) remove(start, end float32, id WidgetID) {
	t.root = removeNode(t.root, start, end, id)
}

func removeNode(n *intervalNode, start, end float32, id WidgetID) *intervalNode {
	if n == nil {
		return nil
	}
	switch {
	case start == n.start && end == n.end:
		for i, existing := range n.ids {
			if existing == id {
				n.ids = append(n.ids[:i], n.ids[i+1:]...)
				break
			}
		}
		if len(n.ids) == 0 {
			return dropNode(n)
		}
	case intervalLess(start, end, n.start, n.end):
		n.left = removeNode(n.left, start, end, id)
	default:
		n.right = removeNode(n.right, start, end, id)
	}
	n.recalc()
	return n
}

// dropNode deletes an emptied node by rotating it below its
// higher-priority child until it is a leaf.
func dropNode(n *intervalNode) *intervalNode {
	if n.left == nil && n.right == nil {
		return nil
	}
	if n.right == nil || (n.left != nil && n.left.prio > n.right.prio) {
		r := rotateRight(n)
		r.right = dropNode(r.right)
		r.recalc()
		return r
	}
	r := rotateLeft(n)
	r.left = dropNode(r.left)
	r.recalc()
	return r
}

// stab calls fn for every id whose interval contains p. A zero-width
// interval [a, a) contains no point. O(log n + k).
func (t *intervalTree) stab(p float32, fn func(WidgetID)) {
	stabNode(t.root, p, fn)
}

func stabNode(n *intervalNode, p float32, fn func(WidgetID)) {
	if n == nil || p >= n.maxEnd {
		return
	}
	stabNode(n.left, p, fn)
	if n.start <= p {
		if p < n.end {
			for _, id := range n.ids {
				fn(id)
			}
		}
		stabNode(n.right, p, fn)
	}
}

// overlap calls fn for every id whose interval intersects [qs, qe).
func (t *intervalTree) overlap(qs, qe float32, fn func(WidgetID)) {
	overlapNode(t.root, qs, qe, fn)
}

func overlapNode(n *intervalNode, qs, qe float32, fn func(WidgetID)) {
	if n == nil || qs >= n.maxEnd {
		return
	}
	overlapNode(n.left, qs, qe, fn)
	if n.start < qe {
		if qs < n.end {
			for _, id := range n.ids {
				fn(id)
			}
		}
		overlapNode(n.right, qs, qe, fn)
	}
}
