package ripple

// Link is a reactive cell: an observable value with a set of dependent
// widgets that are marked dirty whenever the value is written.
//
// Dependent sets are per cell, so the cost of a write is bounded by
// the number of widgets that actually observe that cell, not the size
// of the tree. There is no global observer list.
//
// Dependents are held as ids and resolved through the tree's liveness
// registry on every write, so a dependent that was never removed on
// teardown is skipped rather than dereferenced. Leaving one behind is
// still a defect: call RemoveDependent when a widget is torn down.
type Link[T any] struct {
	tree     *Tree
	value    T
	deps     map[WidgetID]struct{}
	onChange func(T)
	depth    int
}

// NewLink creates a cell bound to a tree with an empty dependent set.
// The cell's lifetime belongs to whatever state container holds it,
// typically outliving the widgets that observe it.
func NewLink[T any](tree *Tree, initial T) *Link[T] {
	return &Link[T]{
		tree:  tree,
		value: initial,
		deps:  make(map[WidgetID]struct{}),
	}
}

// Get returns the current value. No side effects.
func (l *Link[T]) Get() T { return l.value }

// Set replaces the value, marks every live dependent dirty, then
// invokes the change callback if one is registered. Every write is
// treated as a change: there is no value-equality suppression, since
// T is not required to be comparable. Set cannot fail.
//
// Re-entrant Set calls from within the change callback are permitted
// up to the tree's configured guard depth; past it the callback is
// skipped and the cycle is logged as a recoverable fault.
func (l *Link[T]) Set(v T) {
	l.value = v
	for id := range l.deps {
		if w := l.tree.Lookup(id); w != nil {
			w.MarkDirty()
		}
	}
	if l.onChange == nil {
		return
	}
	if l.depth >= l.tree.maxSetDepth {
		l.tree.logger.Printf("ripple: link callback cycle cut off at depth %d", l.depth)
		return
	}
	l.depth++
	l.onChange(v)
	l.depth--
}

// AddDependent registers a widget to be marked dirty on every write.
// Idempotent; registering the same widget twice has no further effect.
func (l *Link[T]) AddDependent(w *Widget) {
	if w == nil {
		return
	}
	l.deps[w.id] = struct{}{}
}

// RemoveDependent unregisters a widget. Removing a non-member is a
// no-op. Must be called when a widget detaches from the tree.
func (l *Link[T]) RemoveDependent(w *Widget) {
	if w == nil {
		return
	}
	delete(l.deps, w.id)
}

// DependentCount returns the size of the dependent set.
func (l *Link[T]) DependentCount() int { return len(l.deps) }

// OnChange registers a callback invoked synchronously after dependents
// are marked, before Set returns. Pass nil to clear.
func (l *Link[T]) OnChange(fn func(T)) { l.onChange = fn }
