// Package ripple is the incremental-update core for a retained-mode
// widget tree: it decides, on every state change and every input event,
// the minimal set of widgets that must re-layout, re-render, or receive
// the event.
//
// The package has four cooperating pieces:
//   - Link: a reactive cell that marks dependent widgets dirty in O(1)
//     when its value is written.
//   - SpatialIndex: a dual interval tree over widget bounds answering
//     point and region queries in O(log n) as the tree mutates.
//   - Scheduler: the ordered dirty set, cleared on consume so a widget
//     dirtied twice before a render still renders exactly once.
//   - EventManager: coalesces redundant input, resolves targets through
//     the spatial index (pointer) or the focus reference (keyboard),
//     and dispatches within a per-frame time budget.
//
// Engine ties the pieces together and is the usual entry point. The
// layout solver, renderer, and widget catalog are external consumers:
// layout writes bounds back through Widget.SetBounds, the renderer
// reads the dirty set from the Scheduler, and widget implementations
// attach handlers with Widget.OnEvent.
//
// The whole core is single-threaded by contract. All mutation of the
// tree, the cells, and the index must happen on the frame-loop thread;
// nothing here locks.
package ripple
