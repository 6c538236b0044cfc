package ripple

import (
	"log"
	"time"
)

// Engine wires the four core pieces together for a frame driver:
//
//	for each frame {
//		processed, dirty := engine.Step(0)  // drain input, read dirty set
//		relayout(dirty)                     // external; writes SetBounds
//		repaint(dirty)                      // external
//		for _, w := range dirty { engine.Scheduler().Consume(w) }
//	}
//
// Everything on the Engine must run on the frame-loop thread; see the
// package documentation for the single-thread contract.
type Engine struct {
	cfg    Config
	logger *log.Logger

	tree   *Tree
	index  *SpatialIndex
	sched  *Scheduler
	events *EventManager
}

// Option adjusts engine construction.
type Option func(*Engine)

// WithLogger routes recoverable-fault diagnostics to the given logger
// instead of log.Default().
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New builds an engine. Zero fields in cfg take their defaults.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg.withDefaults()}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	e.sched = NewScheduler()
	e.index = NewSpatialIndex()
	e.tree = newTree(e.sched, e.index, e.logger, e.cfg.Cells.MaxSetDepth)
	e.events = NewEventManager(e.tree, e.index, e.cfg.Events, e.logger)
	e.tree.events = e.events
	return e
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Tree returns the widget tree.
func (e *Engine) Tree() *Tree { return e.tree }

// Index returns the spatial index.
func (e *Engine) Index() *SpatialIndex { return e.index }

// Scheduler returns the dirty/render scheduler.
func (e *Engine) Scheduler() *Scheduler { return e.sched }

// Events returns the event manager.
func (e *Engine) Events() *EventManager { return e.events }

// Post queues a raw input event.
func (e *Engine) Post(ev Event) { e.events.Post(ev) }

// Step runs one frame's input phase: drain within the budget, then
// snapshot the dirty set for the layout and render passes. A zero or
// negative budget uses the configured frame budget. Dirty flags stay
// set until the caller consumes them.
func (e *Engine) Step(budget time.Duration) (processed int, dirty []*Widget) {
	if budget <= 0 {
		budget = e.cfg.Events.FrameBudget()
	}
	processed = e.events.Drain(budget)
	return processed, e.sched.Snapshot()
}
