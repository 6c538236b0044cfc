package ripple

import "time"

// EventType identifies the kind of event.
type EventType uint8

const (
	// Pointer events
	EventPointerMove EventType = iota + 1
	EventPointerDown
	EventPointerUp
	EventPointerEnter
	EventPointerLeave
	EventClick
	EventWheel

	// Keyboard events
	EventKeyDown
	EventKeyUp
	EventKeyPress // Character input
)

var eventTypeNames = map[EventType]string{
	EventPointerMove:  "pointer_move",
	EventPointerDown:  "pointer_down",
	EventPointerUp:    "pointer_up",
	EventPointerEnter: "pointer_enter",
	EventPointerLeave: "pointer_leave",
	EventClick:        "click",
	EventWheel:        "wheel",
	EventKeyDown:      "key_down",
	EventKeyUp:        "key_up",
	EventKeyPress:     "key_press",
}

func (t EventType) String() string {
	if s, ok := eventTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Pointer reports whether events of this type resolve their target by
// hit testing screen coordinates.
func (t EventType) Pointer() bool {
	switch t {
	case EventPointerMove, EventPointerDown, EventPointerUp, EventClick, EventWheel:
		return true
	}
	return false
}

// Coalesces reports whether successive events of this type to the
// same target may collapse to the latest while queued. Only stateless
// kinds qualify: a pointer position or wheel delta is superseded by
// the next one, but a key press or button transition is a discrete
// occurrence and must never be merged away.
func (t EventType) Coalesces() bool {
	switch t {
	case EventPointerMove, EventWheel:
		return true
	}
	return false
}

// Keyboard reports whether events of this type resolve their target
// through the current focus reference.
func (t EventType) Keyboard() bool {
	switch t {
	case EventKeyDown, EventKeyUp, EventKeyPress:
		return true
	}
	return false
}

// MouseButton identifies which mouse button was pressed.
type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// Modifiers is a bitmask of modifier keys held during an event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper // Cmd on Mac, Win on Windows
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) Alt() bool   { return m&ModAlt != 0 }
func (m Modifiers) Super() bool { return m&ModSuper != 0 }

// Event is a single input occurrence. Events are plain values; the
// platform layer posts them to the EventManager, which fills in the
// target during dispatch.
type Event struct {
	Kind EventType

	// Time is the monotonic timestamp of the raw occurrence. The
	// EventManager stamps it at Post when the input source leaves it
	// zero. Coalescing correctness depends on timestamps never going
	// backwards within the queue.
	Time time.Time

	// Pointer data (screen coordinates).
	X, Y           float32
	DeltaX, DeltaY float32 // Wheel deltas
	Button         MouseButton

	// Keyboard data.
	KeyCode uint32
	Key     string
	Rune    rune

	Mods Modifiers

	// Target is the widget the event resolved to. Set by the
	// EventManager before the handler runs; zero in the queue.
	Target *Widget

	// coalesceTarget is the id the coalescing window keys on,
	// resolved at Post time.
	coalesceTarget WidgetID
}

// PointerMove builds a pointer motion event.
func PointerMove(x, y float32) Event {
	return Event{Kind: EventPointerMove, X: x, Y: y}
}

// PointerDown builds a button-press event.
func PointerDown(x, y float32, button MouseButton) Event {
	return Event{Kind: EventPointerDown, X: x, Y: y, Button: button}
}

// PointerUp builds a button-release event.
func PointerUp(x, y float32, button MouseButton) Event {
	return Event{Kind: EventPointerUp, X: x, Y: y, Button: button}
}

// Wheel builds a scroll event at the given pointer position.
func Wheel(x, y, deltaX, deltaY float32) Event {
	return Event{Kind: EventWheel, X: x, Y: y, DeltaX: deltaX, DeltaY: deltaY}
}

// KeyDown builds a key-press event for the focused widget.
func KeyDown(keyCode uint32, key string, mods Modifiers) Event {
	return Event{Kind: EventKeyDown, KeyCode: keyCode, Key: key, Mods: mods}
}

// KeyUp builds a key-release event for the focused widget.
func KeyUp(keyCode uint32, key string, mods Modifiers) Event {
	return Event{Kind: EventKeyUp, KeyCode: keyCode, Key: key, Mods: mods}
}

// KeyPress builds a character-input event for the focused widget.
func KeyPress(r rune, mods Modifiers) Event {
	return Event{Kind: EventKeyPress, Rune: r, Mods: mods}
}

// Handler processes an event delivered to a widget. Returning true
// consumes the event and stops it from bubbling to ancestors.
type Handler func(*Widget, Event) bool

// FocusHandler is notified when a widget gains or loses focus.
type FocusHandler func(*Widget)
