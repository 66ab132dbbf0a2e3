// Package input translates SDL2 events into application events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// ButtonLeft is the primary mouse button.
const ButtonLeft uint8 = sdl.BUTTON_LEFT

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Mod    Modifier
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	WheelX int // wheel steps, positive is right
	WheelY int // wheel steps, positive is away from the user
}

// Input collects the events of one frame.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them. It returns true when the
// user asked to quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		e, ok := translate(event)
		if !ok {
			continue
		}
		i.events = append(i.events, e)
		if e.Type == EventQuit {
			quit = true
		}
	}
	return quit
}

func translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		ev := Event{
			Type:   EventKeyDown,
			Key:    e.Keysym.Scancode,
			Mod:    modifiers(sdl.Keymod(e.Keysym.Mod)),
			Repeat: e.Repeat != 0,
		}
		if e.Type == sdl.KEYUP {
			ev.Type = EventKeyUp
		}
		return ev, true

	case *sdl.MouseMotionEvent:
		return Event{Type: EventMouseMove, MouseX: int(e.X), MouseY: int(e.Y)}, true

	case *sdl.MouseButtonEvent:
		ev := Event{Type: EventMouseDown, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}
		if e.Type == sdl.MOUSEBUTTONUP {
			ev.Type = EventMouseUp
		}
		return ev, true

	case *sdl.MouseWheelEvent:
		ev := Event{Type: EventMouseWheel, WheelX: int(e.X), WheelY: int(e.Y)}
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			ev.WheelX, ev.WheelY = -ev.WheelX, -ev.WheelY
		}
		return ev, true
	}
	return Event{}, false
}

func modifiers(m sdl.Keymod) Modifier {
	var mod Modifier
	if m&sdl.KMOD_SHIFT != 0 {
		mod |= ModShift
	}
	if m&sdl.KMOD_CTRL != 0 {
		mod |= ModCtrl
	}
	if m&sdl.KMOD_ALT != 0 {
		mod |= ModAlt
	}
	return mod
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Has reports whether m includes every modifier in want.
func (m Modifier) Has(want Modifier) bool {
	return m&want == want
}
