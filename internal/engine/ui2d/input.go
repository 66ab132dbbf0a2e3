package ui2d

import "github.com/Faultbox/cityblocks/internal/engine/input"

// InputState holds the mouse state the widgets react to. It is fed from
// application events and stepped once per frame.
type InputState struct {
	MouseX      float32
	MouseY      float32
	MouseDeltaX float32
	MouseDeltaY float32

	MouseLeftDown     bool
	MouseLeftPressed  bool // went down this frame
	MouseLeftReleased bool // went up this frame

	// Wheel steps since the last frame
	ScrollX float32
	ScrollY float32

	// Edges seen in events, kept so a press and release within one
	// frame still register as a click.
	pressEvent   bool
	releaseEvent bool

	prevMouseLeft bool
	prevMouseX    float32
	prevMouseY    float32
}

// Feed applies one application input event.
func (i *InputState) Feed(ev input.Event) {
	switch ev.Type {
	case input.EventMouseMove:
		i.MouseX, i.MouseY = float32(ev.MouseX), float32(ev.MouseY)
	case input.EventMouseDown, input.EventMouseUp:
		i.MouseX, i.MouseY = float32(ev.MouseX), float32(ev.MouseY)
		if ev.Button != input.ButtonLeft {
			return
		}
		down := ev.Type == input.EventMouseDown
		i.MouseLeftDown = down
		if down {
			i.pressEvent = true
		} else {
			i.releaseEvent = true
		}
	case input.EventMouseWheel:
		i.ScrollX += float32(ev.WheelX)
		i.ScrollY += float32(ev.WheelY)
	}
}

// Update prepares input state for a new frame.
// Call this at the start of each frame after feeding the frame's events.
func (i *InputState) Update() {
	// Calculate deltas
	i.MouseDeltaX = i.MouseX - i.prevMouseX
	i.MouseDeltaY = i.MouseY - i.prevMouseY

	// Detect press/release edges
	i.MouseLeftPressed = i.pressEvent || (i.MouseLeftDown && !i.prevMouseLeft)
	i.MouseLeftReleased = i.releaseEvent || (!i.MouseLeftDown && i.prevMouseLeft)
	i.pressEvent, i.releaseEvent = false, false

	// Store current state for next frame
	i.prevMouseLeft = i.MouseLeftDown
	i.prevMouseX = i.MouseX
	i.prevMouseY = i.MouseY
}

// EndFrame clears per-frame input state.
func (i *InputState) EndFrame() {
	i.ScrollX = 0
	i.ScrollY = 0
}
