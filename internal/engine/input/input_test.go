package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   sdl.Event
		want Event
		ok   bool
	}{
		{"quit", &sdl.QuitEvent{Type: sdl.QUIT}, Event{Type: EventQuit}, true},
		{
			"resize",
			&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600},
			Event{Type: EventWindowResize, Width: 800, Height: 600},
			true,
		},
		{"window focus ignored", &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_GAINED}, Event{}, false},
		{
			"key down with shift",
			&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_A, Mod: sdl.KMOD_LSHIFT}},
			Event{Type: EventKeyDown, Key: sdl.SCANCODE_A, Mod: ModShift},
			true,
		},
		{
			"key up repeat",
			&sdl.KeyboardEvent{Type: sdl.KEYUP, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_TAB}},
			Event{Type: EventKeyUp, Key: sdl.SCANCODE_TAB, Repeat: true},
			true,
		},
		{
			"mouse down",
			&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 1100, Y: 270},
			Event{Type: EventMouseDown, Button: sdl.BUTTON_LEFT, MouseX: 1100, MouseY: 270},
			true,
		},
		{
			"mouse up",
			&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_RIGHT, X: 3, Y: 4},
			Event{Type: EventMouseUp, Button: sdl.BUTTON_RIGHT, MouseX: 3, MouseY: 4},
			true,
		},
		{"motion", &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 5, Y: 6}, Event{Type: EventMouseMove, MouseX: 5, MouseY: 6}, true},
		{"wheel", &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: -2}, Event{Type: EventMouseWheel, WheelY: -2}, true},
		{
			"wheel flipped",
			&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, X: 1, Y: 3, Direction: sdl.MOUSEWHEEL_FLIPPED},
			Event{Type: EventMouseWheel, WheelX: -1, WheelY: -3},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestModifiers(t *testing.T) {
	m := modifiers(sdl.KMOD_RCTRL | sdl.KMOD_LALT)
	if !m.Has(ModCtrl | ModAlt) {
		t.Errorf("modifiers = %b, want ctrl+alt", m)
	}
	if m.Has(ModShift) {
		t.Error("shift should not be set")
	}
}
