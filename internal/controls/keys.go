package controls

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/cityblocks/internal/engine/input"
)

// Command is what a key press asks the application to do.
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdSave
	CmdLoad
	CmdRemove
	CmdToggleVisible
	CmdSelectNext
	CmdSelectPrev
	CmdSliderChanged // the panel changed, write it to the selection
	CmdFocusChanged
)

// coarseSteps is how many steps one shifted arrow press moves.
const coarseSteps = 10

// HandleKey applies slider bindings to the panel and translates the rest
// into commands.
//
//	1-7         focus x, y, z, rotX, rotY, rotZ, scale
//	Up/Down     focus previous/next slider
//	Left/Right  adjust the focused slider, Shift for coarse steps
//	Backspace   reset the focused slider
//	Tab         select next instance, Shift+Tab previous
//	V           toggle visibility
//	Delete      remove the selected instance
//	Ctrl+S      save snapshot, Ctrl+O load snapshot
//	Escape      quit
func (p *Panel) HandleKey(key sdl.Scancode, mod input.Modifier) Command {
	switch {
	case key >= sdl.SCANCODE_1 && key <= sdl.SCANCODE_7:
		p.Focus(Axis(key - sdl.SCANCODE_1))
		return CmdFocusChanged
	case key == sdl.SCANCODE_S && mod.Has(input.ModCtrl):
		return CmdSave
	case key == sdl.SCANCODE_O && mod.Has(input.ModCtrl):
		return CmdLoad
	}

	switch key {
	case sdl.SCANCODE_UP:
		p.FocusNext(-1)
		return CmdFocusChanged
	case sdl.SCANCODE_DOWN:
		p.FocusNext(1)
		return CmdFocusChanged
	case sdl.SCANCODE_LEFT, sdl.SCANCODE_RIGHT:
		steps := 1
		if mod.Has(input.ModShift) {
			steps = coarseSteps
		}
		if key == sdl.SCANCODE_LEFT {
			steps = -steps
		}
		if p.Nudge(steps) {
			return CmdSliderChanged
		}
	case sdl.SCANCODE_BACKSPACE:
		if p.ResetActive() {
			return CmdSliderChanged
		}
	case sdl.SCANCODE_TAB:
		if mod.Has(input.ModShift) {
			return CmdSelectPrev
		}
		return CmdSelectNext
	case sdl.SCANCODE_V:
		return CmdToggleVisible
	case sdl.SCANCODE_DELETE:
		return CmdRemove
	case sdl.SCANCODE_ESCAPE:
		return CmdQuit
	}
	return CmdNone
}
