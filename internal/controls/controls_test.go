package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/cityblocks/internal/config"
	"github.com/Faultbox/cityblocks/internal/engine/input"
	"github.com/Faultbox/cityblocks/internal/scene"
)

func newPanel() *Panel {
	return New(config.Default().Controls)
}

func TestNew_Identity(t *testing.T) {
	p := newPanel()
	assert.Equal(t, scene.IdentityTransform(), p.Transform())
	assert.Equal(t, AxisX, p.Active())

	rot := p.Slider(AxisRotY)
	assert.Equal(t, float32(-1), rot.Min)
	assert.Equal(t, float32(1), rot.Max)
	scale := p.Slider(AxisScale)
	assert.Equal(t, float32(0.1), scale.Min)
	assert.Equal(t, float32(1), scale.Value)
}

func TestSet_Clamps(t *testing.T) {
	p := newPanel()

	assert.True(t, p.Set(AxisX, 250))
	assert.Equal(t, float32(100), p.Slider(AxisX).Value)
	assert.False(t, p.Set(AxisX, 300), "already at the bound")

	assert.True(t, p.Set(AxisScale, 0))
	assert.Equal(t, float32(0.1), p.Slider(AxisScale).Value)
}

func TestLoadAndReset(t *testing.T) {
	p := newPanel()
	tr := scene.Transform{
		Position: [3]float32{12, -3, 400},
		Rotation: [3]float32{0.25, -0.5, 1},
		Scale:    2,
	}
	p.Load(tr)

	got := p.Transform()
	assert.Equal(t, [3]float32{12, -3, 100}, got.Position, "z is clamped")
	assert.Equal(t, tr.Rotation, got.Rotation)
	assert.Equal(t, float32(2), got.Scale)

	p.Reset()
	assert.Equal(t, scene.IdentityTransform(), p.Transform())
}

func TestNudge(t *testing.T) {
	p := newPanel()

	p.Focus(AxisRotY)
	for i := 0; i < 3; i++ {
		assert.True(t, p.Nudge(1))
	}
	assert.InDelta(t, 0.15, p.Slider(AxisRotY).Value, 1e-6)

	assert.True(t, p.Nudge(-100))
	assert.Equal(t, float32(-1), p.Slider(AxisRotY).Value)
	assert.False(t, p.Nudge(-1))

	p.Focus(AxisScale)
	assert.True(t, p.Nudge(1))
	assert.InDelta(t, 1.1, p.Slider(AxisScale).Value, 1e-6)
	assert.True(t, p.ResetActive())
	assert.Equal(t, float32(1), p.Slider(AxisScale).Value)
}

func TestFocus(t *testing.T) {
	p := newPanel()
	p.FocusNext(-1)
	assert.Equal(t, AxisScale, p.Active())
	p.FocusNext(1)
	assert.Equal(t, AxisX, p.Active())

	p.Focus(NumAxes)
	assert.Equal(t, AxisX, p.Active(), "invalid axis ignored")
}

func TestHandleKey(t *testing.T) {
	tests := []struct {
		name   string
		key    sdl.Scancode
		mod    input.Modifier
		want   Command
		active Axis
	}{
		{"digit focuses", sdl.SCANCODE_5, 0, CmdFocusChanged, AxisRotY},
		{"seven is scale", sdl.SCANCODE_7, 0, CmdFocusChanged, AxisScale},
		{"down moves focus", sdl.SCANCODE_DOWN, 0, CmdFocusChanged, AxisY},
		{"right adjusts", sdl.SCANCODE_RIGHT, 0, CmdSliderChanged, AxisX},
		{"backspace at identity", sdl.SCANCODE_BACKSPACE, 0, CmdNone, AxisX},
		{"tab", sdl.SCANCODE_TAB, 0, CmdSelectNext, AxisX},
		{"shift tab", sdl.SCANCODE_TAB, input.ModShift, CmdSelectPrev, AxisX},
		{"visibility", sdl.SCANCODE_V, 0, CmdToggleVisible, AxisX},
		{"remove", sdl.SCANCODE_DELETE, 0, CmdRemove, AxisX},
		{"save", sdl.SCANCODE_S, input.ModCtrl, CmdSave, AxisX},
		{"plain s", sdl.SCANCODE_S, 0, CmdNone, AxisX},
		{"load", sdl.SCANCODE_O, input.ModCtrl | input.ModShift, CmdLoad, AxisX},
		{"quit", sdl.SCANCODE_ESCAPE, 0, CmdQuit, AxisX},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPanel()
			assert.Equal(t, tt.want, p.HandleKey(tt.key, tt.mod))
			assert.Equal(t, tt.active, p.Active())
		})
	}
}

func TestHandleKey_CoarseStep(t *testing.T) {
	p := newPanel()
	assert.Equal(t, CmdSliderChanged, p.HandleKey(sdl.SCANCODE_LEFT, input.ModShift))
	assert.Equal(t, float32(-10), p.Slider(AxisX).Value)
}

func TestString(t *testing.T) {
	p := newPanel()
	p.Focus(AxisScale)
	assert.Equal(t, "x=0 y=0 z=0 rotX=0 rotY=0 rotZ=0 [scale=1]", p.String())
	assert.Equal(t, "rotZ", AxisRotZ.String())
	assert.Equal(t, "Axis(9)", Axis(9).String())
}
