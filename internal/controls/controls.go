// Package controls implements the seven transform sliders that edit the
// selected instance, and the keyboard bindings that drive them.
package controls

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/cityblocks/internal/config"
	"github.com/Faultbox/cityblocks/internal/scene"
)

// Axis identifies a slider.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisRotX
	AxisRotY
	AxisRotZ
	AxisScale

	NumAxes
)

var axisNames = [NumAxes]string{"x", "y", "z", "rotX", "rotY", "rotZ", "scale"}

func (a Axis) String() string {
	if a < 0 || a >= NumAxes {
		return "Axis(" + strconv.Itoa(int(a)) + ")"
	}
	return axisNames[a]
}

// Slider is one bounded value with a keyboard step.
type Slider struct {
	Value float32
	Min   float32
	Max   float32
	Step  float32
}

func (s *Slider) clamp(v float32) float32 {
	return math32.Max(s.Min, math32.Min(s.Max, v))
}

// Panel holds the sliders and which one the keyboard adjusts.
type Panel struct {
	sliders [NumAxes]Slider
	active  Axis
}

// New creates a panel with ranges from cfg and the identity transform.
func New(cfg config.ControlsConfig) *Panel {
	p := &Panel{}
	for a := AxisX; a < NumAxes; a++ {
		r := cfg.Position
		switch {
		case a >= AxisScale:
			r = cfg.Scale
		case a >= AxisRotX:
			r = cfg.Rotation
		}
		p.sliders[a] = Slider{Min: r.Min, Max: r.Max, Step: r.Step}
	}
	p.Reset()
	return p
}

// Slider returns a copy of one slider.
func (p *Panel) Slider(a Axis) Slider {
	return p.sliders[a]
}

// Active returns the slider the keyboard adjusts.
func (p *Panel) Active() Axis {
	return p.active
}

// Focus makes a the active slider. Out of range axes are ignored.
func (p *Panel) Focus(a Axis) {
	if a >= 0 && a < NumAxes {
		p.active = a
	}
}

// FocusNext moves the active slider by delta, wrapping around.
func (p *Panel) FocusNext(delta int) {
	n := int(NumAxes)
	p.active = Axis(((int(p.active)+delta)%n + n) % n)
}

// Set writes v, clamped to the slider range. It reports whether the value
// changed.
func (p *Panel) Set(a Axis, v float32) bool {
	s := &p.sliders[a]
	v = s.clamp(v)
	if v == s.Value {
		return false
	}
	s.Value = v
	return true
}

// Nudge moves the active slider by steps increments and snaps the result
// to the step grid. It reports whether the value changed.
func (p *Panel) Nudge(steps int) bool {
	s := &p.sliders[p.active]
	v := s.Value + float32(steps)*s.Step
	if s.Step > 0 {
		v = s.Min + math32.Round((v-s.Min)/s.Step)*s.Step
	}
	return p.Set(p.active, v)
}

// Load shows t on the sliders. Values outside a range are clamped.
func (p *Panel) Load(t scene.Transform) {
	for i := 0; i < 3; i++ {
		p.sliders[AxisX+Axis(i)].Value = p.sliders[AxisX+Axis(i)].clamp(t.Position[i])
		p.sliders[AxisRotX+Axis(i)].Value = p.sliders[AxisRotX+Axis(i)].clamp(t.Rotation[i])
	}
	p.sliders[AxisScale].Value = p.sliders[AxisScale].clamp(t.Scale)
}

// Reset returns every slider to the identity transform: zero position and
// rotation, scale 1.
func (p *Panel) Reset() {
	p.Load(scene.IdentityTransform())
}

// ResetActive returns the active slider to its identity value.
func (p *Panel) ResetActive() bool {
	id := scene.IdentityTransform()
	v := float32(0)
	if p.active == AxisScale {
		v = id.Scale
	}
	return p.Set(p.active, v)
}

// Transform returns the slider values as a transform.
func (p *Panel) Transform() scene.Transform {
	var t scene.Transform
	for i := 0; i < 3; i++ {
		t.Position[i] = p.sliders[AxisX+Axis(i)].Value
		t.Rotation[i] = p.sliders[AxisRotX+Axis(i)].Value
	}
	t.Scale = p.sliders[AxisScale].Value
	return t
}

// String renders the slider values with the active one bracketed.
func (p *Panel) String() string {
	parts := make([]string, NumAxes)
	for a := AxisX; a < NumAxes; a++ {
		s := fmt.Sprintf("%s=%s", a, strconv.FormatFloat(float64(p.sliders[a].Value), 'g', 4, 32))
		if a == p.active {
			s = "[" + s + "]"
		}
		parts[a] = s
	}
	return strings.Join(parts, " ")
}
