package camera

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestScene(t *testing.T) {
	c := Scene(2, 14)

	if c.Position.X != -2 || c.Position.Y != 6 || c.Position.Z != 28 {
		t.Errorf("Position = %v, want (-2, 6, 28)", c.Position)
	}
	if c.Near != 0.28 || c.Far != 2800 {
		t.Errorf("clip planes = (%f, %f), want (0.28, 2800)", c.Near, c.Far)
	}
	if want := math32.Pi / 4; math32.Abs(c.FovY-want) > 1e-6 {
		t.Errorf("FovY = %f, want %f", c.FovY, want)
	}
}

func TestMenu(t *testing.T) {
	c := Menu(2, 5)

	if c.Position.X != -0.5 || c.Position.Y != 0 || c.Position.Z != 10 {
		t.Errorf("Position = %v, want (-0.5, 0, 10)", c.Position)
	}
	if c.Far != 30 {
		t.Errorf("Far = %f, want 30", c.Far)
	}
	if want := math32.Pi / 3; math32.Abs(c.FovY-want) > 1e-6 {
		t.Errorf("FovY = %f, want %f", c.FovY, want)
	}
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	c := Menu(1, 5)
	p := c.ViewMatrix().TransformPoint([3]float32{})
	dist := c.Position.Length()

	if math32.Abs(p[0]) > 1e-4 || math32.Abs(p[1]) > 1e-4 || math32.Abs(p[2]+dist) > 1e-4 {
		t.Errorf("target in view space = %v, want (0, 0, %f)", p, -dist)
	}
}

func TestProjectionZeroHeight(t *testing.T) {
	c := Scene(1, 14)
	m := c.ProjectionMatrix(800, 0)
	if math32.IsInf(m[0], 0) || math32.IsNaN(m[0]) {
		t.Errorf("projection not finite: %v", m)
	}
}
