// Package camera provides the fixed cameras used to frame the city scene
// and the asset menu.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cityblocks/pkg/math"
)

// Camera is a perspective camera looking at a fixed target.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	FovY float32 // radians
	Near float32
	Far  float32
}

// sceneFovY is 60 degrees converted with a 240 divisor, which gives the
// scene its slightly narrower framing.
const sceneFovY = 60 * math32.Pi / 240

// menuFovY is a true 60 degrees.
const menuFovY = 60 * math32.Pi / 180

// Scene returns the camera framing the composed scene. extent is the
// largest asset extent and factor scales it into the orbit radius.
func Scene(extent, factor float32) Camera {
	radius := factor * extent
	return Camera{
		Position: math.Vec3{X: -2, Y: 6, Z: radius},
		Up:       math.Vec3{Y: 1},
		FovY:     sceneFovY,
		Near:     radius / 100,
		Far:      radius * 100,
	}
}

// Menu returns the camera framing the menu thumbnails.
func Menu(extent, factor float32) Camera {
	radius := factor * extent
	return Camera{
		Position: math.Vec3{X: -0.5, Z: radius},
		Up:       math.Vec3{Y: 1},
		FovY:     menuFovY,
		Near:     radius / 100,
		Far:      radius * 3,
	}
}

// ViewMatrix returns the world to view transform.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection for the given
// drawable size. A zero height is treated as 1.
func (c *Camera) ProjectionMatrix(width, height int) math.Mat4 {
	if height <= 0 {
		height = 1
	}
	return math.Perspective(c.FovY, float32(width)/float32(height), c.Near, c.Far)
}
