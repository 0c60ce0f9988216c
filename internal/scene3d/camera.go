// Package scene3d turns a list of shaded meshes into screen-space polygons
// ordered back to front. It has no drawing backend of its own.
package scene3d

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera. Fov is the vertical field of view in
// degrees.
type Camera struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3

	Fov  float64
	Near float64
	Far  float64

	width, height int
}

func NewCamera(eye, target mgl64.Vec3, fov, near, far float64) *Camera {
	return &Camera{
		Eye:    eye,
		Target: target,
		Up:     mgl64.Vec3{0, 1, 0},
		Fov:    fov,
		Near:   near,
		Far:    far,
		width:  1,
		height: 1,
	}
}

// Resize sets the output surface size in pixels. Non-positive sizes are
// ignored.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
}

func (c *Camera) Size() (int, int) {
	return c.width, c.height
}

func (c *Camera) Aspect() float64 {
	return float64(c.width) / float64(c.height)
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye, c.Target, c.Up)
}

func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.Fov), c.Aspect(), c.Near, c.Far)
}

// ToScreen maps a view-space point in front of the near plane to pixel
// coordinates, origin top-left.
func (c *Camera) ToScreen(proj mgl64.Mat4, p mgl64.Vec3) mgl64.Vec2 {
	clip := proj.Mul4x1(p.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())
	return mgl64.Vec2{
		(ndc.X() + 1) / 2 * float64(c.width),
		(1 - ndc.Y()) / 2 * float64(c.height),
	}
}
