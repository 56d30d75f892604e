package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a fixed perspective eye looking at the board.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	Aspect float32
	Fovy   float32 // degrees
	ZNear  float32
	ZFar   float32
}

// Uniform is the fixed-layout view-projection record uploaded once per frame.
type Uniform struct {
	ViewProj [16]float32
}

// New returns a camera on the z axis at distance eyeZ, looking at the origin
// with +y up.
func New(eyeZ float32, width, height int) *Camera {
	c := &Camera{
		Eye:    mgl32.Vec3{0, 0, eyeZ},
		Target: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		Fovy:   45,
		ZNear:  0.1,
		ZFar:   100,
	}
	c.SetAspect(width, height)
	return c
}

// SetAspect updates the aspect ratio after a resize. Degenerate sizes keep
// the previous value.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		if c.Aspect == 0 {
			c.Aspect = 1
		}
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// View returns the world-to-eye matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

// Projection returns the perspective matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fovy), c.Aspect, c.ZNear, c.ZFar)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Uniform packs the view-projection matrix for upload.
func (c *Camera) Uniform() Uniform {
	return Uniform{ViewProj: c.ViewProjection()}
}

// Project maps a world point to pixel coordinates with y growing downwards.
// ok is false for points behind the eye.
func (c *Camera) Project(p mgl32.Vec3, width, height int) (x, y float32, ok bool) {
	return ProjectWith(c.ViewProjection(), p, width, height)
}

// ProjectWith is Project with a precomputed view-projection matrix.
func ProjectWith(viewProj mgl32.Mat4, p mgl32.Vec3, width, height int) (x, y float32, ok bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	x = (ndcX + 1) / 2 * float32(width)
	y = (1 - ndcY) / 2 * float32(height)
	return x, y, true
}

// PixelsPerUnit is the on-screen size of one world unit at the target plane.
func (c *Camera) PixelsPerUnit(width, height int) float32 {
	x0, _, ok0 := c.Project(c.Target, width, height)
	x1, _, ok1 := c.Project(c.Target.Add(mgl32.Vec3{1, 0, 0}), width, height)
	if !ok0 || !ok1 {
		return 0
	}
	return x1 - x0
}
