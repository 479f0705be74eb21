package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a fixed look-at camera. Movement and input are not handled here.
type Camera struct {
	Position    mgl32.Vec3
	Target      mgl32.Vec3
	Up          mgl32.Vec3
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32
}

func NewCamera(width, height int) *Camera {
	c := &Camera{
		Position:  mgl32.Vec3{24, 20, 24},
		Target:    mgl32.Vec3{8, 4, 8},
		Up:        mgl32.Vec3{0, 1, 0},
		FOV:       60.0,
		NearPlane: 0.1,
		FarPlane:  1000.0,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio. Zero-height viewports (minimized
// windows) keep the previous ratio.
func (c *Camera) SetViewport(width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Frame points the camera at the center of the box and backs off diagonally
// far enough for the whole box to fit in the vertical field of view.
func (c *Camera) Frame(min, max mgl32.Vec3) {
	center := min.Add(max).Mul(0.5)
	radius := max.Sub(min).Len() * 0.5
	if radius == 0 {
		radius = 1
	}
	half := float64(mgl32.DegToRad(c.FOV)) * 0.5
	dist := radius / float32(math.Sin(half))

	dir := mgl32.Vec3{1, 0.8, 1}.Normalize()
	c.Target = center
	c.Position = center.Add(dir.Mul(dist))
	if far := dist + 2*radius; far > c.FarPlane {
		c.FarPlane = far
	}
}
