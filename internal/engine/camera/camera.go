// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"

	gmath "github.com/triangulate/splatgo/pkg/math"
)

// OrbitCamera orbits around a center point. It is the sole camera model
// this viewer needs: splat scenes have no character to follow, only a
// point cloud to inspect from the outside (SPEC_FULL.md §D).
type OrbitCamera struct {
	// Center point to orbit around
	CenterX, CenterY, CenterZ float32

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Projection parameters
	FovY   float32
	Near   float32
	Far    float32
	Aspect float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        4.0,
		RotationX:       0.5,
		RotationY:       0.0,
		MinDistance:     0.1,
		MaxDistance:     1000.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FovY:            math32.Pi / 4,
		Near:            0.01,
		Far:             1000.0,
		Aspect:          16.0 / 9.0,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() gmath.Vec3 {
	x := c.Distance * math32.Cos(c.RotationX) * math32.Sin(c.RotationY)
	y := c.Distance * math32.Sin(c.RotationX)
	z := c.Distance * math32.Cos(c.RotationX) * math32.Cos(c.RotationY)

	return gmath.Vec3{
		X: c.CenterX + x,
		Y: c.CenterY + y,
		Z: c.CenterZ + z,
	}
}

// WorldPosition is an alias for Position matching the render driver's
// per-frame uniform naming (§4.D "Render inputs per frame": CameraPos).
func (c *OrbitCamera) WorldPosition() gmath.Vec3 {
	return c.Position()
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() gmath.Mat4 {
	pos := c.Position()
	center := gmath.Vec3{X: c.CenterX, Y: c.CenterY, Z: c.CenterZ}
	up := gmath.Vec3{X: 0, Y: 1, Z: 0}
	return gmath.LookAt(pos, center, up)
}

// Projection returns the perspective projection matrix for this camera.
func (c *OrbitCamera) Projection() gmath.Mat4 {
	return gmath.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// SetAspect updates the projection aspect ratio, typically on window resize.
func (c *OrbitCamera) SetAspect(width, height int) {
	if height == 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// HandleMovement pans the camera center point based on keyboard input.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	speed := c.Distance * 0.01

	dirX := math32.Sin(c.RotationY)
	dirZ := math32.Cos(c.RotationY)

	rightX := math32.Cos(c.RotationY)
	rightZ := -math32.Sin(c.RotationY)

	c.CenterX += (-dirX*forward + rightX*right) * speed
	c.CenterZ += (-dirZ*forward + rightZ*right) * speed
	c.CenterY += up * speed
}

// SetCenter sets the camera's center point.
func (c *OrbitCamera) SetCenter(x, y, z float32) {
	c.CenterX = x
	c.CenterY = y
	c.CenterZ = z
}

// FitToBounds adjusts camera to view the given bounding box, matching the
// reference demo's auto-framing on load (SPEC_FULL.md §C.4).
func (c *OrbitCamera) FitToBounds(minX, minY, minZ, maxX, maxY, maxZ float32) {
	c.CenterX = (minX + maxX) / 2
	c.CenterY = (minY + maxY) / 2
	c.CenterZ = (minZ + maxZ) / 2

	sizeX := maxX - minX
	sizeY := maxY - minY
	sizeZ := maxZ - minZ
	maxSize := sizeX
	if sizeY > maxSize {
		maxSize = sizeY
	}
	if sizeZ > maxSize {
		maxSize = sizeZ
	}

	c.Distance = maxSize * 1.5
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	c.Far = maxSize*4 + c.Near

	c.RotationX = 0.3
	c.RotationY = 0.0
}
