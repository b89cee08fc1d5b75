package components

import (
	"github.com/spaghettifunk/affine/engine/math"
)

const (
	DEFAULT_CAMERA_FOV    float32 = 45.0
	DEFAULT_CAMERA_NEAR   float32 = 0.1
	DEFAULT_CAMERA_FAR    float32 = 10000.0
	DEFAULT_CAMERA_WIDTH  uint32  = 1280
	DEFAULT_CAMERA_HEIGHT uint32  = 720

	minFov float32 = 1.0
	maxFov float32 = 179.0
)

/**
 * @brief Represents a perspective camera looking from Eye at Target.
 * NOTE: Do not set the fields directly, use the setters so the cached
 * view and projection matrices are rebuilt when needed.
 */
type Camera struct {
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3
	/** @brief The vertical field of view, in degrees. */
	FovDegrees float32
	Width      uint32
	Height     uint32
	Near       float32
	Far        float32

	viewDirty       bool
	projectionDirty bool
	view            math.Mat4
	projection      math.Mat4
}

// NewCamera returns a camera at the origin looking down -Z with the
// default lens.
func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.Eye = math.NewVec3Zero()
	c.Target = math.NewVec3(0, 0, -1)
	c.Up = math.NewVec3YAxis()
	c.FovDegrees = DEFAULT_CAMERA_FOV
	c.Width = DEFAULT_CAMERA_WIDTH
	c.Height = DEFAULT_CAMERA_HEIGHT
	c.Near = DEFAULT_CAMERA_NEAR
	c.Far = DEFAULT_CAMERA_FAR
	c.viewDirty = true
	c.projectionDirty = true
}

// MoveTo places the camera at eye without changing what it looks at.
func (c *Camera) MoveTo(eye math.Vec3) {
	c.Eye = eye
	c.viewDirty = true
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target math.Vec3) {
	c.Target = target
	c.viewDirty = true
}

func (c *Camera) SetUp(up math.Vec3) {
	c.Up = up
	c.viewDirty = true
}

// Resize updates the viewport size used for the aspect ratio.
func (c *Camera) Resize(width, height uint32) {
	c.Width = width
	c.Height = height
	c.projectionDirty = true
}

// SetLens replaces the field of view and the clip planes.
func (c *Camera) SetLens(fovDegrees, near, far float32) {
	c.FovDegrees = fovDegrees
	c.Near = near
	c.Far = far
	c.projectionDirty = true
}

// Zoom narrows (negative delta) or widens the field of view. The result
// stays within [1, 179] degrees.
func (c *Camera) Zoom(deltaFov float32) {
	c.FovDegrees = math.Clamp(c.FovDegrees+deltaFov, minFov, maxFov)
	c.projectionDirty = true
}

// Orbit swings the eye around the target about the up axis.
func (c *Camera) Orbit(yawDegrees float32) {
	offset := c.Eye.Sub(c.Target)
	q := math.QuatAngleAxis(yawDegrees, c.Up.Normalized())
	c.Eye = c.Target.Add(q.RotateVec3(offset))
	c.viewDirty = true
}

// Distance returns how far the eye is from the target.
func (c *Camera) Distance() float32 {
	return c.Eye.Distance(c.Target)
}

func (c *Camera) View() math.Mat4 {
	if c.viewDirty {
		c.view = math.NewMat4LookAt(c.Eye, c.Target, c.Up)
		c.viewDirty = false
	}
	return c.view
}

func (c *Camera) Projection() math.Mat4 {
	if c.projectionDirty {
		c.projection = math.NewMat4Perspective(c.FovDegrees, float32(c.Width), float32(c.Height), c.Near, c.Far)
		c.projectionDirty = false
	}
	return c.projection
}

// ViewProjection returns Projection * View: points are taken to view
// space first, then projected.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.Projection().Multiply(c.View())
}
