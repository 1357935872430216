package geometry

import (
	"math"

	"github.com/df07/go-nerf-dataset/pkg/core"
)

// WorldUp is the world-space up axis used when orienting cameras
var WorldUp = core.NewVec3(0, 0, 1)

// CameraConfig contains the lens and film parameters of a perspective camera
type CameraConfig struct {
	Width       int     // Image width in pixels
	Height      int     // Image height in pixels
	FocalLength float64 // Lens focal length in mm
	SensorWidth float64 // Horizontal sensor size in mm
}

// DefaultCameraConfig returns a 50mm lens on a 36mm sensor at 512x512
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:       512,
		Height:      512,
		FocalLength: 50,
		SensorWidth: 36,
	}
}

// PerspectiveCamera is a pinhole camera with a mutable pose.
// It looks down its local -Z axis with local +Y as screen-up.
type PerspectiveCamera struct {
	config      CameraConfig
	matrixWorld core.Mat4

	// Half extents of the image plane at unit distance
	halfWidth  float64
	halfHeight float64
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z
func NewPerspectiveCamera(config CameraConfig) *PerspectiveCamera {
	halfWidth := config.SensorWidth / (2 * config.FocalLength)
	halfHeight := halfWidth
	if config.Width > 0 {
		halfHeight = halfWidth * float64(config.Height) / float64(config.Width)
	}

	return &PerspectiveCamera{
		config:      config,
		matrixWorld: core.Identity4(),
		halfWidth:   halfWidth,
		halfHeight:  halfHeight,
	}
}

// Config returns the camera's lens and film configuration
func (c *PerspectiveCamera) Config() CameraConfig {
	return c.config
}

// FieldOfView returns the horizontal field of view in radians
func (c *PerspectiveCamera) FieldOfView() float64 {
	return 2 * math.Atan(c.config.SensorWidth/(2*c.config.FocalLength))
}

// Position returns the camera position in world space
func (c *PerspectiveCamera) Position() core.Vec3 {
	return c.matrixWorld.Translation()
}

// SetPosition moves the camera without changing its orientation
func (c *PerspectiveCamera) SetPosition(position core.Vec3) {
	c.matrixWorld[0][3] = position.X
	c.matrixWorld[1][3] = position.Y
	c.matrixWorld[2][3] = position.Z
}

// LookAt rotates the camera so its forward axis points at target
func (c *PerspectiveCamera) LookAt(target core.Vec3) {
	c.matrixWorld = core.LookAtMatrix(c.Position(), target, WorldUp)
}

// MatrixWorld returns the camera-to-world transform
func (c *PerspectiveCamera) MatrixWorld() core.Mat4 {
	return c.matrixWorld
}

// Forward returns the unit view direction in world space
func (c *PerspectiveCamera) Forward() core.Vec3 {
	return c.matrixWorld.MulDirection(core.NewVec3(0, 0, -1)).Normalize()
}

// GetRay generates a jittered primary ray through pixel (i, j), with j=0 the top row
func (c *PerspectiveCamera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()
	s := (float64(i) + jitter.X) / float64(c.config.Width)
	t := (float64(j) + jitter.Y) / float64(c.config.Height)

	// Map to the image plane at z = -1 in camera space
	direction := core.NewVec3(
		(2*s-1)*c.halfWidth,
		(1-2*t)*c.halfHeight,
		-1,
	)

	return core.NewRay(c.Position(), c.matrixWorld.MulDirection(direction).Normalize())
}
