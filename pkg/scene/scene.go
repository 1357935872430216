package scene

import (
	"github.com/df07/go-nerf-dataset/pkg/core"
	"github.com/df07/go-nerf-dataset/pkg/geometry"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.PerspectiveCamera
	Shapes         []core.Shape    // Objects in the scene
	Background     core.Background // Radiance of escaped rays; also the only light source
	SamplingConfig core.SamplingConfig

	// Info describes how the scene was built; it is saved next to the dataset
	Info Description
}

// Description records the recipe and parameters a scene was built from
type Description struct {
	Name       string         `json:"name"`
	Seed       int64          `json:"seed"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() core.Camera {
	return s.Camera
}

// GetShapes returns the objects in the scene
func (s *Scene) GetShapes() []core.Shape {
	return s.Shapes
}

// GetBackground returns the environment seen by escaped rays
func (s *Scene) GetBackground() core.Background {
	return s.Background
}

// GetResolution returns the image size from the camera configuration
func (s *Scene) GetResolution() (int, int) {
	config := s.Camera.Config()
	return config.Width, config.Height
}

// GetSamplingConfig returns the per-pixel sampling configuration
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.SamplingConfig
}

// Bounds returns the bounding box of all shapes
func (s *Scene) Bounds() core.AABB {
	return core.SceneBounds(s.Shapes)
}
