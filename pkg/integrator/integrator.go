package integrator

import (
	"github.com/df07/go-nerf-dataset/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance and coverage for a primary ray.
	// Alpha is 1 when the ray hits geometry and 0 when it escapes to the background.
	RayColor(ray core.Ray, scene core.Scene, sampler core.Sampler) (core.Vec3, float64)
}
