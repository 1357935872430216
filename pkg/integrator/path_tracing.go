package integrator

import (
	"math"

	"github.com/df07/go-nerf-dataset/pkg/core"
)

const (
	hitEpsilon = 0.001
	farPlane   = 1e6
)

// PathTracingIntegrator implements unidirectional path tracing lit by the scene background
type PathTracingIntegrator struct {
	config core.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config core.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor traces a primary ray and returns its radiance and alpha.
// An escaped primary ray still carries the background radiance, so dropping alpha
// composites the frame over the background.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene core.Scene, sampler core.Sampler) (core.Vec3, float64) {
	if pt.config.MaxDepth <= 0 {
		return core.Vec3{}, 0
	}

	hit, isHit := core.HitClosest(scene.GetShapes(), ray, hitEpsilon, farPlane)
	if !isHit {
		return pt.background(ray, scene), 0
	}

	return pt.shade(ray, hit, scene, sampler, pt.config.MaxDepth, core.NewVec3(1, 1, 1)), 1
}

// trace returns the radiance arriving along a secondary ray
func (pt *PathTracingIntegrator) trace(ray core.Ray, scene core.Scene, sampler core.Sampler, depth int, throughput core.Vec3) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	shouldTerminate, rrCompensation := pt.ApplyRussianRoulette(depth, throughput, sampler.Get1D())
	if shouldTerminate {
		return core.Vec3{}
	}

	hit, isHit := core.HitClosest(scene.GetShapes(), ray, hitEpsilon, farPlane)
	if !isHit {
		return pt.background(ray, scene).Multiply(rrCompensation)
	}

	return pt.shade(ray, hit, scene, sampler, depth, throughput).Multiply(rrCompensation)
}

// shade scatters at a hit point and gathers the light arriving along the scattered ray
func (pt *PathTracingIntegrator) shade(ray core.Ray, hit *core.HitRecord, scene core.Scene, sampler core.Sampler, depth int, throughput core.Vec3) core.Vec3 {
	if hit.Material == nil {
		return core.Vec3{}
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		// Material absorbed the ray
		return core.Vec3{}
	}

	if scatter.IsSpecular() {
		newThroughput := throughput.MultiplyVec(scatter.Attenuation)
		return scatter.Attenuation.MultiplyVec(
			pt.trace(scatter.Scattered, scene, sampler, depth-1, newThroughput))
	}

	scatterDirection := scatter.Scattered.Direction.Normalize()
	cosine := scatterDirection.Dot(hit.Normal)
	if cosine <= 0 {
		return core.Vec3{}
	}

	// Monte Carlo estimator: BRDF * cos / pdf
	weight := scatter.Attenuation.Multiply(cosine / scatter.PDF)
	newThroughput := throughput.MultiplyVec(weight)
	incomingLight := pt.trace(scatter.Scattered, scene, sampler, depth-1, newThroughput)
	return weight.MultiplyVec(incomingLight)
}

// ApplyRussianRoulette determines if a path should be terminated and returns the compensation factor.
// u is a uniform sample in [0, 1).
func (pt *PathTracingIntegrator) ApplyRussianRoulette(depth int, throughput core.Vec3, u float64) (bool, float64) {
	currentBounce := pt.config.MaxDepth - depth
	if currentBounce < pt.config.RussianRouletteMinBounces {
		return false, 1.0
	}

	// Survival probability follows throughput luminance, bounded to [0.5, 0.95]
	survivalProb := math.Min(0.95, math.Max(0.5, throughput.Luminance()))
	if u > survivalProb {
		return true, 0.0
	}
	return false, 1.0 / survivalProb
}

func (pt *PathTracingIntegrator) background(ray core.Ray, scene core.Scene) core.Vec3 {
	bg := scene.GetBackground()
	if bg == nil {
		return core.Vec3{}
	}
	return bg.Radiance(ray.Direction.Normalize())
}
