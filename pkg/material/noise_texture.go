package material

import (
	"math"

	"cogentcore.org/core/base/randx"
	perlin "github.com/aquilax/go-perlin"

	"github.com/df07/go-nerf-dataset/pkg/core"
)

// noiseSeed fixes the gradient lattice so every NoiseTexture shares the same field
const noiseSeed = 1337

// latticePeriod is the repeat distance of the Perlin lattice along each axis
const latticePeriod = 256

// noiseField is a single octave of Perlin noise; it is read-only after construction
var noiseField = perlin.NewPerlin(2, 2, 1, noiseSeed)

// NoiseTexture colors points by mapping a 3D gradient noise field through a color ramp.
// The sample point is rotated, then scaled, before the noise lookup.
type NoiseTexture struct {
	Scale    float64    // Noise frequency
	Rotation core.Vec3  // Euler rotation in radians, applied X then Y then Z
	Ramp     *ColorRamp // Maps the noise value in [0, 1] to a color
}

// NewNoiseTexture creates a noise texture with the given frequency, rotation and ramp
func NewNoiseTexture(scale float64, rotation core.Vec3, ramp *ColorRamp) *NoiseTexture {
	return &NoiseTexture{Scale: scale, Rotation: rotation, Ramp: ramp}
}

// NewRandomNoiseTexture draws a texture the way the textured-cube scene does:
// a log-uniform frequency in [10^minLog, 10^maxLog], a uniform rotation in [0, π) per axis,
// and a five-stop random-hue ramp.
func NewRandomNoiseTexture(minLog, maxLog float64, random randx.Rand) *NoiseTexture {
	scale := math.Pow(10, random.Float64()*(maxLog-minLog)+minLog)
	rotation := core.NewVec3(
		random.Float64()*math.Pi,
		random.Float64()*math.Pi,
		random.Float64()*math.Pi,
	)
	return NewNoiseTexture(scale, rotation, NewRandomHueRamp(5, random))
}

// Evaluate returns the ramp color for the noise value at point
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return n.Ramp.Evaluate(n.Value(point))
}

// Value returns the noise value at point, in [0, 1]
func (n *NoiseTexture) Value(point core.Vec3) float64 {
	p := point.Rotate(n.Rotation).Multiply(n.Scale)
	return max(0, min(1, 0.5+0.5*GradientNoise(p)))
}

// GradientNoise evaluates 3D gradient noise at p, returning a value in roughly [-1, 1].
// It is zero at every integer lattice point.
func GradientNoise(p core.Vec3) float64 {
	return noiseField.Noise3D(wrapLattice(p.X), wrapLattice(p.Y), wrapLattice(p.Z))
}

// wrapLattice maps x into [0, latticePeriod), which leaves the periodic field unchanged
// and keeps high-frequency lookups inside the generator's offset range
func wrapLattice(x float64) float64 {
	x = math.Mod(x, latticePeriod)
	if x < 0 {
		x += latticePeriod
	}
	return x
}
