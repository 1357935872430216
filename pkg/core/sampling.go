package core

import (
	"math"

	"cogentcore.org/core/base/randx"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a randx.Rand source
type RandomSampler struct {
	random randx.Rand
}

// NewRandomSampler creates a sampler from a random source
func NewRandomSampler(random randx.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic source
func NewSeededSampler(seed int64) *RandomSampler {
	return &RandomSampler{random: randx.NewSysRand(seed)}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// SampleCosineHemisphere generates a cosine-weighted random direction in hemisphere around normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	// Generate point in unit disk using uniform random sampling
	a := 2.0 * math.Pi * sample.X
	z := sample.Y
	r := math.Sqrt(z)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	zCoord := math.Sqrt(1.0 - z)

	// Find a vector perpendicular to normal
	var nt Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}

	// Create orthonormal basis
	tangent := nt.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)

	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(zCoord))
}

// SamplePointInHalfSphereShell uniformly samples a point p with inner <= |p| <= outer and p.Z >= offset.
// Callers must ensure 0 <= inner <= outer and offset < outer, otherwise no point exists.
//
// Points are drawn uniformly from the bounding box and rejected until they land in the shell.
// The box's lower z bound is clamped to -outer, which leaves the distribution unchanged.
func SamplePointInHalfSphereShell(inner, outer, offset float64, random randx.Rand) Vec3 {
	zMin := max(offset, -outer)
	for {
		p := NewVec3(
			-outer+2*outer*random.Float64(),
			-outer+2*outer*random.Float64(),
			zMin+(outer-zMin)*random.Float64(),
		)
		length := p.Length()
		if length >= inner && length <= outer {
			return p
		}
	}
}
