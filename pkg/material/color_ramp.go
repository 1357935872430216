package material

import (
	"math"
	"sort"

	"cogentcore.org/core/base/randx"

	"github.com/df07/go-nerf-dataset/pkg/core"
)

// RampStop is a color at a position in [0, 1]
type RampStop struct {
	Position float64
	Color    core.Vec3
}

// ColorRamp maps a scalar in [0, 1] to a color by linear interpolation between stops
type ColorRamp struct {
	Stops []RampStop // sorted by position
}

// NewColorRamp creates a ramp from the given stops, sorting them by position
func NewColorRamp(stops ...RampStop) *ColorRamp {
	sorted := append([]RampStop(nil), stops...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return &ColorRamp{Stops: sorted}
}

// NewRandomHueRamp creates a ramp with n evenly spaced stops, each a random fully saturated hue
func NewRandomHueRamp(n int, random randx.Rand) *ColorRamp {
	stops := make([]RampStop, n)
	for i := range stops {
		position := 0.0
		if n > 1 {
			position = float64(i) / float64(n-1)
		}
		stops[i] = RampStop{Position: position, Color: RandomHueColor(random)}
	}
	return NewColorRamp(stops...)
}

// Evaluate returns the interpolated color at t; values outside the stops clamp to the end colors
func (r *ColorRamp) Evaluate(t float64) core.Vec3 {
	if len(r.Stops) == 0 {
		return core.Vec3{}
	}
	if t <= r.Stops[0].Position {
		return r.Stops[0].Color
	}
	last := r.Stops[len(r.Stops)-1]
	if t >= last.Position {
		return last.Color
	}

	// First stop strictly past t
	i := sort.Search(len(r.Stops), func(i int) bool {
		return r.Stops[i].Position > t
	})
	lo, hi := r.Stops[i-1], r.Stops[i]
	span := hi.Position - lo.Position
	if span <= 0 {
		return hi.Color
	}
	return lo.Color.Lerp(hi.Color, (t-lo.Position)/span)
}

// RandomHueColor returns a color with a uniformly random hue at full saturation and value
func RandomHueColor(random randx.Rand) core.Vec3 {
	return HSVToRGB(random.Float64(), 1, 1)
}

// HSVToRGB converts hue, saturation and value in [0, 1] to an RGB color
func HSVToRGB(h, s, v float64) core.Vec3 {
	if s <= 0 {
		return core.NewVec3(v, v, v)
	}

	h = math.Mod(h, 1) * 6
	if h < 0 {
		h += 6
	}
	sector := math.Floor(h)
	f := h - sector
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch int(sector) % 6 {
	case 0:
		return core.NewVec3(v, t, p)
	case 1:
		return core.NewVec3(q, v, p)
	case 2:
		return core.NewVec3(p, v, t)
	case 3:
		return core.NewVec3(p, q, v)
	case 4:
		return core.NewVec3(t, p, v)
	default:
		return core.NewVec3(v, p, q)
	}
}
