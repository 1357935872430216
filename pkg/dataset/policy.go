package dataset

import (
	"fmt"
	"math"

	"github.com/df07/go-nerf-dataset/pkg/core"
)

// Policy describes where cameras may be placed
type Policy struct {
	MinRadius float64   // Closest allowed distance from the origin
	MaxRadius float64   // Farthest allowed distance from the origin
	Offset    float64   // Sampled positions satisfy z >= Offset; very negative gives a full shell
	Target    core.Vec3 // Point every camera looks at
}

// DefaultPolicy returns a full spherical shell between 3.8 and 5 around the origin
func DefaultPolicy() Policy {
	return Policy{
		MinRadius: 3.8,
		MaxRadius: 5.0,
		Offset:    -100,
	}
}

// Validate reports configurations for which no camera position exists
func (p Policy) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"min radius", p.MinRadius},
		{"max radius", p.MaxRadius},
		{"offset", p.Offset},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidPolicy, f.name, f.value)
		}
	}
	if !p.Target.IsFinite() {
		return fmt.Errorf("%w: target must be finite, got %v", ErrInvalidPolicy, p.Target)
	}
	if p.MinRadius <= 0 {
		return fmt.Errorf("%w: min radius must be positive, got %v", ErrInvalidPolicy, p.MinRadius)
	}
	if p.MinRadius > p.MaxRadius {
		return fmt.Errorf("%w: min radius %v exceeds max radius %v", ErrInvalidPolicy, p.MinRadius, p.MaxRadius)
	}
	if p.Offset >= p.MaxRadius {
		return fmt.Errorf("%w: offset %v leaves no room below max radius %v", ErrInvalidPolicy, p.Offset, p.MaxRadius)
	}
	return nil
}
