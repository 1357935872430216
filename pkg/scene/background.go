package scene

import (
	"math"

	"github.com/df07/go-nerf-dataset/pkg/core"
	"github.com/df07/go-nerf-dataset/pkg/material"
)

// UniformBackground is a constant-radiance environment
type UniformBackground struct {
	Color core.Vec3
}

// NewUniformBackground creates an environment of constant radiance
func NewUniformBackground(color core.Vec3) *UniformBackground {
	return &UniformBackground{Color: color}
}

// Radiance returns the same color in every direction
func (u *UniformBackground) Radiance(direction core.Vec3) core.Vec3 {
	return u.Color
}

// EnvironmentMap is an equirectangular image wrapped around the scene, Z up.
// Ambient is added in every direction.
type EnvironmentMap struct {
	Texture  *material.ImageTexture
	Strength float64
	Ambient  core.Vec3
}

// NewEnvironmentMap creates an environment map with the given strength and ambient floor
func NewEnvironmentMap(texture *material.ImageTexture, strength float64, ambient core.Vec3) *EnvironmentMap {
	return &EnvironmentMap{Texture: texture, Strength: strength, Ambient: ambient}
}

// Radiance looks up the texel seen along a unit direction
func (e *EnvironmentMap) Radiance(direction core.Vec3) core.Vec3 {
	return e.Texture.Evaluate(EquirectangularUV(direction), direction).Multiply(e.Strength).Add(e.Ambient)
}

// EquirectangularUV maps a unit direction to equirectangular coordinates.
// +X is the image center, U increases clockwise seen from above, and V=1 is straight up (+Z).
func EquirectangularUV(direction core.Vec3) core.Vec2 {
	u := 0.5 - math.Atan2(direction.Y, direction.X)/(2*math.Pi)
	v := 0.5 + math.Atan2(direction.Z, math.Hypot(direction.X, direction.Y))/math.Pi
	return core.NewVec2(u, v)
}
