package scene

import (
	"cogentcore.org/core/base/randx"

	"github.com/df07/go-nerf-dataset/pkg/core"
	"github.com/df07/go-nerf-dataset/pkg/geometry"
	"github.com/df07/go-nerf-dataset/pkg/material"
)

const (
	cubeScale = 0.9

	// Noise frequency is drawn log-uniformly from [10^minLogFrequency, 10^maxLogFrequency]
	minLogFrequency = -1
	maxLogFrequency = 5
)

// cubeAlbedo is the base color of a fully rough, non-metallic surface
var cubeAlbedo = core.NewVec3(0.8, 0.8, 0.8)

// NewCubeScene creates a grey diffuse cube at the origin under white ambient light
func NewCubeScene(opts Options) (*Scene, error) {
	cube := geometry.NewCube(core.Vec3{}, cubeScale, material.NewLambertian(cubeAlbedo))

	return newScene(opts, []core.Shape{cube}, Description{
		Name: "cube",
		Seed: opts.Seed,
		Parameters: map[string]any{
			"scale":  cubeScale,
			"albedo": []float64{cubeAlbedo.X, cubeAlbedo.Y, cubeAlbedo.Z},
		},
	})
}

// NewTexturedCubeScene creates a cube covered in a random noise texture drawn from opts.Seed
func NewTexturedCubeScene(opts Options) (*Scene, error) {
	random := randx.NewSysRand(opts.Seed)
	texture := material.NewRandomNoiseTexture(minLogFrequency, maxLogFrequency, random)
	cube := geometry.NewCube(core.Vec3{}, cubeScale, material.NewTexturedLambertian(texture))

	stops := make([][]float64, len(texture.Ramp.Stops))
	for i, stop := range texture.Ramp.Stops {
		stops[i] = []float64{stop.Position, stop.Color.X, stop.Color.Y, stop.Color.Z}
	}

	return newScene(opts, []core.Shape{cube}, Description{
		Name: "textured-cube",
		Seed: opts.Seed,
		Parameters: map[string]any{
			"scale":           cubeScale,
			"noise_frequency": texture.Scale,
			"noise_rotation":  []float64{texture.Rotation.X, texture.Rotation.Y, texture.Rotation.Z},
			"ramp":            stops,
		},
	})
}
