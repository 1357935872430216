package scene

import (
	"github.com/df07/go-nerf-dataset/pkg/core"
	"github.com/df07/go-nerf-dataset/pkg/geometry"
	"github.com/df07/go-nerf-dataset/pkg/material"
)

// NewSpheresScene creates three diffuse spheres resting on a ground quad, for quick previews
func NewSpheresScene(opts Options) (*Scene, error) {
	ground := geometry.NewGroundQuad(-0.5, 4, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	shapes := []core.Shape{
		ground,
		geometry.NewSphere(core.NewVec3(0, 0, 0), 0.5, material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))),
		geometry.NewSphere(core.NewVec3(1.1, 0.3, -0.2), 0.3, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(-0.9, -0.6, -0.25), 0.25, material.NewLambertian(core.NewVec3(0.48, 0.48, 0.0))),
	}

	return newScene(opts, shapes, Description{Name: "spheres", Seed: opts.Seed})
}
