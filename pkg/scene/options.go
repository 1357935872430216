package scene

import (
	"fmt"

	"github.com/df07/go-nerf-dataset/pkg/core"
	"github.com/df07/go-nerf-dataset/pkg/geometry"
	"github.com/df07/go-nerf-dataset/pkg/loaders"
	"github.com/df07/go-nerf-dataset/pkg/material"
)

const (
	// DefaultAmbient is the uniform environment strength when no environment map is set
	DefaultAmbient = 1.0
	// DefaultEnvironmentAmbient is the ambient floor added on top of an environment map
	DefaultEnvironmentAmbient = 0.05
)

// Options configures scene construction
type Options struct {
	Camera   geometry.CameraConfig
	Sampling core.SamplingConfig
	Seed     int64 // Drives all scene randomness

	Ambient                *float64 // Uniform ambient strength; nil uses the default for the lighting mode
	EnvironmentMap         string   // Optional equirectangular PNG/JPEG lighting the scene
	EnvironmentStrength    *float64 // Multiplier for the environment map; nil uses 1
	EnvironmentMapMaxWidth int      // Downsample the environment map to this width (0 = full size)
}

// DefaultSamplingConfig returns the sampling used for dataset frames
func DefaultSamplingConfig() core.SamplingConfig {
	return core.SamplingConfig{
		SamplesPerPixel:           64,
		MaxDepth:                  8,
		RussianRouletteMinBounces: 3,
		AdaptiveMinSamples:        0.15,
		AdaptiveThreshold:         0.02,
	}
}

// DefaultOptions returns a 512x512 camera with a 50mm lens and default sampling
func DefaultOptions() Options {
	return Options{
		Camera:   geometry.DefaultCameraConfig(),
		Sampling: DefaultSamplingConfig(),
	}
}

// newBackground builds the scene lighting from the options
func newBackground(opts Options) (core.Background, error) {
	if opts.EnvironmentMap == "" {
		ambient := DefaultAmbient
		if opts.Ambient != nil {
			ambient = *opts.Ambient
		}
		return NewUniformBackground(core.NewVec3(ambient, ambient, ambient)), nil
	}

	data, err := loaders.LoadImage(opts.EnvironmentMap, loaders.LoadOptions{
		Gamma:    2.2,
		MaxWidth: opts.EnvironmentMapMaxWidth,
	})
	if err != nil {
		return nil, fmt.Errorf("environment map: %w", err)
	}

	ambient := DefaultEnvironmentAmbient
	if opts.Ambient != nil {
		ambient = *opts.Ambient
	}
	strength := 1.0
	if opts.EnvironmentStrength != nil {
		strength = *opts.EnvironmentStrength
	}

	texture := material.NewImageTexture(data.Width, data.Height, data.Pixels)
	return NewEnvironmentMap(texture, strength, core.NewVec3(ambient, ambient, ambient)), nil
}

// newScene assembles a scene around a fresh camera
func newScene(opts Options, shapes []core.Shape, info Description) (*Scene, error) {
	background, err := newBackground(opts)
	if err != nil {
		return nil, err
	}

	if info.Parameters == nil {
		info.Parameters = map[string]any{}
	}
	if opts.EnvironmentMap != "" {
		info.Parameters["environment_map"] = opts.EnvironmentMap
	}

	return &Scene{
		Camera:         geometry.NewPerspectiveCamera(opts.Camera),
		Shapes:         shapes,
		Background:     background,
		SamplingConfig: opts.Sampling,
		Info:           info,
	}, nil
}
