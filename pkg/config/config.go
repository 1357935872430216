// Package config loads nerfgen settings from TOML files, .env files and NERFGEN_* variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/df07/go-nerf-dataset/pkg/core"
	"github.com/df07/go-nerf-dataset/pkg/dataset"
	"github.com/df07/go-nerf-dataset/pkg/geometry"
	"github.com/df07/go-nerf-dataset/pkg/renderer"
	"github.com/df07/go-nerf-dataset/pkg/scene"
)

// DefaultSeed reproduces the reference textured-cube dataset
const DefaultSeed int64 = 2049334470

// maxSeed bounds randomly chosen seeds to the positive int32 range
const maxSeed = 2147483647

// Config is the complete configuration of a dataset run
type Config struct {
	Output OutputConfig  `toml:"output"`
	Camera CameraConfig  `toml:"camera"`
	Render RenderConfig  `toml:"render"`
	Scene  SceneConfig   `toml:"scene"`
	Splits []SplitConfig `toml:"splits" validate:"unique=Name,dive"`
	Notify NotifyConfig  `toml:"notify"`
	Log    LogConfig     `toml:"log"`
}

// OutputConfig controls the dataset layout on disk
type OutputConfig struct {
	Dir                string `toml:"dir" validate:"required"`
	ImageExt           string `toml:"image_ext" validate:"oneof=png"`
	KeepAlpha          bool   `toml:"keep_alpha"`
	ManifestEveryFrame bool   `toml:"manifest_every_frame"`
}

// CameraConfig holds the lens and the pose sampling policy
type CameraConfig struct {
	FocalLength float64    `toml:"focal_length" validate:"gt=0"`
	SensorWidth float64    `toml:"sensor_width" validate:"gt=0"`
	MinRadius   float64    `toml:"min_radius" validate:"gt=0"`
	MaxRadius   float64    `toml:"max_radius" validate:"gtefield=MinRadius"`
	Offset      float64    `toml:"offset" validate:"ltfield=MaxRadius"`
	Target      [3]float64 `toml:"target"`
}

// RenderConfig controls image size, sampling and parallelism
type RenderConfig struct {
	Width                     int     `toml:"width" validate:"min=1,max=8192"`
	Height                    int     `toml:"height" validate:"min=1,max=8192"`
	SamplesPerPixel           int     `toml:"samples_per_pixel" validate:"min=1"`
	MaxDepth                  int     `toml:"max_depth" validate:"min=1"`
	RussianRouletteMinBounces int     `toml:"russian_roulette_min_bounces" validate:"min=0"`
	AdaptiveMinSamples        float64 `toml:"adaptive_min_samples" validate:"gte=0,lte=1"`
	AdaptiveThreshold         float64 `toml:"adaptive_threshold" validate:"gte=0"`
	TileSize                  int     `toml:"tile_size" validate:"min=1"`
	Workers                   int     `toml:"workers" validate:"min=0"`
	Seed                      int64   `toml:"seed" validate:"min=0"` // 0 picks a random seed
}

// SceneConfig selects and parameterizes the scene builder
type SceneConfig struct {
	Name                   string   `toml:"name" validate:"required"`
	Seed                   int64    `toml:"seed" validate:"min=0"` // 0 uses the render seed
	Ambient                *float64 `toml:"ambient" validate:"omitempty,gte=0"`
	EnvironmentMap         string   `toml:"environment_map"`
	EnvironmentStrength    *float64 `toml:"environment_strength" validate:"omitempty,gte=0"`
	EnvironmentMapMaxWidth int      `toml:"environment_map_max_width" validate:"min=0"`
}

// SplitConfig names one dataset split
type SplitConfig struct {
	Name   string `toml:"name" validate:"required,excludesall=/\\,ne=.,ne=.."`
	Frames int    `toml:"frames" validate:"min=0"`
}

// NotifyConfig configures the dataset-ready message; an empty URL disables it
type NotifyConfig struct {
	AMQPURL string `toml:"amqp_url" validate:"omitempty,url"`
	Queue   string `toml:"queue" validate:"required_with=AMQPURL"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Development bool     `toml:"development"`
	Debug       bool     `toml:"debug"`
	OutputPaths []string `toml:"output_paths"`
}

// Default returns the configuration of the reference cube dataset
func Default() Config {
	sampling := scene.DefaultSamplingConfig()
	camera := geometry.DefaultCameraConfig()
	policy := dataset.DefaultPolicy()
	output := dataset.DefaultConfig()
	render := renderer.DefaultConfig()

	return Config{
		Output: OutputConfig{
			Dir:                output.OutputDir,
			ImageExt:           output.ImageExt,
			KeepAlpha:          output.KeepAlpha,
			ManifestEveryFrame: output.ManifestEveryFrame,
		},
		Camera: CameraConfig{
			FocalLength: camera.FocalLength,
			SensorWidth: camera.SensorWidth,
			MinRadius:   policy.MinRadius,
			MaxRadius:   policy.MaxRadius,
			Offset:      policy.Offset,
		},
		Render: RenderConfig{
			Width:                     camera.Width,
			Height:                    camera.Height,
			SamplesPerPixel:           sampling.SamplesPerPixel,
			MaxDepth:                  sampling.MaxDepth,
			RussianRouletteMinBounces: sampling.RussianRouletteMinBounces,
			AdaptiveMinSamples:        sampling.AdaptiveMinSamples,
			AdaptiveThreshold:         sampling.AdaptiveThreshold,
			TileSize:                  render.TileSize,
			Workers:                   render.NumWorkers,
			Seed:                      DefaultSeed,
		},
		Scene: SceneConfig{
			Name: "cube",
		},
		Splits: []SplitConfig{
			{Name: "train", Frames: 100},
			{Name: "val", Frames: 100},
			{Name: "test", Frames: 200},
		},
		Notify: NotifyConfig{
			Queue: "dataset-ready",
		},
		Log: LogConfig{
			Development: true,
		},
	}
}

// Load reads a TOML file over the defaults. Unknown keys are an error.
// Lists given in the file replace the default lists entirely.
func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	defaultSplits := cfg.Splits
	defaultOutputs := cfg.Log.OutputPaths
	cfg.Splits = nil
	cfg.Log.OutputPaths = nil

	decoder := toml.NewDecoder(r).DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Splits == nil {
		cfg.Splits = defaultSplits
	}
	if cfg.Log.OutputPaths == nil {
		cfg.Log.OutputPaths = defaultOutputs
	}
	return cfg, nil
}

// ResolveSeed replaces a zero render seed with a random one and returns the seed in use
func (c *Config) ResolveSeed() int64 {
	if c.Render.Seed == 0 {
		c.Render.Seed = rand.Int64N(maxSeed) + 1
	}
	return c.Render.Seed
}

// SceneSeed returns the seed of the scene builder
func (c *Config) SceneSeed() int64 {
	if c.Scene.Seed != 0 {
		return c.Scene.Seed
	}
	return c.Render.Seed
}

// Policy returns the camera sampling policy
func (c *Config) Policy() dataset.Policy {
	return dataset.Policy{
		MinRadius: c.Camera.MinRadius,
		MaxRadius: c.Camera.MaxRadius,
		Offset:    c.Camera.Offset,
		Target:    core.NewVec3(c.Camera.Target[0], c.Camera.Target[1], c.Camera.Target[2]),
	}
}

// DatasetConfig returns the driver configuration
func (c *Config) DatasetConfig() dataset.Config {
	return dataset.Config{
		OutputDir:          c.Output.Dir,
		ImageExt:           c.Output.ImageExt,
		KeepAlpha:          c.Output.KeepAlpha,
		ManifestEveryFrame: c.Output.ManifestEveryFrame,
		Policy:             c.Policy(),
		Seed:               c.Render.Seed,
	}
}

// DatasetSplits returns the splits in render order
func (c *Config) DatasetSplits() []dataset.Split {
	splits := make([]dataset.Split, len(c.Splits))
	for i, s := range c.Splits {
		splits[i] = dataset.Split{Name: s.Name, Frames: s.Frames}
	}
	return splits
}

// RendererConfig returns the tile renderer configuration
func (c *Config) RendererConfig() renderer.Config {
	config := renderer.DefaultConfig()
	config.TileSize = c.Render.TileSize
	config.NumWorkers = c.Render.Workers
	config.Seed = c.Render.Seed
	return config
}

// SceneOptions returns the options passed to the scene builder
func (c *Config) SceneOptions() scene.Options {
	return scene.Options{
		Camera: geometry.CameraConfig{
			Width:       c.Render.Width,
			Height:      c.Render.Height,
			FocalLength: c.Camera.FocalLength,
			SensorWidth: c.Camera.SensorWidth,
		},
		Sampling: core.SamplingConfig{
			SamplesPerPixel:           c.Render.SamplesPerPixel,
			MaxDepth:                  c.Render.MaxDepth,
			RussianRouletteMinBounces: c.Render.RussianRouletteMinBounces,
			AdaptiveMinSamples:        c.Render.AdaptiveMinSamples,
			AdaptiveThreshold:         c.Render.AdaptiveThreshold,
		},
		Seed:                   c.SceneSeed(),
		Ambient:                c.Scene.Ambient,
		EnvironmentMap:         c.Scene.EnvironmentMap,
		EnvironmentStrength:    c.Scene.EnvironmentStrength,
		EnvironmentMapMaxWidth: c.Scene.EnvironmentMapMaxWidth,
	}
}
