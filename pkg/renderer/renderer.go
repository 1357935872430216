package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/df07/go-nerf-dataset/pkg/core"
	"github.com/df07/go-nerf-dataset/pkg/integrator"
	"github.com/df07/go-nerf-dataset/pkg/log"
)

// Config contains configuration for still rendering
type Config struct {
	TileSize   int     // Size of each tile (64x64 recommended)
	NumWorkers int     // Number of parallel workers (0 = use CPU count)
	Seed       int64   // Base seed for per-tile samplers
	Gamma      float64 // Display gamma applied when encoding to 8 bits
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       0,
		Gamma:      2.2,
	}
}

// Frame is a completed still
type Frame struct {
	Image    *image.NRGBA // Gamma-encoded color with straight coverage alpha
	Stats    RenderStats
	Number   int // Zero-based count of stills rendered before this one
	Duration time.Duration
}

// Renderer renders complete stills of a scene whose camera may move between calls
type Renderer struct {
	scene       core.Scene
	config      Config
	integrator  integrator.Integrator
	logger      *log.Logger
	frameNumber int
}

// NewRenderer creates a renderer with a path tracing integrator
func NewRenderer(scene core.Scene, config Config, logger *log.Logger) *Renderer {
	return NewRendererWithIntegrator(scene, config, integrator.NewPathTracingIntegrator(scene.GetSamplingConfig()), logger)
}

// NewRendererWithIntegrator creates a renderer with a caller-supplied integrator
func NewRendererWithIntegrator(scene core.Scene, config Config, integratorInst integrator.Integrator, logger *log.Logger) *Renderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if config.Gamma <= 0 {
		config.Gamma = DefaultConfig().Gamma
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Renderer{
		scene:      scene,
		config:     config,
		integrator: integratorInst,
		logger:     logger,
	}
}

// RenderStill renders the scene from the camera's current pose and blocks until the frame is complete.
// It must not be called concurrently.
func (r *Renderer) RenderStill(ctx context.Context) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	width, height := r.scene.GetResolution()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid resolution %dx%d", width, height)
	}
	samples := r.scene.GetSamplingConfig().SamplesPerPixel
	if samples <= 0 {
		return nil, fmt.Errorf("invalid samples per pixel %d", samples)
	}

	frameNumber := r.frameNumber
	r.frameNumber++
	startTime := time.Now()

	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	tiles := NewTileGrid(width, height, r.config.TileSize, r.config.Seed, frameNumber)

	// Cancelled on the first failed tile so the remaining tiles drain quickly
	renderCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	workerPool := NewWorkerPool(NewTileRenderer(r.scene, r.integrator), len(tiles), r.config.NumWorkers)
	workerPool.Start(renderCtx)
	for taskID, tile := range tiles {
		workerPool.SubmitTask(TileTask{
			Tile:          tile,
			TargetSamples: samples,
			TaskID:        taskID,
			PixelStats:    pixelStats,
		})
	}

	var stats RenderStats
	var firstErr error
	for range tiles {
		result, ok := workerPool.GetResult()
		if !ok {
			firstErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
				cancel()
			}
			continue
		}
		stats.Merge(result.Stats)
	}
	workerPool.Stop()

	if firstErr != nil {
		return nil, fmt.Errorf("render frame %d: %w", frameNumber, firstErr)
	}

	img := r.assembleImage(pixelStats)
	frame := &Frame{
		Image:    img,
		Stats:    stats,
		Number:   frameNumber,
		Duration: time.Since(startTime),
	}

	r.logger.Debugw("frame rendered",
		"frame", frameNumber,
		"workers", workerPool.GetNumWorkers(),
		"tiles", len(tiles),
		"avg_samples", stats.AverageSamples,
		"min_samples", stats.MinSamples,
		"max_samples_used", stats.MaxSamplesUsed,
		"coverage", float64(stats.CoveredPixels)/float64(stats.TotalPixels),
		"avg_luminance", CalculateAverageLuminance(img),
		"duration", frame.Duration,
	)

	return frame, nil
}

// assembleImage converts the accumulated pixel statistics into an 8-bit image
func (r *Renderer) assembleImage(pixelStats [][]PixelStats) *image.NRGBA {
	height := len(pixelStats)
	width := 0
	if height > 0 {
		width = len(pixelStats[0])
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ps := &pixelStats[y][x]
			img.SetNRGBA(x, y, r.toNRGBA(ps.GetColor(), ps.GetAlpha()))
		}
	}
	return img
}

// toNRGBA gamma-encodes a linear color and quantizes it with its alpha
func (r *Renderer) toNRGBA(linear core.Vec3, alpha float64) color.NRGBA {
	c := linear.GammaCorrect(r.config.Gamma).Clamp(0, 1)
	return color.NRGBA{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
		A: quantize(alpha),
	}
}

func quantize(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(max(0, min(1, v)) * 255))
}
