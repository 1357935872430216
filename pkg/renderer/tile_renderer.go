package renderer

import (
	"context"
	"image"
	"math"

	"github.com/df07/go-nerf-dataset/pkg/core"
	"github.com/df07/go-nerf-dataset/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      core.Scene
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(scene core.Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		integrator: integratorInst,
	}
}

// RenderTileBounds renders pixels within the specified bounds into the shared pixel stats.
// The context is checked once per row.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, maxSamples int) (RenderStats, error) {
	camera := tr.scene.GetCamera()
	samplingConfig := tr.scene.GetSamplingConfig()

	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  maxSamples,
		MinSamples:  maxSamples, // Start with max, will be reduced
	}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[j][i]
			samplesUsed := tr.adaptiveSamplePixel(camera, i, j, ps, sampler, maxSamples, samplingConfig)

			stats.TotalSamples += samplesUsed
			stats.MinSamples = min(stats.MinSamples, samplesUsed)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samplesUsed)
			if ps.AlphaAccum > 0 {
				stats.CoveredPixels++
			}
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats, nil
}

// adaptiveSamplePixel samples a pixel until it converges or reaches maxSamples
func (tr *TileRenderer) adaptiveSamplePixel(camera core.Camera, i, j int, ps *PixelStats, sampler core.Sampler, maxSamples int, samplingConfig core.SamplingConfig) int {
	initialSampleCount := ps.SampleCount

	for ps.SampleCount < maxSamples && !shouldStopSampling(ps, maxSamples, samplingConfig) {
		ray := camera.GetRay(i, j, sampler)
		color, alpha := tr.integrator.RayColor(ray, tr.scene, sampler)
		ps.AddSample(color, alpha)
	}

	return ps.SampleCount - initialSampleCount
}

// shouldStopSampling determines if adaptive sampling should stop based on perceptual relative error
func shouldStopSampling(ps *PixelStats, maxSamples int, samplingConfig core.SamplingConfig) bool {
	// Minimum samples as a fraction of max samples, at least 1
	minSamples := max(1, int(float64(maxSamples)*samplingConfig.AdaptiveMinSamples))
	if ps.SampleCount < minSamples {
		return false
	}

	// A pixel straddling a silhouette has not converged until its coverage has
	alpha := ps.GetAlpha()
	if alpha > 0 && alpha < 1 && ps.SampleCount < maxSamples {
		return false
	}

	mean := ps.LuminanceAccum / float64(ps.SampleCount)
	meanSq := ps.LuminanceSqAccum / float64(ps.SampleCount)
	variance := math.Max(0, meanSq-mean*mean)

	// Avoid division by zero for black pixels
	if mean <= 1e-8 {
		return variance < 1e-6
	}

	// Coefficient of variation
	relativeError := math.Sqrt(variance) / mean
	return relativeError < samplingConfig.AdaptiveThreshold
}
