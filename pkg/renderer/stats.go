package renderer

import (
	"image"

	"github.com/df07/go-nerf-dataset/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of samples taken
	AverageSamples float64 // Average samples per pixel
	MaxSamples     int     // Maximum samples allowed per pixel
	MinSamples     int     // Minimum samples taken per pixel
	MaxSamplesUsed int     // Maximum samples actually used by any pixel
	CoveredPixels  int     // Pixels where at least one sample hit geometry
}

// Merge folds the statistics of another region into s
func (s *RenderStats) Merge(other RenderStats) {
	if s.TotalPixels == 0 {
		*s = other
		return
	}
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.MaxSamples = max(s.MaxSamples, other.MaxSamples)
	s.MinSamples = min(s.MinSamples, other.MinSamples)
	s.MaxSamplesUsed = max(s.MaxSamplesUsed, other.MaxSamplesUsed)
	s.CoveredPixels += other.CoveredPixels
	s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	AlphaAccum       float64   // Coverage accumulator
	LuminanceAccum   float64   // Luminance accumulator for convergence
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
}

// AddSample adds a new color and coverage sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3, alpha float64) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.AlphaAccum += alpha
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// GetAlpha returns the fraction of samples that hit geometry
func (ps *PixelStats) GetAlpha() float64 {
	if ps.SampleCount == 0 {
		return 0
	}
	return ps.AlphaAccum / float64(ps.SampleCount)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xffff
		}
	}
	return total / float64(pixels)
}
