package renderer

import (
	"image"
	"time"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera samples taken
	SamplesPerPixel int           // Samples requested per pixel
	AverageSamples  float64       // Average samples per pixel actually taken
	Tiles           int           // Tiles in the grid
	TilesRendered   int           // Tiles rendered before completion or cancellation
	Workers         int           // Worker goroutines used
	Duration        time.Duration // Wall time of the frame
}

// merge folds the counters of a tile into the frame totals
func (s *RenderStats) merge(tile TileStats) {
	s.TotalPixels += tile.Pixels
	s.TotalSamples += tile.Samples
	s.TilesRendered++
}

// finalize calculates derived statistics once every tile is in
func (s *RenderStats) finalize() {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}

// TileStats is what a worker reports for one tile
type TileStats struct {
	Pixels  int
	Samples int
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	LuminanceAccum   float64   // Luminance accumulator
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
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

// Variance returns the luminance variance of the samples so far
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount == 0 {
		return 0
	}
	mean := ps.LuminanceAccum / float64(ps.SampleCount)
	meanSq := ps.LuminanceSqAccum / float64(ps.SampleCount)
	return max(0, meanSq-mean*mean)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image
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
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 65535.0
		}
	}
	return total / float64(pixels)
}
