package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Top-left: Red (1, 0, 0) -> Lum = 0.2126
	// Top-right: Green (0, 1, 0) -> Lum = 0.7152
	// Bottom-left: Blue (0, 0, 1) -> Lum = 0.0722
	// Bottom-right: Black (0, 0, 0) -> Lum = 0.0
	// Expected average: 1.0 / 4 = 0.25
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 1.0
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if ps.GetColor() != (core.Vec3{}) {
		t.Errorf("Expected black before any sample, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 1, 1))
	ps.AddSample(core.NewVec3(0, 0, 0))

	if got := ps.GetColor(); got != core.NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("Expected mean 0.5, got %v", got)
	}
	if math.Abs(ps.Variance()-0.25) > 1e-9 {
		t.Errorf("Expected variance 0.25, got %f", ps.Variance())
	}
}

func TestRenderStatsFinalize(t *testing.T) {
	var stats RenderStats
	stats.merge(TileStats{Pixels: 4, Samples: 16})
	stats.merge(TileStats{Pixels: 2, Samples: 2})
	stats.finalize()

	if stats.TilesRendered != 2 || stats.TotalPixels != 6 || stats.TotalSamples != 18 {
		t.Errorf("Unexpected totals %+v", stats)
	}
	if stats.AverageSamples != 3 {
		t.Errorf("Expected 3 average samples, got %f", stats.AverageSamples)
	}
}
