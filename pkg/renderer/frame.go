package renderer

import (
	"context"
	"image"
	"image/color"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// DefaultGamma is the display gamma applied by Frame.Image
const DefaultGamma = 2.0

// Frame is a rendered image in linear colour, with the statistics and
// diagnostics gathered while producing it
type Frame struct {
	Width       int
	Height      int
	Pixels      []core.Vec3 // Row-major, row 0 at the top
	Stats       RenderStats
	Diagnostics *core.Diagnostics
}

func newFrame(width, height int) *Frame {
	return &Frame{
		Width:       width,
		Height:      height,
		Pixels:      make([]core.Vec3, width*height),
		Diagnostics: core.NewDiagnostics(),
	}
}

// At returns the linear colour of pixel (x, y)
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// Image converts the frame to 8-bit RGBA with gamma correction
func (f *Frame) Image(gamma float64) *image.RGBA {
	return f.SubImage(image.Rect(0, 0, f.Width, f.Height), gamma)
}

// SubImage converts the pixels inside bounds; the result is anchored at (0, 0)
func (f *Frame) SubImage(bounds image.Rectangle, gamma float64) *image.RGBA {
	if gamma <= 0 {
		gamma = DefaultGamma
	}
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, vec3ToColor(f.At(x, y), gamma))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3, gamma float64) color.RGBA {
	colorVec = colorVec.GammaCorrect(gamma)
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// TileProgress is reported after each tile completes
type TileProgress struct {
	Tile       *Tile
	TileImage  *image.RGBA // Gamma-corrected pixels of just this tile
	TileNumber int         // Completed tiles so far (1-based)
	TotalTiles int
}

// RenderFrame renders every pixel across the worker pool. onTile, when not
// nil, is called from the calling goroutine as tiles finish. Cancelling ctx
// stops work at the next tile boundary; the partially rendered frame is
// returned together with ctx's error.
func (j *RenderJob) RenderFrame(ctx context.Context, onTile func(TileProgress)) (*Frame, error) {
	start := time.Now()
	frame := newFrame(j.width, j.height)
	tiles := NewTileGrid(j.width, j.height, j.config.TileSize)
	numWorkers := min(j.config.NumWorkers, len(tiles))

	j.logger.Info("rendering frame",
		zap.Int("tiles", len(tiles)),
		zap.Int("workers", numWorkers))

	pool := NewWorkerPool(j, frame, len(tiles), numWorkers)
	pool.Start(ctx)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	stats := RenderStats{
		SamplesPerPixel: j.options.SamplesPerPixel,
		Tiles:           len(tiles),
		Workers:         numWorkers,
	}
	var cancelled error
	for done := 0; done < len(tiles); done++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			cancelled = result.Error
			continue
		}
		stats.merge(result.Stats)

		tile := tiles[result.TaskID]
		j.logger.Debug("tile complete",
			zap.Int("tile", tile.ID),
			zap.Int("number", stats.TilesRendered),
			zap.Int("total", len(tiles)))
		if onTile != nil {
			onTile(TileProgress{
				Tile:       tile,
				TileImage:  frame.SubImage(tile.Bounds, DefaultGamma),
				TileNumber: stats.TilesRendered,
				TotalTiles: len(tiles),
			})
		}
	}
	pool.Stop()

	stats.finalize()
	stats.Duration = time.Since(start)
	frame.Stats = stats
	frame.Diagnostics = pool.Diagnostics()
	j.absorb(frame.Diagnostics)

	j.logFrame(frame, cancelled)
	if cancelled != nil {
		return frame, cancelled
	}
	return frame, nil
}

func (j *RenderJob) logFrame(frame *Frame, cancelled error) {
	fields := []zap.Field{
		zap.Duration("duration", frame.Stats.Duration),
		zap.Int("tiles_rendered", frame.Stats.TilesRendered),
		zap.Int("total_samples", frame.Stats.TotalSamples),
		zap.Float64("average_samples", frame.Stats.AverageSamples),
	}
	if cancelled != nil {
		j.logger.Warn("frame cancelled", append(fields, zap.Error(cancelled))...)
	} else {
		j.logger.Info("frame complete", fields...)
	}

	for _, entry := range frame.Diagnostics.Entries() {
		j.logger.Warn("render diagnostic",
			zap.String("kind", string(entry.Kind)),
			zap.String("object", entry.Object),
			zap.Int("count", entry.Count))
	}
}
