package renderer

import (
	"image"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, row-major
	X, Y   int             // Tile coordinates (not pixel coordinates)
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{
				ID:     tileID,
				X:      tileX,
				Y:      tileY,
				Bounds: image.Rect(x0, y0, x1, y1),
			})
			tileID++
		}
	}

	return tiles
}

// renderTile renders every pixel inside bounds straight into the frame.
// Tiles never overlap, so concurrent workers write disjoint pixels.
func (t *pathTracer) renderTile(bounds image.Rectangle, frame *Frame) TileStats {
	stats := TileStats{Pixels: bounds.Dx() * bounds.Dy()}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			colour, samples := t.renderPixel(x, y)
			frame.Pixels[y*frame.Width+x] = colour
			stats.Samples += samples
		}
	}
	return stats
}
