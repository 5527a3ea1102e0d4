package material

import (
	"fmt"
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width    int
	Height   int
	Pixels   []core.Vec3 // Row-major: Pixels[y*Width + x]
	Bilinear bool        // Blend the four nearest texels instead of picking one
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) (*ImageTexture, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height {
		return nil, fmt.Errorf("image texture %dx%d with %d pixels: size mismatch", width, height, len(pixels))
	}
	return &ImageTexture{Width: width, Height: height, Pixels: pixels}, nil
}

// Evaluate samples the texture at given UV coordinates. UVs wrap, and V=0 is
// the bottom row of the image.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	u := uv.X - math.Floor(uv.X)
	v := uv.Y - math.Floor(uv.Y)

	if !t.Bilinear {
		return t.texel(int(u*float64(t.Width)), int((1.0-v)*float64(t.Height)))
	}

	// Texel centres sit at half-integer coordinates
	x := u*float64(t.Width) - 0.5
	y := (1.0-v)*float64(t.Height) - 0.5
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := x-x0, y-y0

	top := t.texel(int(x0), int(y0)).Lerp(t.texel(int(x0)+1, int(y0)), fx)
	bottom := t.texel(int(x0), int(y0)+1).Lerp(t.texel(int(x0)+1, int(y0)+1), fx)
	return top.Lerp(bottom, fy)
}

// texel returns the pixel at (x, y), clamped to the image bounds
func (t *ImageTexture) texel(x, y int) core.Vec3 {
	x = max(0, min(t.Width-1, x))
	y = max(0, min(t.Height-1, y))
	return t.Pixels[y*t.Width+x]
}
