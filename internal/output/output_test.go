package output

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/loaders"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 100), B: 128, A: 255})
		}
	}
	return img
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"render.png", "png"},
		{"render.BMP", "bmp"},
		{"render.tif", "tiff"},
		{"render.tiff", "tiff"},
		{"render", "png"},
		{"render.jpg", "png"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFromPath(tt.path, "png"); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	src := testImage()

	for _, name := range []string{"frame.png", "frame.bmp", "frame.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "renders", name)
			if err := Write(path, src, "png"); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			data, err := loaders.LoadImage(path)
			if err != nil {
				t.Fatalf("failed to read back %s: %v", name, err)
			}
			if data.Width != 4 || data.Height != 3 {
				t.Fatalf("expected 4x3, got %dx%d", data.Width, data.Height)
			}

			// Lossless formats reproduce every pixel
			want := src.RGBAAt(3, 2)
			got := data.Pixels[2*data.Width+3]
			if int(got.X*255+0.5) != int(want.R) || int(got.Y*255+0.5) != int(want.G) || int(got.Z*255+0.5) != int(want.B) {
				t.Errorf("pixel mismatch: want %v, got %v", want, got)
			}
		})
	}
}

func TestWriteUsesFallbackFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame")
	if err := Write(path, testImage(), "bmp"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("BM")) {
		t.Error("expected a BMP header")
	}
}

func TestEncodeUnsupported(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(), "gif"); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
