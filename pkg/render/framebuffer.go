// Package render presents kernel output: it quantizes the unclamped float
// image into RGBA and draws it to a terminal screen or a PNG file.
package render

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/taigrr/spherecast/pkg/math3d"
	"github.com/taigrr/spherecast/pkg/trace"
)

// Framebuffer is a 2D array of quantized pixels ready for display. Row 0 is
// the top of the picture. Height is twice the terminal row count when
// rendered with half-block characters.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []color.RGBA // row-major, top row first
}

// NewFramebuffer creates a framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets the pixel at (x, y). Out-of-bounds writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y), or transparent black out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// Blit quantizes a traced image into the framebuffer. The kernel stores row
// 0 at the bottom of the picture; display row 0 is the top, so rows are
// flipped here. Both buffers must have the same dimensions.
func (fb *Framebuffer) Blit(img *trace.Image) {
	for y := 0; y < fb.Height; y++ {
		srcRow := (fb.Height - 1 - y) * img.Width
		dstRow := y * fb.Width
		for x := 0; x < fb.Width; x++ {
			fb.Pixels[dstRow+x] = Quantize(img.Pixels[srcRow+x])
		}
	}
}

// Quantize clamps an unclamped linear color to [0, 1] and scales it to
// 8-bit channels. Over-range kernel output saturates rather than wrapping.
func Quantize(c math3d.Vec4) color.RGBA {
	return color.RGBA{
		R: channel(c.X),
		G: channel(c.Y),
		B: channel(c.Z),
		A: channel(c.W),
	}
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}
