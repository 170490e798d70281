package trace

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/spherecast/pkg/math3d"
)

// Image is a width×height grid of unclamped linear colors. Pixels are stored
// row-major with row 0 at the bottom of the picture, matching the upward +t
// axis of ray generation.
type Image struct {
	Width  int
	Height int
	Pixels []math3d.Vec4
}

// NewImage allocates an image of the given size.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]math3d.Vec4, width*height),
	}
}

// At returns the color at (x, y), y counted from the bottom row.
func (img *Image) At(x, y int) math3d.Vec4 {
	return img.Pixels[y*img.Width+x]
}

// Renderer casts one ray per output pixel and shades the nearest hit.
type Renderer struct {
	workers int
}

// NewRenderer creates a renderer using one worker per CPU.
func NewRenderer() *Renderer {
	return &Renderer{workers: runtime.NumCPU()}
}

// SetWorkers bounds render parallelism. Values below 1 reset to the CPU
// count. Pixel results are identical for any worker count.
func (r *Renderer) SetWorkers(n int) {
	if n < 1 {
		n = runtime.NumCPU()
	}
	r.workers = n
}

// Render evaluates every pixel of a width×height image against the scene.
// Rows are distributed across workers; each pixel is a pure function of its
// coordinate and the scene, so no two pixels share state. Render returning
// is the completion fence: every pixel has been written, and the caller may
// mutate the scene again.
func (r *Renderer) Render(scene *Scene, width, height int) *Image {
	img := NewImage(width, height)

	var g errgroup.Group
	g.SetLimit(r.workers)

	for y := 0; y < height; y++ {
		row := img.Pixels[y*width : (y+1)*width]
		g.Go(func() error {
			for x := 0; x < width; x++ {
				row[x] = renderPixel(scene, x, y, width, height)
			}
			return nil
		})
	}

	// Workers never return errors; Wait is purely the completion barrier.
	_ = g.Wait()

	return img
}

// renderPixel is the per-pixel kernel: generate the ray, find the nearest
// hit, shade it, or fall back to the background color on a miss.
func renderPixel(scene *Scene, x, y, width, height int) math3d.Vec4 {
	ray := scene.Camera.RayThrough(x, y, width, height)

	if hit, ok := scene.Nearest(ray); ok {
		return scene.Shade(ray, hit)
	}
	return scene.Background
}
