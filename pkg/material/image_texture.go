package material

import (
	"math"

	"github.com/df07/go-nerf-dataset/pkg/core"
)

// ImageTexture provides color from a 2D image in linear space
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 at the top
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the texture with bilinear filtering.
// U wraps around horizontally; V is clamped, with V=0 at the bottom row and V=1 at the top.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.Vec3{}
	}

	u := uv.X - math.Floor(uv.X)
	v := max(0, min(1, uv.Y))

	// Pixel centers sit at half-integer coordinates
	x := u*float64(t.Width) - 0.5
	y := (1-v)*float64(t.Height) - 0.5

	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := x - x0
	fy := y - y0

	c00 := t.texel(int(x0), int(y0))
	c10 := t.texel(int(x0)+1, int(y0))
	c01 := t.texel(int(x0), int(y0)+1)
	c11 := t.texel(int(x0)+1, int(y0)+1)

	top := c00.Lerp(c10, fx)
	bottom := c01.Lerp(c11, fx)
	return top.Lerp(bottom, fy)
}

// texel returns the pixel at (x, y), wrapping x and clamping y
func (t *ImageTexture) texel(x, y int) core.Vec3 {
	x %= t.Width
	if x < 0 {
		x += t.Width
	}
	y = max(0, min(t.Height-1, y))
	return t.Pixels[y*t.Width+x]
}
