package loaders

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"

	"github.com/df07/go-nerf-dataset/pkg/core"
)

// ImageData contains loaded image data as a linear Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, row 0 at the top
}

// LoadOptions controls how an image file is decoded
type LoadOptions struct {
	Gamma    float64 // Encoding gamma to undo; 1 keeps values as stored
	MaxWidth int     // Downsample wider images to this width, keeping aspect; 0 disables
}

// LoadImage loads a PNG or JPEG image and converts it to linear Vec3 colors
func LoadImage(filename string, opts LoadOptions) (*ImageData, error) {
	img, err := imgio.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", filename, err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image %s is empty", filename)
	}

	if opts.MaxWidth > 0 && bounds.Dx() > opts.MaxWidth {
		height := max(1, bounds.Dy()*opts.MaxWidth/bounds.Dx())
		img = transform.Resize(img, opts.MaxWidth, height, transform.Linear)
	}

	return FromImage(img, opts.Gamma), nil
}

// FromImage converts a decoded image to linear colors, undoing the given encoding gamma
func FromImage(img image.Image, gamma float64) *ImageData {
	if gamma <= 0 {
		gamma = 1
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			pixels[y*width+x] = core.NewVec3(
				math.Pow(float64(r)/65535.0, gamma),
				math.Pow(float64(g)/65535.0, gamma),
				math.Pow(float64(b)/65535.0, gamma),
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}
