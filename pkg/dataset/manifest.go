package dataset

import (
	"fmt"

	"github.com/df07/go-nerf-dataset/pkg/core"
)

// FrameRecord ties one image to the camera pose it was rendered from
type FrameRecord struct {
	TransformMatrix core.Mat4 `json:"transform_matrix"` // Camera-to-world, row-major
	FilePath        string    `json:"file_path"`        // "{split}/{i}", without extension
}

// Manifest is the transforms_{split}.json document
type Manifest struct {
	CameraAngleX float64       `json:"camera_angle_x"` // Horizontal field of view in radians
	Frames       []FrameRecord `json:"frames"`
}

// Split is a named subset of the dataset
type Split struct {
	Name   string
	Frames int
}

// ManifestFileName returns the manifest file name for a split
func ManifestFileName(split string) string {
	return fmt.Sprintf("transforms_%s.json", split)
}

// FramePath returns the manifest file_path of frame i
func FramePath(split string, i int) string {
	return fmt.Sprintf("%s/%d", split, i)
}
