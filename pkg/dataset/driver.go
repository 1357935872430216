package dataset

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"cogentcore.org/core/base/randx"
	"github.com/google/uuid"

	"github.com/df07/go-nerf-dataset/pkg/core"
	"github.com/df07/go-nerf-dataset/pkg/fileio"
	"github.com/df07/go-nerf-dataset/pkg/log"
	"github.com/df07/go-nerf-dataset/pkg/renderer"
)

// Camera is the mutable camera the driver repositions before every frame
type Camera interface {
	SetPosition(position core.Vec3)
	LookAt(target core.Vec3)
	MatrixWorld() core.Mat4
	FieldOfView() float64
}

// Renderer renders one still from the camera's current pose, blocking until it is complete
type Renderer interface {
	RenderStill(ctx context.Context) (*renderer.Frame, error)
}

// ImageWriter persists a rendered image, creating parent directories
type ImageWriter func(path string, img image.Image, keepAlpha bool) error

// JSONWriter serializes v to path, replacing any existing file
type JSONWriter func(path string, v any) error

// Config controls where and how a dataset is written
type Config struct {
	OutputDir          string
	ImageExt           string // File extension of frames, without the dot
	KeepAlpha          bool   // Write RGBA frames instead of opaque RGB
	ManifestEveryFrame bool   // Rewrite the manifest after each frame rather than once per split
	Policy             Policy
	Seed               int64 // Seeds camera pose sampling
}

// DefaultConfig returns the layout of the reference cube dataset
func DefaultConfig() Config {
	return Config{
		OutputDir:          "results/cube_renders",
		ImageExt:           "png",
		KeepAlpha:          false,
		ManifestEveryFrame: true,
		Policy:             DefaultPolicy(),
	}
}

// SplitSummary reports what was written for one split
type SplitSummary struct {
	Name         string `json:"name"`
	Frames       int    `json:"frames"`
	ManifestPath string `json:"manifest_path"`
}

// RunSummary reports a completed run
type RunSummary struct {
	RunID        string         `json:"run_id"`
	OutputDir    string         `json:"output_dir"`
	CameraAngleX float64        `json:"camera_angle_x"`
	Splits       []SplitSummary `json:"splits"`
	StartedAt    time.Time      `json:"started_at"`
	Duration     time.Duration  `json:"duration"`
}

// Driver turns a camera policy into a labeled image dataset.
// It owns the camera and renderer for its lifetime and renders strictly one frame at a time.
type Driver struct {
	camera   Camera
	renderer Renderer
	config   Config
	random   randx.Rand
	logger   *log.Logger

	// Writers default to PNG and JSON files on disk
	WriteImage    ImageWriter
	WriteManifest JSONWriter
}

// NewDriver validates the configuration and returns a driver ready to render
func NewDriver(camera Camera, r Renderer, config Config, logger *log.Logger) (*Driver, error) {
	if err := config.Policy.Validate(); err != nil {
		return nil, err
	}
	if config.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if config.ImageExt == "" {
		config.ImageExt = "png"
	}
	config.ImageExt = strings.TrimPrefix(config.ImageExt, ".")
	if logger == nil {
		logger = log.NewNop()
	}

	return &Driver{
		camera:        camera,
		renderer:      r,
		config:        config,
		random:        randx.NewSysRand(config.Seed),
		logger:        logger.Named("dataset"),
		WriteImage:    fileio.WritePNG,
		WriteManifest: fileio.WriteJSON,
	}, nil
}

// SampleCameraPose moves the camera to a random point of the policy's shell,
// aims it at the target and returns its camera-to-world transform.
func (d *Driver) SampleCameraPose() core.Mat4 {
	policy := d.config.Policy
	for {
		position := core.SamplePointInHalfSphereShell(policy.MinRadius, policy.MaxRadius, policy.Offset, d.random)
		// A camera on top of its target has no view direction
		if position.Subtract(policy.Target).LengthSquared() < 1e-12 {
			continue
		}
		d.camera.SetPosition(position)
		d.camera.LookAt(policy.Target)
		return d.camera.MatrixWorld()
	}
}

// RenderSplit renders frameCount frames into {output}/{name}/ and writes transforms_{name}.json.
// On failure already written frames are kept and the error is a *FrameError.
func (d *Driver) RenderSplit(ctx context.Context, name string, frameCount int) (*Manifest, error) {
	if err := validateSplit(Split{Name: name, Frames: frameCount}); err != nil {
		return nil, err
	}

	manifestPath := d.ManifestPath(name)
	manifest := &Manifest{Frames: make([]FrameRecord, 0, frameCount)}
	splitLogger := d.logger.With("split", name)
	splitLogger.Infow("rendering split", "frames", frameCount, "manifest", manifestPath)
	splitStart := time.Now()

	for i := 0; i < frameCount; i++ {
		if err := ctx.Err(); err != nil {
			return manifest, &FrameError{Split: name, Index: i, Stage: StageRender, Err: err}
		}

		pose := d.SampleCameraPose()

		frameStart := time.Now()
		frame, err := d.renderer.RenderStill(ctx)
		if err == nil && (frame == nil || frame.Image == nil) {
			err = fmt.Errorf("renderer returned no image")
		}
		if err != nil {
			return manifest, &FrameError{Split: name, Index: i, Stage: StageRender, Err: err}
		}

		imagePath := filepath.Join(d.config.OutputDir, name, fmt.Sprintf("%d.%s", i, d.config.ImageExt))
		if err := d.WriteImage(imagePath, frame.Image, d.config.KeepAlpha); err != nil {
			return manifest, &FrameError{Split: name, Index: i, Stage: StageWriteImage, Err: err}
		}

		manifest.Frames = append(manifest.Frames, FrameRecord{
			TransformMatrix: pose,
			FilePath:        FramePath(name, i),
		})

		if d.config.ManifestEveryFrame {
			if err := d.writeManifest(manifestPath, manifest); err != nil {
				return manifest, &FrameError{Split: name, Index: i, Stage: StageWriteManifest, Err: err}
			}
		}

		splitLogger.Infow("frame written",
			"frame", i+1,
			"total", frameCount,
			"path", imagePath,
			"elapsed", time.Since(frameStart),
		)
	}

	// Zero-frame splits and batched manifests are written here
	if frameCount == 0 || !d.config.ManifestEveryFrame {
		if err := d.writeManifest(manifestPath, manifest); err != nil {
			return manifest, &FrameError{Split: name, Index: frameCount, Stage: StageWriteManifest, Err: err}
		}
	}

	splitLogger.Infow("split complete", "frames", frameCount, "elapsed", time.Since(splitStart))
	return manifest, nil
}

// Run renders every split in order. Splits are validated before anything is rendered,
// and the first failure aborts the run.
func (d *Driver) Run(ctx context.Context, splits []Split) (*RunSummary, error) {
	if err := ValidateSplits(splits); err != nil {
		return nil, err
	}

	summary := &RunSummary{
		RunID:     uuid.NewString(),
		OutputDir: d.config.OutputDir,
		StartedAt: time.Now(),
		Splits:    make([]SplitSummary, 0, len(splits)),
	}
	d.logger.Infow("starting run", "run_id", summary.RunID, "splits", len(splits), "seed", d.config.Seed)

	for _, split := range splits {
		manifest, err := d.RenderSplit(ctx, split.Name, split.Frames)
		if err != nil {
			return summary, err
		}
		summary.CameraAngleX = manifest.CameraAngleX
		summary.Splits = append(summary.Splits, SplitSummary{
			Name:         split.Name,
			Frames:       len(manifest.Frames),
			ManifestPath: d.ManifestPath(split.Name),
		})
	}

	summary.Duration = time.Since(summary.StartedAt)
	d.logger.Infow("run complete", "run_id", summary.RunID, "elapsed", summary.Duration)
	return summary, nil
}

// ManifestPath returns where the manifest of a split is written
func (d *Driver) ManifestPath(split string) string {
	return filepath.Join(d.config.OutputDir, ManifestFileName(split))
}

// writeManifest records the live field of view and rewrites the whole manifest
func (d *Driver) writeManifest(path string, manifest *Manifest) error {
	manifest.CameraAngleX = d.camera.FieldOfView()
	return d.WriteManifest(path, manifest)
}

// ValidateSplits checks names and frame counts of a whole run
func ValidateSplits(splits []Split) error {
	seen := make(map[string]bool, len(splits))
	for _, split := range splits {
		if err := validateSplit(split); err != nil {
			return err
		}
		if seen[split.Name] {
			return fmt.Errorf("%w: duplicate split name %q", ErrInvalidSplit, split.Name)
		}
		seen[split.Name] = true
	}
	return nil
}

func validateSplit(split Split) error {
	switch {
	case split.Name == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidSplit)
	case split.Name == "." || split.Name == "..":
		return fmt.Errorf("%w: name %q is not a directory name", ErrInvalidSplit, split.Name)
	case strings.ContainsAny(split.Name, `/\`):
		return fmt.Errorf("%w: name %q contains a path separator", ErrInvalidSplit, split.Name)
	case split.Frames < 0:
		return fmt.Errorf("%w: split %q has negative frame count %d", ErrInvalidSplit, split.Name, split.Frames)
	}
	return nil
}
