package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPolicy reports a camera sampling policy that cannot produce a pose
	ErrInvalidPolicy = errors.New("invalid camera policy")
	// ErrInvalidSplit reports a split name or frame count that cannot be rendered
	ErrInvalidSplit = errors.New("invalid split")
)

// Stage names the step of a frame that failed
type Stage string

const (
	StageRender        Stage = "render"
	StageWriteImage    Stage = "write image"
	StageWriteManifest Stage = "write manifest"
)

// FrameError identifies the split, frame and stage in progress when a run failed
type FrameError struct {
	Split string
	Index int
	Stage Stage
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("split %q frame %d: %s: %v", e.Split, e.Index, e.Stage, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
