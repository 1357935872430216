// Package notify announces finished datasets to downstream NeRF trainers.
package notify

import (
	"context"
	"time"

	"github.com/df07/go-nerf-dataset/pkg/dataset"
)

// SplitInfo describes one written split
type SplitInfo struct {
	Name     string `json:"name"`
	Frames   int    `json:"frames"`
	Manifest string `json:"manifest"`
}

// DatasetReady is published once every split of a run has been written
type DatasetReady struct {
	RunID        string      `json:"run_id"`
	OutputDir    string      `json:"output_dir"`
	Scene        string      `json:"scene"`
	Seed         int64       `json:"seed"`
	CameraAngleX float64     `json:"camera_angle_x"`
	Splits       []SplitInfo `json:"splits"`
	CompletedAt  time.Time   `json:"completed_at"`
}

// NewDatasetReady builds the message for a completed run
func NewDatasetReady(summary *dataset.RunSummary, scene string, seed int64) DatasetReady {
	splits := make([]SplitInfo, len(summary.Splits))
	for i, s := range summary.Splits {
		splits[i] = SplitInfo{Name: s.Name, Frames: s.Frames, Manifest: s.ManifestPath}
	}
	return DatasetReady{
		RunID:        summary.RunID,
		OutputDir:    summary.OutputDir,
		Scene:        scene,
		Seed:         seed,
		CameraAngleX: summary.CameraAngleX,
		Splits:       splits,
		CompletedAt:  summary.StartedAt.Add(summary.Duration),
	}
}

// Publisher delivers dataset-ready messages
type Publisher interface {
	PublishDatasetReady(ctx context.Context, msg DatasetReady) error
	Close() error
}

// Nop discards every message
type Nop struct{}

func (Nop) PublishDatasetReady(context.Context, DatasetReady) error { return nil }

func (Nop) Close() error { return nil }
