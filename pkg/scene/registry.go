package scene

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScene is returned for scene names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

// Builder constructs a scene from options
type Builder func(Options) (*Scene, error)

type entry struct {
	info  SceneInfo
	build Builder
}

var builtInScenes = []entry{
	{
		info: SceneInfo{
			ID:          "cube",
			DisplayName: "Cube",
			Description: "Grey diffuse cube under uniform white light",
		},
		build: NewCubeScene,
	},
	{
		info: SceneInfo{
			ID:          "textured-cube",
			DisplayName: "Textured Cube",
			Description: "Cube with a seeded random noise texture and color ramp",
		},
		build: NewTexturedCubeScene,
	},
	{
		info: SceneInfo{
			ID:          "spheres",
			DisplayName: "Spheres",
			Description: "Three diffuse spheres on a ground quad",
		},
		build: NewSpheresScene,
	},
}

// ListScenes returns the built-in scenes in registration order
func ListScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtInScenes))
	for i, e := range builtInScenes {
		infos[i] = e.info
	}
	return infos
}

// CreateScene builds the named scene
func CreateScene(name string, opts Options) (*Scene, error) {
	for _, e := range builtInScenes {
		if e.info.ID == name {
			return e.build(opts)
		}
	}

	ids := make([]string, len(builtInScenes))
	for i, e := range builtInScenes {
		ids[i] = e.info.ID
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownScene, name, strings.Join(ids, ", "))
}
