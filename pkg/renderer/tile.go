package renderer

import (
	"image"

	"github.com/df07/go-nerf-dataset/pkg/core"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID      int             // Unique tile identifier
	Bounds  image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Seed    int64           // Seed of the tile's sampler
	Sampler core.Sampler    // Tile-specific sampler for deterministic results
}

// NewTile creates a new tile with its own deterministic sampler
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Seed:    seed,
		Sampler: core.NewSeededSampler(seed),
	}
}

// TileSeed derives a tile seed from the render seed, frame number and tile ID.
// Each input is mixed with a splitmix64 finalizer so neighbouring tiles and frames decorrelate.
func TileSeed(renderSeed int64, frame, tileID int) int64 {
	h := uint64(renderSeed)
	h = mix64(h ^ uint64(frame)*0x9e3779b97f4a7c15)
	h = mix64(h ^ uint64(tileID)*0xbf58476d1ce4e5b9)
	return int64(h >> 1)
}

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// NewTileGrid creates a grid of tiles covering the entire image for one frame
func NewTileGrid(width, height, tileSize int, renderSeed int64, frame int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Ceiling division
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			bounds := image.Rect(x0, y0, x1, y1)
			tiles = append(tiles, NewTile(tileID, bounds, TileSeed(renderSeed, frame, tileID)))
			tileID++
		}
	}

	return tiles
}
