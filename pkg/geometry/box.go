package geometry

import (
	"github.com/df07/go-nerf-dataset/pkg/core"
)

// Box is an axis-aligned box
type Box struct {
	Center      core.Vec3     // Center point of the box
	HalfExtents core.Vec3     // Half size along each axis, so (1,1,1) is a 2x2x2 box
	Material    core.Material // Material for all faces
	bounds      core.AABB
}

// NewBox creates a new axis-aligned box
func NewBox(center, halfExtents core.Vec3, material core.Material) *Box {
	return &Box{
		Center:      center,
		HalfExtents: halfExtents,
		Material:    material,
		bounds:      core.NewAABB(center.Subtract(halfExtents), center.Add(halfExtents)),
	}
}

// NewCube creates a cube centered at center with the given half side length
func NewCube(center core.Vec3, scale float64, material core.Material) *Box {
	return NewBox(center, core.NewVec3(scale, scale, scale), material)
}

// Hit tests if a ray intersects with any face of the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	t, axis, ok := b.bounds.Intersect(ray, tMin, tMax)
	if !ok {
		return nil, false
	}

	point := ray.At(t)
	local := point.Subtract(b.Center)

	// Outward normal along the crossed axis; UV from the two remaining axes
	var outwardNormal core.Vec3
	var uv core.Vec2
	switch axis {
	case 0:
		outwardNormal = core.NewVec3(sign(local.X), 0, 0)
		uv = faceUV(local.Y, b.HalfExtents.Y, local.Z, b.HalfExtents.Z)
	case 1:
		outwardNormal = core.NewVec3(0, sign(local.Y), 0)
		uv = faceUV(local.X, b.HalfExtents.X, local.Z, b.HalfExtents.Z)
	default:
		outwardNormal = core.NewVec3(0, 0, sign(local.Z))
		uv = faceUV(local.X, b.HalfExtents.X, local.Y, b.HalfExtents.Y)
	}

	hitRecord := &core.HitRecord{
		T:        t,
		Point:    point,
		UV:       uv,
		Material: b.Material,
	}
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return b.bounds
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

func faceUV(a, halfA, b, halfB float64) core.Vec2 {
	return core.NewVec2((a/halfA+1)/2, (b/halfB+1)/2)
}
