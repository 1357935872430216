package core

import "math"

// Mat4 is a row-major 4x4 matrix. As a camera pose it maps camera space to world space.
// It marshals to JSON as a nested [4][4] array, the layout NeRF loaders expect.
type Mat4 [4][4]float64

// Identity4 returns the 4x4 identity matrix
func Identity4() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// NewMat4FromBasis builds a rigid transform whose columns are the given axes and translation
func NewMat4FromBasis(xAxis, yAxis, zAxis, translation Vec3) Mat4 {
	return Mat4{
		{xAxis.X, yAxis.X, zAxis.X, translation.X},
		{xAxis.Y, yAxis.Y, zAxis.Y, translation.Y},
		{xAxis.Z, yAxis.Z, zAxis.Z, translation.Z},
		{0, 0, 0, 1},
	}
}

// LookAtMatrix returns the camera-to-world transform for a camera at eye looking at target.
// The camera looks down its local -Z axis with local +Y as screen-up.
// If the view direction is parallel to up, +Y (or +X) is used as a fallback up axis.
func LookAtMatrix(eye, target, up Vec3) Mat4 {
	forward := target.Subtract(eye).Normalize()

	right := forward.Cross(up)
	if right.LengthSquared() < 1e-12 {
		// Looking straight along the up axis; pick any perpendicular axis
		fallback := NewVec3(0, 1, 0)
		if math.Abs(forward.Y) > 0.999 {
			fallback = NewVec3(1, 0, 0)
		}
		right = forward.Cross(fallback)
	}
	right = right.Normalize()
	cameraUp := right.Cross(forward)
	back := forward.Negate()

	return NewMat4FromBasis(right, cameraUp, back, eye)
}

// MulPoint transforms a point (w=1)
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3],
	}
}

// MulDirection transforms a direction (w=0), ignoring translation
func (m Mat4) MulDirection(d Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*d.X + m[0][1]*d.Y + m[0][2]*d.Z,
		Y: m[1][0]*d.X + m[1][1]*d.Y + m[1][2]*d.Z,
		Z: m[2][0]*d.X + m[2][1]*d.Y + m[2][2]*d.Z,
	}
}

// Column returns the first three components of column i
func (m Mat4) Column(i int) Vec3 {
	return Vec3{X: m[0][i], Y: m[1][i], Z: m[2][i]}
}

// Translation returns the translation part of the transform
func (m Mat4) Translation() Vec3 {
	return m.Column(3)
}

// IsRigid reports whether m is a rotation plus translation within tolerance
func (m Mat4) IsRigid(tolerance float64) bool {
	if math.Abs(m[3][0])+math.Abs(m[3][1])+math.Abs(m[3][2]) > tolerance || math.Abs(m[3][3]-1) > tolerance {
		return false
	}

	x, y, z := m.Column(0), m.Column(1), m.Column(2)
	for _, axis := range []Vec3{x, y, z} {
		if math.Abs(axis.Length()-1) > tolerance {
			return false
		}
	}
	if math.Abs(x.Dot(y)) > tolerance || math.Abs(y.Dot(z)) > tolerance || math.Abs(x.Dot(z)) > tolerance {
		return false
	}

	// Determinant of the rotation block must be +1 (no reflection)
	return math.Abs(x.Cross(y).Dot(z)-1) <= tolerance
}
