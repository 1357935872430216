package core

import (
	"math"
	"testing"
)

func TestAABB_Intersect(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		wantHit  bool
		wantT    float64
		wantAxis int
	}{
		{"hit +X face from outside", NewRay(NewVec3(5, 0, 0), NewVec3(-1, 0, 0)), true, 4, 0},
		{"hit -Z face from outside", NewRay(NewVec3(0, 0, -3), NewVec3(0, 0, 1)), true, 2, 2},
		{"exit from inside", NewRay(NewVec3(0, 0, 0), NewVec3(0, 1, 0)), true, 1, 1},
		{"miss", NewRay(NewVec3(5, 5, 0), NewVec3(-1, 0, 0)), false, 0, -1},
		{"pointing away", NewRay(NewVec3(5, 0, 0), NewVec3(1, 0, 0)), false, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tHit, axis, ok := box.Intersect(tt.ray, 0.001, math.Inf(1))
			if ok != tt.wantHit {
				t.Fatalf("Expected hit=%v, got %v", tt.wantHit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(tHit-tt.wantT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.wantT, tHit)
			}
			if axis != tt.wantAxis {
				t.Errorf("Expected axis %d, got %d", tt.wantAxis, axis)
			}
		})
	}
}

func TestAABB_Union(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-1, 2, 0.5), NewVec3(0.5, 3, 2))
	u := a.Union(b)

	if u.Min != NewVec3(-1, 0, 0) || u.Max != NewVec3(1, 3, 2) {
		t.Errorf("Unexpected union %v", u)
	}
	if !u.IsValid() {
		t.Error("Union should be valid")
	}
}
