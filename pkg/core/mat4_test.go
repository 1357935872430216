package core

import (
	"encoding/json"
	"math"
	"testing"
)

func TestLookAtMatrix_ForwardPointsAtTarget(t *testing.T) {
	tests := []struct {
		name   string
		eye    Vec3
		target Vec3
	}{
		{"from -Y", NewVec3(0, -5, 0), NewVec3(0, 0, 0)},
		{"from above diagonal", NewVec3(3, 2, 4), NewVec3(0, 0, 0)},
		{"below horizon", NewVec3(-1, 4, -3), NewVec3(0, 0, 0)},
		{"offset target", NewVec3(2, 2, 2), NewVec3(0.5, -0.5, 0.25)},
		{"straight down", NewVec3(0, 0, 5), NewVec3(0, 0, 0)},
		{"straight up", NewVec3(0, 0, -5), NewVec3(0, 0, 0)},
	}

	up := NewVec3(0, 0, 1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := LookAtMatrix(tt.eye, tt.target, up)

			if !m.IsRigid(1e-9) {
				t.Fatalf("Expected rigid transform, got %v", m)
			}

			// Camera looks down local -Z
			forward := m.MulDirection(NewVec3(0, 0, -1))
			expected := tt.target.Subtract(tt.eye).Normalize()
			if dot := forward.Dot(expected); math.Abs(dot-1) > 1e-9 {
				t.Errorf("Forward axis should point at target, dot = %f", dot)
			}

			if m.Translation() != tt.eye {
				t.Errorf("Expected translation %v, got %v", tt.eye, m.Translation())
			}
		})
	}
}

func TestLookAtMatrix_BlenderConvention(t *testing.T) {
	// Camera on -Y looking at origin: right is +X, screen-up is +Z
	m := LookAtMatrix(NewVec3(0, -5, 0), NewVec3(0, 0, 0), NewVec3(0, 0, 1))

	checks := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"right", m.Column(0), NewVec3(1, 0, 0)},
		{"up", m.Column(1), NewVec3(0, 0, 1)},
		{"back", m.Column(2), NewVec3(0, -1, 0)},
	}
	for _, c := range checks {
		if c.got.Subtract(c.expected).Length() > 1e-12 {
			t.Errorf("%s axis: expected %v, got %v", c.name, c.expected, c.got)
		}
	}
}

func TestMat4_MulPoint(t *testing.T) {
	m := NewMat4FromBasis(NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1), NewVec3(1, 2, 3))
	p := m.MulPoint(NewVec3(1, 1, 1))
	if p != NewVec3(2, 3, 4) {
		t.Errorf("Expected (2,3,4), got %v", p)
	}
	d := m.MulDirection(NewVec3(1, 1, 1))
	if d != NewVec3(1, 1, 1) {
		t.Errorf("Directions should ignore translation, got %v", d)
	}
}

func TestMat4_JSONRoundTrip(t *testing.T) {
	m := LookAtMatrix(NewVec3(3.123456789, -2.5, 1.75), NewVec3(0, 0, 0), NewVec3(0, 0, 1))

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var rows [][]float64
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatalf("Expected nested array, got %s: %v", data, err)
	}
	if len(rows) != 4 || len(rows[0]) != 4 {
		t.Fatalf("Expected 4x4 rows, got %v", rows)
	}

	var decoded Mat4
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded != m {
		t.Errorf("Round trip changed matrix:\n%v\n%v", m, decoded)
	}
}

func TestMat4_IsRigidRejectsScale(t *testing.T) {
	m := Identity4()
	m[0][0] = 2
	if m.IsRigid(1e-9) {
		t.Error("Scaled matrix should not be rigid")
	}

	mirror := Identity4()
	mirror[2][2] = -1
	if mirror.IsRigid(1e-9) {
		t.Error("Reflection should not be rigid")
	}
}
