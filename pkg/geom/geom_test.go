package geom

import (
	"math"
	"testing"
)

const tol = 1e-12

func vecsClose(a, b Vec3) bool {
	return math.Abs(a.X-b.X) < tol &&
		math.Abs(a.Y-b.Y) < tol &&
		math.Abs(a.Z-b.Z) < tol
}

func TestVec3Cross(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want Vec3
	}{
		{"x cross y", AxisX, AxisY, AxisZ},
		{"y cross z", AxisY, AxisZ, AxisX},
		{"z cross x", AxisZ, AxisX, AxisY},
		{"parallel", AxisX, AxisX, Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cross(tt.b); !vecsClose(got, tt.want) {
				t.Errorf("Cross() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRigidTransformApply(t *testing.T) {
	tests := []struct {
		name string
		tr   RigidTransform
		p    Vec3
		want Vec3
	}{
		{
			"quarter turn about z",
			Rotation(AxisZ, math.Pi/2),
			Vec3{X: 1},
			Vec3{Y: 1},
		},
		{
			"quarter turn about y",
			Rotation(AxisY, math.Pi/2),
			Vec3{X: 1},
			Vec3{Z: -1},
		},
		{
			"rotation then translation",
			Rotation(AxisZ, math.Pi).Then(Vec3{X: 10}),
			Vec3{X: 1},
			Vec3{X: 9},
		},
		{
			"pure translation",
			RigidTransform{Axis: AxisZ, Translation: Vec3{X: 1, Y: 2, Z: 3}},
			Vec3{X: 1, Y: 1, Z: 1},
			Vec3{X: 2, Y: 3, Z: 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.Apply(tt.p); !vecsClose(got, tt.want) {
				t.Errorf("Apply(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRigidTransformPreservesLength(t *testing.T) {
	tr := Rotation(Vec3{X: 1, Y: 1, Z: 1}, 0.7)
	p := Vec3{X: 3, Y: -2, Z: 5}
	got := tr.Apply(p)
	if math.Abs(got.Length()-p.Length()) > tol {
		t.Errorf("rotation changed length: %v -> %v", p.Length(), got.Length())
	}
}

func TestApplyRing2D(t *testing.T) {
	ring := []Vec2{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	tr := Rotation(AxisY, math.Pi/2).Then(Vec3{X: 5})
	out := tr.ApplyRing2D(ring, 2)
	if len(out) != len(ring) {
		t.Fatalf("ApplyRing2D returned %d points, want %d", len(out), len(ring))
	}
	// (1,0,2) rotated 90 degrees about Y lands at (2,0,-1), then +5 on X.
	want := Vec3{X: 7, Y: 0, Z: -1}
	if !vecsClose(out[0], want) {
		t.Errorf("out[0] = %v, want %v", out[0], want)
	}
}

func TestCentroid(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := Centroid(nil); got != (Vec2{}) {
			t.Errorf("Centroid(nil) = %v, want origin", got)
		}
	})
	t.Run("square", func(t *testing.T) {
		ring := []Vec2{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
		got := Centroid(ring)
		if math.Abs(got.X) > tol || math.Abs(got.Y) > tol {
			t.Errorf("Centroid(square) = %v, want origin", got)
		}
	})
}

func TestLift(t *testing.T) {
	ring := []Vec2{{1, 2}, {3, 4}}
	out := Lift(ring, 7)
	if len(out) != 2 {
		t.Fatalf("Lift returned %d points, want 2", len(out))
	}
	if out[1] != (Vec3{X: 3, Y: 4, Z: 7}) {
		t.Errorf("Lift()[1] = %v", out[1])
	}
}
