package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestShape_Volume(t *testing.T) {
	tests := []struct {
		name  string
		shape ShapeInterface
		want  float64
	}{
		{"unit cube", &Box{HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}}, 1.0},
		{"flat box", &Box{HalfExtents: mgl64.Vec3{2, 1, 0.25}}, 4.0},
		{"unit sphere", &Sphere{Radius: 1}, 4.0 / 3.0 * math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !almostEqual(tt.shape.Volume(), tt.want, 1e-12) {
				t.Errorf("Volume() = %v, want %v", tt.shape.Volume(), tt.want)
			}
			if !almostEqual(tt.shape.ComputeMass(3), 3*tt.want, 1e-12) {
				t.Errorf("ComputeMass(3) = %v, want %v", tt.shape.ComputeMass(3), 3*tt.want)
			}
		})
	}
}

func TestBox_ComputeInertia(t *testing.T) {
	box := &Box{HalfExtents: mgl64.Vec3{1, 2, 3}}

	inertia := box.ComputeInertia(12)

	// (m/12) * (d1² + d2²) with full dimensions 2, 4, 6
	want := mgl64.Vec3{16 + 36, 4 + 36, 4 + 16}
	got := mgl64.Vec3{inertia.At(0, 0), inertia.At(1, 1), inertia.At(2, 2)}
	if !vec3AlmostEqual(got, want, 1e-12) {
		t.Errorf("diagonal = %v, want %v", got, want)
	}
}

func TestSphere_ComputeInertia(t *testing.T) {
	sphere := &Sphere{Radius: 2}

	inertia := sphere.ComputeInertia(5)

	want := 0.4 * 5 * 4
	for i := range 3 {
		if !almostEqual(inertia.At(i, i), want, 1e-12) {
			t.Errorf("I[%d][%d] = %v, want %v", i, i, inertia.At(i, i), want)
		}
	}
}

func TestBox_ComputeAABB_Rotated(t *testing.T) {
	box := &Box{HalfExtents: mgl64.Vec3{2, 1, 1}}
	transform := Transform{
		Position: mgl64.Vec3{10, 0, 0},
		Rotation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}),
	}

	box.ComputeAABB(transform)
	aabb := box.GetAABB()

	if !vec3AlmostEqual(aabb.Min, mgl64.Vec3{9, -2, -1}, 1e-9) {
		t.Errorf("Min = %v, want {9 -2 -1}", aabb.Min)
	}
	if !vec3AlmostEqual(aabb.Max, mgl64.Vec3{11, 2, 1}, 1e-9) {
		t.Errorf("Max = %v, want {11 2 1}", aabb.Max)
	}
}

func TestAABB_Draft(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec3{0, 0, -1}, Max: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		level float64
		want  float64
	}{
		{-5, 0},
		{-1, 0},
		{0, 1},
		{1, 2},
		{7, 2},
	}

	for _, tt := range tests {
		if got := aabb.Draft(tt.level); !almostEqual(got, tt.want, 1e-12) {
			t.Errorf("Draft(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestTransform_TransformPosition(t *testing.T) {
	transform := Transform{
		Position: mgl64.Vec3{0, 0, 5},
		Rotation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}),
	}

	world := transform.TransformPosition(mgl64.Vec3{1, 0, 0})
	if !vec3AlmostEqual(world, mgl64.Vec3{0, 1, 5}, 1e-12) {
		t.Errorf("TransformPosition = %v, want {0 1 5}", world)
	}

	local := transform.InverseTransformPosition(world)
	if !vec3AlmostEqual(local, mgl64.Vec3{1, 0, 0}, 1e-12) {
		t.Errorf("InverseTransformPosition = %v, want {1 0 0}", local)
	}
}
