package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
)

// mockMaterial is an identifiable material that never scatters
type mockMaterial struct {
	name string
}

func (m *mockMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

var defaultRange = core.NewInterval(0.001, 1000.0)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	var hit material.HitRecord
	if sphere.Hit(ray, defaultRange, &hit) {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_LeavesRecordOnMiss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	hit := material.HitRecord{T: 42}
	if sphere.Hit(ray, core.NewInterval(0.001, 0.5), &hit) {
		t.Fatal("Expected miss due to range")
	}
	if hit.T != 42 {
		t.Errorf("Record should be untouched on miss, T changed to %f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	mat := &mockMaterial{name: "sphere"}
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, mat)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 4, 0),
			rayDirection:   core.NewVec3(0, -3, 0),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			var hit material.HitRecord
			if !sphere.Hit(ray, defaultRange, &hit) {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.Normal.Dot(tt.rayDirection) > 0 {
				t.Error("Normal should face against the ray")
			}
			if hit.Material != mat {
				t.Error("Hit record should carry the sphere's material")
			}
		})
	}
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	var hit material.HitRecord
	if !sphere.Hit(ray, defaultRange, &hit) {
		t.Fatal("Expected glancing hit, but got miss")
	}
	if hit.Point.Subtract(core.NewVec3(1, 0, 0)).Length() > 1e-9 {
		t.Errorf("Expected hit point (1,0,0), got %v", hit.Point)
	}
}

// TestSphere_Hit_DistanceMinusRadius aims at the center from several distances
func TestSphere_Hit_DistanceMinusRadius(t *testing.T) {
	center := core.NewVec3(3, -2, 7)
	directions := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 1).Normalize(),
		core.NewVec3(-2, 3, 1).Normalize(),
	}
	for _, radius := range []float64{0.5, 1, 4} {
		sphere := NewSphere(center, radius, nil)
		for _, dir := range directions {
			for _, dist := range []float64{5, 10, 100} {
				origin := center.Subtract(dir.Multiply(dist))
				var hit material.HitRecord
				if !sphere.Hit(core.NewRay(origin, dir), core.NewInterval(0.001, math.Inf(1)), &hit) {
					t.Fatalf("r=%f d=%f: expected hit", radius, dist)
				}
				if math.Abs(hit.T-(dist-radius)) > 1e-9 {
					t.Errorf("r=%f d=%f: expected t=%f, got %f", radius, dist, dist-radius, hit.T)
				}
			}
		}
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	var hit material.HitRecord
	if sphere.Hit(ray, core.NewInterval(0.001, 0.5), &hit) {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}
	if sphere.Hit(ray, core.NewInterval(3.5, 1000.0), &hit) {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Near root excluded by range: the far root is reported instead
	if !sphere.Hit(ray, core.NewInterval(1.5, 1000.0), &hit) {
		t.Fatal("Expected far-side hit")
	}
	if math.Abs(hit.T-3) > 1e-9 || hit.FrontFace {
		t.Errorf("Expected back face hit at t=3, got t=%f front=%t", hit.T, hit.FrontFace)
	}
}

func TestSphere_UV(t *testing.T) {
	tests := []struct {
		name string
		p    core.Vec3
		u, v float64
	}{
		{"+x", core.NewVec3(1, 0, 0), 0.5, 0.5},
		{"+y", core.NewVec3(0, 1, 0), 0.5, 1.0},
		{"+z", core.NewVec3(0, 0, 1), 0.25, 0.5},
		{"-x", core.NewVec3(-1, 0, 0), 0.0, 0.5},
		{"-y", core.NewVec3(0, -1, 0), 0.5, 0.0},
		{"-z", core.NewVec3(0, 0, -1), 0.75, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := SphereUV(tt.p)
			// -x sits on the seam, where atan2 may return either side
			if tt.name == "-x" && math.Abs(u-1) < 1e-9 {
				u = 0
			}
			if math.Abs(u-tt.u) > 1e-9 || math.Abs(v-tt.v) > 1e-9 {
				t.Errorf("SphereUV(%v) = (%f,%f), expected (%f,%f)", tt.p, u, v, tt.u, tt.v)
			}
		})
	}
}

func TestSphere_NegativeRadiusClamped(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), -2, nil)
	if sphere.Radius != 0 {
		t.Errorf("Expected radius clamped to 0, got %f", sphere.Radius)
	}
}

func TestMovingSphere(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0.5, nil)

	if !sphere.IsMoving() {
		t.Error("Expected moving sphere")
	}
	if NewSphere(core.NewVec3(0, 0, 0), 1, nil).IsMoving() {
		t.Error("Expected stationary sphere")
	}
	if !sphere.Center(0.5).Equals(core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected center (0,1,0) at t=0.5, got %v", sphere.Center(0.5))
	}

	box := sphere.BoundingBox()
	expected := core.NewAABB(core.NewVec3(-0.5, -0.5, -0.5), core.NewVec3(0.5, 2.5, 0.5))
	if box != expected {
		t.Errorf("Expected bbox %v, got %v", expected, box)
	}

	// A horizontal ray at y=2 only meets the sphere late in the shutter interval
	var hit material.HitRecord
	if sphere.Hit(core.NewRayAtTime(core.NewVec3(-5, 2, 0), core.NewVec3(1, 0, 0), 0), defaultRange, &hit) {
		t.Error("Expected miss at time 0")
	}
	if !sphere.Hit(core.NewRayAtTime(core.NewVec3(-5, 2, 0), core.NewVec3(1, 0, 0), 1), defaultRange, &hit) {
		t.Fatal("Expected hit at time 1")
	}
	if math.Abs(hit.T-4.5) > 1e-9 {
		t.Errorf("Expected t=4.5, got %f", hit.T)
	}
}
