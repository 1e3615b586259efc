package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestInterval_Basics(t *testing.T) {
	i := NewInterval(1, 3)

	if i.Size() != 2 {
		t.Errorf("Size: expected 2, got %f", i.Size())
	}
	if !i.Contains(1) || !i.Contains(3) || i.Contains(3.0001) {
		t.Error("Contains should be closed on both ends")
	}
	if i.Surrounds(1) || i.Surrounds(3) || !i.Surrounds(2) {
		t.Error("Surrounds should be open on both ends")
	}
	if i.Clamp(-5) != 1 || i.Clamp(10) != 3 || i.Clamp(2.5) != 2.5 {
		t.Error("Clamp returned wrong values")
	}
	if e := i.Expand(1); e.Min != 0.5 || e.Max != 3.5 {
		t.Errorf("Expand: expected [0.5,3.5], got %v", e)
	}
	if !EmptyInterval.IsEmpty() || UniverseInterval.IsEmpty() {
		t.Error("Empty/Universe intervals misreport emptiness")
	}
	if EmptyInterval.Contains(0) || !UniverseInterval.Contains(1e300) {
		t.Error("Empty/Universe intervals misreport containment")
	}
	if m := MergeIntervals(EmptyInterval, i); m != i {
		t.Errorf("Merging with empty should be identity, got %v", m)
	}
}

func TestAABB_NewFromCornersInAnyOrder(t *testing.T) {
	a := NewAABB(NewVec3(1, -2, 3), NewVec3(-1, 2, -3))
	expected := NewAABBFromIntervals(NewInterval(-1, 1), NewInterval(-2, 2), NewInterval(-3, 3))
	if a != expected {
		t.Errorf("Expected %v, got %v", expected, a)
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		rayT     Interval
		expected bool
	}{
		{"hit along -Z", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), NewInterval(0, math.Inf(1)), true},
		{"miss beside box", NewRay(NewVec3(2, 0, 5), NewVec3(0, 0, -1)), NewInterval(0, math.Inf(1)), false},
		{"pointing away", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), NewInterval(0, math.Inf(1)), false},
		{"range ends before box", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), NewInterval(0, 3), false},
		{"range starts after box", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), NewInterval(7, 10), false},
		{"origin inside box", NewRay(NewVec3(0.2, 0.3, -0.1), NewVec3(1, 2, 3)), NewInterval(0.001, math.Inf(1)), true},
		{"diagonal hit", NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1)), NewInterval(0, math.Inf(1)), true},
		{"parallel to slab inside", NewRay(NewVec3(0.5, 0.5, 5), NewVec3(0, 0, -1)), NewInterval(0, math.Inf(1)), true},
		{"parallel to slab outside", NewRay(NewVec3(0.5, 1.5, 5), NewVec3(0, 0, -1)), NewInterval(0, math.Inf(1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.rayT); got != tt.expected {
				t.Errorf("Hit() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

// clipSegment computes the ray/box overlap by clipping the segment against each
// pair of planes, treating axis-parallel rays explicitly.
func clipSegment(box AABB, ray Ray, rayT Interval) bool {
	lo, hi := rayT.Min, rayT.Max
	for axis := 0; axis < 3; axis++ {
		ax := box.AxisInterval(axis)
		o := ray.Origin.Axis(axis)
		d := ray.Direction.Axis(axis)
		if d == 0 {
			if o < ax.Min || o > ax.Max {
				return false
			}
			continue
		}
		near, far := (ax.Min-o)/d, (ax.Max-o)/d
		if near > far {
			near, far = far, near
		}
		lo = math.Max(lo, near)
		hi = math.Min(hi, far)
	}
	return lo < hi
}

func TestAABB_HitMatchesClipping(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	randVec := func(scale float64) Vec3 {
		return NewVec3((random.Float64()*2-1)*scale, (random.Float64()*2-1)*scale, (random.Float64()*2-1)*scale)
	}

	for i := 0; i < 5000; i++ {
		box := NewAABB(randVec(3), randVec(3))
		ray := NewRay(randVec(6), randVec(1))
		tMin := random.Float64() * 2
		rayT := NewInterval(tMin, tMin+random.Float64()*20)

		expected := clipSegment(box, ray, rayT)
		if got := box.Hit(ray, rayT); got != expected {
			t.Fatalf("case %d: Hit() = %v, clipping says %v (box=%v ray=%v rayT=%v)", i, got, expected, box, ray, rayT)
		}
	}
}

func TestMergeAABB_ContainsAndTight(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		a := NewAABB(NewVec3(random.Float64(), random.Float64(), random.Float64()),
			NewVec3(random.Float64()*5, random.Float64()*5, random.Float64()*5))
		b := NewAABB(NewVec3(-random.Float64(), -random.Float64(), -random.Float64()),
			NewVec3(random.Float64()*3, random.Float64()*3, random.Float64()*3))
		u := MergeAABB(a, b)

		for axis := 0; axis < 3; axis++ {
			ua, aa, ba := u.AxisInterval(axis), a.AxisInterval(axis), b.AxisInterval(axis)
			if ua.Min > aa.Min || ua.Min > ba.Min || ua.Max < aa.Max || ua.Max < ba.Max {
				t.Fatalf("Union %v does not contain %v and %v", u, a, b)
			}
			if ua.Min != math.Min(aa.Min, ba.Min) || ua.Max != math.Max(aa.Max, ba.Max) {
				t.Fatalf("Union %v is not tight for %v and %v", u, a, b)
			}
		}
	}

	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	if MergeAABB(EmptyAABB, box) != box {
		t.Error("EmptyAABB should be the identity for MergeAABB")
	}
}

func TestAABB_LongestAxis(t *testing.T) {
	tests := []struct {
		name     string
		size     Vec3
		expected int
	}{
		{"x longest", NewVec3(3, 1, 2), 0},
		{"y longest", NewVec3(1, 3, 2), 1},
		{"z longest", NewVec3(1, 2, 3), 2},
		{"x equals z picks z", NewVec3(3, 1, 3), 2},
		{"x equals y picks later", NewVec3(3, 3, 1), 1},
		{"cube picks z", NewVec3(1, 1, 1), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := NewAABB(Vec3{}, tt.size)
			if got := box.LongestAxis(); got != tt.expected {
				t.Errorf("LongestAxis() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestAABB_Center(t *testing.T) {
	box := NewAABB(NewVec3(-2, 0, 4), NewVec3(2, 6, 8))
	for axis, expected := range []float64{0, 3, 6} {
		if box.Center(axis) != expected {
			t.Errorf("Center(%d) = %f, expected %f", axis, box.Center(axis), expected)
		}
	}
}
