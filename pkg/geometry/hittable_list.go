package geometry

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
)

// HittableList is a flat collection tested by linear scan. The zero value is an empty list.
type HittableList struct {
	objects []Hittable
	bbox    core.AABB
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	list := &HittableList{}
	for _, obj := range objects {
		list.Add(obj)
	}
	return list
}

// Add appends an object and grows the bounding box to cover it
func (l *HittableList) Add(object Hittable) {
	if len(l.objects) == 0 {
		l.bbox = object.BoundingBox()
	} else {
		l.bbox = core.MergeAABB(l.bbox, object.BoundingBox())
	}
	l.objects = append(l.objects, object)
}

// Clear removes every object
func (l *HittableList) Clear() {
	l.objects = nil
	l.bbox = core.AABB{}
}

// Objects returns the list contents; callers must not modify the slice
func (l *HittableList) Objects() []Hittable {
	return l.objects
}

// Len returns the number of objects
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Hit returns the closest intersection among all objects
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval, hit *material.HitRecord) bool {
	var tempRec material.HitRecord
	hitAnything := false
	closestSoFar := rayT.Max

	for _, object := range l.objects {
		if object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar), &tempRec) {
			hitAnything = true
			closestSoFar = tempRec.T
			*hit = tempRec
		}
	}

	return hitAnything
}

// BoundingBox returns the union of all object boxes, or EmptyAABB for an empty list
func (l *HittableList) BoundingBox() core.AABB {
	if len(l.objects) == 0 {
		return core.EmptyAABB
	}
	return l.bbox
}
