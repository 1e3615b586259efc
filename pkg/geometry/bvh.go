package geometry

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
)

// ErrEmptySpan is returned when a BVH is requested over no objects
var ErrEmptySpan = errors.New("bvh: cannot build over an empty object span")

// BVHNode is a binary bounding volume hierarchy node. Children are either further
// nodes or the primitives themselves.
type BVHNode struct {
	left   Hittable
	right  Hittable
	single bool // left and right are the same object
	bbox   core.AABB
}

// NewBVHNode builds a hierarchy over objects. The input slice is copied, so the
// caller's ordering is preserved.
func NewBVHNode(objects []Hittable) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, ErrEmptySpan
	}

	// Copy so concurrent builders never share the backing array
	span := make([]Hittable, len(objects))
	copy(span, objects)

	return buildBVH(span), nil
}

// NewBVHFromList builds a hierarchy over the contents of a list
func NewBVHFromList(list *HittableList) (*BVHNode, error) {
	return NewBVHNode(list.Objects())
}

// buildBVH splits the span at its median along the longest axis of its bounds.
// span must be non-empty and is reordered in place.
func buildBVH(span []Hittable) *BVHNode {
	bbox := core.EmptyAABB
	for _, obj := range span {
		bbox = core.MergeAABB(bbox, obj.BoundingBox())
	}

	node := &BVHNode{bbox: bbox}

	switch len(span) {
	case 1:
		node.left = span[0]
		node.right = span[0]
		node.single = true
	case 2:
		node.left = span[0]
		node.right = span[1]
	default:
		sortByAxis(span, bbox.LongestAxis())
		mid := len(span) / 2
		node.left = buildBVH(span[:mid])
		node.right = buildBVH(span[mid:])
	}

	return node
}

// sortByAxis sorts objects by their bounding box center along axis
func sortByAxis(objects []Hittable, axis int) {
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].BoundingBox().Center(axis) < objects[j].BoundingBox().Center(axis)
	})
}

// Hit tests the node's box, then the left child, then the right child limited to
// hits closer than anything the left child found
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval, hit *material.HitRecord) bool {
	if !n.bbox.Hit(ray, rayT) {
		return false
	}

	hitLeft := n.left.Hit(ray, rayT, hit)
	if n.single {
		// A second query on the same object over (min, t) cannot find a closer root
		return hitLeft
	}

	rightMax := rayT.Max
	if hitLeft {
		rightMax = hit.T
	}
	hitRight := n.right.Hit(ray, core.NewInterval(rayT.Min, rightMax), hit)

	return hitLeft || hitRight
}

// BoundingBox returns the union of every object below this node
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// BVHStats describes the shape of a hierarchy
type BVHStats struct {
	Nodes      int // interior BVHNode count
	Primitives int // distinct leaf objects
	MaxDepth   int // deepest BVHNode, root is depth 0
}

// Stats walks the hierarchy and reports its size and depth
func (n *BVHNode) Stats() BVHStats {
	var stats BVHStats
	n.collectStats(0, &stats)
	return stats
}

func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	children := []Hittable{n.left}
	if !n.single {
		children = append(children, n.right)
	}
	for _, child := range children {
		if inner, ok := child.(*BVHNode); ok {
			inner.collectStats(depth+1, stats)
		} else {
			stats.Primitives++
		}
	}
}
