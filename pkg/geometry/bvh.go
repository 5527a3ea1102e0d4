package geometry

import (
	"math/rand/v2"
	"slices"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

type bvhNodeKind uint8

const (
	bvhEmpty bvhNodeKind = iota
	bvhLeaf
	bvhBinary
)

const noNode int32 = -1

// bvhNode lives in the BVH arena; children are referenced by index
type bvhNode struct {
	kind   bvhNodeKind
	volume core.BoundingVolume
	object int32 // index into BVH.objects for leaves
	left   int32
	right  int32
}

// BVH represents a Bounding Volume Hierarchy over scene objects.
// It is immutable after NewBVH and safe for concurrent queries.
type BVH struct {
	nodes   []bvhNode
	objects []*core.Object
	root    int32
}

// BVHStats summarizes the shape of a built tree
type BVHStats struct {
	Nodes    int
	Leaves   int
	MaxDepth int
}

// NewBVH builds a hierarchy over objects. Split axes are drawn from random,
// which makes construction reproducible for a fixed seed; a nil random uses
// a fixed-seed generator.
func NewBVH(objects []*core.Object, random *rand.Rand) *BVH {
	if random == nil {
		random = rand.New(rand.NewPCG(0, 0))
	}

	bvh := &BVH{
		objects: slices.Clone(objects),
		root:    noNode,
	}
	if len(objects) == 0 {
		bvh.nodes = []bvhNode{{kind: bvhEmpty, left: noNode, right: noNode, object: noNode}}
		bvh.root = 0
		return bvh
	}

	bvh.nodes = make([]bvhNode, 0, 2*len(objects)-1)
	order := make([]int32, len(objects))
	for i := range order {
		order[i] = int32(i)
	}
	bvh.root = bvh.build(order, random)
	return bvh
}

// build appends the subtree for the given object indices and returns its root index
func (bvh *BVH) build(order []int32, random *rand.Rand) int32 {
	switch len(order) {
	case 1:
		return bvh.leaf(order[0])
	case 2:
		return bvh.binary(bvh.leaf(order[0]), bvh.leaf(order[1]))
	}

	axis := random.IntN(3)
	slices.SortStableFunc(order, func(a, b int32) int {
		ea := bvh.objects[a].BoundingVolume().Extreme(axis)
		eb := bvh.objects[b].BoundingVolume().Extreme(axis)
		switch {
		case ea < eb:
			return -1
		case ea > eb:
			return 1
		}
		return 0
	})

	mid := len(order) / 2
	left := bvh.build(order[:mid], random)
	right := bvh.build(order[mid:], random)
	return bvh.binary(left, right)
}

func (bvh *BVH) leaf(object int32) int32 {
	bvh.nodes = append(bvh.nodes, bvhNode{
		kind:   bvhLeaf,
		volume: bvh.objects[object].BoundingVolume(),
		object: object,
		left:   noNode,
		right:  noNode,
	})
	return int32(len(bvh.nodes) - 1)
}

func (bvh *BVH) binary(left, right int32) int32 {
	bvh.nodes = append(bvh.nodes, bvhNode{
		kind:   bvhBinary,
		volume: core.EncompassVolumes(bvh.nodes[left].volume, bvh.nodes[right].volume),
		object: noNode,
		left:   left,
		right:  right,
	})
	return int32(len(bvh.nodes) - 1)
}

// TryHit returns the nearest hit with k in (kMin, kMax)
func (bvh *BVH) TryHit(ray core.Ray, kMin, kMax float64) (core.HitRecord, bool) {
	return bvh.tryHitNode(bvh.root, ray, kMin, kMax)
}

func (bvh *BVH) tryHitNode(index int32, ray core.Ray, kMin, kMax float64) (core.HitRecord, bool) {
	node := &bvh.nodes[index]
	if node.kind == bvhEmpty || !node.volume.Hit(ray, kMin, kMax) {
		return core.HitRecord{}, false
	}

	if node.kind == bvhLeaf {
		return bvh.objects[node.object].TryHit(ray, kMin, kMax)
	}

	// B is only searched in front of A's hit, so a B hit is always the closer one
	hitA, okA := bvh.tryHitNode(node.left, ray, kMin, kMax)
	if okA {
		if hitB, okB := bvh.tryHitNode(node.right, ray, kMin, hitA.K); okB {
			return hitB, true
		}
		return hitA, true
	}
	return bvh.tryHitNode(node.right, ray, kMin, kMax)
}

// AnyHit reports whether any object is hit with k in (kMin, kMax)
func (bvh *BVH) AnyHit(ray core.Ray, kMin, kMax float64) bool {
	return bvh.anyHitNode(bvh.root, ray, kMin, kMax)
}

func (bvh *BVH) anyHitNode(index int32, ray core.Ray, kMin, kMax float64) bool {
	node := &bvh.nodes[index]
	if node.kind == bvhEmpty || !node.volume.Hit(ray, kMin, kMax) {
		return false
	}
	if node.kind == bvhLeaf {
		return bvh.objects[node.object].FastTryHit(ray, kMin, kMax)
	}
	return bvh.anyHitNode(node.left, ray, kMin, kMax) || bvh.anyHitNode(node.right, ray, kMin, kMax)
}

// Bounds returns the root bounding volume
func (bvh *BVH) Bounds() core.BoundingVolume {
	return bvh.nodes[bvh.root].volume
}

// Objects returns the indexed objects in their original order
func (bvh *BVH) Objects() []*core.Object {
	return bvh.objects
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	var stats BVHStats
	bvh.collectStats(bvh.root, 1, &stats)
	return stats
}

func (bvh *BVH) collectStats(index int32, depth int, stats *BVHStats) {
	node := &bvh.nodes[index]
	if node.kind == bvhEmpty {
		return
	}
	stats.Nodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)
	if node.kind == bvhLeaf {
		stats.Leaves++
		return
	}
	bvh.collectStats(node.left, depth+1, stats)
	bvh.collectStats(node.right, depth+1, stats)
}
