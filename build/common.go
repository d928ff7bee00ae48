package build

import (
	"fmt"

	"github.com/rendercore/bvhmake/core"
	"github.com/rendercore/bvhmake/pool"
)

// emitLeaf allocates a leaf slot and its wrapping inner node for the
// triangles named by the original store indices in tris (spec §4.3's
// recursion termination: "allocate a leaf slot, allocate an inner node
// whose left child is LEAF_BIT|leaf_index and right is undefined, fit the
// leaf, return the inner-node index").
func (b *Builder[BV]) emitLeaf(tris []int) (uint32, error) {
	leafIdx, err := b.pool.NewLeaf()
	if err != nil {
		return 0, fmt.Errorf("build.emitLeaf: %w", err)
	}
	slot, err := b.pool.Leaf(leafIdx)
	if err != nil {
		return 0, fmt.Errorf("build.emitLeaf: %w", err)
	}
	if len(tris) > len(slot) {
		return 0, fmt.Errorf("build.emitLeaf: %d triangles exceeds leaf capacity %d", len(tris), len(slot))
	}
	for i, ti := range tris {
		slot[i] = b.store.TriangleIndexAt(ti)
	}

	innerIdx, err := b.pool.NewInner()
	if err != nil {
		return 0, fmt.Errorf("build.emitLeaf: %w", err)
	}
	node, err := b.pool.Inner(innerIdx)
	if err != nil {
		return 0, fmt.Errorf("build.emitLeaf: %w", err)
	}
	node.Left = pool.MakeLeafChild(leafIdx)
	node.Right = 0

	bv, err := b.fitter.FitLeaf(b.store, slot)
	if err != nil {
		return 0, fmt.Errorf("build.emitLeaf: %w", err)
	}
	bvPtr, err := b.pool.BV(innerIdx)
	if err != nil {
		return 0, fmt.Errorf("build.emitLeaf: %w", err)
	}
	*bvPtr = bv
	return innerIdx, nil
}

// emitInner allocates an inner node with the two given already-built
// children and unions their bounding volumes.
func (b *Builder[BV]) emitInner(left, right uint32) (uint32, error) {
	idx, err := b.pool.NewInner()
	if err != nil {
		return 0, fmt.Errorf("build.emitInner: %w", err)
	}
	node, err := b.pool.Inner(idx)
	if err != nil {
		return 0, fmt.Errorf("build.emitInner: %w", err)
	}
	node.Left, node.Right = left, right

	leftBV, err := b.pool.BV(left)
	if err != nil {
		return 0, fmt.Errorf("build.emitInner: %w", err)
	}
	rightBV, err := b.pool.BV(right)
	if err != nil {
		return 0, fmt.Errorf("build.emitInner: %w", err)
	}
	union := b.fitter.FitUnion(*leftBV, *rightBV)

	bvPtr, err := b.pool.BV(idx)
	if err != nil {
		return 0, fmt.Errorf("build.emitInner: %w", err)
	}
	*bvPtr = union
	return idx, nil
}

// fitRange fits the volume enclosing every triangle named by
// indices[lo:hi+1] (an inclusive range), reusing Fitter.FitLeaf since it
// only cares about a list of triangle index tuples, not leaf capacity.
func (b *Builder[BV]) fitRange(indices []int, lo, hi int) (BV, error) {
	slot := make([]core.TriangleIndex, hi-lo+1)
	for i := lo; i <= hi; i++ {
		slot[i-lo] = b.store.TriangleIndexAt(indices[i])
	}
	bv, err := b.fitter.FitLeaf(b.store, slot)
	if err != nil {
		var zero BV
		return zero, fmt.Errorf("build.fitRange: %w", err)
	}
	return bv, nil
}

// fitSingle fits the volume of exactly one triangle, named by its original
// store index.
func (b *Builder[BV]) fitSingle(triIndex int) (BV, error) {
	slot := []core.TriangleIndex{b.store.TriangleIndexAt(triIndex)}
	bv, err := b.fitter.FitLeaf(b.store, slot)
	if err != nil {
		var zero BV
		return zero, fmt.Errorf("build.fitSingle: %w", err)
	}
	return bv, nil
}
