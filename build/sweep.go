package build

import (
	"math"
	"sort"
)

// buildSweep implements the pure SAH sweep strategy (spec §4.3.3): the
// index order is fixed once, by Morton code, before recursion begins; every
// split thereafter picks the best position within the existing order via
// the shared Surface Area Heuristic sweep (spec §4.3.4), never re-sorting.
// Morton order already groups spatially close triangles, so any split
// position along it is a reasonable candidate — SAH then picks the best
// one cheaply, without an O(n log n) resort per recursion level.
func (b *Builder[BV]) buildSweep(indices []int) (uint32, error) {
	order := b.mortonSort(indices)

	var recurse func(lo, hi int) (uint32, error)
	recurse = func(lo, hi int) (uint32, error) {
		if err := b.checkCtx(); err != nil {
			return 0, err
		}
		size := hi - lo + 1
		if size <= 1 || size <= b.cfg.numPrimitives {
			tris := make([]int, size)
			copy(tris, order[lo:hi+1])
			return b.emitLeaf(tris)
		}

		parentBV, err := b.fitRange(order, lo, hi)
		if err != nil {
			return 0, err
		}
		s, err := b.sahSweepSplit(order, lo, hi, b.fitter.Surface(parentBV))
		if err != nil {
			return 0, err
		}

		left, err := recurse(lo, s)
		if err != nil {
			return 0, err
		}
		right, err := recurse(s+1, hi)
		if err != nil {
			return 0, err
		}
		return b.emitInner(left, right)
	}

	return recurse(0, len(order)-1)
}

// mortonSort returns indices reordered by ascending Morton (Z-order) code
// of each triangle's centroid, computed once against the minimum centroid
// over indices so every coordinate is non-negative (spec §4.3.3): IEEE-754
// bit patterns of non-negative floats compare in the same order as the
// floats themselves, so the classic bit-interleaving trick works directly
// on the float32 bit pattern without explicit interleaving (Chan's
// algorithm, used below in mortonLess).
func (b *Builder[BV]) mortonSort(indices []int) []int {
	sorted := make([]int, len(indices))
	copy(sorted, indices)
	if len(indices) == 0 {
		return sorted
	}

	min := b.centroids[indices[0]]
	for _, i := range indices[1:] {
		min = min.Min(b.centroids[i])
	}

	keyOf := make([][3]uint32, b.store.TriangleCount())
	for _, i := range indices {
		shifted := b.centroids[i].Sub(min)
		var key [3]uint32
		for axis := 0; axis < 3; axis++ {
			if shifted[axis] < 0 {
				shifted[axis] = 0
			}
			key[axis] = math.Float32bits(float32(shifted[axis]))
		}
		keyOf[i] = key
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return mortonLess(keyOf[sorted[i]], keyOf[sorted[j]])
	})
	return sorted
}

// mortonLess orders two 3D Morton keys without interleaving their bits
// (Chan, "A Simple Trick for Interleaving Bits"): the axis whose XOR'd key
// has the most significant differing bit decides the comparison.
func mortonLess(a, b [3]uint32) bool {
	j := 0
	var x uint32
	for k := 0; k < 3; k++ {
		y := a[k] ^ b[k]
		if x < y && x < (x^y) {
			j, x = k, y
		}
	}
	return a[j] < b[j]
}

// sahSweepSplit picks the split position in order[lo:hi+1] (inclusive) that
// minimizes the sum of the two children's SAH cost against parentSurface
// (spec §4.3.4). It sweeps once left-to-right accumulating a running union
// and once right-to-left, reusing the Pool's three reserved scratch slots
// (spec §4.1) as the running-left, running-right, and per-triangle working
// volumes rather than allocating fresh ones per call.
func (b *Builder[BV]) sahSweepSplit(order []int, lo, hi int, parentSurface float64) (int, error) {
	size := hi - lo + 1
	scratch := b.pool.Scratch()

	leftPtr, err := b.pool.BV(scratch.Left)
	if err != nil {
		return 0, err
	}
	rightPtr, err := b.pool.BV(scratch.Right)
	if err != nil {
		return 0, err
	}
	tempPtr, err := b.pool.BV(scratch.Temp)
	if err != nil {
		return 0, err
	}

	costL := make([]float64, size)
	costR := make([]float64, size)

	first, err := b.fitSingle(order[lo])
	if err != nil {
		return 0, err
	}
	*leftPtr = first
	if costL[0], err = sahCost(b.fitter.Surface(*leftPtr), parentSurface, 1, size-1, b.cfg.numPrimitives, b.cfg.sah); err != nil {
		return 0, err
	}
	for k := 1; k <= size-2; k++ {
		t, err := b.fitSingle(order[lo+k])
		if err != nil {
			return 0, err
		}
		*tempPtr = t
		*leftPtr = b.fitter.FitUnion(*leftPtr, *tempPtr)
		if costL[k], err = sahCost(b.fitter.Surface(*leftPtr), parentSurface, k+1, size-k-1, b.cfg.numPrimitives, b.cfg.sah); err != nil {
			return 0, err
		}
	}

	last, err := b.fitSingle(order[hi])
	if err != nil {
		return 0, err
	}
	*rightPtr = last
	if costR[size-1], err = sahCost(b.fitter.Surface(*rightPtr), parentSurface, 1, size-1, b.cfg.numPrimitives, b.cfg.sah); err != nil {
		return 0, err
	}
	for k := size - 2; k >= 1; k-- {
		t, err := b.fitSingle(order[lo+k])
		if err != nil {
			return 0, err
		}
		*tempPtr = t
		*rightPtr = b.fitter.FitUnion(*tempPtr, *rightPtr)
		nThis, nOther := size-k, k
		if costR[k], err = sahCost(b.fitter.Surface(*rightPtr), parentSurface, nThis, nOther, b.cfg.numPrimitives, b.cfg.sah); err != nil {
			return 0, err
		}
	}

	best, bestCost := 0, math.Inf(1)
	for s := 0; s <= size-2; s++ {
		if total := costL[s] + costR[s+1]; total < bestCost {
			best, bestCost = s, total
		}
	}
	return lo + best, nil
}
