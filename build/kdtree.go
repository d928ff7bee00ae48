package build

import "sort"

// buildKDTree implements the median kd-split strategy (spec §4.3.1): three
// presorted index arrays (one per axis), split on the largest-extent axis
// at the index median, and only the two co-axis arrays are reordered per
// split — the split axis's own array is already correctly divided by
// position.
//
// Ties at the split plane are resolved with a boolean left/right vector
// computed from sorted position rather than by perturbing centroid values
// in place; both give the exact (size+1)/2 left-partition count the
// algorithm requires, and the boolean vector avoids a temporary-mutation/
// restore step (an accepted alternative, spec §9).
func (b *Builder[BV]) buildKDTree(indices []int) (uint32, error) {
	n := len(indices)
	if n == 0 {
		return 0, ErrEmptyRange
	}

	var sorted [3][]int
	for axis := 0; axis < 3; axis++ {
		s := make([]int, n)
		copy(s, indices)
		ax := axis
		sort.SliceStable(s, func(i, j int) bool {
			return b.centroids[s[i]][ax] < b.centroids[s[j]][ax]
		})
		sorted[axis] = s
	}

	isLeft := make([]bool, b.store.TriangleCount())
	buf := make([]int, n)

	var recurse func(lo, hi int) (uint32, error)
	recurse = func(lo, hi int) (uint32, error) {
		if err := b.checkCtx(); err != nil {
			return 0, err
		}
		size := hi - lo + 1
		if size <= 1 || size <= b.cfg.numPrimitives {
			tris := make([]int, size)
			copy(tris, sorted[0][lo:hi+1])
			return b.emitLeaf(tris)
		}

		var extent [3]float64
		for axis := 0; axis < 3; axis++ {
			extent[axis] = b.centroids[sorted[axis][hi]][axis] - b.centroids[sorted[axis][lo]][axis]
		}
		d := 0
		for axis := 1; axis < 3; axis++ {
			if extent[axis] > extent[d] {
				d = axis
			}
		}

		m := (lo + hi) / 2
		for i := lo; i <= hi; i++ {
			isLeft[sorted[d][i]] = i <= m
		}
		co1, co2 := (d+1)%3, (d+2)%3
		stablePartition(sorted[co1], lo, hi, isLeft, buf)
		stablePartition(sorted[co2], lo, hi, isLeft, buf)

		left, err := recurse(lo, m)
		if err != nil {
			return 0, err
		}
		right, err := recurse(m+1, hi)
		if err != nil {
			return 0, err
		}
		return b.emitInner(left, right)
	}

	return recurse(0, n-1)
}

// stablePartition reorders arr[lo:hi+1] in place so every element with
// isLeft[elem] true comes first, each half in its original relative order,
// using buf as scratch.
func stablePartition(arr []int, lo, hi int, isLeft []bool, buf []int) {
	k := lo
	for i := lo; i <= hi; i++ {
		if isLeft[arr[i]] {
			buf[k] = arr[i]
			k++
		}
	}
	for i := lo; i <= hi; i++ {
		if !isLeft[arr[i]] {
			buf[k] = arr[i]
			k++
		}
	}
	copy(arr[lo:hi+1], buf[lo:hi+1])
}
