package build

import (
	"sort"

	"github.com/rendercore/bvhmake/mathops"
)

// buildLDS implements the largest-dimension-split strategy (spec §4.3.2):
// diagonalize the cell's centroid covariance, split along the eigenvector
// of largest eigenvalue, and pick the split point either at the index
// median or by the shared SAH sweep, per Config.ldsSplit.
//
// A cell's covariance can fail to diagonalize (mathops.Eigen3x3 returns an
// error) or — numerically, never in exact arithmetic, but Jacobi rounding
// can produce a small negative value — yield a negative eigenvalue. Either
// case falls back to splitting on the cell's largest axis-aligned extent,
// the same rule buildKDTree uses (spec §9).
func (b *Builder[BV]) buildLDS(indices []int) (uint32, error) {
	var recurse func(idx []int) (uint32, error)
	recurse = func(idx []int) (uint32, error) {
		if err := b.checkCtx(); err != nil {
			return 0, err
		}
		n := len(idx)
		if n <= 1 || n <= b.cfg.numPrimitives {
			return b.emitLeaf(idx)
		}

		direction, fallbackAxis, usedFallback := b.ldsSplitDirection(idx)

		proj := make([]float64, n)
		for i, ti := range idx {
			if usedFallback {
				proj[i] = b.centroids[ti][fallbackAxis]
			} else {
				proj[i] = b.centroids[ti].Dot(direction)
			}
		}
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool { return proj[order[i]] < proj[order[j]] })

		sortedIdx := make([]int, n)
		for i, o := range order {
			sortedIdx[i] = idx[o]
		}

		split := (n - 1) / 2
		if b.cfg.ldsSplit == LDSSplitSAH {
			parentBV, err := b.fitRange(sortedIdx, 0, n-1)
			if err != nil {
				return 0, err
			}
			s, err := b.sahSweepSplit(sortedIdx, 0, n-1, b.fitter.Surface(parentBV))
			if err != nil {
				return 0, err
			}
			split = s
		}

		left, err := recurse(sortedIdx[:split+1])
		if err != nil {
			return 0, err
		}
		right, err := recurse(sortedIdx[split+1:])
		if err != nil {
			return 0, err
		}
		return b.emitInner(left, right)
	}

	return recurse(indices)
}

// ldsSplitDirection returns the unit eigenvector of idx's centroid
// covariance with the largest eigenvalue, or reports a fallback axis when
// diagonalization fails or produces a meaningfully negative eigenvalue.
func (b *Builder[BV]) ldsSplitDirection(idx []int) (direction mathops.Vec3, fallbackAxis int, usedFallback bool) {
	n := len(idx)
	var mean mathops.Vec3
	for _, i := range idx {
		mean = mean.Add(b.centroids[i])
	}
	mean = mean.Scale(1.0 / float64(n))

	var cov [3][3]float64
	for _, i := range idx {
		d := b.centroids[i].Sub(mean)
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				cov[r][c] += d[r] * d[c]
			}
		}
	}
	denom := float64(n - 1)
	if denom < 1 {
		denom = 1
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			cov[r][c] /= denom
		}
	}

	const negTol = -1e-6
	eigenvalues, eigenvectors, err := mathops.Eigen3x3(cov, 0)
	if err != nil || eigenvalues[0] < negTol || eigenvalues[1] < negTol || eigenvalues[2] < negTol {
		return mathops.Vec3{}, b.largestExtentAxis(idx), true
	}

	best := 0
	for k := 1; k < 3; k++ {
		if eigenvalues[k] > eigenvalues[best] {
			best = k
		}
	}
	dir := mathops.Vec3{eigenvectors[0][best], eigenvectors[1][best], eigenvectors[2][best]}
	length := dir.Length()
	if length == 0 {
		return mathops.Vec3{}, b.largestExtentAxis(idx), true
	}
	return dir.Scale(1 / length), 0, false
}

// largestExtentAxis returns the axis (lowest index wins ties) with the
// largest centroid extent over idx.
func (b *Builder[BV]) largestExtentAxis(idx []int) int {
	min, max := b.centroids[idx[0]], b.centroids[idx[0]]
	for _, i := range idx[1:] {
		min = min.Min(b.centroids[i])
		max = max.Max(b.centroids[i])
	}
	extent := max.Sub(min)
	axis := 0
	for k := 1; k < 3; k++ {
		if extent[k] > extent[axis] {
			axis = k
		}
	}
	return axis
}
