package build

import "math"

// sahCost computes the Surface Area Heuristic cost of a candidate child
// volume against its parent (spec §4.3.4):
//
//	cost = C_trav * (childSurface/parentSurface)
//	     + C_under * max(0, numPrimitives-nThis)/numPrimitives
//	     + C_imbal * (1 - min(nThis,nOther)/max(nThis,nOther))^8
//
// The traversal term rewards a small child relative to its parent; the
// underfill term discourages building a leaf-sized child well below
// capacity; the imbalance term discourages a lopsided split. The result is
// required to land in [0,3] given the reference constants; sahCost returns
// ErrCostOutOfRange if it does not, since that signals a logic bug rather
// than an unusual but legal input.
func sahCost(childSurface, parentSurface float64, nThis, nOther, numPrimitives int, c SAHConstants) (float64, error) {
	trav := c.CTrav * (childSurface / parentSurface)

	underfill := 0.0
	if d := numPrimitives - nThis; d > 0 {
		underfill = c.CUnder * float64(d) / float64(numPrimitives)
	}

	small, large := float64(nThis), float64(nOther)
	if small > large {
		small, large = large, small
	}
	imbalance := c.CImbal * math.Pow(1-small/large, 8)

	cost := trav + underfill + imbalance
	if cost < 0 || cost > 3 || math.IsNaN(cost) {
		return 0, ErrCostOutOfRange
	}
	return cost, nil
}
