package fit

import (
	"math"

	"github.com/rendercore/bvhmake/core"
)

// AABoxFitter fits classical axis-aligned boxes via min/max accumulation
// (spec §4.2).
type AABoxFitter struct{}

// FitLeaf accumulates the min/max of every vertex of every valid triangle
// in the leaf slot.
func (AABoxFitter) FitLeaf(store *core.Store, triangles []core.TriangleIndex) (AABox, error) {
	tris, err := validTriangles(store, triangles)
	if err != nil {
		return AABox{}, err
	}
	box := AABox{Min: tris[0][0], Max: tris[0][0]}
	for _, tri := range tris {
		for _, v := range tri {
			box.Min = box.Min.Min(v)
			box.Max = box.Max.Max(v)
		}
	}
	return box, checkBox(box)
}

// FitUnion returns the componentwise min/max of the two input boxes.
func (AABoxFitter) FitUnion(a, b AABox) AABox {
	return AABox{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

// Surface returns the standard AABB surface area 2(xy+yz+zx).
func (AABoxFitter) Surface(bv AABox) float64 {
	d := bv.Max.Sub(bv.Min)
	return 2 * (d[0]*d[1] + d[1]*d[2] + d[2]*d[0])
}

// Volume returns the box volume dx*dy*dz.
func (AABoxFitter) Volume(bv AABox) float64 {
	d := bv.Max.Sub(bv.Min)
	return d[0] * d[1] * d[2]
}

// Min returns the box's lower bound on axis.
func (AABoxFitter) Min(bv AABox, axis int) float64 { return bv.Min[axis] }

// Max returns the box's upper bound on axis.
func (AABoxFitter) Max(bv AABox, axis int) float64 { return bv.Max[axis] }

// checkBox asserts min<=max on every axis (spec §4.2's required
// correctness check). Degenerate (zero-area) triangles are accepted and
// produce min==max, never min>max or NaN.
func checkBox(box AABox) error {
	for axis := 0; axis < 3; axis++ {
		if math.IsNaN(box.Min[axis]) || math.IsNaN(box.Max[axis]) {
			return ErrDegenerateVolume
		}
		if box.Min[axis] > box.Max[axis] {
			return ErrDegenerateVolume
		}
	}
	return nil
}
