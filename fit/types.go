package fit

import (
	"github.com/rendercore/bvhmake/core"
	"github.com/rendercore/bvhmake/mathops"
)

// Fitter is the capability set the build engine needs from a bounding-
// volume kind (spec §4.2). BV is fit.AABox or fit.Ellipsoid.
type Fitter[BV any] interface {
	// FitLeaf builds a volume from a leaf slot, honoring
	// core.InvalidTriangle as an early terminator.
	FitLeaf(store *core.Store, triangles []core.TriangleIndex) (BV, error)

	// FitUnion returns the volume enclosing both a and b.
	FitUnion(a, b BV) BV

	// Surface returns the volume's surface area, used by SAH.
	Surface(bv BV) float64

	// Volume returns the volume's enclosed volume.
	Volume(bv BV) float64

	// Min/Max return the per-axis extent, used by build strategies that
	// need the cell's axis-aligned bounds.
	Min(bv BV, axis int) float64
	Max(bv BV, axis int) float64
}

// AABox is the axis-aligned-box bounding volume.
type AABox struct {
	Min mathops.Vec3
	Max mathops.Vec3
}

// Ellipsoid is the axis-aligned-ellipsoid bounding volume: an axis-aligned
// ellipsoid with the given center and per-axis semi-axis lengths (radii).
type Ellipsoid struct {
	Center mathops.Vec3
	Radius mathops.Vec3
}

// validTriangles collects the resolved vertex positions of every triangle
// in slot up to (not including) the first core.InvalidTriangle sentinel,
// which pads unused leaf capacity (spec §4.2).
func validTriangles(store *core.Store, slot []core.TriangleIndex) ([][3]mathops.Vec3, error) {
	out := make([][3]mathops.Vec3, 0, len(slot))
	for _, ti := range slot {
		if ti.IsInvalid() {
			break
		}
		tri := [3]mathops.Vec3{}
		for k := 0; k < 3; k++ {
			v := store.Vertex(int(ti.V[k])).Position
			tri[k] = mathops.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
		}
		out = append(out, tri)
	}
	if len(out) == 0 {
		return nil, ErrEmptyTriangleList
	}
	return out, nil
}
