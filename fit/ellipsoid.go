package fit

import (
	"math"
	"math/rand"

	"github.com/rendercore/bvhmake/core"
	"github.com/rendercore/bvhmake/mathops"
)

// defaultSwarmIterations is the fixed iteration budget for the center
// search (spec §9: "15 in the reference" — not a convergence guarantee,
// a budget).
const defaultSwarmIterations = 15

const defaultSwarmParticles = 8

// swarmSeed is fixed (not time-derived) so the center search — and
// therefore the whole build — is deterministic given the same input
// order (spec §4.3's determinism requirement, spec §5's reproducibility
// note).
const swarmSeed = 0x5eed

const sqrt3 = 1.7320508075688772

// EllipsoidFitter fits axis-aligned ellipsoids (spec §4.2). Iterations
// overrides the swarm optimizer's fixed iteration count; zero means use
// defaultSwarmIterations.
type EllipsoidFitter struct {
	Iterations int
}

func (f EllipsoidFitter) iterations() int {
	if f.Iterations > 0 {
		return f.Iterations
	}
	return defaultSwarmIterations
}

// FitLeaf searches for a center within the triangle-vertex AABB that
// minimizes the surface of fitFromCenter, using a bounded-box swarm
// optimizer with a fixed iteration count (spec §4.2).
func (f EllipsoidFitter) FitLeaf(store *core.Store, triangles []core.TriangleIndex) (Ellipsoid, error) {
	tris, err := validTriangles(store, triangles)
	if err != nil {
		return Ellipsoid{}, err
	}
	points := make([]mathops.Vec3, 0, len(tris)*3)
	boxMin, boxMax := tris[0][0], tris[0][0]
	for _, tri := range tris {
		for _, v := range tri {
			points = append(points, v)
			boxMin = boxMin.Min(v)
			boxMax = boxMax.Max(v)
		}
	}

	center := f.searchCenter(points, boxMin, boxMax)
	ell := fitFromCenter(center, points)
	return ell, checkEllipsoid(ell)
}

// searchCenter runs a small particle-swarm optimization bounded to
// [boxMin, boxMax], minimizing AABoxFitter-free ellipsoid surface area.
// Deterministic: seeded from a fixed constant, never from time or global
// state.
func (f EllipsoidFitter) searchCenter(points []mathops.Vec3, boxMin, boxMax mathops.Vec3) mathops.Vec3 {
	if len(points) == 1 {
		return points[0]
	}
	rng := rand.New(rand.NewSource(swarmSeed))

	const inertia = 0.7
	const cognitive = 1.4
	const social = 1.4

	type particle struct {
		pos, vel, best mathops.Vec3
		bestScore      float64
	}

	extent := boxMax.Sub(boxMin)
	particles := make([]particle, defaultSwarmParticles)
	globalBest := boxMin.Add(boxMax).Scale(0.5) // start at box center
	globalScore := math.Inf(1)

	for i := range particles {
		pos := mathops.Vec3{
			boxMin[0] + rng.Float64()*extent[0],
			boxMin[1] + rng.Float64()*extent[1],
			boxMin[2] + rng.Float64()*extent[2],
		}
		score := surfaceAt(pos, points)
		particles[i] = particle{pos: pos, best: pos, bestScore: score}
		if score < globalScore {
			globalScore = score
			globalBest = pos
		}
	}

	for iter := 0; iter < f.iterations(); iter++ {
		for i := range particles {
			p := &particles[i]
			for axis := 0; axis < 3; axis++ {
				r1, r2 := rng.Float64(), rng.Float64()
				p.vel[axis] = inertia*p.vel[axis] +
					cognitive*r1*(p.best[axis]-p.pos[axis]) +
					social*r2*(globalBest[axis]-p.pos[axis])
			}
			p.pos = p.pos.Add(p.vel)
			// Clamp to the bounded box (spec: "bounded-box swarm
			// optimizer").
			p.pos = p.pos.Max(boxMin).Min(boxMax)

			score := surfaceAt(p.pos, points)
			if score < p.bestScore {
				p.bestScore = score
				p.best = p.pos
			}
			if score < globalScore {
				globalScore = score
				globalBest = p.pos
			}
		}
	}

	return globalBest
}

func surfaceAt(center mathops.Vec3, points []mathops.Vec3) float64 {
	return ellipsoidSurface(fitFromCenter(center, points))
}

// fitFromCenter starts with a zero-radius ellipsoid at center and enlarges
// each semi-axis only when a vertex lies outside it. The enlargement rule
// radius[i] >= sqrt(D)*|vertex[i]-center[i]|, where D is the number of
// axes on which the vertex deviates from center, yields the minimum-volume
// axis-aligned enclosing ellipsoid for a single point and is conservative
// for multiple points (spec §4.2).
func fitFromCenter(center mathops.Vec3, points []mathops.Vec3) Ellipsoid {
	var radius mathops.Vec3
	for _, p := range points {
		diff := p.Sub(center)
		d := 0
		for axis := 0; axis < 3; axis++ {
			if diff[axis] != 0 {
				d++
			}
		}
		if d == 0 {
			continue
		}
		sq := math.Sqrt(float64(d))
		for axis := 0; axis < 3; axis++ {
			if diff[axis] == 0 {
				continue
			}
			need := sq * math.Abs(diff[axis])
			if need > radius[axis] {
				radius[axis] = need
			}
		}
	}
	return Ellipsoid{Center: center, Radius: radius}
}

// FitUnion reconstructs each ellipsoid's inscribed box (half-extents =
// radii/sqrt3), unions the two boxes, and fits a tight axis-aligned
// ellipsoid around the union box (spec §4.2). This avoids unbounded
// growth across repeated bottom-up merges while still enclosing both
// inputs.
func (EllipsoidFitter) FitUnion(a, b Ellipsoid) Ellipsoid {
	aMin, aMax := inscribedBox(a)
	bMin, bMax := inscribedBox(b)
	unionMin := aMin.Min(bMin)
	unionMax := aMax.Max(bMax)

	center := unionMin.Add(unionMax).Scale(0.5)
	extent := unionMax.Sub(unionMin)
	radius := extent.Scale(sqrt3 / 2)
	return Ellipsoid{Center: center, Radius: radius}
}

func inscribedBox(e Ellipsoid) (min, max mathops.Vec3) {
	half := e.Radius.Scale(1 / sqrt3)
	return e.Center.Sub(half), e.Center.Add(half)
}

// Surface returns Thomsen's well-known approximation for a general
// ellipsoid's surface area (there is no closed form).
func (EllipsoidFitter) Surface(bv Ellipsoid) float64 { return ellipsoidSurface(bv) }

func ellipsoidSurface(bv Ellipsoid) float64 {
	const p = 1.6075
	a, b, c := bv.Radius[0], bv.Radius[1], bv.Radius[2]
	ap := math.Pow(a, p)
	bp := math.Pow(b, p)
	cp := math.Pow(c, p)
	inner := (ap*bp + ap*cp + bp*cp) / 3
	return 4 * math.Pi * math.Pow(inner, 1/p)
}

// Volume returns the exact ellipsoid volume (4/3)*pi*a*b*c.
func (EllipsoidFitter) Volume(bv Ellipsoid) float64 {
	return (4.0 / 3.0) * math.Pi * bv.Radius[0] * bv.Radius[1] * bv.Radius[2]
}

// Min returns center[axis]-radius[axis].
func (EllipsoidFitter) Min(bv Ellipsoid, axis int) float64 { return bv.Center[axis] - bv.Radius[axis] }

// Max returns center[axis]+radius[axis].
func (EllipsoidFitter) Max(bv Ellipsoid, axis int) float64 { return bv.Center[axis] + bv.Radius[axis] }

func checkEllipsoid(e Ellipsoid) error {
	for axis := 0; axis < 3; axis++ {
		if math.IsNaN(e.Radius[axis]) || e.Radius[axis] < 0 {
			return ErrDegenerateVolume
		}
	}
	return nil
}
