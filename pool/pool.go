package pool

import (
	"fmt"

	"github.com/rendercore/bvhmake/core"
)

// EstimateCounts applies the build-strategy formulas of spec §4.1:
// inner-node upper bound ≈ 4·triangleCount/numPrimitives, leaf upper
// bound ≈ 2·triangleCount/numPrimitives, both rounded up. Every build
// strategy uses this so the three build methods agree on pool sizing.
func EstimateCounts(triangleCount, numPrimitives int) (innerEstimate, leafEstimate int) {
	innerEstimate = ceilDiv(4*triangleCount, numPrimitives)
	leafEstimate = ceilDiv(2*triangleCount, numPrimitives)
	if innerEstimate < 1 {
		innerEstimate = 1
	}
	if leafEstimate < 1 {
		leafEstimate = 1
	}
	return innerEstimate, leafEstimate
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// Scratch names the three top-of-pool inner-node/bounding-volume slots
// SAH sweep uses as transient left-running, right-running, and per-
// triangle temporary volumes (spec §4.1, §4.3.4). They are allocated once
// per Pool, outside the normal NewInner counter, and are never reachable
// from a child pointer in the finished tree.
type Scratch struct {
	Left, Right, Temp uint32
}

// Pool pre-allocates the inner-node, bounding-volume, and leaf arrays for
// one build and hands out monotonically increasing indices from them. BV
// is the active bounding-volume type (fit.AABox or fit.Ellipsoid); it is a
// type parameter rather than an interface so the hot SAH loop never pays
// for virtual dispatch reading/writing volumes (spec §9).
type Pool[BV any] struct {
	nodes  []Node
	bvs    []BV
	leaves [][]core.TriangleIndex

	numPrimitives int

	innerCount, innerLimit int
	leafCount, leafLimit   int

	scratch Scratch
}

// New allocates a Pool sized from triangleCount and numPrimitives per
// EstimateCounts, plus the three reserved scratch slots.
func New[BV any](triangleCount, numPrimitives int) (*Pool[BV], error) {
	if triangleCount <= 0 || numPrimitives <= 0 {
		return nil, ErrInvalidEstimate
	}
	innerEstimate, leafEstimate := EstimateCounts(triangleCount, numPrimitives)
	capacity := innerEstimate + 3

	p := &Pool[BV]{
		nodes:         make([]Node, capacity),
		bvs:           make([]BV, capacity),
		leaves:        make([][]core.TriangleIndex, leafEstimate),
		numPrimitives: numPrimitives,
		innerLimit:    innerEstimate,
		leafLimit:     leafEstimate,
		scratch: Scratch{
			Left:  uint32(innerEstimate),
			Right: uint32(innerEstimate + 1),
			Temp:  uint32(innerEstimate + 2),
		},
	}
	for i := range p.leaves {
		p.leaves[i] = newEmptyLeaf(numPrimitives)
	}
	return p, nil
}

func newEmptyLeaf(numPrimitives int) []core.TriangleIndex {
	slot := make([]core.TriangleIndex, numPrimitives)
	for i := range slot {
		slot[i] = core.InvalidTriangle
	}
	return slot
}

// NumPrimitives returns the leaf capacity (NUM_PRIMITIVES) this Pool was
// configured with.
func (p *Pool[BV]) NumPrimitives() int { return p.numPrimitives }

// Scratch returns the three reserved scratch slot indices.
func (p *Pool[BV]) Scratch() Scratch { return p.scratch }

// InnerCount returns the number of inner nodes allocated so far
// (excluding the three scratch slots).
func (p *Pool[BV]) InnerCount() int { return p.innerCount }

// LeafCount returns the number of leaves allocated so far.
func (p *Pool[BV]) LeafCount() int { return p.leafCount }

// InnerCapacity returns the pre-build inner-node estimate (excluding
// scratch slots).
func (p *Pool[BV]) InnerCapacity() int { return p.innerLimit }

// LeafCapacity returns the pre-build leaf estimate.
func (p *Pool[BV]) LeafCapacity() int { return p.leafLimit }

// NewInner allocates the next inner-node index. Returns ErrNodeCountExceeded
// once the pre-build estimate (excluding scratch slots) is exhausted.
func (p *Pool[BV]) NewInner() (uint32, error) {
	if p.innerCount >= p.innerLimit {
		return 0, fmt.Errorf("Pool.NewInner: %w (estimate=%d)", ErrNodeCountExceeded, p.innerLimit)
	}
	idx := p.innerCount
	p.innerCount++
	return uint32(idx), nil
}

// NewLeaf allocates the next leaf index. Returns ErrLeafCountExceeded once
// the pre-build estimate is exhausted.
func (p *Pool[BV]) NewLeaf() (uint32, error) {
	if p.leafCount >= p.leafLimit {
		return 0, fmt.Errorf("Pool.NewLeaf: %w (estimate=%d)", ErrLeafCountExceeded, p.leafLimit)
	}
	idx := p.leafCount
	p.leafCount++
	return uint32(idx), nil
}

// Inner returns a mutable pointer to the inner node at index, including
// scratch-slot indices.
func (p *Pool[BV]) Inner(index uint32) (*Node, error) {
	if int(index) >= len(p.nodes) {
		return nil, fmt.Errorf("Pool.Inner(%d): %w", index, ErrIndexOutOfRange)
	}
	return &p.nodes[index], nil
}

// Leaf returns the mutable leaf slot at index, a slice of length
// NumPrimitives padded with core.InvalidTriangle.
func (p *Pool[BV]) Leaf(index uint32) ([]core.TriangleIndex, error) {
	if int(index) >= len(p.leaves) {
		return nil, fmt.Errorf("Pool.Leaf(%d): %w", index, ErrIndexOutOfRange)
	}
	return p.leaves[index], nil
}

// BV returns a mutable pointer to the bounding volume at index, including
// scratch-slot indices.
func (p *Pool[BV]) BV(index uint32) (*BV, error) {
	if int(index) >= len(p.bvs) {
		return nil, fmt.Errorf("Pool.BV(%d): %w", index, ErrIndexOutOfRange)
	}
	return &p.bvs[index], nil
}
