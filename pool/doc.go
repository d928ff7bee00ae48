// Package pool pre-allocates the contiguous inner-node, bounding-volume,
// and leaf arrays a BVH build writes into, and hands out monotonically
// increasing indices from them.
//
// A Pool is created once per build from the triangle count and the active
// build strategy's node-count estimate (spec §4.1): inner-node upper bound
// ≈ 4·triangleCount/NUM_PRIMITIVES, leaf upper bound ≈
// 2·triangleCount/NUM_PRIMITIVES. Three additional inner-node/bounding-
// volume slots are reserved at the top of the pool for the SAH sweep's
// transient left/right/temporary running volumes (Scratch); they are
// never reachable from a child pointer in the finished tree.
//
// Exceeding either estimate is a build invariant violation (spec §7): the
// estimate was wrong, not the input, so NewInner/NewLeaf return
// ErrNodeCountExceeded/ErrLeafCountExceeded instead of silently growing —
// callers propagate the error up through the recursion rather than
// producing a broken tree.
package pool
