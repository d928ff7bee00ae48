package pool

import "errors"

// ErrNodeCountExceeded is returned by NewInner when the build strategy's
// inner-node estimate is exhausted. This is fatal: the estimate promised
// an upper bound and undershot it.
var ErrNodeCountExceeded = errors.New("pool: inner node count estimate exceeded")

// ErrLeafCountExceeded is returned by NewLeaf when the leaf estimate is
// exhausted.
var ErrLeafCountExceeded = errors.New("pool: leaf count estimate exceeded")

// ErrIndexOutOfRange is returned by Inner/Leaf/BV when given an index
// outside the allocated range.
var ErrIndexOutOfRange = errors.New("pool: index out of range")

// ErrInvalidEstimate is returned by New when triangleCount or
// numPrimitives is non-positive.
var ErrInvalidEstimate = errors.New("pool: invalid pool size estimate")
