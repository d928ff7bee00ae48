package pool

// LeafBit marks the high bit of an in-memory Node.Left (or an on-disk
// hierarchy entry's firstChild): when set, the lower 31 bits index the
// leaf array instead of the inner-node array.
const LeafBit uint32 = 1 << 31

// Node is the in-memory inner-node representation built by recursion:
// Left/Right are inner-node indices, except that LeafBit set on Left
// means the node has exactly one child, a leaf, indexed by Left&^LeafBit;
// Right is undefined in that case (spec §3).
type Node struct {
	Left  uint32
	Right uint32
}

// IsLeafChild reports whether child (a Node.Left or Node.Right value)
// refers to a leaf rather than an inner node.
func IsLeafChild(child uint32) bool { return child&LeafBit != 0 }

// LeafIndex extracts the leaf-array index from a leaf child reference.
// Callers must first check IsLeafChild.
func LeafIndex(child uint32) uint32 { return child &^ LeafBit }

// MakeLeafChild packs a leaf index into a child reference with LeafBit set.
func MakeLeafChild(leafIndex uint32) uint32 { return LeafBit | leafIndex }
