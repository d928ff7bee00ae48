package build

import (
	"fmt"

	"github.com/rendercore/bvhmake/pool"
)

// NoParent marks the root FlatNode's Parent field: the all-bits-set
// pattern, consistent with core.InvalidIndex, since the root has none.
const NoParent uint32 = 0xFFFFFFFF

// FlatNode is one entry of the on-disk stackless-traversal layout
// (spec §4.4): Parent is this node's parent flat index (NoParent for the
// root); FirstChild is either the flat index of this node's left child, or
// — when pool.IsLeafChild(FirstChild) — a leaf-array index; Escape is the
// flat index to resume traversal at if this node's whole subtree is
// skipped (a ray miss, or a leaf fully processed).
type FlatNode struct {
	Parent     uint32
	FirstChild uint32
	Escape     uint32
}

// Flatten converts the in-memory {left,right} tree rooted at root into the
// on-disk {parent,firstChild,escape} layout (spec §4.4), returning the
// flattened nodes and their bounding volumes in matching preorder, so a
// GPU traverser can index both arrays by the same position.
//
// Escape exploits contiguous preorder layout: skipping a subtree always
// means resuming at "the node immediately after this entire subtree",
// which is exactly this node's own flat index plus its subtree's node
// count — independent of what that next node actually is (a sibling, or
// an ancestor's sibling, or nothing at all). The root's escape therefore
// comes out to len(nodes), one past the end: the natural end-of-traversal
// sentinel.
func Flatten[BV any](p *pool.Pool[BV], root uint32) ([]FlatNode, []BV, error) {
	var nodes []FlatNode
	var orig []uint32
	if _, _, err := flattenNode(p, root, NoParent, &nodes, &orig); err != nil {
		return nil, nil, fmt.Errorf("build.Flatten: %w", err)
	}

	volumes := make([]BV, len(nodes))
	for i, o := range orig {
		bv, err := p.BV(o)
		if err != nil {
			return nil, nil, fmt.Errorf("build.Flatten: %w", err)
		}
		volumes[i] = *bv
	}
	return nodes, volumes, nil
}

// flattenNode assigns nodeIdx's subtree a contiguous block of preorder
// positions in nodes, returning its own flat index and the size (node
// count) of its subtree.
func flattenNode[BV any](p *pool.Pool[BV], nodeIdx, parentFlat uint32, nodes *[]FlatNode, orig *[]uint32) (myFlat, size uint32, err error) {
	myFlat = uint32(len(*nodes))
	*nodes = append(*nodes, FlatNode{Parent: parentFlat})
	*orig = append(*orig, nodeIdx)

	node, err := p.Inner(nodeIdx)
	if err != nil {
		return 0, 0, err
	}

	if pool.IsLeafChild(node.Left) {
		(*nodes)[myFlat].FirstChild = node.Left
		(*nodes)[myFlat].Escape = myFlat + 1
		return myFlat, 1, nil
	}

	leftFlat, leftSize, err := flattenNode(p, node.Left, myFlat, nodes, orig)
	if err != nil {
		return 0, 0, err
	}
	(*nodes)[myFlat].FirstChild = leftFlat

	_, rightSize, err := flattenNode(p, node.Right, myFlat, nodes, orig)
	if err != nil {
		return 0, 0, err
	}

	total := 1 + leftSize + rightSize
	(*nodes)[myFlat].Escape = myFlat + total
	return myFlat, total, nil
}
