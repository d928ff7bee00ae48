package build_test

import (
	"context"
	"testing"

	"github.com/rendercore/bvhmake/build"
	"github.com/rendercore/bvhmake/fit"
	"github.com/rendercore/bvhmake/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten_RootEscapeIsSentinel(t *testing.T) {
	store := buildStore(t, 25)
	cfg := build.DefaultConfig(build.WithMethod(build.MethodKDTree), build.WithNumPrimitives(8))
	b, err := build.New[fit.AABox](store, fit.AABoxFitter{}, cfg)
	require.NoError(t, err)
	root, err := b.Build(context.Background())
	require.NoError(t, err)

	nodes, volumes, err := build.Flatten(b.Pool(), root)
	require.NoError(t, err)
	require.Equal(t, len(nodes), len(volumes))
	require.NotEmpty(t, nodes)

	assert.Equal(t, build.NoParent, nodes[0].Parent)
	assert.Equal(t, uint32(len(nodes)), nodes[0].Escape)
}

func TestFlatten_EveryEscapeWithinBoundsOrSentinel(t *testing.T) {
	store := buildStore(t, 37)
	cfg := build.DefaultConfig(build.WithMethod(build.MethodSweep), build.WithNumPrimitives(8))
	b, err := build.New[fit.AABox](store, fit.AABoxFitter{}, cfg)
	require.NoError(t, err)
	root, err := b.Build(context.Background())
	require.NoError(t, err)

	nodes, _, err := build.Flatten(b.Pool(), root)
	require.NoError(t, err)

	for i, n := range nodes {
		assert.Greater(t, n.Escape, uint32(i), "node %d: escape must move traversal forward", i)
		assert.LessOrEqual(t, n.Escape, uint32(len(nodes)))
		if !pool.IsLeafChild(n.FirstChild) {
			assert.Equal(t, uint32(i+1), n.FirstChild, "inner node %d: left child is always the next preorder slot", i)
			assert.Less(t, n.FirstChild, uint32(len(nodes)))
		}
	}
}

func TestFlatten_LeavesReachableFromFirstChild(t *testing.T) {
	store := buildStore(t, 9)
	cfg := build.DefaultConfig(build.WithMethod(build.MethodKDTree), build.WithNumPrimitives(8))
	b, err := build.New[fit.AABox](store, fit.AABoxFitter{}, cfg)
	require.NoError(t, err)
	root, err := b.Build(context.Background())
	require.NoError(t, err)

	nodes, _, err := build.Flatten(b.Pool(), root)
	require.NoError(t, err)

	leafCount := 0
	for _, n := range nodes {
		if pool.IsLeafChild(n.FirstChild) {
			leafCount++
			leafIdx := pool.LeafIndex(n.FirstChild)
			slot, err := b.Pool().Leaf(leafIdx)
			require.NoError(t, err)
			assert.NotEmpty(t, slot)
		}
	}
	assert.Equal(t, b.Pool().LeafCount(), leafCount)
}
