package build_test

import (
	"context"
	"testing"

	"github.com/rendercore/bvhmake/build"
	"github.com/rendercore/bvhmake/core"
	"github.com/rendercore/bvhmake/fit"
	"github.com/rendercore/bvhmake/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gridSource struct {
	verts []core.Vertex
	tris  []core.TriangleIndex
}

func (g gridSource) Vertices() []core.Vertex         { return g.verts }
func (g gridSource) Triangles() []core.TriangleIndex { return g.tris }
func (g gridSource) Materials() []string             { return []string{"default"} }

// makeGridSource builds n well-separated, non-degenerate triangles spaced
// 10 units apart along x, each a unit right triangle in the z=0 plane.
func makeGridSource(n int) gridSource {
	var g gridSource
	for i := 0; i < n; i++ {
		ox := float32(i) * 10
		base := uint32(len(g.verts))
		g.verts = append(g.verts,
			core.Vertex{Position: [3]float32{ox, 0, 0}},
			core.Vertex{Position: [3]float32{ox + 1, 0, 0}},
			core.Vertex{Position: [3]float32{ox, 1, 0}},
		)
		g.tris = append(g.tris, core.TriangleIndex{V: [3]uint32{base, base + 1, base + 2}})
	}
	return g
}

func buildStore(t *testing.T, n int) *core.Store {
	t.Helper()
	store, err := core.NewStore(makeGridSource(n))
	require.NoError(t, err)
	return store
}

func TestBuild_SingleTriangle_AllMethods(t *testing.T) {
	store := buildStore(t, 1)
	for _, method := range []build.Method{build.MethodKDTree, build.MethodLDS, build.MethodSweep} {
		cfg := build.DefaultConfig(build.WithMethod(method), build.WithNumPrimitives(8))
		b, err := build.New[fit.AABox](store, fit.AABoxFitter{}, cfg)
		require.NoError(t, err)
		root, err := b.Build(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, b.Pool().InnerCount())
		assert.Equal(t, 1, b.Pool().LeafCount())

		node, err := b.Pool().Inner(root)
		require.NoError(t, err)
		assert.True(t, pool.IsLeafChild(node.Left))
		assert.Equal(t, uint32(0), pool.LeafIndex(node.Left))
	}
}

func TestBuild_ExactlyNumPrimitives_NoSplit(t *testing.T) {
	store := buildStore(t, 8)
	cfg := build.DefaultConfig(build.WithMethod(build.MethodKDTree), build.WithNumPrimitives(8))
	b, err := build.New[fit.AABox](store, fit.AABoxFitter{}, cfg)
	require.NoError(t, err)
	_, err = b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, b.Pool().InnerCount())
	assert.Equal(t, 1, b.Pool().LeafCount())
}

func TestBuild_NinePrimitives_SplitsIntoTwoLeaves(t *testing.T) {
	for _, method := range []build.Method{build.MethodKDTree, build.MethodLDS, build.MethodSweep} {
		store := buildStore(t, 9)
		cfg := build.DefaultConfig(build.WithMethod(method), build.WithNumPrimitives(8))
		b, err := build.New[fit.AABox](store, fit.AABoxFitter{}, cfg)
		require.NoError(t, err)
		_, err = b.Build(context.Background())
		require.NoError(t, err, "method=%s", method)
		assert.Equal(t, 2, b.Pool().LeafCount(), "method=%s", method)
		assert.Equal(t, 3, b.Pool().InnerCount(), "method=%s", method)
	}
}

func TestBuild_CoplanarGrid_NoPanicAndEnclosesAll(t *testing.T) {
	store := buildStore(t, 64)
	for _, method := range []build.Method{build.MethodKDTree, build.MethodLDS, build.MethodSweep} {
		cfg := build.DefaultConfig(build.WithMethod(method), build.WithNumPrimitives(8))
		b, err := build.New[fit.AABox](store, fit.AABoxFitter{}, cfg)
		require.NoError(t, err)
		root, err := b.Build(context.Background())
		require.NoError(t, err, "method=%s", method)

		rootBV, err := b.Pool().BV(root)
		require.NoError(t, err)
		assert.LessOrEqual(t, rootBV.Min[0], float64(0), "method=%s", method)
		assert.GreaterOrEqual(t, rootBV.Max[0], float64(63*10+1), "method=%s", method)
	}
}

func TestBuild_Deterministic_SameInputSameTree(t *testing.T) {
	store := buildStore(t, 37)
	cfg := build.DefaultConfig(build.WithMethod(build.MethodSweep), build.WithNumPrimitives(8))

	b1, err := build.New[fit.AABox](store, fit.AABoxFitter{}, cfg)
	require.NoError(t, err)
	root1, err := b1.Build(context.Background())
	require.NoError(t, err)

	b2, err := build.New[fit.AABox](store, fit.AABoxFitter{}, cfg)
	require.NoError(t, err)
	root2, err := b2.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, root1, root2)
	assert.Equal(t, b1.Pool().InnerCount(), b2.Pool().InnerCount())
	assert.Equal(t, b1.Pool().LeafCount(), b2.Pool().LeafCount())

	node1, err := b1.Pool().Inner(root1)
	require.NoError(t, err)
	node2, err := b2.Pool().Inner(root2)
	require.NoError(t, err)
	assert.Equal(t, *node1, *node2)
}

func TestBuild_UnknownMethod(t *testing.T) {
	store := buildStore(t, 1)
	cfg := build.DefaultConfig(build.WithMethod("bogus"))
	_, err := build.New[fit.AABox](store, fit.AABoxFitter{}, cfg)
	assert.ErrorIs(t, err, build.ErrUnknownMethod)
}
