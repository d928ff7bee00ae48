package filefmt_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rendercore/bvhmake/build"
	"github.com/rendercore/bvhmake/core"
	"github.com/rendercore/bvhmake/filefmt"
	"github.com/rendercore/bvhmake/fit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sceneSource struct {
	verts []core.Vertex
	tris  []core.TriangleIndex
}

func (s sceneSource) Vertices() []core.Vertex         { return s.verts }
func (s sceneSource) Triangles() []core.TriangleIndex { return s.tris }
func (s sceneSource) Materials() []string             { return []string{"default"} }

func makeSceneStore(t *testing.T, n int) *core.Store {
	t.Helper()
	verts := make([]core.Vertex, 0, n*3)
	tris := make([]core.TriangleIndex, 0, n)
	for i := 0; i < n; i++ {
		base := float32(i) * 10
		verts = append(verts,
			core.Vertex{Position: [3]float32{base, 0, 0}},
			core.Vertex{Position: [3]float32{base + 1, 0, 0}},
			core.Vertex{Position: [3]float32{base, 1, 0}},
		)
		tris = append(tris, core.TriangleIndex{V: [3]uint32{uint32(i * 3), uint32(i*3 + 1), uint32(i*3 + 2)}})
	}
	store, err := core.NewStore(sceneSource{verts: verts, tris: tris})
	require.NoError(t, err)
	return store
}

func TestWriteSceneThenReadScene_AABoxRoundTrip(t *testing.T) {
	store := makeSceneStore(t, 20)
	cfg := build.DefaultConfig(build.WithMethod(build.MethodSweep), build.WithNumPrimitives(4))
	b, err := build.New[fit.AABox](store, fit.AABoxFitter{}, cfg)
	require.NoError(t, err)
	root, err := b.Build(context.Background())
	require.NoError(t, err)
	nodes, volumes, err := build.Flatten(b.Pool(), root)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, filefmt.WriteScene(context.Background(), &buf, store, nodes, volumes, b.Pool()))

	scene, err := filefmt.ReadScene(context.Background(), &buf, b.Pool().NumPrimitives())
	require.NoError(t, err)

	assert.Equal(t, store.Materials(), scene.Materials)
	assert.Len(t, scene.Vertices, store.VertexCount())
	assert.Len(t, scene.Triangles, store.TriangleCount())
	assert.Equal(t, nodes, scene.Hierarchy)
	assert.Equal(t, filefmt.BoundingVolumeAABox, scene.BoundingKind)
	assert.Len(t, scene.AABoxes, len(volumes))
	assert.Empty(t, scene.Ellipsoids)
	assert.Len(t, scene.Leaves, b.Pool().LeafCount())
}

func TestWriteSceneThenReadScene_EllipsoidRoundTrip(t *testing.T) {
	store := makeSceneStore(t, 12)
	cfg := build.DefaultConfig(build.WithMethod(build.MethodKDTree), build.WithNumPrimitives(4))
	b, err := build.New[fit.Ellipsoid](store, fit.EllipsoidFitter{}, cfg)
	require.NoError(t, err)
	root, err := b.Build(context.Background())
	require.NoError(t, err)
	nodes, volumes, err := build.Flatten(b.Pool(), root)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, filefmt.WriteScene(context.Background(), &buf, store, nodes, volumes, b.Pool()))

	scene, err := filefmt.ReadScene(context.Background(), &buf, b.Pool().NumPrimitives())
	require.NoError(t, err)

	assert.Equal(t, filefmt.BoundingVolumeEllipsoid, scene.BoundingKind)
	assert.Len(t, scene.Ellipsoids, len(volumes))
	assert.Empty(t, scene.AABoxes)
}

// TestReadScene_ChunksInAnyOrder proves the reader indexes by chunk name,
// not by stream position (spec §6): writing chunks in the reverse of
// WriteScene's own order must still read back correctly.
func TestReadScene_ChunksInAnyOrder(t *testing.T) {
	store := makeSceneStore(t, 6)
	cfg := build.DefaultConfig(build.WithMethod(build.MethodSweep), build.WithNumPrimitives(4))
	b, err := build.New[fit.AABox](store, fit.AABoxFitter{}, cfg)
	require.NoError(t, err)
	root, err := b.Build(context.Background())
	require.NoError(t, err)
	nodes, volumes, err := build.Flatten(b.Pool(), root)
	require.NoError(t, err)

	vertices := make([]core.Vertex, store.VertexCount())
	for i := range vertices {
		vertices[i] = store.Vertex(i)
	}
	triangles := make([]core.TriangleIndex, store.TriangleCount())
	for i := range triangles {
		triangles[i] = store.TriangleIndexAt(i)
	}
	leaves := make([][]core.TriangleIndex, b.Pool().LeafCount())
	for i := range leaves {
		leaf, err := b.Pool().Leaf(uint32(i))
		require.NoError(t, err)
		leaves[i] = leaf
	}

	var buf bytes.Buffer
	w := filefmt.NewWriter(&buf)
	// Deliberately the reverse of WriteScene's order: triangles first,
	// materialref last.
	require.NoError(t, w.WriteTriangles(triangles))
	require.NoError(t, w.WriteLeafNodes(leaves, b.Pool().NumPrimitives()))
	require.NoError(t, w.WriteBoundingAABox(volumes))
	require.NoError(t, w.WriteHierarchy(nodes))
	require.NoError(t, w.WriteVertices(vertices))
	require.NoError(t, w.WriteMaterialRef(store.Materials()))

	scene, err := filefmt.ReadScene(context.Background(), &buf, b.Pool().NumPrimitives())
	require.NoError(t, err)
	assert.Equal(t, store.Materials(), scene.Materials)
	assert.Equal(t, vertices, scene.Vertices)
	assert.Equal(t, nodes, scene.Hierarchy)
	assert.Equal(t, filefmt.BoundingVolumeAABox, scene.BoundingKind)
	assert.Len(t, scene.AABoxes, len(volumes))
	assert.Equal(t, leaves, scene.Leaves)
	assert.Equal(t, triangles, scene.Triangles)
}

func TestHeaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	h := filefmt.Header{Name: "vertices", NumElements: 3, ElementSize: 32}
	require.NoError(t, filefmt.WriteHeader(&buf, h))

	got, err := filefmt.ReadHeader(&buf)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestHeaderNameTooLong(t *testing.T) {
	var buf bytes.Buffer
	name := make([]byte, 32)
	for i := range name {
		name[i] = 'a'
	}
	err := filefmt.WriteHeader(&buf, filefmt.Header{Name: string(name)})
	assert.ErrorIs(t, err, filefmt.ErrChunkNameTooLong)
}

func TestVerticesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := []core.Vertex{
		{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 1, 0}, Texcoord: [2]float32{0.5, 0.25}},
		{Position: [3]float32{-1, -2, -3}},
	}
	w := filefmt.NewWriter(&buf)
	require.NoError(t, w.WriteVertices(want))

	r, err := filefmt.NewReader(&buf)
	require.NoError(t, err)
	got, err := r.ReadVertices()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTrianglesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := []core.TriangleIndex{
		{V: [3]uint32{0, 1, 2}, Material: 0},
		core.InvalidTriangle,
	}
	w := filefmt.NewWriter(&buf)
	require.NoError(t, w.WriteTriangles(want))

	r, err := filefmt.NewReader(&buf)
	require.NoError(t, err)
	got, err := r.ReadTriangles()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMaterialRefRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := []string{"default", "glass", "metal"}
	w := filefmt.NewWriter(&buf)
	require.NoError(t, w.WriteMaterialRef(want))

	r, err := filefmt.NewReader(&buf)
	require.NoError(t, err)
	got, err := r.ReadMaterialRef()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHierarchyRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := []build.FlatNode{
		{Parent: build.NoParent, FirstChild: 1, Escape: 3},
		{Parent: 0, FirstChild: 2, Escape: 2},
		{Parent: 1, FirstChild: 0x80000000, Escape: 2},
	}
	w := filefmt.NewWriter(&buf)
	require.NoError(t, w.WriteHierarchy(want))

	r, err := filefmt.NewReader(&buf)
	require.NoError(t, err)
	got, err := r.ReadHierarchy()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLeafNodesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	leaf := make([]core.TriangleIndex, 8)
	leaf[0] = core.TriangleIndex{V: [3]uint32{0, 1, 2}}
	for i := 1; i < 8; i++ {
		leaf[i] = core.InvalidTriangle
	}
	want := [][]core.TriangleIndex{leaf}

	w := filefmt.NewWriter(&buf)
	require.NoError(t, w.WriteLeafNodes(want, 8))

	r, err := filefmt.NewReader(&buf)
	require.NoError(t, err)
	got, err := r.ReadLeafNodes(8)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBoundingAABoxRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := []fit.AABox{
		{Min: vec(0, 0, 0), Max: vec(1, 1, 1)},
		{Min: vec(-5, -5, -5), Max: vec(5, 5, 5)},
	}
	w := filefmt.NewWriter(&buf)
	require.NoError(t, w.WriteBoundingAABox(want))

	r, err := filefmt.NewReader(&buf)
	require.NoError(t, err)
	got, err := r.ReadBoundingAABox()
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].Min[0], got[i].Min[0], 1e-6)
		assert.InDelta(t, want[i].Max[2], got[i].Max[2], 1e-6)
	}
}

func TestBoundingEllipsoidRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := []fit.Ellipsoid{{Center: vec(1, 2, 3), Radius: vec(4, 5, 6)}}
	w := filefmt.NewWriter(&buf)
	require.NoError(t, w.WriteBoundingEllipsoid(want))

	r, err := filefmt.NewReader(&buf)
	require.NoError(t, err)
	got, err := r.ReadBoundingEllipsoid()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, want[0].Center[1], got[0].Center[1], 1e-6)
	assert.InDelta(t, want[0].Radius[2], got[0].Radius[2], 1e-6)
}

func TestReadChunkNotFound(t *testing.T) {
	var buf bytes.Buffer
	w := filefmt.NewWriter(&buf)
	require.NoError(t, w.WriteTriangles(nil))

	r, err := filefmt.NewReader(&buf)
	require.NoError(t, err)
	_, err = r.ReadVertices()
	assert.ErrorIs(t, err, filefmt.ErrChunkNotFound)
}

func vec(x, y, z float64) (v [3]float64) {
	v[0], v[1], v[2] = x, y, z
	return v
}
