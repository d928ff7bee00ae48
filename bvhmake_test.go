package bvhmake_test

import (
	"bytes"
	"context"
	"testing"

	bvhmake "github.com/rendercore/bvhmake"
	"github.com/rendercore/bvhmake/build"
	"github.com/rendercore/bvhmake/core"
	"github.com/rendercore/bvhmake/filefmt"
	"github.com/rendercore/bvhmake/fit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type convertScene struct {
	verts []core.Vertex
	tris  []core.TriangleIndex
}

func (s convertScene) Vertices() []core.Vertex         { return s.verts }
func (s convertScene) Triangles() []core.TriangleIndex { return s.tris }
func (s convertScene) Materials() []string             { return []string{"default"} }

func makeConvertScene(n int) convertScene {
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
	return convertScene{verts: verts, tris: tris}
}

func TestConvert_AABoxRoundTrip(t *testing.T) {
	src := makeConvertScene(12)
	cfg := build.DefaultConfig(build.WithMethod(build.MethodKDTree), build.WithNumPrimitives(4))

	var buf bytes.Buffer
	err := bvhmake.Convert[fit.AABox](context.Background(), &buf, src, fit.AABoxFitter{}, cfg)
	require.NoError(t, err)

	scene, err := filefmt.ReadScene(context.Background(), &buf, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, scene.Materials)
	assert.NotEmpty(t, scene.Hierarchy)
	assert.Equal(t, filefmt.BoundingVolumeAABox, scene.BoundingKind)
	assert.NotEmpty(t, scene.AABoxes)
}

func TestConvert_EllipsoidRoundTrip(t *testing.T) {
	src := makeConvertScene(6)
	cfg := build.DefaultConfig(build.WithMethod(build.MethodSweep), build.WithNumPrimitives(4))

	var buf bytes.Buffer
	fitter := fit.EllipsoidFitter{}
	err := bvhmake.Convert[fit.Ellipsoid](context.Background(), &buf, src, fitter, cfg)
	require.NoError(t, err)

	scene, err := filefmt.ReadScene(context.Background(), &buf, 4)
	require.NoError(t, err)
	assert.NotEmpty(t, scene.Hierarchy)
	assert.Equal(t, filefmt.BoundingVolumeEllipsoid, scene.BoundingKind)
	assert.NotEmpty(t, scene.Ellipsoids)
}
