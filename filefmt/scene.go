package filefmt

import (
	"context"
	"fmt"
	"io"

	"github.com/rendercore/bvhmake/build"
	"github.com/rendercore/bvhmake/core"
	"github.com/rendercore/bvhmake/fit"
	"github.com/rendercore/bvhmake/pool"
)

// WriteScene writes the whole chunked file for one build: materials and
// vertices first, then the flattened hierarchy and its per-node bounding
// volumes, then leaf nodes, then triangles last (spec §6, doc.go). BV must
// be fit.AABox or fit.Ellipsoid; any other type is rejected.
//
// ctx is accepted only to propagate a caller's span/deadline (spec §8): no
// write here ever blocks waiting on anything but w.
func WriteScene[BV any](ctx context.Context, w io.Writer, store *core.Store, nodes []build.FlatNode, volumes []BV, p *pool.Pool[BV]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	wr := NewWriter(w)
	if err := wr.WriteMaterialRef(store.Materials()); err != nil {
		return err
	}

	vertices := make([]core.Vertex, store.VertexCount())
	for i := range vertices {
		vertices[i] = store.Vertex(i)
	}
	if err := wr.WriteVertices(vertices); err != nil {
		return err
	}

	if err := wr.WriteHierarchy(nodes); err != nil {
		return err
	}
	if err := writeBoundingVolumes(wr, volumes); err != nil {
		return err
	}

	leaves := make([][]core.TriangleIndex, p.LeafCount())
	for i := range leaves {
		leaf, err := p.Leaf(uint32(i))
		if err != nil {
			return fmt.Errorf("filefmt.WriteScene: %w", err)
		}
		leaves[i] = leaf
	}
	if err := wr.WriteLeafNodes(leaves, p.NumPrimitives()); err != nil {
		return err
	}

	triangles := make([]core.TriangleIndex, store.TriangleCount())
	for i := range triangles {
		triangles[i] = store.TriangleIndexAt(i)
	}
	return wr.WriteTriangles(triangles)
}

// writeBoundingVolumes dispatches on BV's concrete type: the on-disk chunk
// name and layout differ between an axis-aligned box and an ellipsoid, so
// one of them must be picked at the call site rather than generically
// encoded (spec §9's bounding-volume kinds are not wire-compatible).
func writeBoundingVolumes[BV any](wr *Writer, volumes []BV) error {
	switch vols := any(volumes).(type) {
	case []fit.AABox:
		return wr.WriteBoundingAABox(vols)
	case []fit.Ellipsoid:
		return wr.WriteBoundingEllipsoid(vols)
	default:
		return fmt.Errorf("filefmt.WriteScene: %w", ErrUnsupportedBoundingVolume)
	}
}

// BoundingVolumeKind identifies which bounding-volume chunk a scene file
// actually carries, discovered from the chunk names present in the stream
// rather than chosen by the caller ahead of time.
type BoundingVolumeKind int

const (
	BoundingVolumeNone BoundingVolumeKind = iota
	BoundingVolumeAABox
	BoundingVolumeEllipsoid
)

// Scene holds one file's fully decoded contents (spec §6), the inverse of
// WriteScene. Exactly one of AABoxes/Ellipsoids is populated, indicated by
// BoundingKind.
type Scene struct {
	Materials    []string
	Vertices     []core.Vertex
	Hierarchy    []build.FlatNode
	Leaves       [][]core.TriangleIndex
	Triangles    []core.TriangleIndex
	BoundingKind BoundingVolumeKind
	AABoxes      []fit.AABox
	Ellipsoids   []fit.Ellipsoid
}

// ReadScene reads a whole chunked file. Chunks are looked up by name, not
// by position (spec §6), so this reads whichever bounding_* chunk is
// actually present and reports its kind via Scene.BoundingKind — the
// caller never has to know ahead of time whether the file was written
// with AABox or Ellipsoid bounding volumes.
func ReadScene(ctx context.Context, r io.Reader, numPrimitives int) (Scene, error) {
	if err := ctx.Err(); err != nil {
		return Scene{}, err
	}
	rd, err := NewReader(r)
	if err != nil {
		return Scene{}, err
	}

	var scene Scene
	if scene.Materials, err = rd.ReadMaterialRef(); err != nil {
		return Scene{}, err
	}
	if scene.Vertices, err = rd.ReadVertices(); err != nil {
		return Scene{}, err
	}
	if scene.Hierarchy, err = rd.ReadHierarchy(); err != nil {
		return Scene{}, err
	}

	switch {
	case rd.Has(ChunkBoundingAABox):
		if scene.AABoxes, err = rd.ReadBoundingAABox(); err != nil {
			return Scene{}, err
		}
		scene.BoundingKind = BoundingVolumeAABox
	case rd.Has(ChunkBoundingEllipsoid):
		if scene.Ellipsoids, err = rd.ReadBoundingEllipsoid(); err != nil {
			return Scene{}, err
		}
		scene.BoundingKind = BoundingVolumeEllipsoid
	default:
		return Scene{}, fmt.Errorf("filefmt.ReadScene: %w", ErrUnsupportedBoundingVolume)
	}

	if scene.Leaves, err = rd.ReadLeafNodes(numPrimitives); err != nil {
		return Scene{}, err
	}
	if scene.Triangles, err = rd.ReadTriangles(); err != nil {
		return Scene{}, err
	}
	return scene, nil
}
