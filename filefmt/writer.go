package filefmt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/rendercore/bvhmake/build"
	"github.com/rendercore/bvhmake/core"
	"github.com/rendercore/bvhmake/fit"
)

// Writer sequentially appends chunks to an underlying io.Writer (spec §6).
// Chunk order is the caller's responsibility; Writer only encodes.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

func putFloat32(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
}

func putUint32(buf []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], v)
}

// WriteVertices writes the "vertices" chunk: position, normal, texcoord
// per vertex, each component a little-endian float32 (spec §6).
func (wr *Writer) WriteVertices(vertices []core.Vertex) error {
	if err := WriteHeader(wr.w, Header{Name: ChunkVertices, NumElements: uint32(len(vertices)), ElementSize: vertexElementSize}); err != nil {
		return err
	}
	buf := make([]byte, vertexElementSize)
	for _, v := range vertices {
		putFloat32(buf, 0, v.Position[0])
		putFloat32(buf, 4, v.Position[1])
		putFloat32(buf, 8, v.Position[2])
		putFloat32(buf, 12, v.Normal[0])
		putFloat32(buf, 16, v.Normal[1])
		putFloat32(buf, 20, v.Normal[2])
		putFloat32(buf, 24, v.Texcoord[0])
		putFloat32(buf, 28, v.Texcoord[1])
		if _, err := wr.w.Write(buf); err != nil {
			return fmt.Errorf("filefmt.WriteVertices: %w", err)
		}
	}
	return nil
}

// WriteTriangles writes the "triangles" chunk: three vertex indices plus a
// material id per triangle, each a little-endian uint32.
func (wr *Writer) WriteTriangles(triangles []core.TriangleIndex) error {
	if err := WriteHeader(wr.w, Header{Name: ChunkTriangles, NumElements: uint32(len(triangles)), ElementSize: triangleElementSize}); err != nil {
		return err
	}
	buf := make([]byte, triangleElementSize)
	for _, t := range triangles {
		putUint32(buf, 0, t.V[0])
		putUint32(buf, 4, t.V[1])
		putUint32(buf, 8, t.V[2])
		putUint32(buf, 12, t.Material)
		if _, err := wr.w.Write(buf); err != nil {
			return fmt.Errorf("filefmt.WriteTriangles: %w", err)
		}
	}
	return nil
}

// WriteMaterialRef writes the "materialref" chunk: one NUL-padded 32-byte
// name per material, in Store.Materials order.
func (wr *Writer) WriteMaterialRef(names []string) error {
	if err := WriteHeader(wr.w, Header{Name: ChunkMaterialRef, NumElements: uint32(len(names)), ElementSize: materialElementSize}); err != nil {
		return err
	}
	for _, name := range names {
		if len(name) >= materialElementSize {
			return fmt.Errorf("filefmt.WriteMaterialRef(%q): %w", name, ErrChunkNameTooLong)
		}
		var buf [materialElementSize]byte
		copy(buf[:], name)
		if _, err := wr.w.Write(buf[:]); err != nil {
			return fmt.Errorf("filefmt.WriteMaterialRef: %w", err)
		}
	}
	return nil
}

// WriteHierarchy writes the "hierarchy" chunk: parent, firstChild, escape
// per flattened node, in preorder (spec §4.4, §6).
func (wr *Writer) WriteHierarchy(nodes []build.FlatNode) error {
	if err := WriteHeader(wr.w, Header{Name: ChunkHierarchy, NumElements: uint32(len(nodes)), ElementSize: hierarchyElementSize}); err != nil {
		return err
	}
	buf := make([]byte, hierarchyElementSize)
	for _, n := range nodes {
		putUint32(buf, 0, n.Parent)
		putUint32(buf, 4, n.FirstChild)
		putUint32(buf, 8, n.Escape)
		if _, err := wr.w.Write(buf); err != nil {
			return fmt.Errorf("filefmt.WriteHierarchy: %w", err)
		}
	}
	return nil
}

// WriteLeafNodes writes the "leafnodes" chunk: numPrimitives fixed-size
// triangle slots per leaf, padded with core.InvalidTriangle, in pool leaf
// order (spec §3, §6).
func (wr *Writer) WriteLeafNodes(leaves [][]core.TriangleIndex, numPrimitives int) error {
	elemSize := uint32(numPrimitives * triangleElementSize)
	if err := WriteHeader(wr.w, Header{Name: ChunkLeafNodes, NumElements: uint32(len(leaves)), ElementSize: elemSize}); err != nil {
		return err
	}
	buf := make([]byte, triangleElementSize)
	for _, leaf := range leaves {
		if len(leaf) != numPrimitives {
			return fmt.Errorf("filefmt.WriteLeafNodes: leaf has %d slots, want %d: %w", len(leaf), numPrimitives, ErrElementCountMismatch)
		}
		for _, t := range leaf {
			putUint32(buf, 0, t.V[0])
			putUint32(buf, 4, t.V[1])
			putUint32(buf, 8, t.V[2])
			putUint32(buf, 12, t.Material)
			if _, err := wr.w.Write(buf); err != nil {
				return fmt.Errorf("filefmt.WriteLeafNodes: %w", err)
			}
		}
	}
	return nil
}

// WriteBoundingAABox writes the "bounding_aabox" chunk: min, max per node,
// in the same order as WriteHierarchy's nodes, narrowed to float32 for the
// on-disk representation.
func (wr *Writer) WriteBoundingAABox(boxes []fit.AABox) error {
	if err := WriteHeader(wr.w, Header{Name: ChunkBoundingAABox, NumElements: uint32(len(boxes)), ElementSize: aaboxElementSize}); err != nil {
		return err
	}
	buf := make([]byte, aaboxElementSize)
	for _, b := range boxes {
		putFloat32(buf, 0, float32(b.Min[0]))
		putFloat32(buf, 4, float32(b.Min[1]))
		putFloat32(buf, 8, float32(b.Min[2]))
		putFloat32(buf, 12, float32(b.Max[0]))
		putFloat32(buf, 16, float32(b.Max[1]))
		putFloat32(buf, 20, float32(b.Max[2]))
		if _, err := wr.w.Write(buf); err != nil {
			return fmt.Errorf("filefmt.WriteBoundingAABox: %w", err)
		}
	}
	return nil
}

// WriteBoundingEllipsoid writes the "bounding_ellipsoid" chunk: center,
// radius per node, in the same order as WriteHierarchy's nodes, narrowed to
// float32 for the on-disk representation.
func (wr *Writer) WriteBoundingEllipsoid(ellipsoids []fit.Ellipsoid) error {
	if err := WriteHeader(wr.w, Header{Name: ChunkBoundingEllipsoid, NumElements: uint32(len(ellipsoids)), ElementSize: ellipsoidElementSize}); err != nil {
		return err
	}
	buf := make([]byte, ellipsoidElementSize)
	for _, e := range ellipsoids {
		putFloat32(buf, 0, float32(e.Center[0]))
		putFloat32(buf, 4, float32(e.Center[1]))
		putFloat32(buf, 8, float32(e.Center[2]))
		putFloat32(buf, 12, float32(e.Radius[0]))
		putFloat32(buf, 16, float32(e.Radius[1]))
		putFloat32(buf, 20, float32(e.Radius[2]))
		if _, err := wr.w.Write(buf); err != nil {
			return fmt.Errorf("filefmt.WriteBoundingEllipsoid: %w", err)
		}
	}
	return nil
}
