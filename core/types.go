package core

import "math"

// InvalidIndex is the reserved all-bits-set vertex-index pattern used by
// InvalidTriangle. Readers and writers both treat it as "end of leaf".
const InvalidIndex = math.MaxUint32

// Vertex is a single mesh vertex: position, normal, and texture coordinate.
// Owned by Store; immutable through build.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Texcoord [2]float32
}

// TriangleIndex names a triangle by three vertex indices plus a material
// id. It is the unit the build engine partitions and the unit a leaf
// slot stores.
type TriangleIndex struct {
	V        [3]uint32
	Material uint32
}

// InvalidTriangle is the reserved sentinel TriangleIndex used to pad unused
// leaf slots. Both indices and material are the all-bits-set pattern so a
// reader can recognize it without consulting vertex/material counts.
var InvalidTriangle = TriangleIndex{
	V:        [3]uint32{InvalidIndex, InvalidIndex, InvalidIndex},
	Material: InvalidIndex,
}

// IsInvalid reports whether t equals the INVALID_TRIANGLE sentinel.
func (t TriangleIndex) IsInvalid() bool {
	return t == InvalidTriangle
}

// TriangleSource is the import collaborator's output contract (spec §6):
// an immutable vertex array, an immutable triangle array, and a material
// name lookup. The importer, tessellator, and any test fixture all satisfy
// this interface; the build core never constructs one itself.
type TriangleSource interface {
	Vertices() []Vertex
	Triangles() []TriangleIndex
	Materials() []string
}
