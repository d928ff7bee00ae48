package core

import (
	"fmt"

	"github.com/rendercore/bvhmake/mathops"
)

// Store owns the resolved geometry for one build: vertex positions,
// triangle index tuples, and the material name table. It is read-only
// once NewStore returns, which is the property the build engine relies on
// to read from multiple recursion branches without a lock.
type Store struct {
	vertices  []Vertex
	triangles []TriangleIndex
	materials []string
}

// NewStore validates and wraps a TriangleSource. It rejects a nil source,
// an empty mesh, and any triangle referencing a vertex outside
// [0, len(vertices)).
//
// Stage 1 (Validate): reject nil source and zero triangles.
// Stage 2 (Validate): bounds-check every vertex index referenced.
// Stage 3 (Finalize): wrap the source arrays in an immutable Store.
func NewStore(src TriangleSource) (*Store, error) {
	// Stage 1: validate presence.
	if src == nil {
		return nil, ErrNilSource
	}
	vertices := src.Vertices()
	triangles := src.Triangles()
	if len(triangles) == 0 {
		return nil, ErrEmptyMesh
	}

	// Stage 2: bounds-check triangle vertex indices.
	vc := uint32(len(vertices))
	for i, tri := range triangles {
		for k := 0; k < 3; k++ {
			if tri.V[k] >= vc {
				return nil, fmt.Errorf("NewStore: triangle %d vertex %d index %d: %w", i, k, tri.V[k], ErrVertexIndexOutOfRange)
			}
		}
	}

	// Stage 3: wrap. Slices are not copied: TriangleSource implementations
	// are documented (spec §6) to hand over immutable arrays.
	return &Store{
		vertices:  vertices,
		triangles: triangles,
		materials: src.Materials(),
	}, nil
}

// VertexCount returns the number of vertices in the mesh.
func (s *Store) VertexCount() int { return len(s.vertices) }

// TriangleCount returns the number of triangles in the mesh.
func (s *Store) TriangleCount() int { return len(s.triangles) }

// Vertex returns the vertex at index i.
func (s *Store) Vertex(i int) Vertex { return s.vertices[i] }

// TriangleIndexAt returns the raw index tuple for triangle i.
func (s *Store) TriangleIndexAt(i int) TriangleIndex {
	return s.triangles[i]
}

// Triangle resolves triangle i to its three vertex positions as Vec3s.
func (s *Store) Triangle(i int) ([3]mathops.Vec3, error) {
	if i < 0 || i >= len(s.triangles) {
		return [3]mathops.Vec3{}, ErrTriangleIndexOutOfRange
	}
	tri := s.triangles[i]
	var out [3]mathops.Vec3
	for k := 0; k < 3; k++ {
		p := s.vertices[tri.V[k]].Position
		out[k] = mathops.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
	}
	return out, nil
}

// Centroid returns the barycenter of triangle i.
func (s *Store) Centroid(i int) (mathops.Vec3, error) {
	p, err := s.Triangle(i)
	if err != nil {
		return mathops.Vec3{}, err
	}
	return p[0].Add(p[1]).Add(p[2]).Scale(1.0 / 3.0), nil
}

// MaterialName resolves a material id to its name.
func (s *Store) MaterialName(id uint32) (string, error) {
	if id >= uint32(len(s.materials)) {
		return "", ErrMaterialIndexOutOfRange
	}
	return s.materials[id], nil
}

// Materials returns the full material name table, in chunk-write order.
func (s *Store) Materials() []string { return s.materials }
