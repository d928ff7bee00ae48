package sceneimport

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rendercore/bvhmake/core"
)

// jsonVertex mirrors core.Vertex with JSON-friendly field names.
type jsonVertex struct {
	Position [3]float32 `json:"position"`
	Normal   [3]float32 `json:"normal"`
	Texcoord [2]float32 `json:"texcoord"`
}

// jsonTriangle mirrors core.TriangleIndex.
type jsonTriangle struct {
	V        [3]uint32 `json:"v"`
	Material uint32    `json:"material"`
}

// jsonScene is the on-disk shape this package reads: a flat description
// of vertices, triangles, and the material name table, with no tessellation
// or normal/tangent generation — the caller is expected to have already
// produced final geometry (spec.md §1's importer/tessellator boundary).
type jsonScene struct {
	Materials []string       `json:"materials"`
	Vertices  []jsonVertex   `json:"vertices"`
	Triangles []jsonTriangle `json:"triangles"`
}

// source adapts a decoded jsonScene to core.TriangleSource.
type source struct {
	vertices  []core.Vertex
	triangles []core.TriangleIndex
	materials []string
}

func (s *source) Vertices() []core.Vertex         { return s.vertices }
func (s *source) Triangles() []core.TriangleIndex { return s.triangles }
func (s *source) Materials() []string             { return s.materials }

// LoadFile decodes path as a jsonScene and returns it as a core.TriangleSource.
func LoadFile(path string) (core.TriangleSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sceneimport.LoadFile(%q): %w: %v", path, ErrOpenScene, err)
	}
	defer f.Close()

	var js jsonScene
	if err := json.NewDecoder(f).Decode(&js); err != nil {
		return nil, fmt.Errorf("sceneimport.LoadFile(%q): %w: %v", path, ErrDecodeScene, err)
	}

	vertices := make([]core.Vertex, len(js.Vertices))
	for i, v := range js.Vertices {
		vertices[i] = core.Vertex{Position: v.Position, Normal: v.Normal, Texcoord: v.Texcoord}
	}
	triangles := make([]core.TriangleIndex, len(js.Triangles))
	for i, t := range js.Triangles {
		triangles[i] = core.TriangleIndex{V: t.V, Material: t.Material}
	}

	return &source{vertices: vertices, triangles: triangles, materials: js.Materials}, nil
}
