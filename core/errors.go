package core

import "errors"

// ErrNilSource is returned when NewStore is given a nil TriangleSource.
var ErrNilSource = errors.New("core: nil triangle source")

// ErrEmptyMesh is returned when the source has zero triangles.
var ErrEmptyMesh = errors.New("core: mesh has zero triangles")

// ErrVertexIndexOutOfRange is returned when a triangle references a vertex
// index outside [0, vertexCount).
var ErrVertexIndexOutOfRange = errors.New("core: vertex index out of range")

// ErrTriangleIndexOutOfRange is returned when Triangle/Centroid is called
// with an index outside [0, TriangleCount()).
var ErrTriangleIndexOutOfRange = errors.New("core: triangle index out of range")

// ErrMaterialIndexOutOfRange is returned when MaterialName is called with
// an id outside [0, len(materials)).
var ErrMaterialIndexOutOfRange = errors.New("core: material index out of range")
