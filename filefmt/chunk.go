package filefmt

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Chunk names, carried verbatim from the original format (spec §6, §9).
const (
	ChunkVertices           = "vertices"
	ChunkTriangles          = "triangles"
	ChunkMaterialRef        = "materialref"
	ChunkHierarchy          = "hierarchy"
	ChunkLeafNodes          = "leafnodes"
	ChunkBoundingAABox      = "bounding_aabox"
	ChunkBoundingSphere     = "bounding_sphere"
	ChunkBoundingEllipsoid  = "bounding_ellipsoid"
	chunkNameFieldSize      = 32
	headerSize              = chunkNameFieldSize + 4 + 4
	vertexElementSize       = 4 * (3 + 3 + 2) // position, normal, texcoord as float32
	triangleElementSize     = 4 * (3 + 1)     // 3 vertex indices + material id as uint32
	materialElementSize     = chunkNameFieldSize
	hierarchyElementSize    = 4 * 3 // parent, firstChild, escape as uint32
	aaboxElementSize        = 4 * (3 + 3)
	ellipsoidElementSize    = 4 * (3 + 3)
)

// Header is one chunk's 40-byte on-disk preamble.
type Header struct {
	Name        string
	NumElements uint32
	ElementSize uint32
}

// WriteHeader encodes a Header: a 32-byte NUL-padded name field followed
// by two little-endian uint32s.
func WriteHeader(w io.Writer, h Header) error {
	if len(h.Name) >= chunkNameFieldSize {
		return fmt.Errorf("filefmt.WriteHeader(%q): %w", h.Name, ErrChunkNameTooLong)
	}
	var buf [headerSize]byte
	copy(buf[:chunkNameFieldSize], h.Name)
	binary.LittleEndian.PutUint32(buf[chunkNameFieldSize:chunkNameFieldSize+4], h.NumElements)
	binary.LittleEndian.PutUint32(buf[chunkNameFieldSize+4:], h.ElementSize)
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("filefmt.WriteHeader(%q): %w", h.Name, err)
	}
	return nil
}

// ReadHeader decodes one chunk header.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, fmt.Errorf("filefmt.ReadHeader: %w", err)
	}
	end := chunkNameFieldSize
	for end > 0 && buf[end-1] == 0 {
		end--
	}
	return Header{
		Name:        string(buf[:end]),
		NumElements: binary.LittleEndian.Uint32(buf[chunkNameFieldSize : chunkNameFieldSize+4]),
		ElementSize: binary.LittleEndian.Uint32(buf[chunkNameFieldSize+4:]),
	}, nil
}
