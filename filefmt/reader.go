package filefmt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/rendercore/bvhmake/build"
	"github.com/rendercore/bvhmake/core"
	"github.com/rendercore/bvhmake/fit"
)

// chunkEntry is one chunk's header plus its fully-read payload.
type chunkEntry struct {
	header  Header
	payload []byte
}

// Reader indexes chunks by name rather than by position: chunk order is
// not fixed (spec §6), so NewReader scans the whole stream once up front
// and every Read* method looks the chunk it wants up by name, regardless
// of where it actually sat in the stream.
type Reader struct {
	chunks map[string]chunkEntry
}

// NewReader scans r for every chunk it contains, reading each header and
// its payload fully before returning. A corrupt header or a payload
// truncated mid-chunk is reported immediately; a clean end of stream after
// zero or more complete chunks is not an error.
func NewReader(r io.Reader) (*Reader, error) {
	chunks := make(map[string]chunkEntry)
	for {
		h, err := ReadHeader(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		payload := make([]byte, int64(h.NumElements)*int64(h.ElementSize))
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, fmt.Errorf("filefmt.NewReader: chunk %q: %w", h.Name, err)
		}
		chunks[h.Name] = chunkEntry{header: h, payload: payload}
	}
	return &Reader{chunks: chunks}, nil
}

// Has reports whether name appeared anywhere in the scanned stream.
func (rd *Reader) Has(name string) bool {
	_, ok := rd.chunks[name]
	return ok
}

func (rd *Reader) chunk(name string) (Header, []byte, error) {
	e, ok := rd.chunks[name]
	if !ok {
		return Header{}, nil, fmt.Errorf("filefmt: chunk %q: %w", name, ErrChunkNotFound)
	}
	return e.header, e.payload, nil
}

func getFloat32(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
}

func getUint32(buf []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(buf[off : off+4])
}

// ReadVertices decodes the "vertices" chunk.
func (rd *Reader) ReadVertices() ([]core.Vertex, error) {
	h, payload, err := rd.chunk(ChunkVertices)
	if err != nil {
		return nil, err
	}
	out := make([]core.Vertex, h.NumElements)
	for i := range out {
		buf := payload[i*int(h.ElementSize):]
		out[i] = core.Vertex{
			Position: [3]float32{getFloat32(buf, 0), getFloat32(buf, 4), getFloat32(buf, 8)},
			Normal:   [3]float32{getFloat32(buf, 12), getFloat32(buf, 16), getFloat32(buf, 20)},
			Texcoord: [2]float32{getFloat32(buf, 24), getFloat32(buf, 28)},
		}
	}
	return out, nil
}

// ReadTriangles decodes the "triangles" chunk.
func (rd *Reader) ReadTriangles() ([]core.TriangleIndex, error) {
	h, payload, err := rd.chunk(ChunkTriangles)
	if err != nil {
		return nil, err
	}
	out := make([]core.TriangleIndex, h.NumElements)
	for i := range out {
		buf := payload[i*int(h.ElementSize):]
		out[i] = core.TriangleIndex{
			V:        [3]uint32{getUint32(buf, 0), getUint32(buf, 4), getUint32(buf, 8)},
			Material: getUint32(buf, 12),
		}
	}
	return out, nil
}

// ReadMaterialRef decodes the "materialref" chunk.
func (rd *Reader) ReadMaterialRef() ([]string, error) {
	h, payload, err := rd.chunk(ChunkMaterialRef)
	if err != nil {
		return nil, err
	}
	out := make([]string, h.NumElements)
	for i := range out {
		buf := payload[i*int(h.ElementSize) : (i+1)*int(h.ElementSize)]
		end := len(buf)
		for end > 0 && buf[end-1] == 0 {
			end--
		}
		out[i] = string(buf[:end])
	}
	return out, nil
}

// ReadHierarchy decodes the "hierarchy" chunk.
func (rd *Reader) ReadHierarchy() ([]build.FlatNode, error) {
	h, payload, err := rd.chunk(ChunkHierarchy)
	if err != nil {
		return nil, err
	}
	out := make([]build.FlatNode, h.NumElements)
	for i := range out {
		buf := payload[i*int(h.ElementSize):]
		out[i] = build.FlatNode{
			Parent:     getUint32(buf, 0),
			FirstChild: getUint32(buf, 4),
			Escape:     getUint32(buf, 8),
		}
	}
	return out, nil
}

// ReadLeafNodes decodes the "leafnodes" chunk into numPrimitives-sized
// triangle slots per leaf.
func (rd *Reader) ReadLeafNodes(numPrimitives int) ([][]core.TriangleIndex, error) {
	h, payload, err := rd.chunk(ChunkLeafNodes)
	if err != nil {
		return nil, err
	}
	wantElemSize := uint32(numPrimitives * triangleElementSize)
	if h.ElementSize != wantElemSize {
		return nil, fmt.Errorf("filefmt.ReadLeafNodes: element size %d, want %d: %w", h.ElementSize, wantElemSize, ErrElementCountMismatch)
	}
	out := make([][]core.TriangleIndex, h.NumElements)
	for i := range out {
		leafBuf := payload[i*int(h.ElementSize):]
		leaf := make([]core.TriangleIndex, numPrimitives)
		for k := 0; k < numPrimitives; k++ {
			buf := leafBuf[k*triangleElementSize:]
			leaf[k] = core.TriangleIndex{
				V:        [3]uint32{getUint32(buf, 0), getUint32(buf, 4), getUint32(buf, 8)},
				Material: getUint32(buf, 12),
			}
		}
		out[i] = leaf
	}
	return out, nil
}

// ReadBoundingAABox decodes the "bounding_aabox" chunk.
func (rd *Reader) ReadBoundingAABox() ([]fit.AABox, error) {
	h, payload, err := rd.chunk(ChunkBoundingAABox)
	if err != nil {
		return nil, err
	}
	out := make([]fit.AABox, h.NumElements)
	for i := range out {
		buf := payload[i*int(h.ElementSize):]
		out[i] = fit.AABox{
			Min: [3]float64{float64(getFloat32(buf, 0)), float64(getFloat32(buf, 4)), float64(getFloat32(buf, 8))},
			Max: [3]float64{float64(getFloat32(buf, 12)), float64(getFloat32(buf, 16)), float64(getFloat32(buf, 20))},
		}
	}
	return out, nil
}

// ReadBoundingEllipsoid decodes the "bounding_ellipsoid" chunk.
func (rd *Reader) ReadBoundingEllipsoid() ([]fit.Ellipsoid, error) {
	h, payload, err := rd.chunk(ChunkBoundingEllipsoid)
	if err != nil {
		return nil, err
	}
	out := make([]fit.Ellipsoid, h.NumElements)
	for i := range out {
		buf := payload[i*int(h.ElementSize):]
		out[i] = fit.Ellipsoid{
			Center: [3]float64{float64(getFloat32(buf, 0)), float64(getFloat32(buf, 4)), float64(getFloat32(buf, 8))},
			Radius: [3]float64{float64(getFloat32(buf, 12)), float64(getFloat32(buf, 16)), float64(getFloat32(buf, 20))},
		}
	}
	return out, nil
}
