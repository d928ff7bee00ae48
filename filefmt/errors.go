package filefmt

import "errors"

// ErrUnknownChunk names a chunk name this package does not recognize.
// NewReader indexes every chunk under whatever name it carries without
// checking it, so no function in this package currently returns it.
var ErrUnknownChunk = errors.New("filefmt: unknown chunk name")

// ErrChunkNotFound is returned when a Read* call asks for a chunk name that
// never appeared anywhere in the scanned stream. Chunk order is not fixed
// (spec §6), so this means the chunk is genuinely absent, not merely out of
// position.
var ErrChunkNotFound = errors.New("filefmt: chunk not present in stream")

// ErrChunkNameTooLong is returned when a caller asks WriteHeader to encode
// a name of 32 characters or more (the on-disk field holds at most 31
// characters plus a NUL terminator).
var ErrChunkNameTooLong = errors.New("filefmt: chunk name exceeds 31 characters")

// ErrElementCountMismatch is returned when a leafnodes chunk's element size
// is not numPrimitives triangle slots (ReadLeafNodes), or a leaf passed to
// WriteLeafNodes does not hold exactly numPrimitives slots.
var ErrElementCountMismatch = errors.New("filefmt: chunk element count mismatch")

// ErrUnsupportedBoundingVolume is returned when the scene's active
// bounding-volume kind has no writer/reader in this build (spec §9: the
// "bounding_sphere" chunk name is recognized for forward/backward
// compatibility with the original format but never produced here).
var ErrUnsupportedBoundingVolume = errors.New("filefmt: unsupported bounding volume chunk")
