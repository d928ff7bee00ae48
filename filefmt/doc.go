// Package filefmt reads and writes the chunked binary scene file (spec
// §6): a flat sequence of named arrays, each preceded by a 40-byte header
// (name[32], numElements uint32, elementSize uint32), little-endian
// throughout. Chunk names and layouts are fixed so a GPU-side loader needs
// no schema beyond this package's doc comments.
//
// Chunk order on disk is not part of the format: WriteScene happens to
// emit materialref, vertices, hierarchy, bounding_*, leafnodes, triangles,
// but Reader scans the whole stream up front and indexes every chunk by
// name, so ReadScene accepts that sequence, its reverse, or any other
// ordering a different writer chooses to produce. This is also how
// ReadScene discovers which bounding-volume kind a file carries: it looks
// for whichever of "bounding_aabox"/"bounding_ellipsoid" is present rather
// than requiring the caller to already know.
//
// WriteScene and ReadScene drive the Writer/Reader methods as one call,
// matching spec §8's single-entry-point contract (build.Build,
// filefmt.WriteScene).
package filefmt
