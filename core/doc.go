// Package core owns the mesh geometry consumed by a BVH build: vertices,
// triangle index tuples, and the material name table they reference.
//
// A Store is immutable once constructed — nothing under core mutates after
// NewStore returns, which is what lets the build engine read triangles and
// centroids from multiple recursion branches without locking.
package core
