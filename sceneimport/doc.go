// Package sceneimport is a minimal stand-in for the importer collaborator
// spec.md §1 declares out of scope: it decodes a small JSON scene
// description into a core.TriangleSource, just enough to drive cmd/bvhmake
// end to end against a real file. It is not a mesh-format importer (no
// OBJ/glTF/Assimp-equivalent parsing); that remains an explicit Non-goal.
package sceneimport
