// Package fit computes bounding volumes for leaves and inner nodes during
// a BVH build. It is polymorphic over the active volume kind (spec §4.2):
// an axis-aligned box (AABox) or an axis-aligned ellipsoid (Ellipsoid).
//
// Fitter[BV] is generic rather than an interface-over-interface so the
// build engine's hot SAH loop monomorphizes on the active kind instead of
// paying for virtual dispatch per triangle (spec §9).
package fit
