// Package build drives top-down recursive BVH construction (spec §4.3):
// three interchangeable strategies — median kd-split, largest-dimension
// split (LDS), and SAH sweep — sharing one leaf/inner emission contract,
// the Surface-Area Heuristic cost model, and a flatten pass that rewrites
// the in-memory {left,right} tree to the on-disk {parent,firstChild,
// escape} stackless-traversal layout.
//
// Every strategy is generic over the active bounding-volume kind BV
// (fit.AABox or fit.Ellipsoid), monomorphized at the top of Build rather
// than dispatched through an interface per call, matching the fit
// package's own design (spec §9).
package build
