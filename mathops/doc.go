// Package mathops holds small numeric helpers shared by the fit and build
// packages: a minimal Vec3 and a fixed 3x3 symmetric eigen decomposition
// used by the largest-dimension-split build strategy to diagonalize a
// centroid covariance matrix.
//
// Eigen3x3 is a Jacobi-rotation eigensolver specialized to 3x3 symmetric
// matrices and monomorphized so the hot build-time covariance step never
// goes through an interface-typed matrix.
package mathops
