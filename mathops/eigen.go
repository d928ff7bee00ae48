package mathops

import (
	"errors"
	"math"
)

// ErrEigenNotSymmetric is returned when the input 3x3 matrix is not
// symmetric within tol.
var ErrEigenNotSymmetric = errors.New("mathops: matrix is not symmetric")

// ErrEigenFailed is returned if the Jacobi sweep does not converge within
// maxIter iterations.
var ErrEigenFailed = errors.New("mathops: eigen decomposition did not converge")

// defaultEigenTol is the off-diagonal convergence threshold used when a
// caller does not need a custom tolerance.
const defaultEigenTol = 1e-9

// defaultEigenMaxIter bounds the number of Jacobi sweeps; a 3x3 symmetric
// matrix converges in a handful of sweeps in practice, so this is a
// generous ceiling rather than a tuned budget.
const defaultEigenMaxIter = 100

// Eigen3x3 performs Jacobi eigenvalue decomposition on a symmetric 3x3
// matrix m (row-major, m[i][j] == m[j][i] within tol). It returns the three
// eigenvalues and Q, whose columns are the corresponding eigenvectors.
//
// Stage 1 (Validate): reject asymmetric input.
// Stage 2 (Prepare): copy m into a working matrix A, seed Q to identity.
// Stage 3 (Execute): repeatedly zero the largest off-diagonal entry via a
// Givens rotation until all off-diagonal entries fall below tol.
// Stage 4 (Finalize): read eigenvalues off the diagonal of A.
//
// Complexity: O(sweeps) rotations, each O(1) since n==3; memory O(1).
func Eigen3x3(m [3][3]float64, tol float64) (eigenvalues [3]float64, eigenvectors [3][3]float64, err error) {
	if tol <= 0 {
		tol = defaultEigenTol
	}

	// Stage 1: validate symmetry.
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if math.Abs(m[i][j]-m[j][i]) > tol {
				return eigenvalues, eigenvectors, ErrEigenNotSymmetric
			}
		}
	}

	// Stage 2: working copy A, Q seeded to identity.
	var A [3][3]float64
	A = m
	var Q [3][3]float64
	Q[0][0], Q[1][1], Q[2][2] = 1, 1, 1

	// Stage 3: Jacobi sweeps.
	iter := 0
	for ; iter < defaultEigenMaxIter; iter++ {
		p, q := 0, 1
		maxOff := 0.0
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 3; j++ {
				if off := math.Abs(A[i][j]); off > maxOff {
					maxOff = off
					p, q = i, j
				}
			}
		}
		if maxOff < tol {
			break
		}

		apq := A[p][q]
		theta := (A[q][q] - A[p][p]) / (2 * apq)
		t := math.Copysign(1.0/(math.Abs(theta)+math.Sqrt(theta*theta+1)), theta)
		c := 1.0 / math.Sqrt(t*t+1)
		s := t * c

		for i := 0; i < 3; i++ {
			if i != p && i != q {
				aip, aiq := A[i][p], A[i][q]
				A[i][p], A[p][i] = c*aip-s*aiq, c*aip-s*aiq
				A[i][q], A[q][i] = s*aip+c*aiq, s*aip+c*aiq
			}
		}
		app, aqq := A[p][p], A[q][q]
		A[p][p] = c*c*app - 2*c*s*apq + s*s*aqq
		A[q][q] = s*s*app + 2*c*s*apq + c*c*aqq
		A[p][q], A[q][p] = 0, 0

		for i := 0; i < 3; i++ {
			qip, qiq := Q[i][p], Q[i][q]
			Q[i][p] = c*qip - s*qiq
			Q[i][q] = s*qip + c*qiq
		}
	}

	if iter == defaultEigenMaxIter {
		return eigenvalues, eigenvectors, ErrEigenFailed
	}

	// Stage 4: eigenvalues are the diagonal of the converged A.
	eigenvalues = [3]float64{A[0][0], A[1][1], A[2][2]}
	eigenvectors = Q

	return eigenvalues, eigenvectors, nil
}
