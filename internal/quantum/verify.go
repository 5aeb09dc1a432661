package quantum

import (
	"math"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/cmplxs/cscalar"
)

// Tolerance is the absolute error allowed in norm and unitarity checks.
const Tolerance = 1e-9

// IsUnitary reports whether m·m† = I within tol, i.e. whether the rows of m
// are orthonormal.
func IsUnitary(m Matrix, tol float64) bool {
	r0 := m[0][:]
	r1 := m[1][:]
	return cscalar.EqualWithinAbs(cmplxs.Dot(r0, r0), 1, tol) &&
		cscalar.EqualWithinAbs(cmplxs.Dot(r1, r1), 1, tol) &&
		cscalar.EqualWithinAbs(cmplxs.Dot(r0, r1), 0, tol)
}

// Norm returns the Euclidean norm of the state.
func (s *StateVector) Norm() float64 {
	return cmplxs.Norm(s.amplitudes, 2)
}

// IsNormalized reports whether the total probability is 1 within tol.
func (s *StateVector) IsNormalized(tol float64) bool {
	return math.Abs(s.TotalProbability()-1) <= tol
}

// ApproxEqual reports whether two states of the same size match
// amplitude-wise within tol.
func (s *StateVector) ApproxEqual(other *StateVector, tol float64) bool {
	if s.numQubits != other.numQubits {
		return false
	}
	return cmplxs.EqualApprox(s.amplitudes, other.amplitudes, tol)
}
