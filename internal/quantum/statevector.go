package quantum

import (
	"fmt"
	"strings"
)

const (
	// HardMaxQubits bounds any state vector regardless of configuration:
	// 2^30 amplitudes is 16 GiB of complex128.
	HardMaxQubits = 30

	// DefaultMaxQubits is the ceiling used when no limit is configured
	// (2^20 amplitudes, 16 MiB).
	DefaultMaxQubits = 20

	amplitudeBytes = 16
)

// StateVector holds the 2^N amplitudes of an N-qubit register. Index i's
// binary form, most significant bit first, spells the basis state
// |b0 b1 ... bN-1>, so qubit 0 is the most significant bit.
type StateVector struct {
	numQubits  int
	amplitudes []Amplitude
}

// NewStateVector returns |0...0> over numQubits qubits, limited to
// DefaultMaxQubits.
func NewStateVector(numQubits int) (*StateVector, error) {
	return NewStateVectorWithLimit(numQubits, DefaultMaxQubits)
}

// NewStateVectorWithLimit is NewStateVector with an explicit qubit ceiling.
func NewStateVectorWithLimit(numQubits, maxQubits int) (*StateVector, error) {
	if maxQubits <= 0 || maxQubits > HardMaxQubits {
		maxQubits = HardMaxQubits
	}
	if numQubits < 1 || numQubits > maxQubits {
		return nil, fmt.Errorf("%w: %d (allowed 1..%d)", ErrInvalidDimension, numQubits, maxQubits)
	}

	amps := make([]Amplitude, 1<<numQubits)
	amps[0] = 1
	return &StateVector{numQubits: numQubits, amplitudes: amps}, nil
}

// MaxQubitsForBudget returns the largest qubit count whose dense state fits
// in budget bytes, or 0 if not even a single qubit fits.
func MaxQubitsForBudget(budget int64) int {
	n := 0
	for n < HardMaxQubits && (int64(1)<<(n+1))*amplitudeBytes <= budget {
		n++
	}
	return n
}

// NumQubits returns N.
func (s *StateVector) NumQubits() int {
	return s.numQubits
}

// Len returns 2^N.
func (s *StateVector) Len() int {
	return len(s.amplitudes)
}

// AmplitudeAt returns the amplitude of basis state index.
func (s *StateVector) AmplitudeAt(index int) (Amplitude, error) {
	if index < 0 || index >= len(s.amplitudes) {
		return 0, fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, index, len(s.amplitudes))
	}
	return s.amplitudes[index], nil
}

// ProbabilityAt returns |amplitude|² of basis state index.
func (s *StateVector) ProbabilityAt(index int) (float64, error) {
	amp, err := s.AmplitudeAt(index)
	if err != nil {
		return 0, err
	}
	return Abs2(amp), nil
}

// Snapshot returns a copy of all amplitudes in basis order.
func (s *StateVector) Snapshot() []Amplitude {
	amps := make([]Amplitude, len(s.amplitudes))
	copy(amps, s.amplitudes)
	return amps
}

// Clone returns an independent copy of the vector.
func (s *StateVector) Clone() *StateVector {
	return &StateVector{numQubits: s.numQubits, amplitudes: s.Snapshot()}
}

// TotalProbability sums |a|² over every basis state. It is 1 for any state
// reached through unitary gates.
func (s *StateVector) TotalProbability() float64 {
	total := 0.0
	for _, amp := range s.amplitudes {
		total += Abs2(amp)
	}
	return total
}

// BasisLabel renders index as its N-bit string, qubit 0 first.
func (s *StateVector) BasisLabel(index int) string {
	var sb strings.Builder
	sb.Grow(s.numQubits)
	for q := 0; q < s.numQubits; q++ {
		if index&s.qubitMask(q) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// QubitProbability is the marginal distribution of one qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the marginal P(0)/P(1) of every qubit.
func (s *StateVector) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.numQubits)
	for i, amp := range s.amplitudes {
		p := Abs2(amp)
		if p == 0 {
			continue
		}
		for q := 0; q < s.numQubits; q++ {
			if i&s.qubitMask(q) != 0 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	return probs
}

// bitPos returns the index bit that carries qubit q.
func (s *StateVector) bitPos(q int) int {
	return s.numQubits - 1 - q
}

func (s *StateVector) qubitMask(q int) int {
	return 1 << s.bitPos(q)
}

func (s *StateVector) validQubit(q int) bool {
	return q >= 0 && q < s.numQubits
}

// replace swaps in a freshly computed amplitude buffer of the same size.
func (s *StateVector) replace(amps []Amplitude) {
	s.amplitudes = amps
}
