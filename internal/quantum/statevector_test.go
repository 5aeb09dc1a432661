package quantum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplexArithmetic(t *testing.T) {
	a := complex(1, 2)
	b := complex(3, -4)

	assert.Equal(t, complex(4, -2), Add(a, b))
	assert.Equal(t, a*b, Mul(a, b))
	assert.Equal(t, complex(11, 2), Mul(a, b))
	assert.Equal(t, 5.0, Abs2(a))
	assert.Equal(t, 0.0, Abs2(0))
}

func TestNewStateVector(t *testing.T) {
	for n := 1; n <= 6; n++ {
		sv, err := NewStateVector(n)
		require.NoError(t, err)
		assert.Equal(t, n, sv.NumQubits())
		assert.Equal(t, 1<<n, sv.Len())

		amp, err := sv.AmplitudeAt(0)
		require.NoError(t, err)
		assert.Equal(t, complex(1, 0), amp)
		for i := 1; i < sv.Len(); i++ {
			amp, err := sv.AmplitudeAt(i)
			require.NoError(t, err)
			assert.Zero(t, amp)
		}
		assert.True(t, sv.IsNormalized(Tolerance))
	}
}

func TestNewStateVectorRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name      string
		numQubits int
		maxQubits int
	}{
		{"zero qubits", 0, 10},
		{"negative qubits", -3, 10},
		{"above configured limit", 5, 4},
		{"above hard limit", HardMaxQubits + 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sv, err := NewStateVectorWithLimit(tt.numQubits, tt.maxQubits)
			assert.Nil(t, sv)
			assert.ErrorIs(t, err, ErrInvalidDimension)
		})
	}

	_, err := NewStateVector(DefaultMaxQubits + 1)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestMaxQubitsForBudget(t *testing.T) {
	assert.Equal(t, 0, MaxQubitsForBudget(0))
	assert.Equal(t, 0, MaxQubitsForBudget(31))
	assert.Equal(t, 1, MaxQubitsForBudget(32))
	assert.Equal(t, 20, MaxQubitsForBudget(16<<20))
	assert.Equal(t, 20, MaxQubitsForBudget(32<<20-1))
	assert.Equal(t, HardMaxQubits, MaxQubitsForBudget(1<<62))
}

func TestAmplitudeAtOutOfRange(t *testing.T) {
	sv, err := NewStateVector(2)
	require.NoError(t, err)

	for _, idx := range []int{-1, 4, 100} {
		_, err := sv.AmplitudeAt(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = sv.ProbabilityAt(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	sv, err := NewStateVector(2)
	require.NoError(t, err)

	snap := sv.Snapshot()
	snap[0] = 0
	snap[3] = 1

	amp, err := sv.AmplitudeAt(0)
	require.NoError(t, err)
	assert.Equal(t, complex(1, 0), amp)

	clone := sv.Clone()
	require.NoError(t, ApplySingleQubitGate(clone, PauliX, 0))
	assert.True(t, sv.ApproxEqual(sv.Clone(), Tolerance))
	assert.False(t, sv.ApproxEqual(clone, Tolerance))
}

func TestBasisLabelPutsQubitZeroFirst(t *testing.T) {
	sv, err := NewStateVector(3)
	require.NoError(t, err)

	assert.Equal(t, "000", sv.BasisLabel(0))
	assert.Equal(t, "001", sv.BasisLabel(1))
	assert.Equal(t, "100", sv.BasisLabel(4))
	assert.Equal(t, "110", sv.BasisLabel(6))

	// X on qubit 0 moves the amplitude to |100>, index 4.
	require.NoError(t, ApplySingleQubitGate(sv, PauliX, 0))
	p, err := sv.ProbabilityAt(4)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestQubitProbabilities(t *testing.T) {
	sv, err := NewStateVector(2)
	require.NoError(t, err)
	require.NoError(t, ApplySingleQubitGate(sv, Hadamard, 0))
	require.NoError(t, ApplySingleQubitGate(sv, PauliX, 1))

	probs := sv.QubitProbabilities()
	require.Len(t, probs, 2)
	assert.InDelta(t, 0.5, probs[0].Prob0, Tolerance)
	assert.InDelta(t, 0.5, probs[0].Prob1, Tolerance)
	assert.InDelta(t, 0.0, probs[1].Prob0, Tolerance)
	assert.InDelta(t, 1.0, probs[1].Prob1, Tolerance)
	assert.InDelta(t, 1.0, sv.Norm(), Tolerance)
}
