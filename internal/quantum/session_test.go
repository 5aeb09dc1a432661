package quantum

import (
	"bytes"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	s, err := NewSession(3)
	require.NoError(t, err)
	assert.Equal(t, 3, s.NumQubits())
	assert.NotEmpty(t, s.ID())
	assert.Empty(t, s.History())

	state := s.CurrentState()
	require.Len(t, state, 8)
	assert.Equal(t, "000", state[0].Bits)
	assert.Equal(t, 1.0, state[0].Probability)
	assert.Equal(t, "101", state[5].Bits)
	assert.Equal(t, 5, state[5].Index)

	_, err = NewSession(0)
	assert.ErrorIs(t, err, ErrInvalidDimension)
	_, err = NewSession(6, WithMaxQubits(5))
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestSessionBellStateAndHistory(t *testing.T) {
	s, err := NewSession(2)
	require.NoError(t, err)

	require.NoError(t, s.Apply("H", []int{0}))
	require.NoError(t, s.Apply("CNOT", []int{0, 1}))

	state := s.CurrentState()
	assert.InDelta(t, 0.7071, real(state[0].Amplitude), 1e-4)
	assert.InDelta(t, 0, real(state[1].Amplitude), Tolerance)
	assert.InDelta(t, 0, real(state[2].Amplitude), Tolerance)
	assert.InDelta(t, 0.7071, real(state[3].Amplitude), 1e-4)
	assert.Equal(t, "11", state[3].Bits)

	history := s.History()
	require.Len(t, history, 2)
	assert.Equal(t, "H", history[0].Gate)
	assert.Equal(t, SingleQubit, history[0].Kind)
	assert.Equal(t, 0, history[0].Target())
	assert.Equal(t, -1, history[0].Control())
	assert.Equal(t, 0, history[0].Column)

	assert.Equal(t, "CX", history[1].Gate)
	assert.Equal(t, Controlled, history[1].Kind)
	assert.Equal(t, 0, history[1].Control())
	assert.Equal(t, 1, history[1].Target())
	assert.Equal(t, 1, history[1].Column)
}

func TestSessionErrorsLeaveStateUntouched(t *testing.T) {
	s, err := NewSession(2)
	require.NoError(t, err)
	require.NoError(t, s.Apply("H", []int{1}))

	before := s.State()
	tests := []struct {
		name   string
		tag    string
		qubits []int
		params []float64
		want   error
	}{
		{"target equals N", "H", []int{2}, nil, ErrInvalidQubitRange},
		{"negative target", "X", []int{-1}, nil, ErrInvalidQubitRange},
		{"too many qubits for single gate", "H", []int{0, 1}, nil, ErrInvalidQubitRange},
		{"control equals target", "CX", []int{1, 1}, nil, ErrInvalidQubitPair},
		{"controlled out of range", "CX", []int{0, 2}, nil, ErrInvalidQubitRange},
		{"controlled missing target", "CX", []int{0}, nil, ErrInvalidQubitPair},
		{"unknown gate", "FOO", []int{0}, nil, ErrUnknownGate},
		{"missing angle", "RX", []int{0}, nil, ErrInvalidParams},
		{"params on CX", "CX", []int{0, 1}, []float64{1}, ErrInvalidParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Apply(tt.tag, tt.qubits, tt.params...)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, before.Snapshot(), s.State().Snapshot())
			assert.Len(t, s.History(), 1)
		})
	}
}

func TestSessionParameterizedGates(t *testing.T) {
	s, err := NewSession(1)
	require.NoError(t, err)

	require.NoError(t, s.Apply("RY", []int{0}, math.Pi))
	state := s.CurrentState()
	assert.InDelta(t, 0, state[0].Probability, Tolerance)
	assert.InDelta(t, 1, state[1].Probability, Tolerance)

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, []float64{math.Pi}, history[0].Params)
}

func TestSessionHistoryIsACopy(t *testing.T) {
	s, err := NewSession(2)
	require.NoError(t, err)

	qubits := []int{0, 1}
	require.NoError(t, s.Apply("CX", qubits))
	qubits[0] = 1

	history := s.History()
	history[0].Qubits[1] = 0
	history[0].Gate = "X"

	fresh := s.History()
	assert.Equal(t, []int{0, 1}, fresh[0].Qubits)
	assert.Equal(t, "CX", fresh[0].Gate)
}

func TestApplyMatrix(t *testing.T) {
	notUnitary := Matrix{{1, 1}, {0, 1}}

	s, err := NewSession(1, WithDebugChecks(true))
	require.NoError(t, err)
	err = s.ApplyMatrix("bad", notUnitary, 0)
	assert.ErrorIs(t, err, ErrNotUnitary)
	assert.Empty(t, s.History())

	require.NoError(t, s.ApplyMatrix("myH", Hadamard, 0))
	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, "myH", history[0].Gate)
	require.NotNil(t, history[0].Matrix)
	assert.Equal(t, Hadamard, *history[0].Matrix)

	// Without debug checks the contract is on the caller.
	loose, err := NewSession(1)
	require.NoError(t, err)
	require.NoError(t, loose.ApplyMatrix("bad", notUnitary, 0))
	assert.Len(t, loose.History(), 1)

	assert.ErrorIs(t, s.ApplyMatrix("myH", Hadamard, 3), ErrInvalidQubitRange)
}

func TestDebugChecksLogDrift(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewSession(1, WithLogger(zerolog.New(&buf)))
	require.NoError(t, err)
	s.debug = true

	// Bypass the unitarity gate to force a norm violation.
	require.NoError(t, s.applySingle(LogEntry{Gate: "scale", Kind: SingleQubit, Qubits: []int{0}}, Matrix{{2, 0}, {0, 2}}))
	assert.Contains(t, buf.String(), "state drifted from unit norm")
	assert.Contains(t, buf.String(), s.ID())
}

func TestSessionLogsAppliedGates(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewSession(2, WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	require.NoError(t, err)

	require.NoError(t, s.Apply("h", []int{0}))
	assert.Contains(t, buf.String(), `"gate":"H"`)
	assert.Contains(t, buf.String(), `"column":0`)
}

func TestReplayReproducesState(t *testing.T) {
	s, err := NewSession(3, WithWorkers(2, 1))
	require.NoError(t, err)
	require.NoError(t, s.Apply("H", []int{0}))
	require.NoError(t, s.Apply("CX", []int{0, 2}))
	require.NoError(t, s.Apply("RZ", []int{2}, 0.3))
	require.NoError(t, s.ApplyMatrix("custom", SqrtX, 1))
	require.NoError(t, s.Apply("SWAP", []int{1, 2}))

	replayed, err := Replay(3, s.History())
	require.NoError(t, err)
	assert.True(t, s.State().ApproxEqual(replayed.State(), 1e-12))
	assert.Equal(t, s.History(), replayed.History())

	// Rolling back is a replay of a prefix.
	prefix, err := Replay(3, s.History()[:2])
	require.NoError(t, err)
	state := prefix.CurrentState()
	assert.InDelta(t, 0.5, state[0].Probability, Tolerance)
	assert.InDelta(t, 0.5, state[5].Probability, Tolerance)

	_, err = Replay(2, s.History())
	assert.ErrorIs(t, err, ErrInvalidQubitRange)
}

func TestHistoryWithout(t *testing.T) {
	s, err := NewSession(3)
	require.NoError(t, err)
	require.NoError(t, s.Apply("H", []int{0}))
	require.NoError(t, s.Apply("CX", []int{0, 1}))
	require.NoError(t, s.Apply("X", []int{2}))
	require.NoError(t, s.Apply("SWAP", []int{0, 2}))

	kept := s.HistoryWithout(1)
	require.Len(t, kept, 3)
	assert.Equal(t, []int{0}, kept[0].Qubits)
	assert.Equal(t, []int{1}, kept[1].Qubits)
	assert.Equal(t, []int{0, 1}, kept[2].Qubits)

	smaller, err := Replay(2, kept)
	require.NoError(t, err)
	assert.Len(t, smaller.History(), 3)
	assert.Len(t, s.History(), 4)
}
