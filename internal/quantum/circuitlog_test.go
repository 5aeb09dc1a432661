package quantum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitLogAssignsColumns(t *testing.T) {
	var log CircuitLog
	assert.Equal(t, 0, log.Len())

	first := log.Append(LogEntry{Gate: "H", Kind: SingleQubit, Qubits: []int{0}, Column: 99})
	second := log.Append(LogEntry{Gate: "CX", Kind: Controlled, Qubits: []int{0, 1}})
	assert.Equal(t, 0, first.Column)
	assert.Equal(t, 1, second.Column)
	assert.Equal(t, 2, log.Len())

	e, ok := log.At(1)
	require.True(t, ok)
	assert.Equal(t, "CX", e.Gate)
	assert.True(t, e.Touches(1))
	assert.False(t, e.Touches(2))

	_, ok = log.At(2)
	assert.False(t, ok)
	_, ok = log.At(-1)
	assert.False(t, ok)
}

func TestCircuitLogCopiesMatrix(t *testing.T) {
	var log CircuitLog
	m := Hadamard
	log.Append(LogEntry{Gate: "U", Kind: SingleQubit, Qubits: []int{0}, Matrix: &m})
	m[0][0] = 0

	e, ok := log.At(0)
	require.True(t, ok)
	require.NotNil(t, e.Matrix)
	assert.Equal(t, Hadamard, *e.Matrix)

	e.Matrix[1][1] = 5
	again, _ := log.At(0)
	assert.Equal(t, Hadamard, *again.Matrix)
}

func TestLogEntryAccessorsOnEmptyQubits(t *testing.T) {
	var e LogEntry
	assert.Equal(t, -1, e.Target())
	assert.Equal(t, -1, e.Control())
}
