package quantum

import "slices"

// LogEntry records one successfully applied gate. Qubits is [target] for
// single-qubit gates and [control, target] for controlled gates. Matrix is
// set only for caller-supplied matrices, so a replay can reproduce them.
type LogEntry struct {
	Gate   string
	Kind   Kind
	Qubits []int
	Params []float64
	Matrix *Matrix
	Column int
}

// Target returns the qubit the gate acts on.
func (e LogEntry) Target() int {
	if len(e.Qubits) == 0 {
		return -1
	}
	return e.Qubits[len(e.Qubits)-1]
}

// Control returns the control qubit, or -1 for single-qubit entries.
func (e LogEntry) Control() int {
	if e.Kind != Controlled || len(e.Qubits) < 2 {
		return -1
	}
	return e.Qubits[0]
}

// Touches reports whether the entry involves qubit q.
func (e LogEntry) Touches(q int) bool {
	return slices.Contains(e.Qubits, q)
}

func (e LogEntry) clone() LogEntry {
	e.Qubits = slices.Clone(e.Qubits)
	e.Params = slices.Clone(e.Params)
	if e.Matrix != nil {
		m := *e.Matrix
		e.Matrix = &m
	}
	return e
}

// CircuitLog is the append-only history of a session. It is observational
// only; nothing in the simulation reads it back.
type CircuitLog struct {
	entries []LogEntry
}

// Append stores a copy of e at the next column and returns the stored entry.
func (l *CircuitLog) Append(e LogEntry) LogEntry {
	e = e.clone()
	e.Column = len(l.entries)
	l.entries = append(l.entries, e)
	return e.clone()
}

// Len returns the number of recorded entries, which is also the next column.
func (l *CircuitLog) Len() int {
	return len(l.entries)
}

// At returns the entry recorded at column.
func (l *CircuitLog) At(column int) (LogEntry, bool) {
	if column < 0 || column >= len(l.entries) {
		return LogEntry{}, false
	}
	return l.entries[column].clone(), true
}

// Entries returns a copy of the whole log in column order.
func (l *CircuitLog) Entries() []LogEntry {
	out := make([]LogEntry, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.clone()
	}
	return out
}
