package quantum

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Session owns one register and its circuit history. Gate requests either
// complete fully, replacing the state and appending one log entry, or fail
// before anything is touched.
//
// A Session is not safe for concurrent use.
type Session struct {
	id         string
	maxQubits  int
	state      *StateVector
	log        CircuitLog
	applicator *Applicator
	debug      bool
	logger     zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. Sessions log nothing by default.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = log
	}
}

// WithMaxQubits sets the qubit ceiling checked by NewSession.
func WithMaxQubits(n int) Option {
	return func(s *Session) {
		s.maxQubits = n
	}
}

// WithWorkers enables the partitioned gate pass for registers of at least
// minQubits qubits.
func WithWorkers(workers, minQubits int) Option {
	return func(s *Session) {
		s.applicator = NewApplicator(workers, minQubits)
	}
}

// WithDebugChecks turns on unitarity checks for caller matrices and a norm
// check after every gate.
func WithDebugChecks(enabled bool) Option {
	return func(s *Session) {
		s.debug = enabled
	}
}

// NewSession creates a session over numQubits qubits in |0...0>.
func NewSession(numQubits int, opts ...Option) (*Session, error) {
	s := &Session{
		id:         uuid.NewString(),
		maxQubits:  DefaultMaxQubits,
		applicator: serial,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	state, err := NewStateVectorWithLimit(numQubits, s.maxQubits)
	if err != nil {
		return nil, err
	}
	s.state = state
	s.logger = s.logger.With().Str("session", s.id).Int("qubits", numQubits).Logger()
	s.logger.Debug().Msg("session created")
	return s, nil
}

// Replay builds a new session and applies entries in order. It is how a
// caller rolls back: replay a prefix of History().
func Replay(numQubits int, entries []LogEntry, opts ...Option) (*Session, error) {
	s, err := NewSession(numQubits, opts...)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Matrix != nil {
			err = s.ApplyMatrix(e.Gate, *e.Matrix, e.Target())
		} else {
			err = s.Apply(e.Gate, e.Qubits, e.Params...)
		}
		if err != nil {
			return nil, fmt.Errorf("replay column %d (%s): %w", e.Column, e.Gate, err)
		}
	}
	return s, nil
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// NumQubits returns the register size.
func (s *Session) NumQubits() int {
	return s.state.NumQubits()
}

// State returns a copy of the current state vector.
func (s *Session) State() *StateVector {
	return s.state.Clone()
}

// Apply runs the catalog gate named tag on qubits: [target] for single-qubit
// gates, [control, target] for controlled ones.
func (s *Session) Apply(tag string, qubits []int, params ...float64) error {
	gate, err := Lookup(tag)
	if err != nil {
		return err
	}

	switch gate.Kind {
	case SingleQubit:
		if len(qubits) != 1 {
			return fmt.Errorf("%w: %s takes 1 qubit, got %d", ErrInvalidQubitRange, gate.Name, len(qubits))
		}
		m, err := gate.MatrixFor(params)
		if err != nil {
			return err
		}
		return s.applySingle(LogEntry{Gate: gate.Name, Kind: SingleQubit, Qubits: qubits, Params: params}, m)

	case Controlled:
		if len(qubits) != 2 {
			return fmt.Errorf("%w: %s takes 2 qubits, got %d", ErrInvalidQubitPair, gate.Name, len(qubits))
		}
		if len(params) != 0 {
			return fmt.Errorf("%w: %s takes no parameters", ErrInvalidParams, gate.Name)
		}
		entry := LogEntry{Gate: gate.Name, Kind: Controlled, Qubits: qubits}
		return s.run(entry, func(next *StateVector) error {
			return s.applicator.ApplyControlled(next, gate.Permute, qubits[0], qubits[1])
		})
	}
	return fmt.Errorf("%w: %s has kind %s", ErrUnknownGate, gate.Name, gate.Kind)
}

// ApplyMatrix applies a caller-supplied matrix to target and records it
// under label. The matrix must be unitary; only debug mode verifies that.
func (s *Session) ApplyMatrix(label string, m Matrix, target int) error {
	if s.debug && !IsUnitary(m, Tolerance) {
		return fmt.Errorf("%w: %s", ErrNotUnitary, label)
	}
	return s.applySingle(LogEntry{Gate: label, Kind: SingleQubit, Qubits: []int{target}, Matrix: &m}, m)
}

func (s *Session) applySingle(entry LogEntry, m Matrix) error {
	return s.run(entry, func(next *StateVector) error {
		return s.applicator.ApplySingleQubitGate(next, m, entry.Target())
	})
}

// run applies pass to a shallow copy of the state so that a failed pass
// cannot leave the session half-updated, then commits state and log.
func (s *Session) run(entry LogEntry, pass func(next *StateVector) error) error {
	next := &StateVector{numQubits: s.state.numQubits, amplitudes: s.state.amplitudes}
	if err := pass(next); err != nil {
		s.logger.Debug().Err(err).Str("gate", entry.Gate).Ints("qubits", entry.Qubits).Msg("gate rejected")
		return err
	}

	if s.debug && !next.IsNormalized(Tolerance) {
		s.logger.Error().
			Str("gate", entry.Gate).
			Float64("total_probability", next.TotalProbability()).
			Msg("state drifted from unit norm")
	}

	s.state = next
	stored := s.log.Append(entry)
	s.logger.Debug().
		Str("gate", stored.Gate).
		Ints("qubits", stored.Qubits).
		Floats64("params", stored.Params).
		Int("column", stored.Column).
		Msg("gate applied")
	return nil
}

// BasisAmplitude is one row of CurrentState.
type BasisAmplitude struct {
	Index       int
	Bits        string
	Amplitude   Amplitude
	Probability float64
}

// CurrentState lists every basis state in index order.
func (s *Session) CurrentState() []BasisAmplitude {
	out := make([]BasisAmplitude, s.state.Len())
	for i, amp := range s.state.amplitudes {
		out[i] = BasisAmplitude{
			Index:       i,
			Bits:        s.state.BasisLabel(i),
			Amplitude:   amp,
			Probability: Abs2(amp),
		}
	}
	return out
}

// History returns the applied gates in column order.
func (s *Session) History() []LogEntry {
	return s.log.Entries()
}

// HistoryWithout returns History minus any entry touching qubit q, with the
// remaining qubit indices above q shifted down by one. It is used when a
// register shrinks.
func (s *Session) HistoryWithout(q int) []LogEntry {
	var out []LogEntry
	for _, e := range s.log.Entries() {
		if e.Touches(q) {
			continue
		}
		e.Qubits = slices.Clone(e.Qubits)
		for i, eq := range e.Qubits {
			if eq > q {
				e.Qubits[i] = eq - 1
			}
		}
		out = append(out, e)
	}
	return out
}
