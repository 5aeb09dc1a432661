package quantum

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Applicator runs gate passes over a StateVector. The zero value is a serial
// applicator. With more than one worker, registers of at least minQubits
// qubits are split across goroutines by output index range, so every
// output slot is written by exactly one worker.
type Applicator struct {
	workers   int
	minQubits int
}

// NewApplicator returns an applicator using up to workers goroutines for
// registers of minQubits qubits or more. workers <= 0 means runtime.NumCPU().
func NewApplicator(workers, minQubits int) *Applicator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Applicator{workers: workers, minQubits: minQubits}
}

var serial = &Applicator{}

// ApplySingleQubitGate applies m to qubit target. Unitarity of m is the
// caller's contract and is not checked here.
func ApplySingleQubitGate(state *StateVector, m Matrix, target int) error {
	return serial.ApplySingleQubitGate(state, m, target)
}

// ApplyControlled applies a two-qubit permutation over (control, target).
func ApplyControlled(state *StateVector, rule Permutation, control, target int) error {
	return serial.ApplyControlled(state, rule, control, target)
}

// ApplyControlledNot flips target wherever control is 1.
func ApplyControlledNot(state *StateVector, control, target int) error {
	return serial.ApplyControlled(state, FlipTarget, control, target)
}

func (a *Applicator) parallel(state *StateVector) int {
	if a == nil || a.workers <= 1 || state.numQubits < a.minQubits {
		return 1
	}
	// Chunks smaller than a few thousand amplitudes cost more to schedule
	// than to compute.
	chunks := min(a.workers, state.Len()/4096)
	return max(chunks, 1)
}

// ApplySingleQubitGate replaces state with (m on target) ⊗ I elsewhere.
func (a *Applicator) ApplySingleQubitGate(state *StateVector, m Matrix, target int) error {
	if !state.validQubit(target) {
		return fmt.Errorf("%w: target %d with %d qubit(s)", ErrInvalidQubitRange, target, state.numQubits)
	}

	in := state.amplitudes
	out := make([]Amplitude, len(in))
	shift := state.bitPos(target)
	mask := 1 << shift

	if workers := a.parallel(state); workers > 1 {
		forEachChunk(len(out), workers, func(lo, hi int) {
			for k := lo; k < hi; k++ {
				row := (k >> shift) & 1
				k0 := k &^ mask
				k1 := k0 | mask
				out[k] = Add(Mul(m[row][0], in[k0]), Mul(m[row][1], in[k1]))
			}
		})
		state.replace(out)
		return nil
	}

	// Each input index feeds both rows of its column; two inputs land on
	// every output slot, so contributions must be summed.
	for i, amp := range in {
		bit := (i >> shift) & 1
		for j := 0; j < 2; j++ {
			flipped := (i &^ mask) | (j << shift)
			out[flipped] = Add(out[flipped], Mul(m[j][bit], amp))
		}
	}
	state.replace(out)
	return nil
}

// ApplyControlled moves every amplitude to rule(i, controlMask, targetMask).
func (a *Applicator) ApplyControlled(state *StateVector, rule Permutation, control, target int) error {
	if err := checkPair(state, control, target); err != nil {
		return err
	}

	in := state.amplitudes
	out := make([]Amplitude, len(in))
	cMask := state.qubitMask(control)
	tMask := state.qubitMask(target)

	permute := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[rule(i, cMask, tMask)] = in[i]
		}
	}

	if workers := a.parallel(state); workers > 1 {
		forEachChunk(len(in), workers, permute)
	} else {
		permute(0, len(in))
	}
	state.replace(out)
	return nil
}

func checkPair(state *StateVector, control, target int) error {
	if !state.validQubit(control) || !state.validQubit(target) {
		return fmt.Errorf("%w: %w: control %d, target %d with %d qubit(s)",
			ErrInvalidQubitPair, ErrInvalidQubitRange, control, target, state.numQubits)
	}
	if control == target {
		return fmt.Errorf("%w: control and target are both %d", ErrInvalidQubitPair, control)
	}
	return nil
}

// forEachChunk splits [0, n) into workers contiguous ranges and runs fn on
// each concurrently.
func forEachChunk(n, workers int, fn func(lo, hi int)) {
	var g errgroup.Group
	g.SetLimit(workers)
	size := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += size {
		lo := lo
		hi := min(lo+size, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
