package quantum

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// Matrix is a 2x2 single-qubit operator, indexed [row][column].
type Matrix [2][2]Amplitude

// Dagger returns the conjugate transpose of m.
func (m Matrix) Dagger() Matrix {
	return Matrix{
		{cmplx.Conj(m[0][0]), cmplx.Conj(m[1][0])},
		{cmplx.Conj(m[0][1]), cmplx.Conj(m[1][1])},
	}
}

// Kind tags how a gate acts on the register.
type Kind int

const (
	SingleQubit Kind = iota
	Controlled
)

func (k Kind) String() string {
	switch k {
	case SingleQubit:
		return "single"
	case Controlled:
		return "controlled"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Permutation maps a basis index to its destination under a two-qubit
// permutation gate. controlMask and targetMask each have the single index
// bit of the respective qubit set. Implementations must be bijections over
// the index range.
type Permutation func(index, controlMask, targetMask int) int

// FlipTarget is the CNOT rule: flip the target bit when the control bit is set.
func FlipTarget(index, controlMask, targetMask int) int {
	if index&controlMask != 0 {
		return index ^ targetMask
	}
	return index
}

// SwapBits exchanges the two qubits' bits.
func SwapBits(index, controlMask, targetMask int) int {
	if (index&controlMask != 0) != (index&targetMask != 0) {
		return index ^ (controlMask | targetMask)
	}
	return index
}

// GateDef is one catalog entry. SingleQubit entries carry either a constant
// Matrix or, when Params > 0, a Build function; Controlled entries carry a
// Permutation.
type GateDef struct {
	Name        string
	Description string
	Kind        Kind
	Matrix      Matrix
	Params      int
	Build       func(params []float64) Matrix
	Permute     Permutation
}

// Qubits returns how many qubit arguments the gate takes.
func (g GateDef) Qubits() int {
	if g.Kind == Controlled {
		return 2
	}
	return 1
}

// MatrixFor resolves the gate's matrix for the given parameters.
func (g GateDef) MatrixFor(params []float64) (Matrix, error) {
	if g.Kind != SingleQubit {
		return Matrix{}, fmt.Errorf("%w: %s has no single-qubit matrix", ErrInvalidParams, g.Name)
	}
	if len(params) != g.Params {
		return Matrix{}, fmt.Errorf("%w: %s takes %d parameter(s), got %d", ErrInvalidParams, g.Name, g.Params, len(params))
	}
	for _, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return Matrix{}, fmt.Errorf("%w: %s parameter %v", ErrInvalidParams, g.Name, p)
		}
	}
	if g.Build != nil {
		return g.Build(params), nil
	}
	return g.Matrix, nil
}

const invSqrt2 = 1 / math.Sqrt2

// Fixed single-qubit gates.
var (
	Identity = Matrix{
		{1, 0},
		{0, 1},
	}
	Hadamard = Matrix{
		{invSqrt2, invSqrt2},
		{invSqrt2, -invSqrt2},
	}
	PauliX = Matrix{
		{0, 1},
		{1, 0},
	}
	PauliY = Matrix{
		{0, -1i},
		{1i, 0},
	}
	PauliZ = Matrix{
		{1, 0},
		{0, -1},
	}
	PhaseS = Matrix{
		{1, 0},
		{0, 1i},
	}
	PhaseSDagger = PhaseS.Dagger()
	PhaseT       = Matrix{
		{1, 0},
		{0, cmplx.Exp(complex(0, math.Pi/4))},
	}
	PhaseTDagger = PhaseT.Dagger()
	SqrtX        = Matrix{
		{complex(0.5, 0.5), complex(0.5, -0.5)},
		{complex(0.5, -0.5), complex(0.5, 0.5)},
	}
)

// RX rotates by theta about the X axis.
func RX(theta float64) Matrix {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return Matrix{
		{c, js},
		{js, c},
	}
}

// RY rotates by theta about the Y axis.
func RY(theta float64) Matrix {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Matrix{
		{c, -s},
		{s, c},
	}
}

// RZ rotates by theta about the Z axis.
func RZ(theta float64) Matrix {
	return Matrix{
		{cmplx.Exp(complex(0, -theta/2)), 0},
		{0, cmplx.Exp(complex(0, theta/2))},
	}
}

// Phase applies e^{i lambda} to |1>.
func Phase(lambda float64) Matrix {
	return Matrix{
		{1, 0},
		{0, cmplx.Exp(complex(0, lambda))},
	}
}

func oneParam(f func(float64) Matrix) func([]float64) Matrix {
	return func(params []float64) Matrix { return f(params[0]) }
}

// catalog is ordered for display.
var catalog = []GateDef{
	{Name: "I", Description: "Identity", Kind: SingleQubit, Matrix: Identity},
	{Name: "H", Description: "Hadamard", Kind: SingleQubit, Matrix: Hadamard},
	{Name: "X", Description: "Pauli-X (NOT)", Kind: SingleQubit, Matrix: PauliX},
	{Name: "Y", Description: "Pauli-Y", Kind: SingleQubit, Matrix: PauliY},
	{Name: "Z", Description: "Pauli-Z", Kind: SingleQubit, Matrix: PauliZ},
	{Name: "S", Description: "Phase (S)", Kind: SingleQubit, Matrix: PhaseS},
	{Name: "SDG", Description: "Phase Dagger (S†)", Kind: SingleQubit, Matrix: PhaseSDagger},
	{Name: "T", Description: "T Gate", Kind: SingleQubit, Matrix: PhaseT},
	{Name: "TDG", Description: "T Dagger (T†)", Kind: SingleQubit, Matrix: PhaseTDagger},
	{Name: "SX", Description: "√X (SX)", Kind: SingleQubit, Matrix: SqrtX},
	{Name: "RX", Description: "Rotate X", Kind: SingleQubit, Params: 1, Build: oneParam(RX)},
	{Name: "RY", Description: "Rotate Y", Kind: SingleQubit, Params: 1, Build: oneParam(RY)},
	{Name: "RZ", Description: "Rotate Z", Kind: SingleQubit, Params: 1, Build: oneParam(RZ)},
	{Name: "P", Description: "Phase Shift", Kind: SingleQubit, Params: 1, Build: oneParam(Phase)},
	{Name: "CX", Description: "CNOT", Kind: Controlled, Permute: FlipTarget},
	{Name: "SWAP", Description: "SWAP", Kind: Controlled, Permute: SwapBits},
}

var aliases = map[string]string{
	"CNOT": "CX",
	"ID":   "I",
	"NOT":  "X",
	"S†":   "SDG",
	"T†":   "TDG",
	"U1":   "P",
}

// Catalog returns every built-in gate in display order.
func Catalog() []GateDef {
	out := make([]GateDef, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a gate by name, case-insensitively.
func Lookup(name string) (GateDef, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	for _, g := range catalog {
		if g.Name == key {
			return g, nil
		}
	}
	return GateDef{}, fmt.Errorf("%w: %q", ErrUnknownGate, name)
}
