package quantum

import "errors"

// Error kinds returned by the simulator. Callers match them with errors.Is;
// returned errors wrap these with the offending values.
var (
	ErrInvalidDimension  = errors.New("invalid qubit count")
	ErrIndexOutOfRange   = errors.New("basis index out of range")
	ErrInvalidQubitRange = errors.New("qubit index out of range")
	ErrInvalidQubitPair  = errors.New("invalid control/target pair")
	ErrUnknownGate       = errors.New("unknown gate")
	ErrInvalidParams     = errors.New("invalid gate parameters")
	ErrNotUnitary        = errors.New("matrix is not unitary")
)
