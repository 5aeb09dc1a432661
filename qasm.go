package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"qcircsim/internal/quantum"
)

// Pre-compiled regexps for the QASM subset the simulator understands.
var (
	qregRegex            = regexp.MustCompile(`^qreg\s+(\w+)\[(\d+)\];?$`)
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + angleToken + `(?:\s*,\s*` + angleToken + `)*)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
)

// qasmProgram is a parsed circuit ready to be replayed into a session.
type qasmProgram struct {
	NumQubits int
	Entries   []quantum.LogEntry
}

// ToQASM renders a session history as OpenQASM 2.0. Entries created from
// caller-supplied matrices have no QASM spelling and are written as comments.
func ToQASM(numQubits int, entries []quantum.LogEntry) string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", numQubits)
	if len(entries) > 0 {
		sb.WriteString("\n")
	}

	for _, e := range entries {
		name := qasmName(e.Gate)
		switch {
		case e.Matrix != nil:
			fmt.Fprintf(&sb, "// %s q[%d] (custom matrix)\n", e.Gate, e.Target())
		case e.Kind == quantum.Controlled:
			fmt.Fprintf(&sb, "%s q[%d], q[%d];\n", name, e.Control(), e.Target())
		case len(e.Params) > 0:
			angles := make([]string, len(e.Params))
			for i, p := range e.Params {
				angles[i] = formatAngle(p)
			}
			fmt.Fprintf(&sb, "%s(%s) q[%d];\n", name, strings.Join(angles, ","), e.Target())
		default:
			fmt.Fprintf(&sb, "%s q[%d];\n", name, e.Target())
		}
	}
	return sb.String()
}

func qasmName(gate string) string {
	if gate == "I" {
		return "id"
	}
	return strings.ToLower(gate)
}

// ParseQASM reads the subset of OpenQASM 2.0 that ToQASM writes: one qreg
// named q, catalog gates, and angles in pi notation. creg and barrier lines
// are accepted and ignored; anything else is an error.
func ParseQASM(text string) (*qasmProgram, error) {
	prog := &qasmProgram{}

	for n, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		lineNo := n + 1

		switch {
		case line == "", strings.HasPrefix(line, "//"):
			continue
		case strings.HasPrefix(line, "OPENQASM"), strings.HasPrefix(line, "include"):
			continue
		case strings.HasPrefix(line, "creg"), strings.HasPrefix(line, "barrier"):
			continue
		}

		if m := qregRegex.FindStringSubmatch(line); m != nil {
			if prog.NumQubits != 0 {
				return nil, fmt.Errorf("line %d: only one qreg is supported", lineNo)
			}
			if m[1] != "q" {
				return nil, fmt.Errorf("line %d: register must be named q, got %s", lineNo, m[1])
			}
			size, err := strconv.Atoi(m[2])
			if err != nil || size < 1 {
				return nil, fmt.Errorf("line %d: bad register size %q", lineNo, m[2])
			}
			prog.NumQubits = size
			continue
		}

		entry, err := parseGateLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if prog.NumQubits == 0 {
			return nil, fmt.Errorf("line %d: gate before qreg declaration", lineNo)
		}
		entry.Column = len(prog.Entries)
		prog.Entries = append(prog.Entries, entry)
	}

	if prog.NumQubits == 0 {
		return nil, fmt.Errorf("missing qreg declaration")
	}
	return prog, nil
}

func parseGateLine(line string) (quantum.LogEntry, error) {
	if m := twoQubitRegex.FindStringSubmatch(line); m != nil {
		gate, err := lookupKind(m[1], quantum.Controlled)
		if err != nil {
			return quantum.LogEntry{}, err
		}
		control, _ := strconv.Atoi(m[2])
		target, _ := strconv.Atoi(m[3])
		return quantum.LogEntry{Gate: gate.Name, Kind: gate.Kind, Qubits: []int{control, target}}, nil
	}

	if m := singleGateParamRegex.FindStringSubmatch(line); m != nil {
		gate, err := lookupKind(m[1], quantum.SingleQubit)
		if err != nil {
			return quantum.LogEntry{}, err
		}
		params := parseAngles(m[2])
		if len(params) != gate.Params {
			return quantum.LogEntry{}, fmt.Errorf("%w: %s expects %d angle(s)", quantum.ErrInvalidParams, gate.Name, gate.Params)
		}
		target, _ := strconv.Atoi(m[3])
		return quantum.LogEntry{Gate: gate.Name, Kind: gate.Kind, Qubits: []int{target}, Params: params}, nil
	}

	if m := singleGateRegex.FindStringSubmatch(line); m != nil {
		gate, err := lookupKind(m[1], quantum.SingleQubit)
		if err != nil {
			return quantum.LogEntry{}, err
		}
		if gate.Params != 0 {
			return quantum.LogEntry{}, fmt.Errorf("%w: %s expects %d angle(s)", quantum.ErrInvalidParams, gate.Name, gate.Params)
		}
		target, _ := strconv.Atoi(m[2])
		return quantum.LogEntry{Gate: gate.Name, Kind: gate.Kind, Qubits: []int{target}}, nil
	}

	return quantum.LogEntry{}, fmt.Errorf("unsupported statement %q", line)
}

func lookupKind(name string, kind quantum.Kind) (quantum.GateDef, error) {
	gate, err := quantum.Lookup(name)
	if err != nil {
		return gate, err
	}
	if gate.Kind != kind {
		return gate, fmt.Errorf("%w: %s takes %d qubit(s)", quantum.ErrInvalidQubitRange, gate.Name, gate.Qubits())
	}
	return gate, nil
}
