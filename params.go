package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// angleToken matches one angle inside a QASM parameter list: a plain number
// or a multiple/fraction of pi such as "3*pi/4" or "-pi".
const angleToken = `-?(?:\d*\.?\d*\*?pi(?:/\d+\.?\d*)?|\d+\.?\d*(?:[eE][+\-]?\d+)?)`

// piAngle captures sign, coefficient and denominator of a pi expression.
var piAngle = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// parseAngle reads a rotation angle written as a number ("1.57", "-0.5",
// "3e-2") or in terms of pi ("pi", "2pi", "pi/2", "-3*pi/4").
func parseAngle(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}

	m := piAngle.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v := math.Pi
	if m[2] != "" {
		coeff, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, false
		}
		v *= coeff
	}
	if m[3] != "" {
		denom, err := strconv.ParseFloat(m[3], 64)
		if err != nil || denom == 0 {
			return 0, false
		}
		v /= denom
	}
	if m[1] == "-" {
		v = -v
	}
	return v, true
}

// piFractions are the angles formatAngle prints symbolically.
var piFractions = []struct {
	num, den int
}{
	{2, 1}, {1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 6}, {1, 8},
	{3, 4}, {3, 2}, {2, 3},
}

// formatAngle prints an angle, using pi notation for common fractions.
func formatAngle(v float64) string {
	for _, f := range piFractions {
		ref := float64(f.num) * math.Pi / float64(f.den)
		sign := ""
		switch {
		case math.Abs(v-ref) < 1e-10:
		case math.Abs(v+ref) < 1e-10:
			sign = "-"
		default:
			continue
		}
		s := "pi"
		if f.num != 1 {
			s = fmt.Sprintf("%d*pi", f.num)
		}
		if f.den != 1 {
			s += fmt.Sprintf("/%d", f.den)
		}
		return sign + s
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// parseAngles parses a comma-separated angle list. It returns nil if any
// element is malformed or the list is empty.
func parseAngles(input string) []float64 {
	var out []float64
	for _, part := range strings.Split(input, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		v, ok := parseAngle(part)
		if !ok {
			return nil
		}
		out = append(out, v)
	}
	return out
}

// isAngleRune reports whether r may be typed into the angle prompt.
func isAngleRune(r byte) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case strings.IndexByte(".,-+eE*/pi", r) >= 0:
		return true
	}
	return false
}
