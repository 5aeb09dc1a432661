package quantum

// Amplitude is the complex coefficient of one basis state.
type Amplitude = complex128

// Add returns a+b.
func Add(a, b Amplitude) Amplitude {
	return complex(real(a)+real(b), imag(a)+imag(b))
}

// Mul returns the complex product a*b.
func Mul(a, b Amplitude) Amplitude {
	return complex(
		real(a)*real(b)-imag(a)*imag(b),
		real(a)*imag(b)+imag(a)*real(b),
	)
}

// Abs2 returns the squared modulus |a|², i.e. the probability weight of a.
func Abs2(a Amplitude) float64 {
	return real(a)*real(a) + imag(a)*imag(a)
}
