package imo

// simpsons applies composite Simpson's rule on pairs of intervals and the
// trapezoidal rule on a trailing odd interval or on fewer than three points.
// It backs the purego build, which must not import gonum.
func simpsons(x, f []float64) float64 {
	n := len(x)
	if n < 2 {
		return 0
	}
	var sum float64
	i := 0
	for ; i+2 < n; i += 2 {
		h0 := x[i+1] - x[i]
		h1 := x[i+2] - x[i+1]
		if h0 == h1 {
			sum += h0 / 3 * (f[i] + 4*f[i+1] + f[i+2])
			continue
		}
		// Irregular pair: exact for quadratics through the three points.
		hs := h0 + h1
		sum += hs / 6 * ((2-h1/h0)*f[i] + hs*hs/(h0*h1)*f[i+1] + (2-h0/h1)*f[i+2])
	}
	if i+1 < n {
		sum += (x[i+1] - x[i]) * (f[i] + f[i+1]) / 2
	}
	return sum
}
