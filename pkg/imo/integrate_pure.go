//go:build purego

package imo

// Integrator names the quadrature compiled into this build.
const Integrator = "simpson-purego"

func integrate(x, f []float64) float64 {
	return simpsons(x, f)
}
