package imo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/rorostab/pkg/errors"
)

func square(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x * x
	}
	return out
}

func TestSimpsons(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		want float64
	}{
		{"even intervals", []float64{0, 0.5, 1, 1.5, 2}, 8.0 / 3},
		{"irregular pair", []float64{0, 0.5, 2}, 8.0 / 3},
		// Simpson on [0, 2], trapezoid on the odd interval [2, 3].
		{"odd interval tail", []float64{0, 1, 2, 3}, 8.0/3 + 6.5},
		{"two points", []float64{1, 2}, 2.5},
		{"one point", []float64{1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, simpsons(tt.x, square(tt.x)), 1e-12)
		})
	}
}

func TestSimpsonsMatchesIntegrator(t *testing.T) {
	x := make([]float64, 41)
	for i := range x {
		x[i] = float64(i) / 40
	}
	f := square(x)
	assert.InDelta(t, integrate(x, f), simpsons(x, f), 1e-12)
}

func TestResampleRejectsUnorderedHeels(t *testing.T) {
	_, _, err := resample([]float64{0, 10, 10}, []float64{0, 0.1, 0.2})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidInput))

	angles, values, err := resample([]float64{0, 20}, []float64{0, 0.4})
	require.NoError(t, err)
	require.Len(t, angles, 41)
	assert.InDelta(t, 0.2, values[10], 1e-12)
	assert.Equal(t, 0.4, values[40], "held beyond the last heel")
}
