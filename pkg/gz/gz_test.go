package gz_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rorostab/pkg/curve"
	"github.com/matzehuels/rorostab/pkg/gz"
	"github.com/matzehuels/rorostab/pkg/hydro/hydrotest"
)

type staticKN struct {
	values map[float64]float64
	calls  int
	err    error
}

func (s *staticKN) KNCurve(_ float64, heels []float64, _ float64) (curve.Curve, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make(curve.Curve, len(heels))
	for i, h := range heels {
		out[i] = curve.Point{Heel: h, Value: s.values[h]}
	}
	return out, nil
}

func TestKGCorrected(t *testing.T) {
	tests := []struct {
		vcg, fsm, w float64
		want        float64
	}{
		{4.0, 100, 1000, 4.1},
		{4.0, 0, 1000, 4.0},
		{4.0, 100, 0, 4.0},
	}
	for _, tt := range tests {
		if got := gz.KGCorrected(tt.vcg, tt.fsm, tt.w); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("KGCorrected(%v, %v, %v) = %v, want %v", tt.vcg, tt.fsm, tt.w, got, tt.want)
		}
	}
}

func TestCalculate(t *testing.T) {
	src := &staticKN{values: map[float64]float64{0: 0.05, 30: 2.5, 90: 4.0}}
	c, err := gz.Calculate(1000, 4.0, 0, []float64{0, 30, 90}, src)
	require.NoError(t, err)
	require.Len(t, c, 3)

	assert.Equal(t, 1, src.calls, "KN is queried once for all heels")
	assert.Equal(t, []float64{0, 30, 90}, c.Heels())
	assert.InDelta(t, 0.05, c[0].Value, 1e-12)
	assert.InDelta(t, 2.5-4.0*0.5, c[1].Value, 1e-12)
	assert.InDelta(t, 0.0, c[2].Value, 1e-12)
}

func TestGZAtZeroHeelEqualsKN(t *testing.T) {
	src := &staticKN{values: map[float64]float64{0: 0.12}}
	for _, kg := range []float64{0, 1.5, 7.25, 100} {
		c, err := gz.Calculate(900, kg, 0, []float64{0}, src)
		require.NoError(t, err)
		assert.Equal(t, 0.12, c[0].Value, "kg=%v", kg)
	}
}

func TestNegativeGZPreserved(t *testing.T) {
	src := &staticKN{values: map[float64]float64{10: 0.5, 20: 0.8}}
	c, err := gz.Calculate(1000, 6.0, 0, []float64{10, 20}, src)
	require.NoError(t, err)

	for _, p := range c {
		assert.Less(t, p.Value, 0.0, "heel %v", p.Heel)
	}
	want := 0.5 - 6.0*math.Sin(10*math.Pi/180)
	assert.InDelta(t, want, c[0].Value, 1e-12)
}

func TestCalculateDefaultsAndErrors(t *testing.T) {
	src := &staticKN{values: map[float64]float64{}}
	c, err := gz.Calculate(1000, 1, 0, nil, src)
	require.NoError(t, err)
	assert.Equal(t, gz.DefaultHeels, c.Heels())

	_, err = gz.Calculate(1000, math.NaN(), 0, nil, src)
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = gz.Calculate(1000, 1, 0, nil, &staticKN{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestCalculateAgainstTables(t *testing.T) {
	e := hydrotest.Engine(t)
	c, err := gz.Calculate(900, 2.0, 0, []float64{0, 10, 20, 30, 40}, e)
	require.NoError(t, err)

	for _, p := range c {
		kn, err := e.KN(900, p.Heel, 0)
		require.NoError(t, err)
		assert.InDelta(t, kn-2.0*math.Sin(p.Heel*math.Pi/180), p.Value, 1e-12)
	}
}
