// Package curve holds heel-indexed curves such as KN cross curves and GZ
// righting-arm curves.
package curve

import "sort"

// Point is one value of a curve at a heel angle in degrees.
type Point struct {
	Heel  float64 `json:"heel"`
	Value float64 `json:"value"`
}

// Curve is a list of points in the order they were requested.
// It is not required to be sorted; use [Curve.Sorted] when order matters.
type Curve []Point

// At returns the value stored for heel and whether it exists.
func (c Curve) At(heel float64) (float64, bool) {
	for _, p := range c {
		if p.Heel == heel {
			return p.Value, true
		}
	}
	return 0, false
}

// Heels returns the heel angles in curve order.
func (c Curve) Heels() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Heel
	}
	return out
}

// Values returns the curve values in curve order.
func (c Curve) Values() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Value
	}
	return out
}

// Sorted returns a copy of c ordered by ascending heel.
func (c Curve) Sorted() Curve {
	out := make(Curve, len(c))
	copy(out, c)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Heel < out[j].Heel })
	return out
}

// FromSlices pairs heels with values. The shorter slice bounds the result.
func FromSlices(heels, values []float64) Curve {
	n := min(len(heels), len(values))
	out := make(Curve, n)
	for i := 0; i < n; i++ {
		out[i] = Point{Heel: heels[i], Value: values[i]}
	}
	return out
}

// Max returns the point with the largest value. Ties keep the first
// occurrence in curve order. An empty curve returns false.
func (c Curve) Max() (Point, bool) {
	if len(c) == 0 {
		return Point{}, false
	}
	best := c[0]
	for _, p := range c[1:] {
		if p.Value > best.Value {
			best = p
		}
	}
	return best, true
}
