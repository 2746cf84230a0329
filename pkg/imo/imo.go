// Package imo checks a GZ curve against the intact stability criteria of
// IMO Resolution A.749(18).
//
// The input curve may be sparse (typically every 10°). It is resampled by
// linear interpolation onto a 1° grid from 0° to 40°, values beyond the
// tabulated heels being held at the end points. Areas are integrated over
// heel in radians with composite Simpson's rule.
//
// A failing criterion is a normal outcome reported on the [Report]; only
// malformed input is an error.
package imo

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/matzehuels/rorostab/pkg/curve"
	errs "github.com/matzehuels/rorostab/pkg/errors"
)

// Criterion identifiers, in report order.
const (
	CriterionGM         = "gm"
	CriterionArea0To30  = "area_0_30"
	CriterionArea0To40  = "area_0_40"
	CriterionArea30To40 = "area_30_40"
	CriterionGZAt30     = "gz_30"
	CriterionGZMax      = "gz_max"
	CriterionAngleGZMax = "angle_gz_max"
)

// Required values.
const (
	MinGM         = 0.15  // m
	MinArea0To30  = 0.055 // m·rad
	MinArea0To40  = 0.090 // m·rad
	MinArea30To40 = 0.030 // m·rad
	MinGZAt30     = 0.20  // m
	MinGZMax      = 0.15  // m
	MinAngleGZMax = 15.0  // degrees, exclusive
)

const (
	denseMaxHeel  = 40.0 // degrees
	denseStep     = 1.0  // degrees
	heelThirtyIdx = 30   // index of 30° on the dense grid
)

// Comparison operators used on a [Criterion].
const (
	AtLeast     = ">="
	GreaterThan = ">"
)

// Criterion is the outcome of one check.
type Criterion struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Required   float64 `json:"required"`
	Comparison string  `json:"comparison"`
	Pass       bool    `json:"pass"`
}

// Report is the result of [Check].
type Report struct {
	Criteria     []Criterion `json:"criteria"`
	Pass         bool        `json:"pass"`
	Area0To30    float64     `json:"area_0_30"`
	Area0To40    float64     `json:"area_0_40"`
	Area30To40   float64     `json:"area_30_40"`
	GZAt30       float64     `json:"gz_30"`
	GZMax        float64     `json:"gz_max"`
	AngleAtGZMax float64     `json:"angle_at_gz_max"`
	Integrator   string      `json:"integrator"`
}

// Criterion returns the criterion with the given ID.
func (r *Report) Criterion(id string) (Criterion, bool) {
	for _, c := range r.Criteria {
		if c.ID == id {
			return c, true
		}
	}
	return Criterion{}, false
}

// Failed returns the criteria that did not pass.
func (r *Report) Failed() []Criterion {
	var out []Criterion
	for _, c := range r.Criteria {
		if !c.Pass {
			out = append(out, c)
		}
	}
	return out
}

// Check evaluates the seven criteria for a GZ curve given as parallel
// heel (degrees) and GZ (m) slices, and the metacentric height gm (m).
// Heels need not be sorted but must be distinct.
func Check(heels, gz []float64, gm float64) (*Report, error) {
	if len(heels) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "GZ curve is empty")
	}
	if len(heels) != len(gz) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "GZ curve has %d heels and %d values", len(heels), len(gz))
	}
	if err := errs.ValidateHeelAngles(heels); err != nil {
		return nil, err
	}
	for i, v := range gz {
		if err := errs.ValidateFinite("GZ", v); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "heel %v", heels[i])
		}
	}
	if err := errs.ValidateFinite("GM", gm); err != nil {
		return nil, err
	}

	sorted := curve.FromSlices(heels, gz).Sorted()
	angles, dense, err := resample(sorted.Heels(), sorted.Values())
	if err != nil {
		return nil, err
	}

	rad := make([]float64, len(angles))
	for i, a := range angles {
		rad[i] = a * math.Pi / 180
	}

	r := &Report{
		Area0To30:  integrate(rad[:heelThirtyIdx+1], dense[:heelThirtyIdx+1]),
		Area0To40:  integrate(rad, dense),
		Area30To40: integrate(rad[heelThirtyIdx:], dense[heelThirtyIdx:]),
		GZAt30:     dense[heelThirtyIdx],
		Integrator: Integrator,
	}
	peak, _ := curve.FromSlices(angles, dense).Max()
	r.GZMax = peak.Value
	r.AngleAtGZMax = peak.Heel

	r.Criteria = []Criterion{
		atLeast(CriterionGM, "GM", gm, MinGM),
		atLeast(CriterionArea0To30, "Area 0-30", r.Area0To30, MinArea0To30),
		atLeast(CriterionArea0To40, "Area 0-40", r.Area0To40, MinArea0To40),
		atLeast(CriterionArea30To40, "Area 30-40", r.Area30To40, MinArea30To40),
		atLeast(CriterionGZAt30, "GZ at 30°", r.GZAt30, MinGZAt30),
		atLeast(CriterionGZMax, "GZmax", r.GZMax, MinGZMax),
		{
			ID:         CriterionAngleGZMax,
			Name:       "Angle at GZmax",
			Value:      r.AngleAtGZMax,
			Required:   MinAngleGZMax,
			Comparison: GreaterThan,
			Pass:       r.AngleAtGZMax > MinAngleGZMax,
		},
	}
	r.Pass = true
	for _, c := range r.Criteria {
		r.Pass = r.Pass && c.Pass
	}
	return r, nil
}

func atLeast(id, name string, v, req float64) Criterion {
	return Criterion{ID: id, Name: name, Value: v, Required: req, Comparison: AtLeast, Pass: v >= req}
}

// resample interpolates the curve onto the dense 0–40° grid. xs must be
// strictly increasing.
func resample(xs, ys []float64) (angles, values []float64, err error) {
	n := int(denseMaxHeel/denseStep) + 1
	angles = floats.Span(make([]float64, n), 0, denseMaxHeel)
	values = make([]float64, n)

	if len(xs) == 1 {
		for i := range values {
			values[i] = ys[0]
		}
		return angles, values, nil
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, nil, errs.New(errs.ErrCodeInvalidInput, "heel angles not strictly increasing at %v", xs[i])
		}
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "interpolate GZ curve")
	}
	for i, a := range angles {
		values[i] = pl.Predict(a)
	}
	return angles, values, nil
}
