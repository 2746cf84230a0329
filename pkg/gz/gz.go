// Package gz computes righting-arm (GZ) curves from KN cross curves.
//
//	GZ(φ) = KN(Δ, φ, trim) − KG·sin(φ)
//
// KG is the vertical centre of gravity corrected for free surface
// (see [KGCorrected]). Negative values are returned unchanged: they mark
// heel angles where the vessel has no righting lever.
package gz

import (
	"math"

	"github.com/matzehuels/rorostab/pkg/curve"
	errs "github.com/matzehuels/rorostab/pkg/errors"
)

// Curve is a GZ curve in request order.
type Curve = curve.Curve

// DefaultHeels are the heel angles in degrees used when none are given.
var DefaultHeels = []float64{0, 10, 20, 30, 40, 50, 60}

// KNSource evaluates a KN cross curve at a displacement and trim.
type KNSource interface {
	KNCurve(disp float64, heels []float64, trim float64) (curve.Curve, error)
}

// KGCorrected returns VCG raised by the free surface correction FSM/Δ.
// A non-positive weight leaves VCG unchanged.
func KGCorrected(vcg, fsm, weight float64) float64 {
	if weight > 0 {
		return vcg + fsm/weight
	}
	return vcg
}

// Calculate evaluates the GZ curve with a single KN query for all heels.
// An empty heel list selects [DefaultHeels].
func Calculate(disp, kg, trim float64, heels []float64, src KNSource) (Curve, error) {
	if len(heels) == 0 {
		heels = DefaultHeels
	}
	if err := errs.ValidateFinite("KG", kg); err != nil {
		return nil, err
	}
	kn, err := src.KNCurve(disp, heels, trim)
	if err != nil {
		return nil, err
	}
	return FromKN(kn, kg), nil
}

// FromKN converts a KN curve into a GZ curve for the given KG.
func FromKN(kn curve.Curve, kg float64) Curve {
	out := make(Curve, len(kn))
	for i, p := range kn {
		out[i] = curve.Point{Heel: p.Heel, Value: p.Value - kg*math.Sin(p.Heel*math.Pi/180)}
	}
	return out
}
