// Package hydro interpolates tabulated hydrostatic data and KN cross curves.
//
// # Tables
//
// Two tabular sources feed an [Engine]:
//
//   - Hydrostatics: one row per (displacement, trim) with property columns
//     Draft, LCB, VCB, KMT, MTC and TCP.
//   - KN: one row per (displacement, trim) with a Heel_<deg> column per
//     tabulated heel angle, e.g. Heel_0, Heel_10, Heel_22.5.
//
// Column names are resolved case-insensitively against a prioritized alias
// list per logical field (see [DefaultAliases]). A missing Displacement or
// Trim column fails construction with an error naming every alias tried.
//
// # Grids
//
// Each property is pivoted into a dense displacement × trim grid, and KN
// into a displacement × trim × heel tensor. Missing cells are filled before
// any interpolator is built: linear interpolation over cell position along
// the displacement axis, then along the trim axis, with edge gaps held at
// the nearest valid value. Complete grids pass through unchanged.
//
// # Queries
//
// Interpolation is multilinear. Query coordinates outside the tabulated
// range are clipped to the boundary, so results never extrapolate and never
// become NaN for finite input. Grid nodes return their stored values
// exactly.
//
//	eng, err := hydro.New(hydroTable, knTable)
//	draft, err := eng.MeanDraft(920, 0.25)
//	kn, err := eng.KNCurve(920, []float64{0, 10, 20, 30}, 0.25)
//
// # Concurrency
//
// An Engine is immutable after [New] returns and is safe for concurrent use.
package hydro
