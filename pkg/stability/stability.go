// Package stability runs the full intact stability calculation for one
// loading condition.
//
// [Calculate] chains the stages in order:
//
//  1. displacement and centres of gravity from the weight items
//  2. KG corrected for free surface, KG = VCG + ΣFSM/Δ
//  3. equilibrium trim and drafts from the trim solver
//  4. KMT at the final trim and GM = KMT − KG
//  5. one batched KN query at the heel angles
//  6. the GZ curve, GZ = KN − KG·sin(φ)
//
// [Evaluate] adds the IMO A.749 check of the GZ curve. The engine passed in
// is only read, so calculations for different loading conditions may run
// concurrently against one engine.
package stability

import (
	"context"
	"time"

	"github.com/matzehuels/rorostab/pkg/curve"
	"github.com/matzehuels/rorostab/pkg/displacement"
	"github.com/matzehuels/rorostab/pkg/gz"
	"github.com/matzehuels/rorostab/pkg/imo"
	"github.com/matzehuels/rorostab/pkg/observability"
	"github.com/matzehuels/rorostab/pkg/trim"
)

// Hydrostatics is the engine surface used by a calculation.
// *hydro.Engine satisfies it.
type Hydrostatics interface {
	trim.Hydrostatics
	gz.KNSource
	KMT(disp, trim float64) (float64, error)
}

// Result is a complete stability result. It is built once per call and
// not modified afterwards.
type Result struct {
	displacement.Result

	KGCorrected float64 `json:"kg_corrected"` // m
	KMT         float64 `json:"kmt"`          // m
	GM          float64 `json:"gm"`           // m

	Trim      float64 `json:"trim"` // m, positive by the stern
	DraftMean float64 `json:"draft_mean"`
	DraftFwd  float64 `json:"draft_fwd"`
	DraftAft  float64 `json:"draft_aft"`
	LCB       float64 `json:"lcb"`
	MTC       float64 `json:"mtc"` // t·m/cm

	KNCurve curve.Curve `json:"kn_curve"`
	GZCurve gz.Curve    `json:"gz_curve"`

	TrimHistory    []trim.Iteration `json:"trim_history"`
	TrimState      trim.State       `json:"trim_state"`
	TrimConverged  bool             `json:"trim_converged"`
	TrimIterations int              `json:"trim_iterations"`
}

// Assessment is a result together with its IMO compliance report.
type Assessment struct {
	Result     *Result     `json:"result"`
	Compliance *imo.Report `json:"compliance"`
}

// Calculate computes the stability result for items against h.
//
// Invalid input (no items, zero total weight, bad options) and a missing
// KMT or KN table fail the call; no partial result is returned. Solver
// non-convergence is not an error and is reported on the result.
func Calculate(ctx context.Context, items []displacement.WeightItem, h Hydrostatics, opts Options) (res *Result, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	hooks := observability.Calculation()

	start := time.Now()
	hooks.OnCalculationStart(ctx, len(items))
	defer func() {
		hooks.OnCalculationComplete(ctx, time.Since(start), err)
	}()

	disp, err := displacement.Calculate(items)
	if err != nil {
		return nil, err
	}
	kg := gz.KGCorrected(disp.VCG, disp.TotalFSM, disp.TotalWeight)
	logger.Debug("displacement",
		"weight", disp.TotalWeight,
		"lcg", disp.LCG,
		"vcg", disp.VCG,
		"tcg", disp.TCG,
		"fsm", disp.TotalFSM,
		"kg", kg)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tr := trim.Solve(disp.TotalWeight, disp.LCG, h, opts.TrimOptions())
	hooks.OnTrimSolved(ctx, tr.State.String(), tr.IterationsUsed, tr.Trim)
	logger.Debug("trim solved", "trim", tr.Trim, "state", tr.State, "iterations", tr.IterationsUsed)

	kmt, err := h.KMT(disp.TotalWeight, tr.Trim)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kn, err := h.KNCurve(disp.TotalWeight, opts.HeelAngles, tr.Trim)
	if err != nil {
		return nil, err
	}

	res = &Result{
		Result:         *disp,
		KGCorrected:    kg,
		KMT:            kmt,
		GM:             kmt - kg,
		Trim:           tr.Trim,
		DraftMean:      tr.DraftMean,
		DraftFwd:       tr.DraftFwd,
		DraftAft:       tr.DraftAft,
		LCB:            tr.LCB,
		MTC:            tr.MTC,
		KNCurve:        kn,
		GZCurve:        gz.FromKN(kn, kg),
		TrimHistory:    tr.History,
		TrimState:      tr.State,
		TrimConverged:  tr.Converged,
		TrimIterations: tr.IterationsUsed,
	}
	logger.Debug("stability calculated", "gm", res.GM, "draft_mean", res.DraftMean)
	return res, nil
}

// Evaluate runs [Calculate] and checks the GZ curve against IMO A.749.
func Evaluate(ctx context.Context, items []displacement.WeightItem, h Hydrostatics, opts Options) (*Assessment, error) {
	res, err := Calculate(ctx, items, h, opts)
	if err != nil {
		return nil, err
	}
	return assess(ctx, res)
}

func assess(ctx context.Context, res *Result) (*Assessment, error) {
	report, err := imo.Check(res.GZCurve.Heels(), res.GZCurve.Values(), res.GM)
	if err != nil {
		return nil, err
	}
	failed := make([]string, 0, len(report.Criteria))
	for _, c := range report.Failed() {
		failed = append(failed, c.ID)
	}
	observability.Calculation().OnComplianceChecked(ctx, report.Pass, failed)
	return &Assessment{Result: res, Compliance: report}, nil
}
