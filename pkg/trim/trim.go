// Package trim solves the equilibrium trim of a vessel by fixed-point
// iteration on the longitudinal centre of buoyancy.
//
// Each iteration queries LCB and MTC at the current trim and computes
//
//	new_trim = Δ · (LCB − LCG) / (MTC / 100)
//
// where MTC is tabulated in t·m/cm and the division by 100 converts it to
// t·m/m. Trim is positive by the stern (aft deeper).
//
// The solver is bounded: it stops when two successive trims agree within
// the tolerance, when the trim exceeds the limit (the value is clipped and
// accepted), when a query returns an unusable value, or when the iteration
// cap is reached. None of these outcomes is an error; the terminal [State]
// is reported on the [Result].
package trim

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/rorostab/pkg/errors"
)

// Defaults for [Options].
const (
	DefaultMaxIterations = 5
	DefaultTrimLimit     = 2.0   // m
	DefaultTolerance     = 0.001 // m

	// minMTC guards the division in the trim formula.
	minMTC = 1e-6
)

// Hydrostatics is the subset of the hydrostatic engine used by the solver.
type Hydrostatics interface {
	LCB(disp, trim float64) (float64, error)
	MTC(disp, trim float64) (float64, error)
	MeanDraft(disp, trim float64) (float64, error)
}

// State is the terminal state of a solve.
type State int

const (
	// StateConverged means two successive trims agreed within tolerance.
	StateConverged State = iota
	// StateLimitExceeded means the trim was clipped to the trim limit.
	StateLimitExceeded
	// StateInvalid means a query failed or returned NaN or near-zero MTC.
	StateInvalid
	// StateIterationCap means the iteration cap was reached first.
	StateIterationCap
)

var stateNames = [...]string{
	StateConverged:     "converged",
	StateLimitExceeded: "limit_exceeded",
	StateInvalid:       "invalid",
	StateIterationCap:  "iteration_cap",
}

// String returns the snake_case name of s.
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText encodes s by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(b []byte) error {
	for i, n := range stateNames {
		if n == string(b) {
			*s = State(i)
			return nil
		}
	}
	return errs.New(errs.ErrCodeInvalidFormat, "unknown trim state %q", b)
}

// Options controls the solver. Zero fields take the package defaults.
type Options struct {
	MaxIterations int
	TrimLimit     float64 // m, absolute
	Tolerance     float64 // m
	Logger        *log.Logger
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.TrimLimit <= 0 {
		o.TrimLimit = DefaultTrimLimit
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Iteration records one solver step for audit.
type Iteration struct {
	Iteration  int     `json:"iteration"` // 1-based
	TrimBefore float64 `json:"trim_before"`
	LCB        float64 `json:"lcb"`
	MTC        float64 `json:"mtc"`
	TrimAfter  float64 `json:"trim_after"`
}

// Result is the outcome of [Solve].
type Result struct {
	Trim           float64     `json:"trim"`
	DraftMean      float64     `json:"draft_mean"`
	DraftFwd       float64     `json:"draft_fwd"`
	DraftAft       float64     `json:"draft_aft"`
	LCB            float64     `json:"lcb"`
	MTC            float64     `json:"mtc"`
	State          State       `json:"state"`
	Converged      bool        `json:"converged"`
	IterationsUsed int         `json:"iterations_used"`
	History        []Iteration `json:"history"`
}

// Solve iterates the trim for displacement disp (t) and longitudinal
// centre of gravity lcg (m), starting from even keel.
func Solve(disp, lcg float64, h Hydrostatics, opts Options) *Result {
	opts.SetDefaults()
	logger := opts.Logger

	res := &Result{State: StateIterationCap}
	var trim, prev float64
	var lcb, mtc float64

	for i := 0; i < opts.MaxIterations; i++ {
		res.IterationsUsed = i + 1

		qLCB, err := h.LCB(disp, trim)
		if err == nil {
			var qMTC float64
			qMTC, err = h.MTC(disp, trim)
			if err == nil && (math.IsNaN(qLCB) || math.IsNaN(qMTC) || math.Abs(qMTC) < minMTC) {
				err = fmt.Errorf("LCB=%v MTC=%v", qLCB, qMTC)
			}
			if err == nil {
				lcb, mtc = qLCB, qMTC
			}
		}
		if err != nil {
			logger.Warn("trim iteration stopped: unusable hydrostatics", "iter", i+1, "trim", trim, "err", err)
			res.State = StateInvalid
			break
		}

		newTrim := disp * (lcb - lcg) / (mtc / 100.0)
		res.History = append(res.History, Iteration{
			Iteration:  i + 1,
			TrimBefore: trim,
			LCB:        lcb,
			MTC:        mtc,
			TrimAfter:  newTrim,
		})
		logger.Debug("trim iteration", "iter", i+1, "trim", trim, "lcb", lcb, "mtc", mtc, "new_trim", newTrim)

		if math.Abs(newTrim) > opts.TrimLimit {
			logger.Warn("trim exceeds limit, clipping", "iter", i+1, "trim", newTrim, "limit", opts.TrimLimit)
			trim = math.Copysign(opts.TrimLimit, newTrim)
			res.State = StateLimitExceeded
			break
		}

		if i > 0 && math.Abs(newTrim-prev) < opts.Tolerance {
			logger.Debug("trim converged", "iter", i+1, "trim", newTrim, "delta", math.Abs(newTrim-prev))
			trim = newTrim
			res.State = StateConverged
			break
		}

		prev = trim
		trim = newTrim
	}

	if res.State == StateIterationCap && opts.MaxIterations > 1 {
		logger.Warn("trim did not converge", "iterations", opts.MaxIterations, "trim", trim)
	}

	res.Trim = trim
	res.LCB = lcb
	res.MTC = mtc
	res.Converged = res.State == StateConverged

	draft, err := h.MeanDraft(disp, trim)
	if err != nil {
		logger.Error("mean draft unavailable", "trim", trim, "err", errs.UserMessage(err))
		draft = 0
	}
	res.DraftMean = draft
	res.DraftFwd = draft - trim/2.0
	res.DraftAft = draft + trim/2.0
	return res
}
