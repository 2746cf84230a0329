package stability

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rorostab/pkg/cache"
	errs "github.com/matzehuels/rorostab/pkg/errors"
	"github.com/matzehuels/rorostab/pkg/gz"
	"github.com/matzehuels/rorostab/pkg/trim"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultTrimIterations is the trim solver budget for a full calculation.
	DefaultTrimIterations = 3

	// DefaultTrimLimit is the absolute trim in metres above which the
	// solver clips and stops.
	DefaultTrimLimit = trim.DefaultTrimLimit

	// DefaultTolerance is the trim convergence tolerance in metres.
	DefaultTolerance = trim.DefaultTolerance
)

// =============================================================================
// Options
// =============================================================================

// Options configures [Calculate]. The zero value is valid and selects the
// defaults.
type Options struct {
	HeelAngles     []float64 `json:"heel_angles,omitempty"` // degrees
	TrimIterations int       `json:"trim_iterations,omitempty"`
	TrimLimit      float64   `json:"trim_limit,omitempty"` // m
	Tolerance      float64   `json:"tolerance,omitempty"`  // m

	// Site is the site profile code attached to cached results.
	Site string `json:"site,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if len(o.HeelAngles) == 0 {
		o.HeelAngles = append([]float64(nil), gz.DefaultHeels...)
	}
	if o.TrimIterations == 0 {
		o.TrimIterations = DefaultTrimIterations
	}
	if o.TrimLimit == 0 {
		o.TrimLimit = DefaultTrimLimit
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the option values without changing them.
func (o *Options) Validate() error {
	if len(o.HeelAngles) > 0 {
		if err := errs.ValidateHeelAngles(o.HeelAngles); err != nil {
			return err
		}
	}
	if o.TrimIterations < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "trim iterations must not be negative, got %d", o.TrimIterations)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{{"trim limit", o.TrimLimit}, {"tolerance", o.Tolerance}} {
		if err := errs.ValidateFinite(f.name, f.v); err != nil {
			return err
		}
		if f.v < 0 {
			return errs.New(errs.ErrCodeInvalidInput, "%s must not be negative, got %v", f.name, f.v)
		}
	}
	if o.Site != "" {
		if err := errs.ValidateSiteCode(o.Site); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults validates the options and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Validate(); err != nil {
		return err
	}
	o.SetDefaults()
	o.validated = true
	return nil
}

// TrimOptions returns the solver options.
func (o *Options) TrimOptions() trim.Options {
	return trim.Options{
		MaxIterations: o.TrimIterations,
		TrimLimit:     o.TrimLimit,
		Tolerance:     o.Tolerance,
		Logger:        o.Logger,
	}
}

// ResultKeyOpts returns cache key options for the result.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		HeelAngles:     o.HeelAngles,
		TrimIterations: o.TrimIterations,
		TrimLimit:      o.TrimLimit,
		Tolerance:      o.Tolerance,
		Site:           o.Site,
	}
}
