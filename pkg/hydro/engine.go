package hydro

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rorostab/pkg/curve"
	errs "github.com/matzehuels/rorostab/pkg/errors"
)

// Engine answers hydrostatic and KN queries from tabulated data.
//
// An Engine is built once by [New] and never modified afterwards, so a
// single instance can be shared by any number of goroutines.
type Engine struct {
	disps, trims []float64

	draft, lcb, vcb, kmt, mtc, tcp *Grid2D

	knDisps, knTrims, heels []float64
	kn                      *Grid3D
}

// Option configures [New].
type Option func(*config)

type config struct {
	aliases map[Field][]string
	logger  *log.Logger
}

// WithAliases appends extra aliases for a field, tried after the defaults.
func WithAliases(field Field, aliases ...string) Option {
	return func(c *config) {
		c.aliases[field] = append(c.aliases[field], aliases...)
	}
}

// WithLogger sets the logger used while building the engine.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// New builds an Engine from a hydrostatic table (displacement × trim) and
// a KN table (displacement × trim with one Heel_<deg> column per heel).
//
// Displacement and Trim columns are required in both tables, as is at
// least one heel column in the KN table. Hydrostatic properties that are
// absent from the source are skipped; queries on them fail later with a
// MISSING_PROPERTY error.
func New(hydrostatics, kn *Table, opts ...Option) (*Engine, error) {
	cfg := &config{aliases: make(map[Field][]string, len(DefaultAliases)), logger: log.Default()}
	for f, a := range DefaultAliases {
		cfg.aliases[f] = append([]string(nil), a...)
	}
	for _, opt := range opts {
		opt(cfg)
	}

	e := &Engine{}
	if err := e.buildHydrostatics(hydrostatics, cfg); err != nil {
		return nil, err
	}
	if err := e.buildKN(kn, cfg); err != nil {
		return nil, err
	}

	cfg.logger.Debug("built hydrostatic engine",
		"displacements", len(e.disps),
		"trims", len(e.trims),
		"properties", len(e.Properties()),
		"heels", len(e.heels))
	return e, nil
}

func (e *Engine) buildHydrostatics(t *Table, cfg *config) error {
	const name = "hydrostatic"
	if err := t.validate(name); err != nil {
		return err
	}
	dCol, tCol, err := axisColumns(t, cfg)
	if err != nil {
		return err
	}
	if e.disps, err = t.axisValues(name, FieldDisplacement, dCol); err != nil {
		return err
	}
	if e.trims, err = t.axisValues(name, FieldTrim, tCol); err != nil {
		return err
	}

	for _, p := range Properties {
		col, err := t.Resolve(p, cfg.aliases[p])
		if err != nil {
			cfg.logger.Debug("hydrostatic property not tabulated", "property", p)
			continue
		}
		cells := pivot(t, dCol, tCol, col, e.disps, e.trims)
		ok, err := fillGaps(cells)
		if err != nil {
			return err
		}
		if !ok {
			return errs.New(errs.ErrCodeInvalidTable, "%s table: column %q has no values", name, t.Columns[col])
		}
		*e.slot(p) = newGrid2D(e.disps, e.trims, cells)
	}
	return nil
}

func (e *Engine) buildKN(t *Table, cfg *config) error {
	const name = "KN"
	if err := t.validate(name); err != nil {
		return err
	}
	dCol, tCol, err := axisColumns(t, cfg)
	if err != nil {
		return err
	}
	if e.knDisps, err = t.axisValues(name, FieldDisplacement, dCol); err != nil {
		return err
	}
	if e.knTrims, err = t.axisValues(name, FieldTrim, tCol); err != nil {
		return err
	}

	type heelCol struct {
		deg float64
		col int
	}
	var hc []heelCol
	for i, c := range t.Columns {
		lc := strings.ToLower(strings.TrimSpace(c))
		if !strings.HasPrefix(lc, heelPrefix) {
			continue
		}
		deg, err := strconv.ParseFloat(strings.TrimPrefix(lc, heelPrefix), 64)
		if err != nil || math.IsNaN(deg) || math.IsInf(deg, 0) {
			return errs.New(errs.ErrCodeInvalidTable, "%s table: cannot read heel angle from column %q", name, c)
		}
		hc = append(hc, heelCol{deg: deg, col: i})
	}
	if len(hc) == 0 {
		return errs.New(errs.ErrCodeInvalidTable, "%s table: no Heel_* columns found in %q", name, t.Columns)
	}
	sort.Slice(hc, func(i, j int) bool { return hc[i].deg < hc[j].deg })

	e.heels = make([]float64, len(hc))
	slices := make([][][]float64, len(hc))
	for k, h := range hc {
		if k > 0 && h.deg == hc[k-1].deg {
			return errs.New(errs.ErrCodeInvalidTable, "%s table: duplicate heel angle %v", name, h.deg)
		}
		e.heels[k] = h.deg
		cells := pivot(t, dCol, tCol, h.col, e.knDisps, e.knTrims)
		ok, err := fillGaps(cells)
		if err != nil {
			return err
		}
		if !ok {
			return errs.New(errs.ErrCodeInvalidTable, "%s table: column %q has no values", name, t.Columns[h.col])
		}
		slices[k] = cells
	}
	e.kn = newGrid3D(e.knDisps, e.knTrims, e.heels, slices)
	return nil
}

func axisColumns(t *Table, cfg *config) (dCol, tCol int, err error) {
	if dCol, err = t.Resolve(FieldDisplacement, cfg.aliases[FieldDisplacement]); err != nil {
		return -1, -1, err
	}
	if tCol, err = t.Resolve(FieldTrim, cfg.aliases[FieldTrim]); err != nil {
		return -1, -1, err
	}
	return dCol, tCol, nil
}

// pivot arranges column col into a displacement × trim grid. Cells with no
// source row stay NaN; duplicate (disp, trim) rows resolve to the last one.
func pivot(t *Table, dCol, tCol, col int, disps, trims []float64) [][]float64 {
	cells := make([][]float64, len(disps))
	for i := range cells {
		cells[i] = make([]float64, len(trims))
		for j := range cells[i] {
			cells[i][j] = math.NaN()
		}
	}
	for _, r := range t.Rows {
		i, j := indexOf(disps, r[dCol]), indexOf(trims, r[tCol])
		cells[i][j] = r[col]
	}
	return cells
}

func (e *Engine) slot(p Property) **Grid2D {
	switch p {
	case Draft:
		return &e.draft
	case LCB:
		return &e.lcb
	case VCB:
		return &e.vcb
	case KMT:
		return &e.kmt
	case MTC:
		return &e.mtc
	case TCP:
		return &e.tcp
	}
	return nil
}

// Grid returns the interpolator for p, or nil when p was not tabulated.
func (e *Engine) Grid(p Property) *Grid2D {
	if s := e.slot(p); s != nil {
		return *s
	}
	return nil
}

// Properties returns the hydrostatic properties available for queries.
func (e *Engine) Properties() []Property {
	var out []Property
	for _, p := range Properties {
		if e.Grid(p) != nil {
			out = append(out, p)
		}
	}
	return out
}

// Query interpolates property p at (disp, trim). Coordinates outside the
// table are clipped to its boundary.
func (e *Engine) Query(p Property, disp, trim float64) (float64, error) {
	g := e.Grid(p)
	if g == nil {
		return 0, errs.New(errs.ErrCodeMissingProperty, "%s interpolator not available: property not present in hydrostatic table", p)
	}
	if math.IsNaN(disp) || math.IsNaN(trim) {
		return 0, errs.New(errs.ErrCodeInvalidInput, "%s query at NaN coordinate (displacement=%v, trim=%v)", p, disp, trim)
	}
	return g.At(disp, trim), nil
}

// MeanDraft returns the mean draft in m.
func (e *Engine) MeanDraft(disp, trim float64) (float64, error) { return e.Query(Draft, disp, trim) }

// LCB returns the longitudinal centre of buoyancy in m.
func (e *Engine) LCB(disp, trim float64) (float64, error) { return e.Query(LCB, disp, trim) }

// VCB returns the vertical centre of buoyancy in m.
func (e *Engine) VCB(disp, trim float64) (float64, error) { return e.Query(VCB, disp, trim) }

// KMT returns the transverse metacentre height above keel in m.
func (e *Engine) KMT(disp, trim float64) (float64, error) { return e.Query(KMT, disp, trim) }

// MTC returns the moment to change trim in t·m/cm.
func (e *Engine) MTC(disp, trim float64) (float64, error) { return e.Query(MTC, disp, trim) }

// TCP returns the TCP column (tonnes per cm immersion in most tables).
func (e *Engine) TCP(disp, trim float64) (float64, error) { return e.Query(TCP, disp, trim) }

// KN returns the cross-curve value in m at the given heel (degrees).
// Heel is clipped to the tabulated range.
func (e *Engine) KN(disp, heel, trim float64) (float64, error) {
	if math.IsNaN(disp) || math.IsNaN(heel) || math.IsNaN(trim) {
		return 0, errs.New(errs.ErrCodeInvalidInput, "KN query at NaN coordinate (displacement=%v, heel=%v, trim=%v)", disp, heel, trim)
	}
	return e.kn.At(disp, trim, heel), nil
}

// KNCurve evaluates KN for every heel in heels, in request order.
func (e *Engine) KNCurve(disp float64, heels []float64, trim float64) (curve.Curve, error) {
	out := make(curve.Curve, len(heels))
	for i, h := range heels {
		v, err := e.KN(disp, h, trim)
		if err != nil {
			return nil, err
		}
		out[i] = curve.Point{Heel: h, Value: v}
	}
	return out, nil
}

// DisplacementRange returns the hydrostatic displacement range in t.
func (e *Engine) DisplacementRange() (lo, hi float64) {
	return e.disps[0], e.disps[len(e.disps)-1]
}

// TrimRange returns the hydrostatic trim range in m.
func (e *Engine) TrimRange() (lo, hi float64) {
	return e.trims[0], e.trims[len(e.trims)-1]
}

// HeelAngles returns a copy of the tabulated heel angles in degrees, ascending.
func (e *Engine) HeelAngles() []float64 {
	return append([]float64(nil), e.heels...)
}
