package hydro

import (
	"math"
	"strings"

	errs "github.com/matzehuels/rorostab/pkg/errors"
)

// Table is a raw tabular source: a header row and numeric rows.
// Missing cells are NaN. Tables are produced by readers such as
// tableio.ReadTable and consumed once by [New].
type Table struct {
	Columns []string
	Rows    [][]float64
}

// Field names a logical column of a hydrostatic or KN table.
type Field string

// Axis fields shared by both tables.
const (
	FieldDisplacement Field = "Displacement"
	FieldTrim         Field = "Trim"
)

// Property is a hydrostatic property tabulated over displacement × trim.
type Property = Field

// Hydrostatic properties.
const (
	Draft Property = "Draft"
	LCB   Property = "LCB"
	VCB   Property = "VCB"
	KMT   Property = "KMT"
	MTC   Property = "MTC"
	TCP   Property = "TCP"
)

// Properties lists every hydrostatic property in build order.
var Properties = []Property{Draft, LCB, VCB, KMT, MTC, TCP}

// heelPrefix marks KN columns; the remainder of the name is the heel in degrees.
const heelPrefix = "heel_"

// DefaultAliases is the prioritized alias list per logical field.
// Matching is case-insensitive and the first alias present wins.
var DefaultAliases = map[Field][]string{
	FieldDisplacement: {"Displacement", "disp_t", "Disp", "Displacement_t"},
	FieldTrim:         {"Trim", "trim_m"},
	Draft:             {"Draft", "Draft_m", "Draft_t_m_cm", "Tmean", "draft_mean"},
	LCB:               {"LCB", "LCB_m", "LCB_t_m_cm"},
	VCB:               {"VCB", "VCB_m", "KB"},
	KMT:               {"KMT", "KMT_m"},
	MTC:               {"MTC", "MTC_m", "MTC_t_m_cm", "MCT"},
	TCP:               {"TCP", "TCP_m", "TPC"},
}

// Resolve returns the index of the first alias found among the table's
// columns, compared case-insensitively. When nothing matches it returns a
// MISSING_COLUMN error naming every attempted alias.
func (t *Table) Resolve(field Field, aliases []string) (int, error) {
	index := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		key := strings.ToLower(strings.TrimSpace(c))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	for _, a := range aliases {
		if i, ok := index[strings.ToLower(a)]; ok {
			return i, nil
		}
	}
	return -1, errs.Wrap(errs.ErrCodeMissingColumn, &errs.MissingColumnError{
		Field:     string(field),
		Attempted: append([]string(nil), aliases...),
		Available: append([]string(nil), t.Columns...),
	}, "resolve %s column", field)
}

// validate checks that every row has one value per column.
func (t *Table) validate(name string) error {
	if t == nil {
		return errs.New(errs.ErrCodeInvalidTable, "%s table is nil", name)
	}
	if len(t.Columns) == 0 {
		return errs.New(errs.ErrCodeInvalidTable, "%s table has no columns", name)
	}
	if len(t.Rows) == 0 {
		return errs.New(errs.ErrCodeInvalidTable, "%s table has no rows", name)
	}
	for i, r := range t.Rows {
		if len(r) != len(t.Columns) {
			return errs.New(errs.ErrCodeInvalidTable, "%s table row %d has %d values, want %d", name, i, len(r), len(t.Columns))
		}
	}
	return nil
}

// axisValues returns the unique sorted values of column col.
// Axis cells may not be missing.
func (t *Table) axisValues(name string, field Field, col int) ([]float64, error) {
	vals := make([]float64, 0, len(t.Rows))
	for i, r := range t.Rows {
		v := r[col]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errs.New(errs.ErrCodeInvalidTable, "%s table row %d: %s value is missing", name, i, field)
		}
		vals = append(vals, v)
	}
	return uniqueSorted(vals), nil
}
