package hydro_test

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/rorostab/pkg/errors"
	"github.com/matzehuels/rorostab/pkg/hydro"
	"github.com/matzehuels/rorostab/pkg/hydro/hydrotest"
)

func TestQueriesAtGridNodesAreExact(t *testing.T) {
	e := hydrotest.Engine(t)
	src := hydrotest.HydroTable()

	queries := map[string]func(d, tr float64) (float64, error){
		"Draft": e.MeanDraft,
		"LCB":   e.LCB,
		"KMT":   e.KMT,
		"MTC":   e.MTC,
	}
	for col, q := range queries {
		idx, err := src.Resolve(hydro.Field(col), []string{col})
		require.NoError(t, err)
		for _, row := range src.Rows {
			got, err := q(row[0], row[1])
			require.NoError(t, err)
			assert.Equal(t, row[idx], got, "%s at (%v, %v)", col, row[0], row[1])
		}
	}

	kn := hydrotest.KNTable()
	heels := []float64{0, 10, 20, 30, 40}
	for _, row := range kn.Rows {
		for k, h := range heels {
			got, err := e.KN(row[0], h, row[1])
			require.NoError(t, err)
			assert.Equal(t, row[2+k], got, "KN at (%v, %v, %v)", row[0], h, row[1])
		}
	}
}

func TestInterpolation(t *testing.T) {
	e := hydrotest.Engine(t)

	// Midway in displacement between 900 and 920 at trim 0.
	draft, err := e.MeanDraft(910, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.025, draft, 1e-12)

	// Bilinear centre of the first cell.
	lcb, err := e.LCB(910, 0.25)
	require.NoError(t, err)
	assert.InDelta(t, (26.0+26.1+26.2+26.3)/4, lcb, 1e-12)

	// Trilinear: heel 15° between 10° and 20°.
	kn, err := e.KN(900, 15, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, kn, 1e-12)
}

func TestQueriesClipOutsideRange(t *testing.T) {
	e := hydrotest.Engine(t)

	tests := []struct {
		name       string
		disp, trim float64
		want       float64
	}{
		{"below displacement", 500, 0, 2.00},
		{"above displacement", 5000, 0.5, 2.30},
		{"below trim", 900, -3, 2.00},
		{"above trim", 1000, 3, 2.30},
		{"far corner", math.Inf(1), math.Inf(-1), 2.20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.MeanDraft(tt.disp, tt.trim)
			require.NoError(t, err)
			assert.False(t, math.IsNaN(got))
			assert.Equal(t, tt.want, got)
		})
	}

	// Heel is clipped to the tabulated 0–40°.
	lo, err := e.KN(900, -15, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, lo)
	hi, err := e.KN(900, 75, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.50, hi)
}

func TestKNCurve(t *testing.T) {
	e := hydrotest.Engine(t)

	heels := []float64{30, 0, 10, 50}
	c, err := e.KNCurve(900, heels, 0)
	require.NoError(t, err)
	require.Len(t, c, 4)

	assert.Equal(t, heels, c.Heels())
	for _, h := range heels {
		single, err := e.KN(900, h, 0)
		require.NoError(t, err)
		v, ok := c.At(h)
		require.True(t, ok)
		assert.Equal(t, single, v)
	}
}

func TestMissingProperty(t *testing.T) {
	e := hydrotest.Engine(t)

	assert.ElementsMatch(t, []hydro.Property{hydro.Draft, hydro.LCB, hydro.KMT, hydro.MTC}, e.Properties())

	_, err := e.VCB(900, 0)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeMissingProperty))
	assert.Contains(t, err.Error(), "VCB")

	_, err = e.TCP(900, 0)
	assert.True(t, errs.Is(err, errs.ErrCodeMissingProperty))
}

func TestMissingRequiredColumn(t *testing.T) {
	tbl := hydrotest.HydroTable()
	tbl.Columns[0] = "Weight"

	_, err := hydro.New(tbl, hydrotest.KNTable())
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeMissingColumn))

	var mc *errs.MissingColumnError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, "Displacement", mc.Field)
	for _, alias := range hydro.DefaultAliases[hydro.FieldDisplacement] {
		assert.Contains(t, err.Error(), alias)
	}
}

func TestAliasResolution(t *testing.T) {
	tbl := &hydro.Table{
		Columns: []string{"DISP_T", "trim_M", "draft_m", "lcb_m", "Kmt", "MTC_t_m_cm"},
		Rows: [][]float64{
			{900, 0, 2.0, 26.0, 5.0, 100},
			{1000, 0, 2.2, 26.5, 5.2, 105},
		},
	}
	kn := &hydro.Table{
		Columns: []string{"Disp", "Trim", "heel_0", "HEEL_20"},
		Rows: [][]float64{
			{900, 0, 0, 2.0},
			{1000, 0, 0, 2.1},
		},
	}

	e, err := hydro.New(tbl, kn)
	require.NoError(t, err)

	mtc, err := e.MTC(1000, 0)
	require.NoError(t, err)
	assert.Equal(t, 105.0, mtc)
	assert.Equal(t, []float64{0, 20}, e.HeelAngles())

	// Single-trim axis is degenerate: any trim returns the tabulated row.
	d, err := e.MeanDraft(950, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 2.1, d, 1e-12)
}

func TestWithAliases(t *testing.T) {
	tbl := hydrotest.HydroTable()
	tbl.Columns[5] = "MomentToTrim"

	e, err := hydro.New(tbl, hydrotest.KNTable())
	require.NoError(t, err)
	_, err = e.MTC(900, 0)
	assert.True(t, errs.Is(err, errs.ErrCodeMissingProperty))

	e, err = hydro.New(tbl, hydrotest.KNTable(), hydro.WithAliases(hydro.MTC, "momenttotrim"))
	require.NoError(t, err)
	mtc, err := e.MTC(900, 0)
	require.NoError(t, err)
	assert.Equal(t, 100.0, mtc)
}

func TestGapFilledTable(t *testing.T) {
	tbl := hydrotest.HydroTable()
	// Drop the (920, 0.0) draft cell.
	tbl.Rows[2][2] = math.NaN()

	e, err := hydro.New(tbl, hydrotest.KNTable())
	require.NoError(t, err)

	// Filled positionally between 900 (2.00) and 1000 (2.20).
	d, err := e.MeanDraft(920, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.10, d, 1e-12)

	// Missing row entirely: (1000, 0.5) absent.
	tbl = hydrotest.HydroTable()
	tbl.Rows = tbl.Rows[:5]
	e, err = hydro.New(tbl, hydrotest.KNTable())
	require.NoError(t, err)
	d, err = e.MeanDraft(1000, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 2.15, d, 1e-12)
}

func TestInvalidTables(t *testing.T) {
	tests := []struct {
		name  string
		hydro func() *hydro.Table
		kn    func() *hydro.Table
		code  errs.Code
	}{
		{
			name:  "no heel columns",
			hydro: hydrotest.HydroTable,
			kn: func() *hydro.Table {
				return &hydro.Table{Columns: []string{"Displacement", "Trim", "KN10"}, Rows: [][]float64{{900, 0, 1}}}
			},
			code: errs.ErrCodeInvalidTable,
		},
		{
			name:  "bad heel suffix",
			hydro: hydrotest.HydroTable,
			kn: func() *hydro.Table {
				return &hydro.Table{Columns: []string{"Displacement", "Trim", "Heel_x"}, Rows: [][]float64{{900, 0, 1}}}
			},
			code: errs.ErrCodeInvalidTable,
		},
		{
			name: "missing axis value",
			hydro: func() *hydro.Table {
				tbl := hydrotest.HydroTable()
				tbl.Rows[1][0] = math.NaN()
				return tbl
			},
			kn:   hydrotest.KNTable,
			code: errs.ErrCodeInvalidTable,
		},
		{
			name: "ragged row",
			hydro: func() *hydro.Table {
				tbl := hydrotest.HydroTable()
				tbl.Rows[0] = tbl.Rows[0][:3]
				return tbl
			},
			kn:   hydrotest.KNTable,
			code: errs.ErrCodeInvalidTable,
		},
		{
			name: "empty property column",
			hydro: func() *hydro.Table {
				tbl := hydrotest.HydroTable()
				for _, r := range tbl.Rows {
					r[3] = math.NaN()
				}
				return tbl
			},
			kn:   hydrotest.KNTable,
			code: errs.ErrCodeInvalidTable,
		},
		{
			name:  "nil KN table",
			hydro: hydrotest.HydroTable,
			kn:    func() *hydro.Table { return nil },
			code:  errs.ErrCodeInvalidTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hydro.New(tt.hydro(), tt.kn())
			require.Error(t, err)
			assert.Equal(t, tt.code, errs.GetCode(err), "error: %v", err)
		})
	}
}

func TestRanges(t *testing.T) {
	e := hydrotest.Engine(t)

	lo, hi := e.DisplacementRange()
	assert.Equal(t, 900.0, lo)
	assert.Equal(t, 1000.0, hi)

	lo, hi = e.TrimRange()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.5, hi)

	heels := e.HeelAngles()
	heels[0] = 99
	assert.Equal(t, []float64{0, 10, 20, 30, 40}, e.HeelAngles(), "HeelAngles must return a copy")
}

func TestConcurrentQueries(t *testing.T) {
	e := hydrotest.Engine(t)
	want, err := e.LCB(950, 0.2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := e.LCB(950, 0.2)
				if err != nil || got != want {
					t.Errorf("LCB = %v, %v, want %v", got, err, want)
					return
				}
			}
		}()
	}
	wg.Wait()
}
