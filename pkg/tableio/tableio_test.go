package tableio_test

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rorostab/pkg/displacement"
	errs "github.com/matzehuels/rorostab/pkg/errors"
	"github.com/matzehuels/rorostab/pkg/hydro"
	"github.com/matzehuels/rorostab/pkg/hydro/hydrotest"
	"github.com/matzehuels/rorostab/pkg/site"
	"github.com/matzehuels/rorostab/pkg/stability"
	"github.com/matzehuels/rorostab/pkg/tableio"
)

const hydroCSV = `Displacement,Trim,Draft,LCB,KMT,MTC
900,0.0,2.00,26.0,5.00,100
900,0.5,2.10,26.1,5.10,101
920,0.0,2.05,26.2,5.05,102
920,0.5,2.15,26.3,5.15,103
1000,0.0,2.20,26.5,5.20,105
1000,0.5,2.30,26.6,5.30,106
`

func TestReadTable(t *testing.T) {
	tbl, err := tableio.ReadTable(strings.NewReader(hydroCSV))
	require.NoError(t, err)
	assert.Equal(t, hydrotest.HydroTable(), tbl)
}

func TestReadTableEmptyCells(t *testing.T) {
	in := "Displacement, Trim ,Draft\n900,0,\n\n1000,0,2.2\n"
	tbl, err := tableio.ReadTable(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"Displacement", "Trim", "Draft"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2, "blank lines are skipped")
	assert.True(t, math.IsNaN(tbl.Rows[0][2]))
	assert.Equal(t, 2.2, tbl.Rows[1][2])
}

func TestReadTableErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errs.Code
		msg  string
	}{
		{"empty", "", errs.ErrCodeInvalidTable, "header"},
		{"non-numeric", "Displacement,Trim\n900,abc\n", errs.ErrCodeInvalidTable, `row 2, column "Trim"`},
		{"ragged", "Displacement,Trim\n900\n", errs.ErrCodeInvalidTable, "row 2"},
		{"bad quoting", "Displacement,Trim\n\"900,0\n", errs.ErrCodeInvalidFormat, "malformed CSV"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tableio.ReadTable(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Equal(t, tt.code, errs.GetCode(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadTableBuildsEngine(t *testing.T) {
	dir := t.TempDir()
	hp := filepath.Join(dir, "hydro.csv")
	kp := filepath.Join(dir, "kn.csv")
	require.NoError(t, os.WriteFile(hp, []byte(hydroCSV), 0o644))
	require.NoError(t, os.WriteFile(kp, []byte("Disp,Trim,Heel_0,Heel_10\n900,0,0,1.0\n1000,0,0,1.1\n"), 0o644))

	ht, err := tableio.LoadTable(hp)
	require.NoError(t, err)
	kt, err := tableio.LoadTable(kp)
	require.NoError(t, err)

	e, err := hydro.New(ht, kt)
	require.NoError(t, err)
	kn, err := e.KN(950, 10, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.05, kn, 1e-12)
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := tableio.LoadTable(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeFileNotFound))
}

func TestReadItemsCSV(t *testing.T) {
	in := `Name,Weight_t,LCG_m,VCG_m,TCG_m,FSM_tm,Group
Lightship,770.16,26.35,3.88,0,0,LIGHTSHIP
FO Tank 1,100,20.0,2.0,,5,FUEL OIL
,10,,,,,
`
	items, err := tableio.ReadItemsCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Lightship", items[0].Name)
	assert.Equal(t, 770.16, items[0].Weight)
	require.NotNil(t, items[0].LCG)
	assert.Equal(t, 26.35, *items[0].LCG)
	assert.Equal(t, "LIGHTSHIP", items[0].Group)

	assert.Nil(t, items[1].TCG, "empty coordinate is absent")
	assert.Equal(t, 5.0, items[1].FSM)
	assert.Equal(t, "FUEL OIL", items[1].Group)

	assert.Equal(t, "Unknown", items[2].Name)
	assert.Nil(t, items[2].LCG)
	assert.Nil(t, items[2].VCG)

	res, err := displacement.Calculate(items)
	require.NoError(t, err)
	assert.InDelta(t, 880.16, res.TotalWeight, 1e-9)
}

func TestReadItemsCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errs.Code
	}{
		{"no weight column", "Name,LCG\nA,1\n", errs.ErrCodeMissingColumn},
		{"empty weight", "Name,Weight\nA,\n", errs.ErrCodeInvalidInput},
		{"bad coordinate", "Name,Weight,LCG\nA,1,aft\n", errs.ErrCodeInvalidInput},
		{"no header", "", errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tableio.ReadItemsCSV(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Equal(t, tt.code, errs.GetCode(err), "error: %v", err)
		})
	}
}

func TestReadItemsJSON(t *testing.T) {
	in := `[
  {"name": "Lightship", "weight": 770.16, "lcg": 26.35, "vcg": 3.88, "tcg": 0},
  {"name": "Stores", "weight": 5, "lcg": null, "fsm": 0.5}
]`
	items, err := tableio.ReadItemsJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 3.88, *items[0].VCG)
	assert.Nil(t, items[1].LCG)
	assert.Nil(t, items[1].VCG)
	assert.Equal(t, 0.5, items[1].FSM)

	_, err = tableio.ReadItemsJSON(strings.NewReader(`[{"name": "x", "mass": 1}]`))
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidFormat))
}

func TestLoadItems(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "cond.CSV")
	jsonPath := filepath.Join(dir, "cond.json")
	require.NoError(t, os.WriteFile(csvPath, []byte("Name,Weight\nA,1\n"), 0o644))
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"name":"A","weight":1}]`), 0o644))

	a, err := tableio.LoadItems(csvPath)
	require.NoError(t, err)
	b, err := tableio.LoadItems(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = tableio.LoadItems(filepath.Join(dir, "cond.xlsx"))
	assert.True(t, errs.Is(err, errs.ErrCodeUnsupported))

	_, err = tableio.LoadItems(filepath.Join(dir, "missing.json"))
	assert.True(t, errs.Is(err, errs.ErrCodeFileNotFound))
}

func TestReport(t *testing.T) {
	items := []displacement.WeightItem{
		{Name: "Light Ship", Weight: 920, LCG: displacement.Float(26.2), VCG: displacement.Float(3.5)},
	}
	a, err := stability.Evaluate(context.Background(), items, hydrotest.Engine(t), stability.Options{})
	require.NoError(t, err)
	sv := site.Validate(a.Result, site.DAS())

	rep := tableio.NewReport("MV Example", a, sv)
	_, err = uuid.Parse(rep.ID)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, tableio.ExportReport(path, rep))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"id\": ")
	assert.Contains(t, string(data), `"trim_state": "converged"`)

	got, err := tableio.ReadReport(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, rep.ID, got.ID)
	assert.Equal(t, "MV Example", got.Vessel)
	assert.True(t, strings.HasPrefix(got.Generator, "rorostab "))
	assert.Equal(t, a.Result.GM, got.Result.GM)
	assert.Equal(t, a.Compliance.Pass, got.Compliance.Pass)
	assert.Equal(t, sv.Pass, got.Site.Pass)

	_, err = tableio.ReadReport(strings.NewReader(`{"id": "nope"}`))
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidFormat))
}
