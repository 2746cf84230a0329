// Package hydrotest provides small hydrostatic and KN tables for tests.
package hydrotest

import (
	"testing"

	"github.com/matzehuels/rorostab/pkg/hydro"
)

// HydroTable returns a 3 × 2 hydrostatic grid around 900–1000 t.
func HydroTable() *hydro.Table {
	return &hydro.Table{
		Columns: []string{"Displacement", "Trim", "Draft", "LCB", "KMT", "MTC"},
		Rows: [][]float64{
			{900, 0.0, 2.00, 26.0, 5.00, 100},
			{900, 0.5, 2.10, 26.1, 5.10, 101},
			{920, 0.0, 2.05, 26.2, 5.05, 102},
			{920, 0.5, 2.15, 26.3, 5.15, 103},
			{1000, 0.0, 2.20, 26.5, 5.20, 105},
			{1000, 0.5, 2.30, 26.6, 5.30, 106},
		},
	}
}

// KNTable returns the KN grid matching [HydroTable] with heels 0–40°.
func KNTable() *hydro.Table {
	return &hydro.Table{
		Columns: []string{"Displacement", "Trim", "Heel_0", "Heel_10", "Heel_20", "Heel_30", "Heel_40"},
		Rows: [][]float64{
			{900, 0.0, 0, 1.00, 2.00, 3.00, 3.50},
			{900, 0.5, 0, 1.05, 2.05, 3.05, 3.55},
			{920, 0.0, 0, 1.02, 2.02, 3.02, 3.52},
			{920, 0.5, 0, 1.07, 2.07, 3.07, 3.57},
			{1000, 0.0, 0, 1.10, 2.10, 3.10, 3.60},
			{1000, 0.5, 0, 1.15, 2.15, 3.15, 3.65},
		},
	}
}

// Engine builds an engine from [HydroTable] and [KNTable].
func Engine(tb testing.TB) *hydro.Engine {
	tb.Helper()
	e, err := hydro.New(HydroTable(), KNTable())
	if err != nil {
		tb.Fatalf("hydro.New: %v", err)
	}
	return e
}
