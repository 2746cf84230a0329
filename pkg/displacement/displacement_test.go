package displacement

import (
	"math"
	"testing"

	errs "github.com/matzehuels/rorostab/pkg/errors"
)

const tol = 1e-6

func lightShipItems() []WeightItem {
	return []WeightItem{
		{Name: "Light Ship", Weight: 770.16, LCG: Float(26.349), VCG: Float(3.884), TCG: Float(-0.004)},
		{Name: "Crew + Effects", Weight: 11.0, LCG: Float(5.5), VCG: Float(8.174), TCG: Float(0)},
		{Name: "Deck Cargo 1", Weight: 431.1172, LCG: Float(34.5), VCG: Float(7.161), TCG: Float(0)},
	}
}

func TestCalculate(t *testing.T) {
	items := lightShipItems()
	res, err := Calculate(items)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	var w, lm, vm, tm float64
	for _, it := range items {
		w += it.Weight
		lm += it.Weight * *it.LCG
		vm += it.Weight * *it.VCG
		tm += it.Weight * *it.TCG
	}

	checks := []struct {
		name      string
		got, want float64
	}{
		{"TotalWeight", res.TotalWeight, w},
		{"LCG", res.LCG, lm / w},
		{"VCG", res.VCG, vm / w},
		{"TCG", res.TCG, tm / w},
		{"TotalFSM", res.TotalFSM, 0},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > tol {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestCalculateFreeSurface(t *testing.T) {
	items := []WeightItem{
		{Name: "DAILY OIL TANK (P)", Weight: 0.82, LCG: Float(11.251), VCG: Float(2.825), TCG: Float(-6.247), FSM: 0.34, Group: "FUEL OIL"},
		{Name: "DAILY OIL TANK (S)", Weight: 0.82, LCG: Float(11.251), VCG: Float(2.825), TCG: Float(6.247), FSM: 0.34, Group: "FUEL OIL"},
		{Name: "NO.1 FO TANK (D.BTM-P)", Weight: 3.28, LCG: Float(12.287), VCG: Float(0.669), TCG: Float(0), FSM: 48.1, Group: "FUEL OIL"},
	}
	res, err := Calculate(items)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if want := 0.34 + 0.34 + 48.1; math.Abs(res.TotalFSM-want) > tol {
		t.Errorf("TotalFSM = %v, want %v", res.TotalFSM, want)
	}
	// Port and starboard daily tanks cancel transversely.
	if math.Abs(res.TCG) > tol {
		t.Errorf("TCG = %v, want 0", res.TCG)
	}
}

func TestCalculateMissingCoordinates(t *testing.T) {
	items := []WeightItem{
		{Name: "A", Weight: 100, LCG: Float(10), VCG: Float(2)},
		{Name: "B", Weight: 300, LCG: Float(30)},
		{Name: "C", Weight: 100, FSM: 4},
	}
	res, err := Calculate(items)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if res.TotalWeight != 500 {
		t.Errorf("TotalWeight = %v, want 500", res.TotalWeight)
	}
	// LCG averages over A and B only.
	if want := (100*10.0 + 300*30.0) / 400; math.Abs(res.LCG-want) > tol {
		t.Errorf("LCG = %v, want %v", res.LCG, want)
	}
	// VCG comes from A alone.
	if math.Abs(res.VCG-2) > tol {
		t.Errorf("VCG = %v, want 2", res.VCG)
	}
	// No item carries TCG.
	if res.TCG != 0 {
		t.Errorf("TCG = %v, want 0", res.TCG)
	}
	if res.TotalFSM != 4 {
		t.Errorf("TotalFSM = %v, want 4", res.TotalFSM)
	}
}

func TestCalculateErrors(t *testing.T) {
	tests := []struct {
		name  string
		items []WeightItem
	}{
		{"nil", nil},
		{"empty", []WeightItem{}},
		{"zero weight", []WeightItem{{Name: "A", Weight: 0, LCG: Float(1)}}},
		{"cancelling weights", []WeightItem{{Name: "A", Weight: 10}, {Name: "B", Weight: -10}}},
		{"NaN weight", []WeightItem{{Name: "A", Weight: math.NaN()}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(tt.items)
			if err == nil {
				t.Fatalf("Calculate() = %+v, want error", res)
			}
			if res != nil {
				t.Errorf("Calculate() returned partial result %+v", res)
			}
			if !errs.Is(err, errs.ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidInput)
			}
		})
	}
}
