package hydro

import (
	"math"

	"gonum.org/v1/gonum/interp"

	errs "github.com/matzehuels/rorostab/pkg/errors"
)

// fillGaps fills missing (NaN) cells of a displacement × trim grid in place.
//
// The policy is inherited from the tabulated data workflow and has no
// physical basis of its own: each displacement column (fixed trim) is
// filled by linear interpolation over cell position, with edge gaps held at
// the nearest valid value; then each trim row is filled the same way. A
// complete grid is left untouched. It reports false when the grid has no
// valid cell at all.
func fillGaps(cells [][]float64) (bool, error) {
	if !hasGaps(cells) {
		return true, nil
	}
	rows := len(cells)
	if rows == 0 {
		return false, nil
	}
	cols := len(cells[0])

	line := make([]float64, rows)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			line[i] = cells[i][j]
		}
		if err := fillLine(line); err != nil {
			return false, err
		}
		for i := 0; i < rows; i++ {
			cells[i][j] = line[i]
		}
	}
	for i := 0; i < rows; i++ {
		if err := fillLine(cells[i]); err != nil {
			return false, err
		}
	}
	return !hasGaps(cells), nil
}

// fillLine fills NaN entries of vals by positional linear interpolation
// between valid neighbours. Leading and trailing gaps take the first and
// last valid value. A line without any valid value is left as is.
func fillLine(vals []float64) error {
	xs := make([]float64, 0, len(vals))
	ys := make([]float64, 0, len(vals))
	for i, v := range vals {
		if !math.IsNaN(v) {
			xs = append(xs, float64(i))
			ys = append(ys, v)
		}
	}
	switch len(xs) {
	case 0, len(vals):
		return nil
	case 1:
		for i := range vals {
			vals[i] = ys[0]
		}
		return nil
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "gap fill")
	}
	first, last := xs[0], xs[len(xs)-1]
	for i, v := range vals {
		if !math.IsNaN(v) {
			continue
		}
		switch x := float64(i); {
		case x < first:
			vals[i] = ys[0]
		case x > last:
			vals[i] = ys[len(ys)-1]
		default:
			vals[i] = pl.Predict(x)
		}
	}
	return nil
}

func hasGaps(cells [][]float64) bool {
	for _, row := range cells {
		for _, v := range row {
			if math.IsNaN(v) {
				return true
			}
		}
	}
	return false
}
