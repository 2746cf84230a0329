package hydro

import (
	"sort"
)

// grid is a dense rectilinear grid with multilinear interpolation.
// values is stored row-major with the last axis varying fastest.
type grid struct {
	axes    [][]float64
	values  []float64
	strides []int
}

func newGrid(axes [][]float64, values []float64) *grid {
	strides := make([]int, len(axes))
	s := 1
	for d := len(axes) - 1; d >= 0; d-- {
		strides[d] = s
		s *= len(axes[d])
	}
	return &grid{axes: axes, values: values, strides: strides}
}

// bracket locates x on axis a after clipping it to the axis range.
// It returns the lower node index and the fractional position toward the
// next node. Single-node axes always return (0, 0).
func bracket(a []float64, x float64) (int, float64) {
	n := len(a)
	if n == 1 || x <= a[0] {
		return 0, 0
	}
	if x >= a[n-1] {
		return n - 2, 1
	}
	i := sort.SearchFloat64s(a, x)
	if a[i] == x {
		return i, 0
	}
	i--
	return i, (x - a[i]) / (a[i+1] - a[i])
}

// at interpolates the grid at point, one coordinate per axis.
// Coordinates outside an axis are clipped to its boundary.
func (g *grid) at(point ...float64) float64 {
	dims := len(g.axes)
	idx := make([]int, dims)
	frac := make([]float64, dims)
	for d := 0; d < dims; d++ {
		idx[d], frac[d] = bracket(g.axes[d], point[d])
	}

	var sum float64
	for corner := 0; corner < 1<<dims; corner++ {
		w := 1.0
		off := 0
		for d := 0; d < dims; d++ {
			if corner&(1<<d) != 0 {
				w *= frac[d]
				off += (idx[d] + 1) * g.strides[d]
			} else {
				w *= 1 - frac[d]
				off += idx[d] * g.strides[d]
			}
			if w == 0 {
				break
			}
		}
		if w == 0 {
			continue
		}
		sum += w * g.values[off]
	}
	return sum
}

// Grid2D interpolates a property over displacement × trim.
type Grid2D struct {
	g *grid
}

// At returns the interpolated value at (disp, trim), clipped to the grid.
func (g *Grid2D) At(disp, trim float64) float64 {
	return g.g.at(disp, trim)
}

// Values returns a copy of the dense grid as rows of displacement.
func (g *Grid2D) Values() [][]float64 {
	rows, cols := len(g.g.axes[0]), len(g.g.axes[1])
	out := make([][]float64, rows)
	for i := range out {
		out[i] = append([]float64(nil), g.g.values[i*cols:(i+1)*cols]...)
	}
	return out
}

// Grid3D interpolates KN over displacement × trim × heel.
type Grid3D struct {
	g *grid
}

// At returns the interpolated value at (disp, trim, heel), clipped to the grid.
func (g *Grid3D) At(disp, trim, heel float64) float64 {
	return g.g.at(disp, trim, heel)
}

func newGrid2D(disps, trims []float64, cells [][]float64) *Grid2D {
	flat := make([]float64, 0, len(disps)*len(trims))
	for _, row := range cells {
		flat = append(flat, row...)
	}
	return &Grid2D{g: newGrid([][]float64{disps, trims}, flat)}
}

func newGrid3D(disps, trims, heels []float64, slices [][][]float64) *Grid3D {
	flat := make([]float64, len(disps)*len(trims)*len(heels))
	for k := range heels {
		for i := range disps {
			for j := range trims {
				flat[(i*len(trims)+j)*len(heels)+k] = slices[k][i][j]
			}
		}
	}
	return &Grid3D{g: newGrid([][]float64{disps, trims, heels}, flat)}
}

func uniqueSorted(vals []float64) []float64 {
	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	out := s[:0]
	for i, v := range s {
		if i == 0 || v != s[i-1] {
			out = append(out, v)
		}
	}
	return out
}

func indexOf(axis []float64, v float64) int {
	i := sort.SearchFloat64s(axis, v)
	if i < len(axis) && axis[i] == v {
		return i
	}
	return -1
}
