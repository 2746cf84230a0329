package displacement

import (
	"strconv"

	errs "github.com/matzehuels/rorostab/pkg/errors"
)

// WeightItem is a single weight on board with its centre of gravity.
type WeightItem struct {
	Name   string   `json:"name"`
	Weight float64  `json:"weight"`          // t
	LCG    *float64 `json:"lcg,omitempty"`   // m, longitudinal centre of gravity
	VCG    *float64 `json:"vcg,omitempty"`   // m, vertical centre of gravity
	TCG    *float64 `json:"tcg,omitempty"`   // m, transverse centre of gravity
	FSM    float64  `json:"fsm,omitempty"`   // t·m, free surface moment
	Group  string   `json:"group,omitempty"` // optional grouping label, e.g. "FUEL OIL"
}

// Result is the aggregated loading condition.
type Result struct {
	TotalWeight float64 `json:"total_weight"`
	LCG         float64 `json:"lcg"`
	VCG         float64 `json:"vcg"`
	TCG         float64 `json:"tcg"`
	TotalFSM    float64 `json:"total_fsm"`
}

// Float returns a pointer to v, for filling optional item coordinates.
func Float(v float64) *float64 {
	return &v
}

// axis accumulates a weighted moment for one coordinate.
type axis struct {
	moment float64
	weight float64
}

func (a *axis) add(w float64, c *float64) {
	if c == nil {
		return
	}
	a.moment += w * *c
	a.weight += w
}

func (a axis) centre() float64 {
	if a.weight == 0 {
		return 0
	}
	return a.moment / a.weight
}

// Calculate aggregates items into a [Result].
//
// Each centre is the weight-averaged coordinate over the items that carry
// it. Items without a coordinate still contribute to TotalWeight. TotalFSM
// is the plain sum over all items.
func Calculate(items []WeightItem) (*Result, error) {
	if len(items) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "cannot calculate displacement from empty item list")
	}

	var (
		total         float64
		fsm           float64
		long, vert, t axis
	)
	for i, it := range items {
		if err := errs.ValidateFinite("weight of "+itemLabel(i, it), it.Weight); err != nil {
			return nil, err
		}
		total += it.Weight
		fsm += it.FSM
		long.add(it.Weight, it.LCG)
		vert.add(it.Weight, it.VCG)
		t.add(it.Weight, it.TCG)
	}

	if total == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "total weight cannot be zero")
	}

	return &Result{
		TotalWeight: total,
		LCG:         long.centre(),
		VCG:         vert.centre(),
		TCG:         t.centre(),
		TotalFSM:    fsm,
	}, nil
}

func itemLabel(i int, it WeightItem) string {
	if it.Name != "" {
		return it.Name
	}
	return "item " + strconv.Itoa(i)
}
