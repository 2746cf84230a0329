// Package displacement reduces a list of weight items to the loading
// condition of a vessel: total displacement, centres of gravity and the
// summed free-surface moment.
//
// # Weight Items
//
// Each [WeightItem] carries a weight in tonnes, optional longitudinal,
// vertical and transverse centres in metres and a free-surface moment in
// t·m. A nil centre means the coordinate is unknown for that item: the
// item still counts toward the total weight but is skipped, on that axis
// only, when averaging the centre.
//
// # Usage
//
//	items := []displacement.WeightItem{
//	    {Name: "Light Ship", Weight: 770.16, LCG: displacement.Float(26.35), VCG: displacement.Float(3.88)},
//	    {Name: "Fuel Oil", Weight: 100, LCG: displacement.Float(20), VCG: displacement.Float(2), FSM: 5},
//	}
//	res, err := displacement.Calculate(items)
//
// [Calculate] fails with an INVALID_INPUT error for an empty list or a
// total weight of exactly zero.
package displacement
