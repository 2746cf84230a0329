// Package tableio reads hydrostatic tables and loading conditions from disk
// and writes stability reports.
//
// # Tables
//
// Hydrostatic and KN tables are CSV files with a header row. Every other
// cell must be numeric or empty; empty cells become NaN and are later
// gap-filled by the hydrostatic engine:
//
//	Displacement,Trim,Draft,LCB,KMT,MTC
//	900,0.0,2.00,26.0,5.00,100
//	900,0.5,2.05,26.2,5.02,101
//
// Column names are passed through unchanged; alias resolution happens in
// [hydro.New]. Use [LoadTable] for a file path or [ReadTable] for any
// io.Reader.
//
// # Weight items
//
// A loading condition is a list of weight items, read from CSV or JSON.
// CSV headers are matched case-insensitively and may carry a unit suffix:
//
//	Name,Weight_t,LCG_m,VCG_m,TCG_m,FSM_tm,Group
//	Lightship,770.16,26.35,3.88,0,0,LIGHTSHIP
//	FO Tank 1,100,20.0,2.0,,5,FUEL OIL
//
// An empty coordinate cell means the item does not carry that coordinate
// and is left out of the corresponding centre. The JSON form is an array of
// objects with the same fields in lower case; null or absent coordinates
// behave like empty cells:
//
//	[{"name": "Lightship", "weight": 770.16, "lcg": 26.35, "vcg": 3.88}]
//
// [LoadItems] dispatches on the file extension (.csv or .json).
//
// # Reports
//
// [WriteReport] and [ExportReport] write a [Report] as indented JSON. Each
// report carries a random ID and a generation timestamp so exported
// reports can be told apart in an audit trail.
package tableio
