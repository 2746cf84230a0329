// Package pkg provides the core libraries for rorostab intact stability
// calculations of RoRo vessels.
//
// # Overview
//
// A calculation starts from a loading condition (a list of weight items)
// and two vessel tables: hydrostatics over displacement × trim, and KN
// cross curves over displacement × trim × heel. The pkg directory is
// organized by stage:
//
//  1. [displacement] - Aggregate weight items into displacement and centres
//  2. [hydro] - Interpolate hydrostatic and KN tables
//  3. [trim] - Solve the equilibrium trim
//  4. [gz] - Build the righting lever curve
//  5. [imo] - Check IMO A.749 general intact stability criteria
//  6. [stability] - Orchestrate the stages, with result caching
//
// Supporting packages:
//
//   - [tableio] - Read tables and loading conditions, write reports
//   - [site] - Site requirement profiles and validation
//   - [cache] - File, Redis and null result caches
//   - [observability] - Hooks for calculation and cache events
//   - [errors] - Structured error codes
//
// # Data Flow
//
//	Weight items ──▶ [displacement] ──▶ Δ, LCG, VCG, FSM
//	                                        │
//	Hydrostatic table ──▶ [hydro] ──▶ [trim] ──▶ trim, drafts, KMT
//	                                        │
//	KN table ──▶ [hydro] ──▶ [gz] ──▶ GZ curve ──▶ [imo]
//
// # Quick Start
//
//	hydroTbl, _ := tableio.LoadTable("hydrostatics.csv")
//	knTbl, _ := tableio.LoadTable("kn.csv")
//	engine, _ := hydro.New(hydroTbl, knTbl)
//
//	items, _ := tableio.LoadItems("condition.csv")
//	a, err := stability.Evaluate(ctx, items, engine, stability.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("GM %.3f m, IMO pass: %v\n", a.Result.GM, a.Compliance.Pass)
package pkg
