package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rorostab/pkg/cache"
	errs "github.com/matzehuels/rorostab/pkg/errors"
	"github.com/matzehuels/rorostab/pkg/hydro"
	"github.com/matzehuels/rorostab/pkg/site"
	"github.com/matzehuels/rorostab/pkg/stability"
	"github.com/matzehuels/rorostab/pkg/tableio"
)

// calcOpts holds the command-line flags for the calc command.
type calcOpts struct {
	items      string  // loading condition (.csv or .json)
	hydro      string  // hydrostatic table CSV
	kn         string  // KN table CSV
	site       string  // site code or .toml profile
	heels      string  // comma-separated heel angles
	iterations int     // trim iteration cap
	trimLimit  float64 // m
	tolerance  float64 // m
	vessel     string  // vessel name for the report
	output     string  // JSON report path
	strict     bool    // fail when any criterion fails
	noCache    bool
	refresh    bool
	cacheURL   string
}

// calcCommand creates the calc command for a full stability assessment.
func (c *CLI) calcCommand() *cobra.Command {
	opts := calcOpts{
		iterations: stability.DefaultTrimIterations,
		trimLimit:  stability.DefaultTrimLimit,
		tolerance:  stability.DefaultTolerance,
	}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Assess the stability of a loading condition",
		Long: `Assess the stability of a loading condition.

calc aggregates the weight items, solves the equilibrium trim against the
hydrostatic table, computes GM and the GZ curve from the KN table, and checks
the result against IMO A.749 and, with --site, the site limits.

Results are cached locally keyed by the content of the tables, the items and
the solver settings. Set ROROSTAB_CACHE_URL or --cache-url to share a Redis
cache between machines.`,
		Example: `  rorostab calc --items condition.csv --hydro hydrostatics.csv --kn kn.csv
  rorostab calc --items condition.json --hydro h.csv --kn kn.csv --site AGI -o report.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCalc(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.items, "items", "", "loading condition file (.csv or .json)")
	cmd.Flags().StringVar(&opts.hydro, "hydro", "", "hydrostatic table (CSV)")
	cmd.Flags().StringVar(&opts.kn, "kn", "", "KN cross-curve table (CSV)")
	cmd.Flags().StringVar(&opts.site, "site", "", "site code (DAS, AGI) or .toml profile")
	cmd.Flags().StringVar(&opts.heels, "heel", "", "heel angles in degrees (comma-separated, default 0,10,...,60)")
	cmd.Flags().IntVar(&opts.iterations, "iterations", opts.iterations, "trim iteration cap")
	cmd.Flags().Float64Var(&opts.trimLimit, "trim-limit", opts.trimLimit, "absolute trim limit in m")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", opts.tolerance, "trim convergence tolerance in m")
	cmd.Flags().StringVar(&opts.vessel, "vessel", "", "vessel name recorded in the report")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the JSON report to this file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit with an error when a criterion fails")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().StringVar(&opts.cacheURL, "cache-url", "", "redis URL for a shared cache")

	for _, f := range []string{"items", "hydro", "kn"} {
		_ = cmd.MarkFlagRequired(f)
	}
	_ = cmd.MarkFlagFilename("items", "csv", "json")
	_ = cmd.MarkFlagFilename("hydro", "csv")
	_ = cmd.MarkFlagFilename("kn", "csv")

	return cmd
}

// runCalc loads the inputs, evaluates them and prints the report.
func (c *CLI) runCalc(ctx context.Context, o calcOpts) error {
	st := newStages(c.Logger)

	heels, err := parseFloats("heel", o.heels)
	if err != nil {
		return err
	}

	var req *site.Requirements
	if o.site != "" {
		r, known, err := site.Resolve(o.site)
		if err != nil {
			return err
		}
		if !known {
			printWarning("Unknown site %q, using %s limits", o.site, r.Name)
		}
		req = &r
	}

	items, err := tableio.LoadItems(o.items)
	if err != nil {
		return err
	}
	st.step("items loaded", "count", len(items))
	engine, tablesHash, err := c.loadEngine(o.hydro, o.kn)
	if err != nil {
		return err
	}
	st.step("tables loaded", "hash", tablesHash[:12])

	runner, err := c.newRunner(ctx, o.noCache, o.cacheURL)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Cache.Close()

	opts := stability.Options{
		HeelAngles:     heels,
		TrimIterations: o.iterations,
		TrimLimit:      o.trimLimit,
		Tolerance:      o.tolerance,
		Logger:         c.Logger,
	}
	if req != nil {
		opts.Site = string(req.Type)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Evaluating %d items...", len(items)))
	spinner.Start()

	a, cached, err := runner.Evaluate(ctx, stability.Input{
		Items:      items,
		Hydro:      engine,
		TablesHash: tablesHash,
		Refresh:    o.refresh,
	}, opts)
	if err != nil {
		spinner.StopWithError("Calculation failed")
		return err
	}
	spinner.Stop()
	st.step("evaluated", "cached", cached, "pass", a.Compliance.Pass)

	var sv *site.Validation
	if req != nil {
		sv = site.Validate(a.Result, *req)
	}

	printStatus([]string{
		fmt.Sprintf("%d items", len(items)),
		num(a.Result.TotalWeight, 2) + " t",
	}, cached)
	printNewline()
	printResult(a.Result)
	printCompliance(a.Compliance)
	if sv != nil {
		printSiteValidation(sv)
	}

	if o.output != "" {
		if err := tableio.ExportReport(o.output, tableio.NewReport(o.vessel, a, sv)); err != nil {
			return err
		}
		printSuccess("Report written")
		printFile(o.output)
	}

	st.done("calc finished", "items", len(items), "gm", num(a.Result.GM, 3))

	if o.strict && (!a.Compliance.Pass || (sv != nil && !sv.Pass)) {
		return errs.New(errs.ErrCodeInvalidInput, "loading condition does not meet the stability criteria")
	}
	return nil
}

// loadEngine reads both tables and builds the hydrostatic engine. The
// returned hash identifies the content of both files.
func (c *CLI) loadEngine(hydroPath, knPath string) (*hydro.Engine, string, error) {
	ht, hHash, err := loadTable(hydroPath)
	if err != nil {
		return nil, "", err
	}
	kt, kHash, err := loadTable(knPath)
	if err != nil {
		return nil, "", err
	}
	e, err := hydro.New(ht, kt, hydro.WithLogger(c.Logger))
	if err != nil {
		return nil, "", err
	}
	return e, cache.Hash([]byte(hHash + kHash)), nil
}

func loadTable(path string) (*hydro.Table, string, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, "", errs.Wrap(errs.ErrCodeFileNotFound, err, "table %s", path)
	}
	if err != nil {
		return nil, "", errs.Wrap(errs.ErrCodeInvalidPath, err, "read %s", path)
	}
	t, err := tableio.ReadTable(bytes.NewReader(data))
	if err != nil {
		return nil, "", errs.Wrap(errs.GetCode(err), err, "read %s", path)
	}
	return t, cache.Hash(data), nil
}
