package cli

import (
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/rorostab/pkg/errors"
	"github.com/matzehuels/rorostab/pkg/imo"
)

// imoCommand creates the imo command, which checks a GZ curve given on the
// command line without any tables.
func (c *CLI) imoCommand() *cobra.Command {
	var (
		heelsStr, gzStr string
		gm              float64
	)

	cmd := &cobra.Command{
		Use:   "imo",
		Short: "Check a GZ curve against IMO A.749",
		Long: `Check a GZ curve against the IMO A.749 general intact stability criteria.

The curve is resampled on a 1° grid between 0° and 40° and the areas are
integrated with Simpson's rule.`,
		Example: `  rorostab imo --heel 0,10,20,30,40 --gz 0,0.15,0.30,0.40,0.35 --gm 0.2`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			heels, err := parseFloats("heel", heelsStr)
			if err != nil {
				return err
			}
			gz, err := parseFloats("gz", gzStr)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("gm") {
				return errs.New(errs.ErrCodeInvalidInput, "--gm is required")
			}
			rep, err := imo.Check(heels, gz, gm)
			if err != nil {
				return err
			}
			c.Logger.Debug("imo check", "points", len(heels), "pass", rep.Pass)
			printCompliance(rep)
			return nil
		},
	}

	cmd.Flags().StringVar(&heelsStr, "heel", "", "heel angles in degrees (comma-separated)")
	cmd.Flags().StringVar(&gzStr, "gz", "", "GZ values in m, one per heel angle (comma-separated)")
	cmd.Flags().Float64Var(&gm, "gm", 0, "metacentric height GM in m")
	_ = cmd.MarkFlagRequired("heel")
	_ = cmd.MarkFlagRequired("gz")

	return cmd
}
