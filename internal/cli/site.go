package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rorostab/pkg/site"
)

// siteCommand creates the site command group.
func (c *CLI) siteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Show site requirement profiles",
	}

	cmd.AddCommand(c.siteChecklistCommand())
	cmd.AddCommand(c.siteShowCommand())

	return cmd
}

// siteChecklistCommand creates the "site checklist" subcommand.
func (c *CLI) siteChecklistCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "checklist [DAS|AGI|profile.toml]",
		Short:   "Print the pre-operation checklist for a site",
		Args:    cobra.ExactArgs(1),
		Example: "  rorostab site checklist DAS",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := c.resolveSite(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), site.Checklist(req))
			return nil
		},
	}
}

// siteShowCommand creates the "site show" subcommand.
func (c *CLI) siteShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [DAS|AGI|profile.toml]",
		Short: "Print the limits of a site profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := c.resolveSite(args[0])
			if err != nil {
				return err
			}
			printSiteLimits(req)
			return nil
		},
	}
}

func (c *CLI) resolveSite(ref string) (site.Requirements, error) {
	req, known, err := site.Resolve(ref)
	if err != nil {
		return req, err
	}
	if !known {
		c.Logger.Warn("unknown site code, using default profile", "site", ref, "profile", req.Type)
	}
	return req, nil
}

func printSiteLimits(req site.Requirements) {
	fmt.Println(StyleTitle.Render(req.Name))
	printKeyValue("Site code", string(req.Type))
	printKeyValue("Departure", req.DeparturePort)
	printKeyValue("Arrival", req.ArrivalJetty)
	printKeyValue("Max trim", num(req.MaxTrim, 2)+" m")
	printKeyValue("Min GM", num(req.MinGM, 2)+" m")
	if req.MaxGM > 0 {
		printKeyValue("Max GM", num(req.MaxGM, 2)+" m")
	}
	printKeyValue("Ramp angle", "≤ "+num(req.MaxRampAngleDeg, 1)+"°")
	printKeyValue("Lashings", fmt.Sprintf("%d points", req.LashingPointsRequired))
	printKeyValue("PTW lead", fmt.Sprintf("%dh", req.PTWLeadTimeHours))
	printKeyValue("Gate pass", fmt.Sprintf("%s, valid %dh", req.GatePassSystem, req.GatePassValidityHours))
	if len(req.AdditionalChecks) > 0 {
		printNewline()
		printInfo("Additional checks")
		for _, ch := range req.AdditionalChecks {
			printDetail("%s", strings.TrimSpace(ch))
		}
	}
}
