package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/rorostab/pkg/imo"
	"github.com/matzehuels/rorostab/pkg/site"
	"github.com/matzehuels/rorostab/pkg/stability"
	"github.com/matzehuels/rorostab/pkg/trim"
)

// num formats v with a fixed number of decimals.
func num(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// gzTable lists KN and GZ per heel angle. Negative righting arms are
// highlighted.
func gzTable(res *stability.Result) *table.Table {
	rows := make([][]string, len(res.GZCurve))
	negative := make([]bool, len(res.GZCurve))
	for i, p := range res.GZCurve {
		kn, _ := res.KNCurve.At(p.Heel)
		rows[i] = []string{num(p.Heel, 0) + "°", num(kn, 3), num(p.Value, 3)}
		negative[i] = p.Value < 0
	}
	return newTable([]string{"Heel", "KN (m)", "GZ (m)"}, rows, func(row, col int) lipgloss.Style {
		if col == 2 && row < len(negative) && negative[row] {
			return lipgloss.NewStyle().Foreground(colorRed)
		}
		return lipgloss.NewStyle().Foreground(colorWhite)
	})
}

// criteriaTable lists every IMO criterion with its verdict.
func criteriaTable(rep *imo.Report) *table.Table {
	rows := make([][]string, len(rep.Criteria))
	for i, c := range rep.Criteria {
		rows[i] = []string{c.Name, num(c.Value, 4), c.Comparison + " " + num(c.Required, 3), verdict(c.Pass)}
	}
	return newTable([]string{"Criterion", "Value", "Required", ""}, rows, nil)
}

// siteTable lists the site checks. Informational checks carry no verdict.
func siteTable(v *site.Validation) *table.Table {
	var rows [][]string
	for _, c := range v.Checks {
		status := verdict(c.Pass)
		if c.Informational {
			status = StyleDim.Render("info")
		}
		rows = append(rows, []string{c.ID, c.Message, status})
	}
	return newTable([]string{"Check", "Detail", ""}, rows, nil)
}

// printResult prints the condition summary of a stability result.
func printResult(res *stability.Result) {
	fmt.Println(StyleTitle.Render("Loading condition"))
	printKeyValue("Displacement", num(res.TotalWeight, 2)+" t")
	printKeyValue("LCG", num(res.LCG, 3)+" m")
	printKeyValue("VCG", num(res.VCG, 3)+" m")
	printKeyValue("TCG", num(res.TCG, 3)+" m")
	printKeyValue("FSM", num(res.TotalFSM, 2)+" t·m")
	printKeyValue("KG (corr.)", num(res.KGCorrected, 3)+" m")
	printKeyValue("KMT", num(res.KMT, 3)+" m")
	printKeyValue("GM", StyleNumber.Render(num(res.GM, 3))+" m")
	printNewline()

	fmt.Println(StyleTitle.Render("Trim and drafts"))
	printKeyValue("Trim", fmt.Sprintf("%s m (%s after %d iterations)", num(res.Trim, 3), res.TrimState, res.TrimIterations))
	printKeyValue("Draft mean", num(res.DraftMean, 3)+" m")
	printKeyValue("Draft fwd", num(res.DraftFwd, 3)+" m")
	printKeyValue("Draft aft", num(res.DraftAft, 3)+" m")
	switch res.TrimState {
	case trim.StateLimitExceeded:
		printWarning("Trim clipped to the trim limit; check the loading condition")
	case trim.StateInvalid:
		printWarning("Trim solver stopped on unusable hydrostatics; trim is the last valid value")
	case trim.StateIterationCap:
		printWarning("Trim did not converge within %d iterations", res.TrimIterations)
	}
	printNewline()

	fmt.Println(StyleTitle.Render("GZ curve"))
	fmt.Println(gzTable(res).Render())
	printNewline()
}

// printCompliance prints the IMO criteria table and overall verdict.
func printCompliance(rep *imo.Report) {
	fmt.Println(StyleTitle.Render("IMO A.749 intact stability"))
	fmt.Println(criteriaTable(rep).Render())
	if rep.Pass {
		printSuccess("All IMO criteria met")
	} else {
		printError("%d of %d IMO criteria failed", len(rep.Failed()), len(rep.Criteria))
	}
	printDetail("Areas integrated with %s rule", rep.Integrator)
	printNewline()
}

// printSiteValidation prints the site checks and overall verdict.
func printSiteValidation(v *site.Validation) {
	fmt.Println(StyleTitle.Render("Site " + v.Name))
	fmt.Println(siteTable(v).Render())
	if v.Pass {
		printSuccess("Site limits met")
	} else {
		printError("%d site checks failed", len(v.Failed()))
	}
	printNewline()
}
