package site

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/rorostab/pkg/stability"
)

// Check identifiers.
const (
	CheckTrim         = "trim_within_limit"
	CheckGMMin        = "gm_sufficient"
	CheckGMMax        = "gm_not_excessive"
	CheckDrafts       = "drafts_positive"
	CheckSiteSpecific = "site_specific"
)

// Check is one site validation item.
type Check struct {
	ID      string  `json:"id"`
	Pass    bool    `json:"pass"`
	Value   float64 `json:"value"`
	Limit   float64 `json:"limit,omitempty"`
	Message string  `json:"message"`

	// Informational checks list paperwork to complete on site and do not
	// count toward the overall result.
	Informational bool     `json:"informational,omitempty"`
	Requirements  []string `json:"requirements,omitempty"`
}

// Validation is the outcome of [Validate].
type Validation struct {
	Site   Type    `json:"site"`
	Name   string  `json:"name"`
	Checks []Check `json:"checks"`
	Pass   bool    `json:"pass"`
}

// Failed returns the non-informational checks that did not pass.
func (v *Validation) Failed() []Check {
	var out []Check
	for _, c := range v.Checks {
		if !c.Pass && !c.Informational {
			out = append(out, c)
		}
	}
	return out
}

// Validate checks a stability result against the site limits: trim, GM
// bounds and positive drafts.
func Validate(res *stability.Result, req Requirements) *Validation {
	v := &Validation{Site: req.Type, Name: req.Name}

	trimOK := math.Abs(res.Trim) <= req.MaxTrim
	v.Checks = append(v.Checks, Check{
		ID:      CheckTrim,
		Pass:    trimOK,
		Value:   res.Trim,
		Limit:   req.MaxTrim,
		Message: fmt.Sprintf("Trim %.3fm %s limit %.2fm", res.Trim, verdict(trimOK, "EXCEEDS"), req.MaxTrim),
	})

	gmOK := res.GM >= req.MinGM
	v.Checks = append(v.Checks, Check{
		ID:      CheckGMMin,
		Pass:    gmOK,
		Value:   res.GM,
		Limit:   req.MinGM,
		Message: fmt.Sprintf("GM %.3fm %s minimum %.2fm", res.GM, verdict(gmOK, "BELOW"), req.MinGM),
	})

	if req.MaxGM > 0 {
		ok := res.GM <= req.MaxGM
		v.Checks = append(v.Checks, Check{
			ID:      CheckGMMax,
			Pass:    ok,
			Value:   res.GM,
			Limit:   req.MaxGM,
			Message: fmt.Sprintf("GM %.3fm %s maximum %.2fm", res.GM, verdict(ok, "EXCEEDS"), req.MaxGM),
		})
	}

	draftOK := res.DraftFwd > 0 && res.DraftAft > 0 && res.DraftMean > 0
	v.Checks = append(v.Checks, Check{
		ID:    CheckDrafts,
		Pass:  draftOK,
		Value: math.Min(res.DraftFwd, math.Min(res.DraftAft, res.DraftMean)),
		Message: fmt.Sprintf("Drafts %s (fwd %.3fm, aft %.3fm, mean %.3fm)",
			verdict(draftOK, "INVALID"), res.DraftFwd, res.DraftAft, res.DraftMean),
	})

	if req.Type == TypeDAS || req.Type == TypeAGI {
		v.Checks = append(v.Checks, Check{
			ID:            CheckSiteSpecific,
			Pass:          true,
			Message:       fmt.Sprintf("%s additional checks required", req.Name),
			Informational: true,
			Requirements:  append([]string(nil), req.AdditionalChecks...),
		})
	}

	v.Pass = len(v.Failed()) == 0
	return v
}

func verdict(ok bool, fail string) string {
	if ok {
		return "OK"
	}
	return fail
}

// Checklist renders the pre-operation checklist for a site.
func Checklist(req Requirements) string {
	var b strings.Builder
	rule := strings.Repeat("=", 70)
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("%s", rule)
	line("RORO OPERATION CHECKLIST: %s", req.Name)
	line("%s", rule)
	line("")

	line("SITE INFORMATION")
	line("   Departure Port: %s", req.DeparturePort)
	line("   Arrival Jetty: %s", req.ArrivalJetty)
	line("   Site Code: %s", req.Type)
	line("")

	line("PRE-OPERATION REQUIREMENTS")
	line("   ☐ PTW submitted ≥%dh before operation", req.PTWLeadTimeHours)
	if req.PTWHotWorkRestricted {
		line("   ☐ Hot Work restrictions confirmed")
	}
	line("   ☐ Gate Pass obtained (%s)", req.GatePassSystem)
	line("   ☐ Valid for %dh", req.GatePassValidityHours)
	if req.PilotageRequired {
		line("   ☐ Pilotage request submitted and confirmed")
	} else {
		line("   ☐ Pilotage exemption verified (if applicable)")
	}
	if req.HarborMasterApproval {
		line("   ☐ Harbor Master approval obtained")
	}
	line("")

	line("OPERATIONAL LIMITS")
	line("   • Max Ramp Angle: ≤%g°", req.MaxRampAngleDeg)
	line("   • Lashing Points: %d points", req.LashingPointsRequired)
	line("   • Max Trim: ≤%gm", req.MaxTrim)
	line("   • Min GM: ≥%gm", req.MinGM)
	if req.MaxGM > 0 {
		line("   • Max GM: ≤%gm", req.MaxGM)
	}
	line("")

	line("DOCUMENTATION REQUIREMENTS")
	line("   ☐ Minimum %d photos with GPS tags", req.PhotoEvidenceMinimum)
	line("   ☐ Incident report within %dh (if applicable)", req.IncidentReportHours)
	line("   ☐ Final report within %d days", req.FinalReportDays)
	line("")

	if len(req.AdditionalChecks) > 0 {
		line("SITE-SPECIFIC CHECKS")
		for _, c := range req.AdditionalChecks {
			line("   ☐ %s", c)
		}
		line("")
	}
	line("%s", rule)
	return b.String()
}
