// Package site holds the operating requirements of the RORO discharge sites
// and validates a stability result against them.
//
// Two profiles are built in, DAS Island and AGI Site. A profile can be
// overridden or extended from a TOML file:
//
//	site_type = "AGI"
//	max_trim_m = 0.30
//	max_gm_m = 3.5
//	additional_checks = ["AGI Trim Control Sheet"]
//
// Keys that are not present keep the value of the built-in profile with the
// same site type.
package site

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/rorostab/pkg/errors"
)

// Type identifies a site.
type Type string

// Known site types.
const (
	TypeDAS     Type = "DAS"
	TypeAGI     Type = "AGI"
	TypeUnknown Type = "UNKNOWN"
)

// Requirements are the operating limits and paperwork for one site.
type Requirements struct {
	Type          Type   `toml:"site_type" json:"site_type"`
	Name          string `toml:"site_name" json:"site_name"`
	DeparturePort string `toml:"departure_port" json:"departure_port"`
	ArrivalJetty  string `toml:"arrival_jetty" json:"arrival_jetty"`

	// Permit to work
	PTWLeadTimeHours     int  `toml:"ptw_lead_time_hours" json:"ptw_lead_time_hours"`
	PTWHotWorkRestricted bool `toml:"ptw_hot_work_restricted" json:"ptw_hot_work_restricted"`

	// Navigation
	PilotageRequired           bool `toml:"pilotage_required" json:"pilotage_required"`
	PilotageExemptionAvailable bool `toml:"pilotage_exemption_available" json:"pilotage_exemption_available"`
	HarborMasterApproval       bool `toml:"harbor_master_approval" json:"harbor_master_approval"`

	// RORO limits
	MaxRampAngleDeg       float64 `toml:"max_ramp_angle_deg" json:"max_ramp_angle_deg"`
	LashingPointsRequired int     `toml:"lashing_points_required" json:"lashing_points_required"`
	MaxTrim               float64 `toml:"max_trim_m" json:"max_trim_m"`
	MinGM                 float64 `toml:"min_gm_m" json:"min_gm_m"`
	MaxGM                 float64 `toml:"max_gm_m" json:"max_gm_m,omitempty"` // 0 = no upper limit

	// Gate pass
	GatePassValidityHours int    `toml:"gate_pass_validity_hours" json:"gate_pass_validity_hours"`
	GatePassSystem        string `toml:"gate_pass_system" json:"gate_pass_system"`

	// Reporting
	IncidentReportHours  int `toml:"incident_report_hours" json:"incident_report_hours"`
	FinalReportDays      int `toml:"final_report_days" json:"final_report_days"`
	PhotoEvidenceMinimum int `toml:"photo_evidence_minimum" json:"photo_evidence_minimum"`

	Ballast          map[string]any `toml:"ballast_requirements" json:"ballast_requirements,omitempty"`
	AdditionalChecks []string       `toml:"additional_checks" json:"additional_checks,omitempty"`
}

// DAS returns the DAS Island profile.
func DAS() Requirements {
	return Requirements{
		Type:                       TypeDAS,
		Name:                       "DAS Island",
		DeparturePort:              "Mina Zayed",
		ArrivalJetty:               "DAS Jetty",
		PTWLeadTimeHours:           48,
		PTWHotWorkRestricted:       true,
		PilotageRequired:           true,
		PilotageExemptionAvailable: false,
		HarborMasterApproval:       true,
		MaxRampAngleDeg:            8.0,
		LashingPointsRequired:      12,
		MaxTrim:                    0.50,
		MinGM:                      0.15,
		GatePassValidityHours:      24,
		GatePassSystem:             "ATLP + DAS Security Clearance",
		IncidentReportHours:        1,
		FinalReportDays:            7,
		PhotoEvidenceMinimum:       18,
		Ballast: map[string]any{
			"real_time_gm_monitoring":   true,
			"berth_load_chart_required": true,
			"ramp_plate_cert_required":  true,
		},
		AdditionalChecks: []string{
			"DAS Berth Load Chart",
			"DAS Pilotage Request Form",
			"DAS Security Clearance",
			"Ramp Angle Calculation (≤8°)",
			"12-point Lashing with GPS photos",
		},
	}
}

// AGI returns the AGI Site profile.
func AGI() Requirements {
	return Requirements{
		Type:                       TypeAGI,
		Name:                       "AGI Site",
		DeparturePort:              "Khalifa Port",
		ArrivalJetty:               "AGI Quay",
		PTWLeadTimeHours:           24,
		PTWHotWorkRestricted:       false,
		PilotageRequired:           false,
		PilotageExemptionAvailable: true,
		HarborMasterApproval:       true,
		MaxRampAngleDeg:            10.0,
		LashingPointsRequired:      10,
		MaxTrim:                    0.50,
		MinGM:                      0.15,
		GatePassValidityHours:      48,
		GatePassSystem:             "ATLP + AGI ePass",
		IncidentReportHours:        2,
		FinalReportDays:            7,
		PhotoEvidenceMinimum:       15,
		Ballast: map[string]any{
			"stability_template_required": true,
			"mws_pre_verification":        true,
			"ramp_plate_strength":         "150t/m²",
		},
		AdditionalChecks: []string{
			"AGI Stability Template",
			"AGI Ramp Plate Cert (150t/m²)",
			"Pilotage Exemption Cert (if applicable)",
			"AGI Trim Control Sheet",
			"10-point Lashing",
		},
	}
}

// FromCode returns the built-in profile for a site code such as "DAS",
// "AGI" or "DAS-001". The match is a case-insensitive substring test.
// Unknown codes return the DAS profile and false.
func FromCode(code string) (Requirements, bool) {
	c := strings.ToUpper(strings.TrimSpace(code))
	switch {
	case strings.Contains(c, string(TypeDAS)):
		return DAS(), true
	case strings.Contains(c, string(TypeAGI)):
		return AGI(), true
	}
	return DAS(), false
}

// Parse reads a TOML profile. Fields absent from data keep the values of
// the built-in profile named by site_type (DAS when site_type is absent).
// Unknown keys are rejected.
func Parse(data []byte) (Requirements, error) {
	var head struct {
		Type Type `toml:"site_type"`
	}
	if _, err := toml.Decode(string(data), &head); err != nil {
		return Requirements{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse site profile")
	}

	req := DAS()
	if head.Type != "" {
		base, ok := FromCode(string(head.Type))
		if ok {
			req = base
		}
	}
	// Lists and tables given in the file replace the defaults.
	req.Ballast = nil

	md, err := toml.Decode(string(data), &req)
	if err != nil {
		return Requirements{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse site profile")
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return Requirements{}, errs.New(errs.ErrCodeInvalidFormat, "unknown site profile keys: %s", strings.Join(keys, ", "))
	}
	if !md.IsDefined("ballast_requirements") {
		base, _ := FromCode(string(req.Type))
		req.Ballast = base.Ballast
	}
	if err := req.Validate(); err != nil {
		return Requirements{}, err
	}
	return req, nil
}

// Load reads a TOML profile from path.
func Load(path string) (Requirements, error) {
	if err := errs.ValidatePath(path); err != nil {
		return Requirements{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Requirements{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "site profile %s", path)
	}
	if err != nil {
		return Requirements{}, err
	}
	return Parse(data)
}

// Resolve interprets ref as a path to a .toml profile when it has that
// extension, and as a site code otherwise. The boolean is false when a
// site code was not recognised and the DAS profile was substituted.
func Resolve(ref string) (Requirements, bool, error) {
	if strings.EqualFold(filepath.Ext(ref), ".toml") {
		req, err := Load(ref)
		return req, err == nil, err
	}
	if err := errs.ValidateSiteCode(ref); err != nil {
		return Requirements{}, false, err
	}
	req, ok := FromCode(ref)
	return req, ok, nil
}

// Validate checks that the limits are usable.
func (r *Requirements) Validate() error {
	if r.Type == "" {
		return errs.New(errs.ErrCodeInvalidInput, "site profile has no site_type")
	}
	if r.MaxTrim <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "site %s: max_trim_m must be positive, got %v", r.Type, r.MaxTrim)
	}
	if r.MinGM < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "site %s: min_gm_m must not be negative, got %v", r.Type, r.MinGM)
	}
	if r.MaxGM != 0 && r.MaxGM < r.MinGM {
		return errs.New(errs.ErrCodeInvalidInput, "site %s: max_gm_m %v is below min_gm_m %v", r.Type, r.MaxGM, r.MinGM)
	}
	return nil
}
