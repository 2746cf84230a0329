package tableio

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/rorostab/pkg/buildinfo"
	errs "github.com/matzehuels/rorostab/pkg/errors"
	"github.com/matzehuels/rorostab/pkg/imo"
	"github.com/matzehuels/rorostab/pkg/site"
	"github.com/matzehuels/rorostab/pkg/stability"
)

// Report is the exported record of one stability assessment.
type Report struct {
	ID          string            `json:"id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Generator   string            `json:"generator"`
	Vessel      string            `json:"vessel,omitempty"`
	Result      *stability.Result `json:"result"`
	Compliance  *imo.Report       `json:"compliance,omitempty"`
	Site        *site.Validation  `json:"site,omitempty"`
}

// NewReport builds a report for an assessment with a fresh ID.
func NewReport(vessel string, a *stability.Assessment, sv *site.Validation) *Report {
	r := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Generator:   buildinfo.Generator(),
		Vessel:      vessel,
		Site:        sv,
	}
	if a != nil {
		r.Result = a.Result
		r.Compliance = a.Compliance
	}
	return r
}

// WriteReport encodes r as indented JSON and writes it to w.
func WriteReport(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "encode report")
	}
	return nil
}

// ExportReport writes r to path as indented JSON, replacing any existing
// file.
func ExportReport(path string, r *Report) error {
	if err := errs.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := WriteReport(f, r); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "close %s", path)
	}
	return nil
}

// ReadReport decodes a report written by [WriteReport].
func ReadReport(r io.Reader) (*Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode report")
	}
	if _, err := uuid.Parse(rep.ID); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "report id %q", rep.ID)
	}
	return &rep, nil
}
