package tableio

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	errs "github.com/matzehuels/rorostab/pkg/errors"
	"github.com/matzehuels/rorostab/pkg/hydro"
)

// ReadTable decodes a CSV table from r. The first record is the header.
// Empty cells become NaN; any other non-numeric cell is an INVALID_TABLE
// error naming its row and column. ReadTable does not close r.
func ReadTable(r io.Reader) (*hydro.Table, error) {
	records, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidTable, "table has no header row")
	}

	header := records[0]
	t := &hydro.Table{
		Columns: make([]string, len(header)),
		Rows:    make([][]float64, 0, len(records)-1),
	}
	for i, c := range header {
		t.Columns[i] = strings.TrimSpace(c)
	}

	for n, rec := range records[1:] {
		line := n + 2
		if blank(rec) {
			continue
		}
		if len(rec) != len(header) {
			return nil, errs.New(errs.ErrCodeInvalidTable, "row %d: %d cells, header has %d", line, len(rec), len(header))
		}
		row := make([]float64, len(rec))
		for i, cell := range rec {
			v, err := parseCell(cell)
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidTable, err, "row %d, column %q: not a number", line, t.Columns[i])
			}
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// LoadTable reads the CSV table at path.
func LoadTable(path string) (*hydro.Table, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, errs.Wrap(errs.GetCode(err), err, "read %s", path)
	}
	return t, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	records, err := cr.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "malformed CSV at line %d", pe.Line)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read CSV")
	}
	return records, nil
}

// parseCell returns NaN for an empty cell.
func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func open(path string) (*os.File, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "open %s", path)
	}
	return f, nil
}
