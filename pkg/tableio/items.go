package tableio

import (
	"encoding/json"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/matzehuels/rorostab/pkg/displacement"
	errs "github.com/matzehuels/rorostab/pkg/errors"
)

type itemField int

const (
	fieldName itemField = iota
	fieldWeight
	fieldLCG
	fieldVCG
	fieldTCG
	fieldFSM
	fieldGroup
)

// itemAliases lists accepted header names per field, lower case.
var itemAliases = map[itemField][]string{
	fieldName:   {"name", "item", "tank_id", "description"},
	fieldWeight: {"weight", "weight_t", "mass", "mass_t"},
	fieldLCG:    {"lcg", "lcg_m"},
	fieldVCG:    {"vcg", "vcg_m", "kg", "kg_m"},
	fieldTCG:    {"tcg", "tcg_m"},
	fieldFSM:    {"fsm", "fsm_tm", "fsm_t_m"},
	fieldGroup:  {"group", "content", "category"},
}

var itemFieldNames = map[itemField]string{
	fieldName:   "Name",
	fieldWeight: "Weight",
	fieldLCG:    "LCG",
	fieldVCG:    "VCG",
	fieldTCG:    "TCG",
	fieldFSM:    "FSM",
	fieldGroup:  "Group",
}

// ReadItemsCSV decodes weight items from a CSV loading condition. A Weight
// column is required; every other column is optional. ReadItemsCSV does
// not close r.
func ReadItemsCSV(r io.Reader) ([]displacement.WeightItem, error) {
	records, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "loading condition has no header row")
	}

	cols := resolveItemColumns(records[0])
	if _, ok := cols[fieldWeight]; !ok {
		return nil, errs.Wrap(errs.ErrCodeMissingColumn, &errs.MissingColumnError{
			Field:     itemFieldNames[fieldWeight],
			Attempted: itemAliases[fieldWeight],
			Available: records[0],
		}, "loading condition has no weight column")
	}

	var items []displacement.WeightItem
	for n, rec := range records[1:] {
		line := n + 2
		if blank(rec) {
			continue
		}
		it, err := parseItem(rec, cols, line)
		if err != nil {
			return nil, err
		}
		if it.Name == "" {
			it.Name = "Unknown"
		}
		items = append(items, it)
	}
	return items, nil
}

func resolveItemColumns(header []string) map[itemField]int {
	index := make(map[string]int, len(header))
	for i, c := range header {
		key := strings.ToLower(strings.TrimSpace(c))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	cols := make(map[itemField]int, len(itemAliases))
	for f, aliases := range itemAliases {
		for _, a := range aliases {
			if i, ok := index[a]; ok {
				cols[f] = i
				break
			}
		}
	}
	return cols
}

func parseItem(rec []string, cols map[itemField]int, line int) (displacement.WeightItem, error) {
	cell := func(f itemField) string {
		i, ok := cols[f]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	number := func(f itemField) (*float64, error) {
		v, err := parseCell(cell(f))
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "row %d, column %s: not a number", line, itemFieldNames[f])
		}
		if math.IsNaN(v) {
			return nil, nil
		}
		return &v, nil
	}

	it := displacement.WeightItem{Name: cell(fieldName), Group: cell(fieldGroup)}

	w, err := number(fieldWeight)
	if err != nil {
		return it, err
	}
	if w == nil {
		return it, errs.New(errs.ErrCodeInvalidInput, "row %d: weight is empty", line)
	}
	it.Weight = *w

	if it.LCG, err = number(fieldLCG); err != nil {
		return it, err
	}
	if it.VCG, err = number(fieldVCG); err != nil {
		return it, err
	}
	if it.TCG, err = number(fieldTCG); err != nil {
		return it, err
	}
	fsm, err := number(fieldFSM)
	if err != nil {
		return it, err
	}
	if fsm != nil {
		it.FSM = *fsm
	}
	return it, nil
}

// ReadItemsJSON decodes a JSON array of weight items from r.
func ReadItemsJSON(r io.Reader) ([]displacement.WeightItem, error) {
	var items []displacement.WeightItem
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&items); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode weight items")
	}
	return items, nil
}

// LoadItems reads weight items from path, choosing the decoder by
// extension.
func LoadItems(path string) ([]displacement.WeightItem, error) {
	var read func(io.Reader) ([]displacement.WeightItem, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		read = ReadItemsCSV
	case ".json":
		read = ReadItemsJSON
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported loading condition format %q (want .csv or .json)", ext)
	}

	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	items, err := read(f)
	if err != nil {
		return nil, errs.Wrap(errs.GetCode(err), err, "read %s", path)
	}
	return items, nil
}
