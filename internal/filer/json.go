package filer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/simmering/ladle/internal/dataset"
)

// ImportJSON reads a records-oriented JSON file (an array of flat objects)
// into a Dataset. Columns whose non-missing values are all numbers or all
// booleans are typed directly; everything else lands in the string bucket
// for InferTypes to classify.
func ImportJSON(path string) (*dataset.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading json")
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.Wrapf(err, "parsing %s: expected an array of objects", path)
	}

	keys := make(map[string]struct{})
	for _, record := range records {
		for key := range record {
			keys[key] = struct{}{}
		}
	}
	names := make([]string, 0, len(keys))
	for key := range keys {
		names = append(names, key)
	}
	sort.Strings(names)

	base := filepath.Base(path)
	d := dataset.New(base[:len(base)-len(filepath.Ext(base))])
	for _, name := range names {
		col, err := buildJSONColumn(name, records)
		if err != nil {
			return nil, errors.Wrapf(err, "importing %s", path)
		}
		if err := d.AddColumn(col); err != nil {
			return nil, errors.Wrapf(err, "importing %s", path)
		}
	}
	return d, nil
}

func buildJSONColumn(name string, records []map[string]any) (*dataset.Column, error) {
	n := len(records)
	allNumber, allBool := true, true
	for _, record := range records {
		v, ok := record[name]
		if !ok || v == nil {
			continue
		}
		if _, isNum := v.(float64); !isNum {
			allNumber = false
		}
		if _, isBool := v.(bool); !isBool {
			allBool = false
		}
	}

	col := &dataset.Column{Name: name, Null: make([]bool, n)}
	switch {
	case allNumber:
		col.Type = dataset.Float
		col.Floats = make([]float64, n)
	case allBool:
		col.Type = dataset.Boolean
		col.Bools = make([]bool, n)
	default:
		col.Type = dataset.String
		col.Strings = make([]string, n)
	}

	for i, record := range records {
		v, ok := record[name]
		if !ok || v == nil {
			col.Null[i] = true
			continue
		}
		switch col.Type {
		case dataset.Float:
			col.Floats[i] = v.(float64)
		case dataset.Boolean:
			col.Bools[i] = v.(bool)
		default:
			s, ok := v.(string)
			if !ok {
				raw, err := json.Marshal(v)
				if err != nil {
					return nil, errors.Wrapf(err, "column %q row %d", name, i)
				}
				s = string(raw)
			}
			if dataset.IsMissingToken(s) {
				col.Null[i] = true
				continue
			}
			col.Strings[i] = s
		}
	}
	return col, nil
}

// ExportJSON writes the dataset as a records-oriented JSON array. Missing
// cells serialize as null.
func ExportJSON(d *dataset.Dataset, path string) error {
	records := make([]map[string]any, d.Rows())
	columns := d.Columns()
	for row := range records {
		record := make(map[string]any, len(columns))
		for _, col := range columns {
			record[col.Name] = col.Value(row)
		}
		records[row] = record
	}
	return WriteJSON(path, records)
}

// WriteJSON marshals v with indentation and writes it to path.
func WriteJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling json")
	}
	return errors.Wrapf(os.WriteFile(path, raw, 0o644), "writing %s", path)
}
