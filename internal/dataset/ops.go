package dataset

import "github.com/cockroachdb/errors"

// ResolveColumns picks the target columns for a technique: a named splice
// wins, then an explicit column list, then the fallback set. The label
// column is never selected implicitly but may be named explicitly.
func (d *Dataset) ResolveColumns(splice string, columns []string, fallback []*Column) ([]*Column, error) {
	if splice != "" {
		names, err := d.Splice(splice)
		if err != nil {
			return nil, err
		}
		columns = names
	}
	if len(columns) > 0 {
		out := make([]*Column, 0, len(columns))
		for _, name := range columns {
			col, err := d.Column(name)
			if err != nil {
				return nil, err
			}
			out = append(out, col)
		}
		return out, nil
	}
	return fallback, nil
}

// KeepRows reduces the dataset to the given rows, in the given order. It
// also serves as a reorder: passing a permutation shuffles the data. Any
// existing train/test split is cleared because its indices no longer apply.
func (d *Dataset) KeepRows(rows []int) error {
	n := d.Rows()
	for _, row := range rows {
		if row < 0 || row >= n {
			return errors.Newf("row %d out of range (dataset has %d rows)", row, n)
		}
	}
	for _, c := range d.columns {
		null := make([]bool, len(rows))
		for i, row := range rows {
			null[i] = c.Null[row]
		}
		switch c.Type {
		case Boolean:
			values := make([]bool, len(rows))
			for i, row := range rows {
				values[i] = c.Bools[row]
			}
			c.Bools = values
		case Integer:
			values := make([]int64, len(rows))
			for i, row := range rows {
				values[i] = c.Ints[row]
			}
			c.Ints = values
		case Float:
			values := make([]float64, len(rows))
			for i, row := range rows {
				values[i] = c.Floats[row]
			}
			c.Floats = values
		default:
			values := make([]string, len(rows))
			for i, row := range rows {
				values[i] = c.Strings[row]
			}
			c.Strings = values
		}
		c.Null = null
	}
	d.trainRows = nil
	d.testRows = nil
	return nil
}

// FitRows returns the rows statistics should be fitted on: the train rows
// when a split exists, otherwise every row.
func (d *Dataset) FitRows() []int {
	if d.trainRows != nil {
		return d.trainRows
	}
	rows := make([]int, d.Rows())
	for i := range rows {
		rows[i] = i
	}
	return rows
}

// RecordSummary computes and stores the dataset's summary table so the run
// can export it alongside the transformed data.
func (d *Dataset) RecordSummary() {
	d.summary = d.Summarize()
}

// RecordedSummary returns the stored summary table, if any.
func (d *Dataset) RecordedSummary() []SummaryRow {
	return d.summary
}
