package filer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/simmering/ladle/internal/dataset"
)

// ImportCSV reads a headed CSV file into a Dataset. Every column starts in
// the string bucket with missing tokens masked; callers run InferTypes to
// classify them.
func ImportCSV(path string) (*dataset.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening csv")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if len(records) == 0 {
		return nil, errors.Newf("%s is empty: a header row is required", path)
	}

	header := records[0]
	rows := records[1:]

	name := filepath.Base(path)
	d := dataset.New(name[:len(name)-len(filepath.Ext(name))])
	for colIdx, colName := range header {
		col := &dataset.Column{
			Name:    colName,
			Type:    dataset.String,
			Strings: make([]string, len(rows)),
			Null:    make([]bool, len(rows)),
		}
		for rowIdx, record := range rows {
			if colIdx >= len(record) || dataset.IsMissingToken(record[colIdx]) {
				col.Null[rowIdx] = true
				continue
			}
			col.Strings[rowIdx] = record[colIdx]
		}
		if err := d.AddColumn(col); err != nil {
			return nil, errors.Wrapf(err, "importing %s", path)
		}
	}
	return d, nil
}

// ExportCSV writes the dataset to path with a header row. Missing cells are
// written empty.
func ExportCSV(d *dataset.Dataset, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating csv")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(d.ColumnNames()); err != nil {
		return errors.Wrap(err, "writing header")
	}

	columns := d.Columns()
	record := make([]string, len(columns))
	for row := 0; row < d.Rows(); row++ {
		for i, col := range columns {
			record[i] = formatCell(col, row)
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "writing row %d", row)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "flushing csv")
}

// WriteSummary exports a summary table as CSV.
func WriteSummary(rows []dataset.SummaryRow, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating summary csv")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{
		"column", "count", "min", "q1", "median", "q3", "max",
		"mean", "std", "mad", "mode", "sum", "variance",
	}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "writing summary header")
	}
	for _, row := range rows {
		record := []string{row.Column, strconv.Itoa(row.Count)}
		if row.Count == 0 {
			// No values to describe; leave the statistic cells empty.
			record = append(record, make([]string, len(header)-2)...)
		} else {
			record = append(record,
				formatFloat(row.Min),
				formatFloat(row.Q1),
				formatFloat(row.Median),
				formatFloat(row.Q3),
				formatFloat(row.Max),
				formatFloat(row.Mean),
				formatFloat(row.Std),
				formatFloat(row.MAD),
				formatFloat(row.Mode),
				formatFloat(row.Sum),
				formatFloat(row.Variance),
			)
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "writing summary row for %q", row.Column)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "flushing summary csv")
}

func formatCell(col *dataset.Column, row int) string {
	v := col.Value(row)
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
