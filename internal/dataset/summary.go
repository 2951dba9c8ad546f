package dataset

import "github.com/simmering/ladle/internal/stats"

// SummaryRow holds the descriptive statistics for one numeric column. All
// statistics skip missing cells; Count is the number of non-missing cells.
type SummaryRow struct {
	Column   string
	Count    int
	Min      float64
	Q1       float64
	Median   float64
	Q3       float64
	Max      float64
	Mean     float64
	Std      float64
	MAD      float64
	Mode     float64
	Sum      float64
	Variance float64
}

// Summarize computes descriptive statistics for every numeric column, in
// stored column order.
func (d *Dataset) Summarize() []SummaryRow {
	var out []SummaryRow
	for _, c := range d.NumericColumns() {
		values, _ := c.NonNullFloats()
		row := SummaryRow{Column: c.Name, Count: len(values)}
		// A column with no values keeps zero statistics rather than NaN.
		if len(values) > 0 {
			row.Min = stats.Min(values)
			row.Q1 = stats.Percentile(values, 25)
			row.Median = stats.Median(values)
			row.Q3 = stats.Percentile(values, 75)
			row.Max = stats.Max(values)
			row.Mean = stats.Mean(values)
			row.Std = stats.Std(values)
			row.MAD = stats.MAD(values)
			row.Mode = stats.Mode(values)
			row.Sum = stats.Sum(values)
			row.Variance = stats.Variance(values)
		}
		out = append(out, row)
	}
	return out
}
