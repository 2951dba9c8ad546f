// Package fill supplies the missing-value techniques: statistical
// imputation, type-based smart fill, and row dropping.
package fill

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"

	"github.com/simmering/ladle/internal/ctxlog"
	"github.com/simmering/ladle/internal/dataset"
	"github.com/simmering/ladle/internal/registry"
	"github.com/simmering/ladle/internal/stats"
)

// Params selects the columns a fill technique operates on. With neither
// field set the technique falls back to its natural column set.
type Params struct {
	Columns []string `ladle:"columns"`
	Splice  string   `ladle:"splice"`
}

// Module registers the fill handlers.
type Module struct{}

func (Module) Register(r *registry.Registry) {
	newParams := func() any { return &Params{} }
	paramsType := registry.TypeOf(Params{})

	r.RegisterTechnique("fill_impute_mean", &registry.RegisteredTechnique{
		NewParams: newParams, ParamsType: paramsType, Fn: ImputeMean,
	})
	r.RegisterTechnique("fill_impute_median", &registry.RegisteredTechnique{
		NewParams: newParams, ParamsType: paramsType, Fn: ImputeMedian,
	})
	r.RegisterTechnique("fill_impute_mode", &registry.RegisteredTechnique{
		NewParams: newParams, ParamsType: paramsType, Fn: ImputeMode,
	})
	r.RegisterTechnique("fill_smart", &registry.RegisteredTechnique{
		NewParams: newParams, ParamsType: paramsType, Fn: SmartFill,
	})
	r.RegisterTechnique("fill_drop_na", &registry.RegisteredTechnique{
		NewParams: newParams, ParamsType: paramsType, Fn: DropNA,
	})
}

// ImputeMean replaces missing numeric cells with the column mean.
func ImputeMean(ctx context.Context, d *dataset.Dataset, p *Params) error {
	return imputeNumeric(ctx, d, p, stats.Mean)
}

// ImputeMedian replaces missing numeric cells with the column median.
func ImputeMedian(ctx context.Context, d *dataset.Dataset, p *Params) error {
	return imputeNumeric(ctx, d, p, stats.Median)
}

func imputeNumeric(ctx context.Context, d *dataset.Dataset, p *Params, fit func([]float64) float64) error {
	targets, err := d.ResolveColumns(p.Splice, p.Columns, d.NumericFeatureColumns())
	if err != nil {
		return err
	}
	for _, col := range targets {
		if !col.Type.Numeric() {
			return errors.Newf("column %q is %s; statistical imputation needs a numeric column", col.Name, col.Type)
		}
		values, _ := col.NonNullFloats()
		if len(values) == 0 {
			ctxlog.Maybe(ctx).Warn("Column has no values to fit on; left untouched.", "column", col.Name)
			continue
		}
		fillNumeric(col, fit(values))
	}
	return nil
}

// ImputeMode replaces missing cells with the most frequent value. It works
// on numeric, string and categorical columns alike.
func ImputeMode(ctx context.Context, d *dataset.Dataset, p *Params) error {
	targets, err := d.ResolveColumns(p.Splice, p.Columns, d.FeatureColumns())
	if err != nil {
		return err
	}
	for _, col := range targets {
		switch col.Type {
		case dataset.Integer, dataset.Float:
			values, _ := col.NonNullFloats()
			if len(values) == 0 {
				continue
			}
			fillNumeric(col, stats.Mode(values))
		case dataset.String, dataset.Categorical:
			mode, ok := stringMode(col)
			if !ok {
				continue
			}
			for i := range col.Null {
				if col.Null[i] {
					col.Strings[i] = mode
					col.Null[i] = false
				}
			}
		case dataset.Boolean:
			trues := 0
			seen := 0
			for i := range col.Null {
				if col.Null[i] {
					continue
				}
				seen++
				if col.Bools[i] {
					trues++
				}
			}
			if seen == 0 {
				continue
			}
			majority := trues*2 > seen
			for i := range col.Null {
				if col.Null[i] {
					col.Bools[i] = majority
					col.Null[i] = false
				}
			}
		}
	}
	return nil
}

// SmartFill replaces missing cells with the zero value of the column's type:
// false, 0, 0.0 or the empty string.
func SmartFill(ctx context.Context, d *dataset.Dataset, p *Params) error {
	targets, err := d.ResolveColumns(p.Splice, p.Columns, d.FeatureColumns())
	if err != nil {
		return err
	}
	for _, col := range targets {
		for i := range col.Null {
			if !col.Null[i] {
				continue
			}
			switch col.Type {
			case dataset.Boolean:
				col.Bools[i] = false
			case dataset.Integer:
				col.Ints[i] = 0
			case dataset.Float:
				col.Floats[i] = 0
			default:
				col.Strings[i] = ""
			}
			col.Null[i] = false
		}
	}
	return nil
}

// DropNA removes every row with a missing cell in any target column.
func DropNA(ctx context.Context, d *dataset.Dataset, p *Params) error {
	targets, err := d.ResolveColumns(p.Splice, p.Columns, d.Columns())
	if err != nil {
		return err
	}
	var keep []int
	for row := 0; row < d.Rows(); row++ {
		complete := true
		for _, col := range targets {
			if col.Null[row] {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, row)
		}
	}
	return d.KeepRows(keep)
}

func fillNumeric(col *dataset.Column, v float64) {
	for i := range col.Null {
		if !col.Null[i] {
			continue
		}
		switch col.Type {
		case dataset.Integer:
			col.Ints[i] = int64(math.Round(v))
		case dataset.Float:
			col.Floats[i] = v
		}
		col.Null[i] = false
	}
}

func stringMode(col *dataset.Column) (string, bool) {
	counts := make(map[string]int)
	for i, s := range col.Strings {
		if !col.Null[i] {
			counts[s]++
		}
	}
	if len(counts) == 0 {
		return "", false
	}
	best, bestCount := "", -1
	for s, count := range counts {
		if count > bestCount || (count == bestCount && s < best) {
			best, bestCount = s, count
		}
	}
	return best, true
}
