// Package clean supplies the column-hygiene techniques: type downcasting,
// constant-column removal and outlier clipping.
package clean

import (
	"context"

	"github.com/simmering/ladle/internal/dataset"
	"github.com/simmering/ladle/internal/registry"
	"github.com/simmering/ladle/internal/stats"
)

// SelectParams selects target columns for the hygiene techniques.
type SelectParams struct {
	Columns []string `ladle:"columns"`
	Splice  string   `ladle:"splice"`
}

// ClipParams bounds values to a percentile window.
type ClipParams struct {
	Columns []string `ladle:"columns"`
	Splice  string   `ladle:"splice"`
	Lower   float64  `ladle:"lower"`
	Upper   float64  `ladle:"upper"`
}

// Module registers the clean handlers.
type Module struct{}

func (Module) Register(r *registry.Registry) {
	r.RegisterTechnique("clean_downcast", &registry.RegisteredTechnique{
		Fn: Downcast,
	})
	r.RegisterTechnique("clean_drop_constant", &registry.RegisteredTechnique{
		NewParams:  func() any { return &SelectParams{} },
		ParamsType: registry.TypeOf(SelectParams{}),
		Fn:         DropConstant,
	})
	r.RegisterTechnique("clean_clip_outliers", &registry.RegisteredTechnique{
		NewParams:  func() any { return &ClipParams{} },
		ParamsType: registry.TypeOf(ClipParams{}),
		Fn:         ClipOutliers,
	})
}

// Downcast narrows float columns whose values are all integral to integer
// columns.
func Downcast(ctx context.Context, d *dataset.Dataset, _ *struct{}) error {
	return d.Downcast()
}

// DropConstant drops every target column with at most one distinct value.
func DropConstant(ctx context.Context, d *dataset.Dataset, p *SelectParams) error {
	targets, err := d.ResolveColumns(p.Splice, p.Columns, d.FeatureColumns())
	if err != nil {
		return err
	}
	var names []string
	for _, col := range targets {
		if col.Distinct() <= 1 {
			names = append(names, col.Name)
		}
	}
	for _, name := range names {
		if err := d.DropColumn(name, "constant column", "clean.drop_constant"); err != nil {
			return err
		}
	}
	return nil
}

// ClipOutliers clamps numeric values to the [lower, upper] percentile window
// of each target column.
func ClipOutliers(ctx context.Context, d *dataset.Dataset, p *ClipParams) error {
	targets, err := d.ResolveColumns(p.Splice, p.Columns, d.NumericFeatureColumns())
	if err != nil {
		return err
	}
	for _, col := range targets {
		if !col.Type.Numeric() {
			continue
		}
		values, _ := col.NonNullFloats()
		if len(values) == 0 {
			continue
		}
		lo := stats.Percentile(values, p.Lower)
		hi := stats.Percentile(values, p.Upper)
		for i := range col.Null {
			if col.Null[i] {
				continue
			}
			switch col.Type {
			case dataset.Float:
				if col.Floats[i] < lo {
					col.Floats[i] = lo
				} else if col.Floats[i] > hi {
					col.Floats[i] = hi
				}
			case dataset.Integer:
				if v := float64(col.Ints[i]); v < lo {
					col.Ints[i] = int64(lo)
				} else if v > hi {
					col.Ints[i] = int64(hi)
				}
			}
		}
	}
	return nil
}
