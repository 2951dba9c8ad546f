// Package scale supplies the numeric scaling techniques. Statistics are
// fitted on the training rows when a split exists and applied to every row,
// so test data never leaks into the fit.
package scale

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/simmering/ladle/internal/dataset"
	"github.com/simmering/ladle/internal/registry"
	"github.com/simmering/ladle/internal/stats"
)

// Params selects the columns to scale.
type Params struct {
	Columns []string `ladle:"columns"`
	Splice  string   `ladle:"splice"`
}

// MinMaxParams additionally carries the output range.
type MinMaxParams struct {
	Columns []string `ladle:"columns"`
	Splice  string   `ladle:"splice"`
	Minimum float64  `ladle:"minimum"`
	Maximum float64  `ladle:"maximum"`
}

// Module registers the scale handlers.
type Module struct{}

func (Module) Register(r *registry.Registry) {
	r.RegisterTechnique("scale_minmax", &registry.RegisteredTechnique{
		NewParams:  func() any { return &MinMaxParams{} },
		ParamsType: registry.TypeOf(MinMaxParams{}),
		Fn:         MinMax,
	})
	r.RegisterTechnique("scale_standard", &registry.RegisteredTechnique{
		NewParams:  func() any { return &Params{} },
		ParamsType: registry.TypeOf(Params{}),
		Fn:         Standard,
	})
	r.RegisterTechnique("scale_robust", &registry.RegisteredTechnique{
		NewParams:  func() any { return &Params{} },
		ParamsType: registry.TypeOf(Params{}),
		Fn:         Robust,
	})
}

// MinMax rescales each target column linearly into [minimum, maximum].
func MinMax(ctx context.Context, d *dataset.Dataset, p *MinMaxParams) error {
	return apply(d, p.Splice, p.Columns, func(fit []float64) func(float64) float64 {
		lo, hi := stats.Min(fit), stats.Max(fit)
		span := hi - lo
		return func(v float64) float64 {
			if span == 0 {
				return p.Minimum
			}
			return p.Minimum + (v-lo)*(p.Maximum-p.Minimum)/span
		}
	})
}

// Standard centers each target column on its mean and divides by its
// standard deviation.
func Standard(ctx context.Context, d *dataset.Dataset, p *Params) error {
	return apply(d, p.Splice, p.Columns, func(fit []float64) func(float64) float64 {
		mean, std := stats.Mean(fit), stats.Std(fit)
		return func(v float64) float64 {
			if std == 0 {
				return v - mean
			}
			return (v - mean) / std
		}
	})
}

// Robust centers each target column on its median and divides by its
// interquartile range, which keeps outliers from dominating the fit.
func Robust(ctx context.Context, d *dataset.Dataset, p *Params) error {
	return apply(d, p.Splice, p.Columns, func(fit []float64) func(float64) float64 {
		median := stats.Median(fit)
		iqr := stats.Percentile(fit, 75) - stats.Percentile(fit, 25)
		return func(v float64) float64 {
			if iqr == 0 {
				return v - median
			}
			return (v - median) / iqr
		}
	})
}

// apply fits a transform per target column and rewrites the column in
// place. Integer targets are coerced to float first because scaled values
// are fractional.
func apply(d *dataset.Dataset, splice string, columns []string, fitter func([]float64) func(float64) float64) error {
	targets, err := d.ResolveColumns(splice, columns, d.NumericFeatureColumns())
	if err != nil {
		return err
	}
	fitRows := d.FitRows()
	for _, col := range targets {
		if !col.Type.Numeric() {
			return errors.Newf("column %q is %s; scaling needs a numeric column", col.Name, col.Type)
		}
		if col.Type == dataset.Integer {
			if err := d.Coerce(col.Name, dataset.Float); err != nil {
				return err
			}
		}
		var fit []float64
		for _, row := range fitRows {
			if !col.Null[row] {
				fit = append(fit, col.Floats[row])
			}
		}
		if len(fit) == 0 {
			continue
		}
		transform := fitter(fit)
		for i := range col.Floats {
			if !col.Null[i] {
				col.Floats[i] = transform(col.Floats[i])
			}
		}
	}
	return nil
}
