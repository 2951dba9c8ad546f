// Package categorize converts columns to the categorical type, either by
// cardinality or by binning continuous values.
package categorize

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/simmering/ladle/internal/dataset"
	"github.com/simmering/ladle/internal/registry"
)

// AutomaticParams controls cardinality-based categorization.
type AutomaticParams struct {
	Threshold int64 `ladle:"threshold"`
}

// BinParams controls equal-width binning of continuous columns.
type BinParams struct {
	Columns []string `ladle:"columns"`
	Splice  string   `ladle:"splice"`
	Bins    int64    `ladle:"bins"`
}

// Module registers the categorize handlers.
type Module struct{}

func (Module) Register(r *registry.Registry) {
	r.RegisterTechnique("categorize_automatic", &registry.RegisteredTechnique{
		NewParams:  func() any { return &AutomaticParams{} },
		ParamsType: registry.TypeOf(AutomaticParams{}),
		Fn:         Automatic,
	})
	r.RegisterTechnique("categorize_bins", &registry.RegisteredTechnique{
		NewParams:  func() any { return &BinParams{} },
		ParamsType: registry.TypeOf(BinParams{}),
		Fn:         Bins,
	})
}

// Automatic converts every string feature column with at most threshold
// distinct values to categorical.
func Automatic(ctx context.Context, d *dataset.Dataset, p *AutomaticParams) error {
	for _, col := range d.FeatureColumns() {
		if col.Type != dataset.String {
			continue
		}
		if int64(col.Distinct()) > p.Threshold {
			continue
		}
		if err := d.Coerce(col.Name, dataset.Categorical); err != nil {
			return err
		}
	}
	return nil
}

// Bins replaces each target float column with a categorical column of
// equal-width bin labels.
func Bins(ctx context.Context, d *dataset.Dataset, p *BinParams) error {
	if p.Bins < 2 {
		return errors.Newf("bins must be at least 2, got %d", p.Bins)
	}
	targets, err := d.ResolveColumns(p.Splice, p.Columns, floatFeatures(d))
	if err != nil {
		return err
	}
	for _, col := range targets {
		if col.Type != dataset.Float {
			return errors.Newf("column %q is %s; binning needs a float column", col.Name, col.Type)
		}
		binColumn(col, int(p.Bins))
	}
	return nil
}

func binColumn(col *dataset.Column, bins int) {
	values, _ := col.NonNullFloats()
	labels := make([]string, col.Len())
	if len(values) > 0 {
		lo, hi := values[0], values[0]
		for _, v := range values {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		width := (hi - lo) / float64(bins)
		for i := range labels {
			if col.Null[i] {
				continue
			}
			bin := 0
			if width > 0 {
				bin = int((col.Floats[i] - lo) / width)
				if bin >= bins {
					bin = bins - 1
				}
			}
			labels[i] = fmt.Sprintf("bin_%d", bin)
		}
	}
	col.Type = dataset.Categorical
	col.Strings = labels
	col.Floats = nil
}

func floatFeatures(d *dataset.Dataset) []*dataset.Column {
	var out []*dataset.Column
	for _, col := range d.FeatureColumns() {
		if col.Type == dataset.Float {
			out = append(out, col)
		}
	}
	return out
}
