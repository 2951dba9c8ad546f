// Package reduce drops feature columns that carry little or redundant
// information.
package reduce

import (
	"context"
	"fmt"
	"math"

	"github.com/simmering/ladle/internal/dataset"
	"github.com/simmering/ladle/internal/registry"
	"github.com/simmering/ladle/internal/stats"
)

// Params carries the cutoff for both reduction techniques.
type Params struct {
	Threshold float64 `ladle:"threshold"`
}

// Module registers the reduce handlers.
type Module struct{}

func (Module) Register(r *registry.Registry) {
	r.RegisterTechnique("reduce_prune_correlated", &registry.RegisteredTechnique{
		NewParams:  func() any { return &Params{} },
		ParamsType: registry.TypeOf(Params{}),
		Fn:         PruneCorrelated,
	})
	r.RegisterTechnique("reduce_low_variance", &registry.RegisteredTechnique{
		NewParams:  func() any { return &Params{} },
		ParamsType: registry.TypeOf(Params{}),
		Fn:         LowVariance,
	})
}

// PruneCorrelated walks the upper triangle of the feature correlation matrix
// and drops the later column of every pair whose absolute Pearson
// correlation reaches the threshold.
func PruneCorrelated(ctx context.Context, d *dataset.Dataset, p *Params) error {
	targets := d.NumericFeatureColumns()
	pruned := make(map[string]string)
	for i := 0; i < len(targets); i++ {
		if _, gone := pruned[targets[i].Name]; gone {
			continue
		}
		for j := i + 1; j < len(targets); j++ {
			if _, gone := pruned[targets[j].Name]; gone {
				continue
			}
			x, y := pairedValues(targets[i], targets[j])
			if len(x) < 2 {
				continue
			}
			corr := stats.Correlation(x, y)
			if !math.IsNaN(corr) && math.Abs(corr) >= p.Threshold {
				pruned[targets[j].Name] = targets[i].Name
			}
		}
	}
	// Drop in column order so the audit trail is deterministic.
	for _, col := range targets {
		keeper, gone := pruned[col.Name]
		if !gone {
			continue
		}
		reason := fmt.Sprintf("correlated with %q above %g", keeper, p.Threshold)
		if err := d.DropColumn(col.Name, reason, "reduce.prune_correlated"); err != nil {
			return err
		}
	}
	return nil
}

// LowVariance drops numeric feature columns whose variance is at or below
// the threshold.
func LowVariance(ctx context.Context, d *dataset.Dataset, p *Params) error {
	var names []string
	for _, col := range d.NumericFeatureColumns() {
		values, _ := col.NonNullFloats()
		if len(values) < 2 {
			continue
		}
		if stats.Variance(values) <= p.Threshold {
			names = append(names, col.Name)
		}
	}
	for _, name := range names {
		reason := fmt.Sprintf("variance at or below %g", p.Threshold)
		if err := d.DropColumn(name, reason, "reduce.low_variance"); err != nil {
			return err
		}
	}
	return nil
}

// pairedValues collects the rows where both columns are non-missing.
func pairedValues(a, b *dataset.Column) ([]float64, []float64) {
	var x, y []float64
	for row := 0; row < a.Len(); row++ {
		if a.Null[row] || b.Null[row] {
			continue
		}
		x = append(x, a.FloatAt(row))
		y = append(y, b.FloatAt(row))
	}
	return x, y
}
