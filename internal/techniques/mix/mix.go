// Package mix derives new feature columns from existing ones.
package mix

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/simmering/ladle/internal/dataset"
	"github.com/simmering/ladle/internal/registry"
)

// Params selects the float columns to combine.
type Params struct {
	Columns []string `ladle:"columns"`
	Splice  string   `ladle:"splice"`
}

// Module registers the mix handlers.
type Module struct{}

func (Module) Register(r *registry.Registry) {
	r.RegisterTechnique("mix_polynomial", &registry.RegisteredTechnique{
		NewParams:  func() any { return &Params{} },
		ParamsType: registry.TypeOf(Params{}),
		Fn:         Polynomial,
	})
}

// Polynomial adds a pairwise interaction column for every pair of target
// float columns. The new column a_x_b holds a*b, missing wherever either
// input is missing.
func Polynomial(ctx context.Context, d *dataset.Dataset, p *Params) error {
	targets, err := d.ResolveColumns(p.Splice, p.Columns, floatFeatures(d))
	if err != nil {
		return err
	}
	for _, col := range targets {
		if col.Type != dataset.Float {
			return errors.Newf("column %q is %s; interactions need float columns", col.Name, col.Type)
		}
	}
	for i := 0; i < len(targets); i++ {
		for j := i + 1; j < len(targets); j++ {
			a, b := targets[i], targets[j]
			product := &dataset.Column{
				Name:   a.Name + "_x_" + b.Name,
				Type:   dataset.Float,
				Floats: make([]float64, a.Len()),
				Null:   make([]bool, a.Len()),
			}
			for row := 0; row < a.Len(); row++ {
				if a.Null[row] || b.Null[row] {
					product.Null[row] = true
					continue
				}
				product.Floats[row] = a.Floats[row] * b.Floats[row]
			}
			if err := d.AddColumn(product); err != nil {
				return err
			}
		}
	}
	return nil
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
