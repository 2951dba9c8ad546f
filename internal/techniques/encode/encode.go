// Package encode turns categorical columns into numeric representations.
package encode

import (
	"context"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/simmering/ladle/internal/dataset"
	"github.com/simmering/ladle/internal/registry"
)

// Params selects the categorical columns to encode.
type Params struct {
	Columns []string `ladle:"columns"`
	Splice  string   `ladle:"splice"`
}

// Module registers the encode handlers.
type Module struct{}

func (Module) Register(r *registry.Registry) {
	newParams := func() any { return &Params{} }
	paramsType := registry.TypeOf(Params{})

	r.RegisterTechnique("encode_label", &registry.RegisteredTechnique{
		NewParams: newParams, ParamsType: paramsType, Fn: Label,
	})
	r.RegisterTechnique("encode_one_hot", &registry.RegisteredTechnique{
		NewParams: newParams, ParamsType: paramsType, Fn: OneHot,
	})
	r.RegisterTechnique("encode_frequency", &registry.RegisteredTechnique{
		NewParams: newParams, ParamsType: paramsType, Fn: Frequency,
	})
}

// Label replaces each target categorical column with integer codes, assigned
// in sorted category order so runs are reproducible.
func Label(ctx context.Context, d *dataset.Dataset, p *Params) error {
	targets, err := resolve(d, p)
	if err != nil {
		return err
	}
	for _, col := range targets {
		codes := make(map[string]int64, 8)
		for i, cat := range categories(col) {
			codes[cat] = int64(i)
		}
		ints := make([]int64, col.Len())
		for i, s := range col.Strings {
			if !col.Null[i] {
				ints[i] = codes[s]
			}
		}
		col.Type = dataset.Integer
		col.Ints = ints
		col.Strings = nil
	}
	return nil
}

// OneHot expands each target categorical column into one 0/1 indicator
// column per category and drops the original.
func OneHot(ctx context.Context, d *dataset.Dataset, p *Params) error {
	targets, err := resolve(d, p)
	if err != nil {
		return err
	}
	for _, col := range targets {
		for _, cat := range categories(col) {
			indicator := &dataset.Column{
				Name: col.Name + "_" + cat,
				Type: dataset.Integer,
				Ints: make([]int64, col.Len()),
				Null: append([]bool(nil), col.Null...),
			}
			for i, s := range col.Strings {
				if !col.Null[i] && s == cat {
					indicator.Ints[i] = 1
				}
			}
			if err := d.AddColumn(indicator); err != nil {
				return err
			}
		}
		if err := d.DropColumn(col.Name, "one-hot encoded", "encode.one_hot"); err != nil {
			return err
		}
	}
	return nil
}

// Frequency replaces each target categorical column with the relative
// frequency of its categories.
func Frequency(ctx context.Context, d *dataset.Dataset, p *Params) error {
	targets, err := resolve(d, p)
	if err != nil {
		return err
	}
	for _, col := range targets {
		counts := make(map[string]int)
		total := 0
		for i, s := range col.Strings {
			if !col.Null[i] {
				counts[s]++
				total++
			}
		}
		floats := make([]float64, col.Len())
		for i, s := range col.Strings {
			if !col.Null[i] && total > 0 {
				floats[i] = float64(counts[s]) / float64(total)
			}
		}
		col.Type = dataset.Float
		col.Floats = floats
		col.Strings = nil
	}
	return nil
}

func resolve(d *dataset.Dataset, p *Params) ([]*dataset.Column, error) {
	targets, err := d.ResolveColumns(p.Splice, p.Columns, d.ColumnsOfType(dataset.Categorical))
	if err != nil {
		return nil, err
	}
	out := targets[:0]
	for _, col := range targets {
		if col.Type != dataset.Categorical && col.Type != dataset.String {
			return nil, errors.Newf("column %q is %s; encoding needs a categorical column", col.Name, col.Type)
		}
		if col.Name == d.Label {
			continue
		}
		out = append(out, col)
	}
	return out, nil
}

func categories(col *dataset.Column) []string {
	seen := make(map[string]struct{})
	for i, s := range col.Strings {
		if !col.Null[i] {
			seen[s] = struct{}{}
		}
	}
	cats := make([]string, 0, len(seen))
	for s := range seen {
		cats = append(cats, s)
	}
	sort.Strings(cats)
	return cats
}
