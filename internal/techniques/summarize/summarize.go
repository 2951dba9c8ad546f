// Package summarize records the descriptive-statistics table of a dataset so
// the run exports it next to the transformed data.
package summarize

import (
	"context"

	"github.com/simmering/ladle/internal/dataset"
	"github.com/simmering/ladle/internal/registry"
)

// Module registers the summarize handler.
type Module struct{}

func (Module) Register(r *registry.Registry) {
	r.RegisterTechnique("summarize_summary", &registry.RegisteredTechnique{
		Fn: Summary,
	})
}

// Summary computes count, min, quartiles, max, mean, std, mad, mode, sum and
// variance for every numeric column and stores the table on the dataset.
func Summary(ctx context.Context, d *dataset.Dataset, _ *struct{}) error {
	d.RecordSummary()
	return nil
}
