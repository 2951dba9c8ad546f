// Package sample supplies the row sampling techniques: train/test splitting
// and reproducible shuffling. Both take the run seed through the runtime
// seed parameter so every chapter of a run draws the same permutation.
package sample

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/simmering/ladle/internal/dataset"
	"github.com/simmering/ladle/internal/registry"
)

// SplitParams controls the train/test partition.
type SplitParams struct {
	TestRatio float64 `ladle:"test_ratio"`
	Seed      int64   `ladle:"seed"`
}

// ShuffleParams carries the seed for row shuffling.
type ShuffleParams struct {
	Seed int64 `ladle:"seed"`
}

// Module registers the sample handlers.
type Module struct{}

func (Module) Register(r *registry.Registry) {
	r.RegisterTechnique("sample_train_test", &registry.RegisteredTechnique{
		NewParams:  func() any { return &SplitParams{} },
		ParamsType: registry.TypeOf(SplitParams{}),
		Fn:         TrainTest,
	})
	r.RegisterTechnique("sample_shuffle", &registry.RegisteredTechnique{
		NewParams:  func() any { return &ShuffleParams{} },
		ParamsType: registry.TypeOf(ShuffleParams{}),
		Fn:         Shuffle,
	})
}

// TrainTest records a seeded random train/test row partition on the
// dataset. Rows are not moved; downstream techniques fit on the train rows.
func TrainTest(ctx context.Context, d *dataset.Dataset, p *SplitParams) error {
	if p.TestRatio <= 0 || p.TestRatio >= 1 {
		return errors.Newf("test_ratio must be in (0, 1), got %g", p.TestRatio)
	}
	n := d.Rows()
	if n < 2 {
		return errors.Newf("cannot split %d rows", n)
	}

	testN := int(math.Round(float64(n) * p.TestRatio))
	if testN < 1 {
		testN = 1
	}
	if testN > n-1 {
		testN = n - 1
	}

	perm := rand.New(rand.NewSource(p.Seed)).Perm(n)
	test := append([]int(nil), perm[:testN]...)
	train := append([]int(nil), perm[testN:]...)
	sort.Ints(test)
	sort.Ints(train)
	d.SetSplit(train, test)
	return nil
}

// Shuffle reorders the rows with a seeded permutation.
func Shuffle(ctx context.Context, d *dataset.Dataset, p *ShuffleParams) error {
	perm := rand.New(rand.NewSource(p.Seed)).Perm(d.Rows())
	return d.KeepRows(perm)
}
