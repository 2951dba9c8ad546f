package executor

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/simmering/ladle/internal/book"
	"github.com/simmering/ladle/internal/ctxlog"
	"github.com/simmering/ladle/internal/dataset"
	"github.com/simmering/ladle/internal/idea"
	"github.com/simmering/ladle/internal/registry"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func numberParam(name string, def float64) *idea.ParameterDefinition {
	v := cty.NumberFloatVal(def)
	return &idea.ParameterDefinition{Name: name, Type: cty.Number, Default: &v}
}

func TestAssembleParametersLayering(t *testing.T) {
	required := cty.NumberIntVal(99)
	def := &idea.TechniqueDefinition{
		Step: "scale", Name: "minmax",
		Lifecycle: &idea.Lifecycle{OnApply: "scale_minmax"},
		Parameters: map[string]*idea.ParameterDefinition{
			"minimum": numberParam("minimum", 0),
			"maximum": numberParam("maximum", 1),
			"pinned":  {Name: "pinned", Type: cty.Number, Required: &required},
		},
	}

	overrides := map[string]cty.Value{
		"maximum": cty.StringVal("10"), // converts to number
		"pinned":  cty.NumberIntVal(5), // loses to the required value
	}

	values, err := assembleParameters(def, overrides, 4)
	require.NoError(t, err)
	require.True(t, values["minimum"].RawEquals(cty.NumberFloatVal(0)))
	require.True(t, values["maximum"].RawEquals(cty.NumberIntVal(10)))
	require.True(t, values["pinned"].RawEquals(cty.NumberIntVal(99)))
}

func TestAssembleParametersUnknownKey(t *testing.T) {
	def := &idea.TechniqueDefinition{
		Step: "fill", Name: "impute_mean",
		Lifecycle:  &idea.Lifecycle{OnApply: "fill_impute_mean"},
		Parameters: map[string]*idea.ParameterDefinition{},
	}
	_, err := assembleParameters(def, map[string]cty.Value{"bogus": cty.True}, 4)
	require.ErrorContains(t, err, `no parameter "bogus"`)
}

func TestAssembleParametersSeedInjection(t *testing.T) {
	def := &idea.TechniqueDefinition{
		Step: "sample", Name: "train_test",
		Lifecycle: &idea.Lifecycle{OnApply: "sample_train_test"},
		Parameters: map[string]*idea.ParameterDefinition{
			"seed": {Name: "seed", Type: cty.Number, Optional: true},
		},
	}
	values, err := assembleParameters(def, nil, 42)
	require.NoError(t, err)
	require.True(t, values["seed"].RawEquals(cty.NumberIntVal(42)))
}

func TestAssembleParametersRequiredUnset(t *testing.T) {
	def := &idea.TechniqueDefinition{
		Step: "encode", Name: "label",
		Lifecycle: &idea.Lifecycle{OnApply: "encode_label"},
		Parameters: map[string]*idea.ParameterDefinition{
			"columns": {Name: "columns", Type: cty.List(cty.String)},
		},
	}
	_, err := assembleParameters(def, nil, 4)
	require.ErrorContains(t, err, `parameter "columns" is required but unset`)
}

type scaleParams struct {
	Factor float64 `ladle:"factor"`
}

// testModel builds a one-step model with two candidate techniques so Draft
// would expand it into two chapters. Tests construct chapters by hand here.
func testModel(parallelize bool) *idea.Model {
	factorDefault := cty.NumberFloatVal(2)
	m := idea.New()
	m.General = &idea.General{Name: "test", Seed: 4, Parallelize: parallelize, MaxChapters: 64, TypeThreshold: 10}
	m.Steps["scale"] = &idea.Step{
		Name:       "scale",
		Techniques: []string{"double", "fail"},
		Overrides:  map[string]map[string]cty.Value{},
	}
	m.Techniques[idea.Key("scale", "double")] = &idea.TechniqueDefinition{
		Step: "scale", Name: "double",
		Lifecycle: &idea.Lifecycle{OnApply: "test_double"},
		Parameters: map[string]*idea.ParameterDefinition{
			"factor": {Name: "factor", Type: cty.Number, Default: &factorDefault},
		},
	}
	m.Techniques[idea.Key("scale", "fail")] = &idea.TechniqueDefinition{
		Step: "scale", Name: "fail",
		Lifecycle:  &idea.Lifecycle{OnApply: "test_fail"},
		Parameters: map[string]*idea.ParameterDefinition{},
	}
	return m
}

func testRegistry(t *testing.T, model *idea.Model) *registry.Registry {
	t.Helper()
	reg := registry.New()
	reg.RegisterTechnique("test_double", &registry.RegisteredTechnique{
		NewParams: func() any { return &scaleParams{} },
		Fn: func(ctx context.Context, d *dataset.Dataset, p *scaleParams) error {
			col, err := d.Column("x")
			if err != nil {
				return err
			}
			for i := range col.Floats {
				col.Floats[i] *= p.Factor
			}
			return nil
		},
	})
	reg.RegisterTechnique("test_fail", &registry.RegisteredTechnique{
		Fn: func(ctx context.Context, d *dataset.Dataset, p *struct{}) error {
			return errors.New("synthetic failure")
		},
	})
	reg.PopulateDefinitionsFromModel(model)
	return reg
}

func baseDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	d := dataset.New("test")
	col := &dataset.Column{
		Name: "x", Type: dataset.Float,
		Floats: []float64{1, 2, 3},
		Null:   make([]bool, 3),
	}
	require.NoError(t, d.AddColumn(col))
	return d
}

func testBook(t *testing.T, techniques ...string) *book.Book {
	t.Helper()
	b := book.New("test", 4)
	for _, tech := range techniques {
		b.Add([]book.Placed{{Step: "scale", Technique: tech}})
	}
	return b
}

func TestRunIsolatesChapterFailures(t *testing.T) {
	model := testModel(false)
	reg := testRegistry(t, model)
	exec := New(reg, model, 1)

	b := testBook(t, "double", "fail", "double")
	base := baseDataset(t)

	results, err := exec.Run(testContext(), b, base)
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.False(t, results[0].Failed())
	require.True(t, results[1].Failed())
	require.ErrorContains(t, results[1].Err, "synthetic failure")
	require.False(t, results[2].Failed())

	// The base dataset is untouched; each chapter mutates its own clone.
	baseCol, err := base.Column("x")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, baseCol.Floats)

	for _, idx := range []int{0, 2} {
		col, err := results[idx].Dataset.Column("x")
		require.NoError(t, err)
		require.Equal(t, []float64{2, 4, 6}, col.Floats)
	}
}

func TestRunAppliesOverrides(t *testing.T) {
	model := testModel(false)
	model.Steps["scale"].Overrides["double"] = map[string]cty.Value{
		"factor": cty.NumberFloatVal(10),
	}
	reg := testRegistry(t, model)
	exec := New(reg, model, 1)

	results, err := exec.Run(testContext(), testBook(t, "double"), baseDataset(t))
	require.NoError(t, err)
	require.False(t, results[0].Failed())

	col, err := results[0].Dataset.Column("x")
	require.NoError(t, err)
	require.Equal(t, []float64{10, 20, 30}, col.Floats)

	require.Len(t, results[0].Applied, 1)
	require.Equal(t, int64(10), results[0].Applied[0].Parameters["factor"])
}

func TestRunNoneTechniqueSkips(t *testing.T) {
	model := testModel(false)
	reg := testRegistry(t, model)
	exec := New(reg, model, 1)

	results, err := exec.Run(testContext(), testBook(t, idea.NoneTechnique), baseDataset(t))
	require.NoError(t, err)
	require.False(t, results[0].Failed())
	require.Len(t, results[0].Applied, 1)
	require.True(t, results[0].Applied[0].Skipped)

	col, err := results[0].Dataset.Column("x")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, col.Floats)
}

func TestRunParallelPool(t *testing.T) {
	model := testModel(true)

	var mu sync.Mutex
	seen := 0
	reg := registry.New()
	reg.RegisterTechnique("test_double", &registry.RegisteredTechnique{
		NewParams: func() any { return &scaleParams{} },
		Fn: func(ctx context.Context, d *dataset.Dataset, p *scaleParams) error {
			mu.Lock()
			seen++
			mu.Unlock()
			return nil
		},
	})
	reg.RegisterTechnique("test_fail", &registry.RegisteredTechnique{
		Fn: func(ctx context.Context, d *dataset.Dataset, p *struct{}) error {
			return errors.New("synthetic failure")
		},
	})
	reg.PopulateDefinitionsFromModel(model)

	exec := New(reg, model, 4)
	b := testBook(t, "double", "double", "double", "double", "double", "double")

	results, err := exec.Run(testContext(), b, baseDataset(t))
	require.NoError(t, err)
	require.Len(t, results, 6)
	for _, r := range results {
		require.False(t, r.Failed())
	}
	require.Equal(t, 6, seen)
}

func TestRunCancelledContext(t *testing.T) {
	model := testModel(false)
	reg := testRegistry(t, model)
	exec := New(reg, model, 1)

	ctx, cancel := context.WithCancel(testContext())
	cancel()

	results, err := exec.Run(ctx, testBook(t, "double"), baseDataset(t))
	require.Error(t, err)
	require.True(t, results[0].Failed())
}
