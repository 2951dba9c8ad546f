package hcl

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/simmering/ladle/internal/ctxlog"
	"github.com/simmering/ladle/internal/idea"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func writeHCL(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProjectFile(t *testing.T) {
	dir := t.TempDir()
	writeHCL(t, dir, "project.hcl", `
project {
  name = "cancer"
  seed = 7
  parallelize = true
}

data {
  source = "cancer.csv"
  label  = "diagnosis"
}

worker "wrangle" {
  steps = ["fill", "scale"]
}

step "fill" {
  techniques = ["impute_mean", "none"]

  parameters "impute_mean" {
    columns = ["radius"]
  }
}
`)

	model, err := NewLoader().Load(testContext(), dir)
	require.NoError(t, err)

	require.Equal(t, "cancer", model.General.Name)
	require.Equal(t, int64(7), model.General.Seed)
	require.True(t, model.General.Parallelize)
	require.Equal(t, "cancer.csv", model.Data.Source)
	require.Equal(t, []string{"fill", "scale"}, model.Workers[0].Steps)
	require.Equal(t, []string{"impute_mean", "none"}, model.Steps["fill"].Techniques)

	columns := model.Steps["fill"].Overrides["impute_mean"]["columns"]
	require.True(t, columns.RawEquals(cty.TupleVal([]cty.Value{cty.StringVal("radius")})))
}

func TestLoadSpliceBlocks(t *testing.T) {
	dir := t.TempDir()
	writeHCL(t, dir, "project.hcl", `
splice "dims" {
  columns = ["radius", "perimeter"]
}

splice "scores" {
  columns = ["symmetry"]
}
`)

	model, err := NewLoader().Load(testContext(), dir)
	require.NoError(t, err)
	require.Equal(t, []string{"radius", "perimeter"}, model.Splices["dims"])
	require.Equal(t, []string{"symmetry"}, model.Splices["scores"])
}

func TestLoadTechniqueManifest(t *testing.T) {
	dir := t.TempDir()
	writeHCL(t, dir, "fill.hcl", `
technique "fill" "impute_mean" {
  description = "mean imputation"

  lifecycle {
    on_apply = "fill_impute_mean"
  }

  parameter "columns" {
    type    = list(string)
    default = []
  }

  parameter "splice" {
    type    = string
    default = ""
  }
}
`)

	model, err := NewLoader().Load(testContext(), dir)
	require.NoError(t, err)

	def, ok := model.Techniques[idea.Key("fill", "impute_mean")]
	require.True(t, ok)
	require.Equal(t, "fill_impute_mean", def.Lifecycle.OnApply)

	columns := def.Parameters["columns"]
	require.True(t, columns.Type.Equals(cty.List(cty.String)))
	require.True(t, columns.Optional)
	require.NotNil(t, columns.Default)

	splice := def.Parameters["splice"]
	require.True(t, splice.Type.Equals(cty.String))
	require.True(t, splice.Optional)
}

func TestLoadRejectsObjectParameterType(t *testing.T) {
	dir := t.TempDir()
	writeHCL(t, dir, "bad.hcl", `
technique "fill" "bad" {
  lifecycle {
    on_apply = "fill_bad"
  }

  parameter "nested" {
    type = map(string)
  }
}
`)

	_, err := NewLoader().Load(testContext(), dir)
	require.ErrorContains(t, err, "must be flat")
}

func TestLoadDuplicateStepAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeHCL(t, dir, "a.hcl", `
step "fill" {
  techniques = ["impute_mean"]
}
`)
	writeHCL(t, dir, "b.hcl", `
step "fill" {
  techniques = ["impute_median"]
}
`)

	_, err := NewLoader().Load(testContext(), dir)
	require.ErrorContains(t, err, `duplicate step block "fill"`)
}

func TestLoadRejectsNestedOverrideValues(t *testing.T) {
	dir := t.TempDir()
	writeHCL(t, dir, "project.hcl", `
step "fill" {
  techniques = ["impute_mean"]

  parameters "impute_mean" {
    nested = { a = 1 }
  }
}
`)

	_, err := NewLoader().Load(testContext(), dir)
	require.Error(t, err)
}
