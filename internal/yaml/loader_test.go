package yaml

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
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProjectSettings(t *testing.T) {
	path := writeSettings(t, `
project:
  name: cancer
  seed: 7
data:
  source: cancer.csv
  label: diagnosis
workers:
  - name: wrangle
    steps: [fill, encode]
splices:
  dims: [radius, texture]
steps:
  fill:
    techniques: [impute_mean]
    parameters:
      impute_mean:
        columns: [radius, texture]
  encode:
    techniques: [one_hot]
`)

	model, err := NewLoader().Load(testContext(), path)
	require.NoError(t, err)

	require.Equal(t, "cancer", model.General.Name)
	require.Equal(t, int64(7), model.General.Seed)
	require.Equal(t, "diagnosis", model.Data.Label)
	require.Equal(t, []string{"fill", "encode"}, model.Workers[0].Steps)
	require.Equal(t, []string{"radius", "texture"}, model.Splices["dims"])

	columns := model.Steps["fill"].Overrides["impute_mean"]["columns"]
	require.True(t, columns.RawEquals(cty.ListVal([]cty.Value{
		cty.StringVal("radius"), cty.StringVal("texture"),
	})))
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeSettings(t, `
project:
  name: x
  colour: red
`)

	_, err := NewLoader().Load(testContext(), path)
	require.ErrorContains(t, err, "parsing")
}
