package toml

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
	path := filepath.Join(t.TempDir(), "project.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProjectSettings(t *testing.T) {
	path := writeSettings(t, `
[project]
name = "cancer"
seed = 7
parallelize = true

[data]
source = "cancer.csv"
label = "diagnosis"

[[worker]]
name = "wrangle"
steps = ["fill", "scale"]

[splice]
dims = ["radius", "perimeter"]

[step.fill]
techniques = ["impute_mean", "impute_median"]

[step.scale]
techniques = ["minmax"]

[step.scale.parameters.minmax]
maximum = 10
`)

	model, err := NewLoader().Load(testContext(), path)
	require.NoError(t, err)

	require.Equal(t, "cancer", model.General.Name)
	require.Equal(t, int64(7), model.General.Seed)
	require.True(t, model.General.Parallelize)
	require.Equal(t, "cancer.csv", model.Data.Source)
	require.Equal(t, "diagnosis", model.Data.Label)

	require.Len(t, model.Workers, 1)
	require.Equal(t, []string{"fill", "scale"}, model.Workers[0].Steps)

	require.Equal(t, []string{"radius", "perimeter"}, model.Splices["dims"])

	require.Equal(t, []string{"impute_mean", "impute_median"}, model.Steps["fill"].Techniques)
	override := model.Steps["scale"].Overrides["minmax"]["maximum"]
	require.True(t, override.RawEquals(cty.NumberIntVal(10)))
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeSettings(t, `
[project]
name = "x"
colour = "red"
`)

	_, err := NewLoader().Load(testContext(), path)
	require.ErrorContains(t, err, "unknown settings key")
}
