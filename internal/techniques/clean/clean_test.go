package clean

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simmering/ladle/internal/dataset"
)

func floatCol(name string, values []float64) *dataset.Column {
	return &dataset.Column{Name: name, Type: dataset.Float, Floats: values, Null: make([]bool, len(values))}
}

func TestDowncastIntegralFloats(t *testing.T) {
	d := dataset.New("t")
	require.NoError(t, d.AddColumn(floatCol("whole", []float64{1, 2, 3})))
	require.NoError(t, d.AddColumn(floatCol("frac", []float64{1.5, 2, 3})))

	require.NoError(t, Downcast(context.Background(), d, nil))

	whole, err := d.Column("whole")
	require.NoError(t, err)
	require.Equal(t, dataset.Integer, whole.Type)

	frac, err := d.Column("frac")
	require.NoError(t, err)
	require.Equal(t, dataset.Float, frac.Type)
}

func TestDropConstant(t *testing.T) {
	d := dataset.New("t")
	require.NoError(t, d.AddColumn(floatCol("varies", []float64{1, 2, 3})))
	require.NoError(t, d.AddColumn(floatCol("flat", []float64{7, 7, 7})))

	require.NoError(t, DropConstant(context.Background(), d, &SelectParams{}))

	require.Equal(t, []string{"varies"}, d.ColumnNames())
	require.Len(t, d.Dropped(), 1)
	require.Equal(t, "flat", d.Dropped()[0].Column)
}

func TestDropConstantKeepsLabel(t *testing.T) {
	d := dataset.New("t")
	d.Label = "flat"
	require.NoError(t, d.AddColumn(floatCol("varies", []float64{1, 2, 3})))
	require.NoError(t, d.AddColumn(floatCol("flat", []float64{7, 7, 7})))

	require.NoError(t, DropConstant(context.Background(), d, &SelectParams{}))
	require.Equal(t, []string{"varies", "flat"}, d.ColumnNames())
}

func TestClipOutliers(t *testing.T) {
	values := make([]float64, 101)
	for i := range values {
		values[i] = float64(i)
	}
	d := dataset.New("t")
	require.NoError(t, d.AddColumn(floatCol("x", values)))

	require.NoError(t, ClipOutliers(context.Background(), d, &ClipParams{Lower: 10, Upper: 90}))

	col, err := d.Column("x")
	require.NoError(t, err)
	require.Equal(t, 10.0, col.Floats[0])
	require.Equal(t, 90.0, col.Floats[100])
	require.Equal(t, 50.0, col.Floats[50])
}
