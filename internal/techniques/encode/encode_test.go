package encode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simmering/ladle/internal/dataset"
)

func catCol(name string, values []string, null []bool) *dataset.Column {
	if null == nil {
		null = make([]bool, len(values))
	}
	return &dataset.Column{Name: name, Type: dataset.Categorical, Strings: values, Null: null}
}

func TestLabelSortedCodes(t *testing.T) {
	d := dataset.New("t")
	require.NoError(t, d.AddColumn(catCol("size", []string{"m", "s", "l", "m"}, nil)))

	require.NoError(t, Label(context.Background(), d, &Params{}))

	col, err := d.Column("size")
	require.NoError(t, err)
	require.Equal(t, dataset.Integer, col.Type)
	// codes in sorted category order: l=0, m=1, s=2
	require.Equal(t, []int64{1, 2, 0, 1}, col.Ints)
}

func TestLabelSkipsLabelColumn(t *testing.T) {
	d := dataset.New("t")
	d.Label = "target"
	require.NoError(t, d.AddColumn(catCol("target", []string{"yes", "no"}, nil)))

	require.NoError(t, Label(context.Background(), d, &Params{}))

	col, err := d.Column("target")
	require.NoError(t, err)
	require.Equal(t, dataset.Categorical, col.Type)
}

func TestOneHot(t *testing.T) {
	d := dataset.New("t")
	require.NoError(t, d.AddColumn(catCol("color", []string{"red", "blue", "red"}, nil)))

	require.NoError(t, OneHot(context.Background(), d, &Params{}))

	require.Equal(t, []string{"color_blue", "color_red"}, d.ColumnNames())

	blue, err := d.Column("color_blue")
	require.NoError(t, err)
	require.Equal(t, []int64{0, 1, 0}, blue.Ints)

	red, err := d.Column("color_red")
	require.NoError(t, err)
	require.Equal(t, []int64{1, 0, 1}, red.Ints)

	require.Len(t, d.Dropped(), 1)
	require.Equal(t, "color", d.Dropped()[0].Column)
}

func TestOneHotPropagatesNulls(t *testing.T) {
	d := dataset.New("t")
	require.NoError(t, d.AddColumn(catCol("color", []string{"red", ""}, []bool{false, true})))

	require.NoError(t, OneHot(context.Background(), d, &Params{}))

	red, err := d.Column("color_red")
	require.NoError(t, err)
	require.True(t, red.IsNull(1))
}

func TestFrequency(t *testing.T) {
	d := dataset.New("t")
	require.NoError(t, d.AddColumn(catCol("color", []string{"red", "blue", "red", "red"}, nil)))

	require.NoError(t, Frequency(context.Background(), d, &Params{}))

	col, err := d.Column("color")
	require.NoError(t, err)
	require.Equal(t, dataset.Float, col.Type)
	require.Equal(t, []float64{0.75, 0.25, 0.75, 0.75}, col.Floats)
}

func TestEncodeRejectsNumericColumn(t *testing.T) {
	d := dataset.New("t")
	require.NoError(t, d.AddColumn(&dataset.Column{
		Name: "x", Type: dataset.Float,
		Floats: []float64{1, 2},
		Null:   make([]bool, 2),
	}))

	err := Label(context.Background(), d, &Params{Columns: []string{"x"}})
	require.ErrorContains(t, err, "needs a categorical column")
}
