package fill

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simmering/ladle/internal/dataset"
)

func floatCol(name string, values []float64, null []bool) *dataset.Column {
	if null == nil {
		null = make([]bool, len(values))
	}
	return &dataset.Column{Name: name, Type: dataset.Float, Floats: values, Null: null}
}

func stringCol(name string, values []string, null []bool) *dataset.Column {
	if null == nil {
		null = make([]bool, len(values))
	}
	return &dataset.Column{Name: name, Type: dataset.String, Strings: values, Null: null}
}

func TestImputeMean(t *testing.T) {
	d := dataset.New("t")
	require.NoError(t, d.AddColumn(floatCol("x", []float64{1, 0, 3}, []bool{false, true, false})))

	require.NoError(t, ImputeMean(context.Background(), d, &Params{}))

	col, err := d.Column("x")
	require.NoError(t, err)
	require.Equal(t, 0, col.NullCount())
	require.Equal(t, 2.0, col.Floats[1])
}

func TestImputeMedianIntegerRounds(t *testing.T) {
	d := dataset.New("t")
	require.NoError(t, d.AddColumn(&dataset.Column{
		Name: "n", Type: dataset.Integer,
		Ints: []int64{1, 0, 2, 10},
		Null: []bool{false, true, false, false},
	}))

	require.NoError(t, ImputeMedian(context.Background(), d, &Params{}))

	col, err := d.Column("n")
	require.NoError(t, err)
	require.Equal(t, 0, col.NullCount())
	require.Equal(t, int64(2), col.Ints[1])
}

func TestImputeMeanRejectsStringColumn(t *testing.T) {
	d := dataset.New("t")
	require.NoError(t, d.AddColumn(stringCol("s", []string{"a", "b"}, nil)))

	err := ImputeMean(context.Background(), d, &Params{Columns: []string{"s"}})
	require.ErrorContains(t, err, "needs a numeric column")
}

func TestImputeModeString(t *testing.T) {
	d := dataset.New("t")
	require.NoError(t, d.AddColumn(stringCol("s",
		[]string{"a", "b", "a", ""},
		[]bool{false, false, false, true})))

	require.NoError(t, ImputeMode(context.Background(), d, &Params{}))

	col, err := d.Column("s")
	require.NoError(t, err)
	require.Equal(t, 0, col.NullCount())
	require.Equal(t, "a", col.Strings[3])
}

func TestSmartFillZeroValues(t *testing.T) {
	d := dataset.New("t")
	require.NoError(t, d.AddColumn(floatCol("x", []float64{1, 0}, []bool{false, true})))
	require.NoError(t, d.AddColumn(stringCol("s", []string{"a", ""}, []bool{false, true})))

	require.NoError(t, SmartFill(context.Background(), d, &Params{}))

	x, err := d.Column("x")
	require.NoError(t, err)
	require.Equal(t, 0.0, x.Floats[1])
	require.Equal(t, 0, x.NullCount())

	s, err := d.Column("s")
	require.NoError(t, err)
	require.Equal(t, "", s.Strings[1])
	require.Equal(t, 0, s.NullCount())
}

func TestDropNA(t *testing.T) {
	d := dataset.New("t")
	require.NoError(t, d.AddColumn(floatCol("x", []float64{1, 0, 3}, []bool{false, true, false})))
	require.NoError(t, d.AddColumn(stringCol("s", []string{"a", "b", "c"}, nil)))

	require.NoError(t, DropNA(context.Background(), d, &Params{}))
	require.Equal(t, 2, d.Rows())

	s, err := d.Column("s")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "c"}, s.Strings)
}

func TestDropNARestrictedColumns(t *testing.T) {
	d := dataset.New("t")
	require.NoError(t, d.AddColumn(floatCol("x", []float64{1, 0}, []bool{false, true})))
	require.NoError(t, d.AddColumn(stringCol("s", []string{"", "b"}, []bool{true, false})))

	require.NoError(t, DropNA(context.Background(), d, &Params{Columns: []string{"s"}}))
	require.Equal(t, 1, d.Rows())

	x, err := d.Column("x")
	require.NoError(t, err)
	require.True(t, x.IsNull(0))
}
