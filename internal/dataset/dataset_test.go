package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func floatColumn(name string, values ...float64) *Column {
	return &Column{
		Name:   name,
		Type:   Float,
		Floats: values,
		Null:   make([]bool, len(values)),
	}
}

func stringColumn(name string, values ...string) *Column {
	return &Column{
		Name:    name,
		Type:    String,
		Strings: values,
		Null:    make([]bool, len(values)),
	}
}

func TestAddColumnRejectsDuplicatesAndLengthMismatch(t *testing.T) {
	d := New("test")
	require.NoError(t, d.AddColumn(floatColumn("a", 1, 2, 3)))

	err := d.AddColumn(floatColumn("a", 4, 5, 6))
	require.ErrorIs(t, err, ErrColumnExists)

	err = d.AddColumn(floatColumn("b", 1, 2))
	require.ErrorIs(t, err, ErrLengthMismatch)

	require.Equal(t, 3, d.Rows())
	require.Equal(t, 1, d.Width())
}

func TestDroppedColumnsNeverReturn(t *testing.T) {
	d := New("test")
	require.NoError(t, d.AddColumn(floatColumn("a", 1, 2)))
	require.NoError(t, d.AddColumn(floatColumn("b", 3, 4)))

	require.NoError(t, d.DropColumn("a", "low variance", "reduce.low_variance"))
	require.Equal(t, []string{"b"}, d.ColumnNames())

	// The audit trail records the removal.
	dropped := d.Dropped()
	require.Len(t, dropped, 1)
	require.Equal(t, "a", dropped[0].Column)
	require.Equal(t, "reduce.low_variance", dropped[0].Technique)

	// Re-adding under the dropped name is refused.
	err := d.AddColumn(floatColumn("a", 9, 9))
	require.ErrorIs(t, err, ErrColumnDropped)
}

func TestCloneIsolation(t *testing.T) {
	d := New("test")
	require.NoError(t, d.AddColumn(floatColumn("a", 1, 2)))
	require.NoError(t, d.SetSplice("all", []string{"a"}))
	d.SetSplit([]int{0}, []int{1})

	dup := d.Clone()
	dup.Columns()[0].Floats[0] = 99
	require.NoError(t, dup.DropColumn("a", "test", "test"))

	col, err := d.Column("a")
	require.NoError(t, err)
	require.Equal(t, 1.0, col.Floats[0])
	require.Equal(t, 1, d.Width())

	train, test, ok := dup.Split()
	require.True(t, ok)
	require.Equal(t, []int{0}, train)
	require.Equal(t, []int{1}, test)
}

func TestSpliceSkipsDroppedColumns(t *testing.T) {
	d := New("test")
	require.NoError(t, d.AddColumn(floatColumn("a", 1)))
	require.NoError(t, d.AddColumn(floatColumn("b", 2)))
	require.NoError(t, d.SetSplice("pair", []string{"a", "b"}))

	require.Error(t, d.SetSplice("bad", []string{"missing"}))

	require.NoError(t, d.DropColumn("a", "test", "test"))
	cols, err := d.Splice("pair")
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, cols)

	_, err = d.Splice("nope")
	require.ErrorIs(t, err, ErrSpliceNotFound)
}

func TestFeatureColumnsExcludeLabel(t *testing.T) {
	d := New("test")
	d.Label = "y"
	require.NoError(t, d.AddColumn(floatColumn("x", 1)))
	require.NoError(t, d.AddColumn(floatColumn("y", 0)))

	features := d.FeatureColumns()
	require.Len(t, features, 1)
	require.Equal(t, "x", features[0].Name)
}

func TestSummarizeSkipsNulls(t *testing.T) {
	d := New("test")
	col := floatColumn("a", 1, 2, 3, 100)
	col.Null[3] = true
	require.NoError(t, d.AddColumn(col))
	require.NoError(t, d.AddColumn(stringColumn("s", "x", "y", "z", "w")))

	rows := d.Summarize()
	require.Len(t, rows, 1) // string column excluded
	require.Equal(t, "a", rows[0].Column)
	require.Equal(t, 3, rows[0].Count)
	require.InDelta(t, 2.0, rows[0].Mean, 1e-9)
	require.InDelta(t, 3.0, rows[0].Max, 1e-9)
	require.InDelta(t, 6.0, rows[0].Sum, 1e-9)
}

func TestSummarizeAllNullColumn(t *testing.T) {
	d := New("test")
	col := floatColumn("empty", 0, 0, 0)
	col.Null[0], col.Null[1], col.Null[2] = true, true, true
	require.NoError(t, d.AddColumn(col))

	rows := d.Summarize()
	require.Len(t, rows, 1)
	require.Equal(t, 0, rows[0].Count)
	require.False(t, math.IsNaN(rows[0].Min))
	require.False(t, math.IsNaN(rows[0].Mean))
	require.False(t, math.IsNaN(rows[0].Std))
	require.Zero(t, rows[0].Sum)
}
