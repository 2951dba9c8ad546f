package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeepRowsFiltersAndReorders(t *testing.T) {
	d := New("t")
	require.NoError(t, d.AddColumn(floatColumn("x", 1, 2, 3)))
	require.NoError(t, d.AddColumn(&Column{Name: "s", Type: String, Strings: []string{"a", "b", "c"}, Null: []bool{false, true, false}}))

	require.NoError(t, d.KeepRows([]int{2, 0}))
	require.Equal(t, 2, d.Rows())

	x, err := d.Column("x")
	require.NoError(t, err)
	require.Equal(t, []float64{3, 1}, x.Floats)

	s, err := d.Column("s")
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a"}, s.Strings)
	require.False(t, s.IsNull(0))
	require.False(t, s.IsNull(1))
}

func TestKeepRowsClearsSplit(t *testing.T) {
	d := New("t")
	require.NoError(t, d.AddColumn(floatColumn("x", 1, 2, 3)))
	d.SetSplit([]int{0, 1}, []int{2})

	require.NoError(t, d.KeepRows([]int{0, 1}))
	_, _, ok := d.Split()
	require.False(t, ok)
}

func TestKeepRowsRejectsOutOfRange(t *testing.T) {
	d := New("t")
	require.NoError(t, d.AddColumn(floatColumn("x", 1)))
	require.ErrorContains(t, d.KeepRows([]int{1}), "out of range")
}

func TestResolveColumnsPrecedence(t *testing.T) {
	d := New("t")
	require.NoError(t, d.AddColumn(floatColumn("a", 1)))
	require.NoError(t, d.AddColumn(floatColumn("b", 2)))
	require.NoError(t, d.SetSplice("pair", []string{"a", "b"}))

	// splice wins over an explicit list
	cols, err := d.ResolveColumns("pair", []string{"a"}, nil)
	require.NoError(t, err)
	require.Len(t, cols, 2)

	cols, err = d.ResolveColumns("", []string{"b"}, nil)
	require.NoError(t, err)
	require.Len(t, cols, 1)
	require.Equal(t, "b", cols[0].Name)

	fallback := d.NumericColumns()
	cols, err = d.ResolveColumns("", nil, fallback)
	require.NoError(t, err)
	require.Equal(t, fallback, cols)
}

func TestResolveColumnsUnknownName(t *testing.T) {
	d := New("t")
	_, err := d.ResolveColumns("", []string{"ghost"}, nil)
	require.ErrorIs(t, err, ErrColumnNotFound)
}

func TestFitRows(t *testing.T) {
	d := New("t")
	require.NoError(t, d.AddColumn(floatColumn("x", 1, 2, 3)))

	require.Equal(t, []int{0, 1, 2}, d.FitRows())

	d.SetSplit([]int{0, 2}, []int{1})
	require.Equal(t, []int{0, 2}, d.FitRows())
}

func TestRecordSummaryClonePropagates(t *testing.T) {
	d := New("t")
	require.NoError(t, d.AddColumn(floatColumn("x", 1, 2, 3)))

	d.RecordSummary()
	require.Len(t, d.RecordedSummary(), 1)

	dup := d.Clone()
	require.Len(t, dup.RecordedSummary(), 1)
}
