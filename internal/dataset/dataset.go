package dataset

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors for programmatic checks by techniques and tests.
var (
	ErrColumnNotFound = errors.New("column not found")
	ErrColumnExists   = errors.New("column already exists")
	ErrColumnDropped  = errors.New("column was previously dropped")
	ErrLengthMismatch = errors.New("column length does not match dataset rows")
	ErrSpliceNotFound = errors.New("splice not found")
)

// DroppedColumn is one entry in the append-only audit trail of removals.
type DroppedColumn struct {
	Column    string
	Reason    string
	Technique string
}

// Dataset owns one tabular frame: ordered typed columns, a dropped-column
// audit trail, named column-subset groups ("splices"), and an optional
// train/test row split. All mutation goes through methods so the invariants
// hold: one type bucket per column, dropped names never return.
type Dataset struct {
	Name  string
	Label string

	columns []*Column
	index   map[string]int

	dropped    []DroppedColumn
	droppedSet map[string]struct{}

	splices map[string][]string

	trainRows []int
	testRows  []int

	summary []SummaryRow
}

// New creates an empty Dataset with the given name.
func New(name string) *Dataset {
	return &Dataset{
		Name:       name,
		index:      make(map[string]int),
		droppedSet: make(map[string]struct{}),
		splices:    make(map[string][]string),
	}
}

// Rows returns the number of rows, zero for an empty dataset.
func (d *Dataset) Rows() int {
	if len(d.columns) == 0 {
		return 0
	}
	return d.columns[0].Len()
}

// Width returns the number of columns.
func (d *Dataset) Width() int {
	return len(d.columns)
}

// ColumnNames returns the column names in their stored order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column.
func (d *Dataset) Column(name string) (*Column, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, errors.Wrapf(ErrColumnNotFound, "%q", name)
	}
	return d.columns[i], nil
}

// Columns returns all columns in order. The slice is shared; callers must
// not reorder it.
func (d *Dataset) Columns() []*Column {
	return d.columns
}

// ColumnsOfType returns all columns in the given bucket, in stored order.
func (d *Dataset) ColumnsOfType(t Type) []*Column {
	var out []*Column
	for _, c := range d.columns {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// NumericColumns returns the integer and float columns in stored order.
func (d *Dataset) NumericColumns() []*Column {
	var out []*Column
	for _, c := range d.columns {
		if c.Type.Numeric() {
			out = append(out, c)
		}
	}
	return out
}

// FeatureColumns returns all columns except the label column.
func (d *Dataset) FeatureColumns() []*Column {
	var out []*Column
	for _, c := range d.columns {
		if c.Name != d.Label {
			out = append(out, c)
		}
	}
	return out
}

// NumericFeatureColumns returns the numeric columns excluding the label.
// Most numeric techniques default to this set.
func (d *Dataset) NumericFeatureColumns() []*Column {
	var out []*Column
	for _, c := range d.columns {
		if c.Type.Numeric() && c.Name != d.Label {
			out = append(out, c)
		}
	}
	return out
}

// AddColumn appends a column. Adding a column whose name was previously
// dropped is refused: the audit trail is final.
func (d *Dataset) AddColumn(c *Column) error {
	if _, ok := d.droppedSet[c.Name]; ok {
		return errors.Wrapf(ErrColumnDropped, "%q", c.Name)
	}
	if _, ok := d.index[c.Name]; ok {
		return errors.Wrapf(ErrColumnExists, "%q", c.Name)
	}
	if len(d.columns) > 0 && c.Len() != d.Rows() {
		return errors.Wrapf(ErrLengthMismatch, "%q has %d rows, dataset has %d", c.Name, c.Len(), d.Rows())
	}
	d.index[c.Name] = len(d.columns)
	d.columns = append(d.columns, c)
	return nil
}

// DropColumn removes a column and records the removal. technique names the
// operation responsible; reason is free text for the report.
func (d *Dataset) DropColumn(name, reason, technique string) error {
	i, ok := d.index[name]
	if !ok {
		return errors.Wrapf(ErrColumnNotFound, "%q", name)
	}
	d.columns = append(d.columns[:i], d.columns[i+1:]...)
	delete(d.index, name)
	for j := i; j < len(d.columns); j++ {
		d.index[d.columns[j].Name] = j
	}
	d.dropped = append(d.dropped, DroppedColumn{Column: name, Reason: reason, Technique: technique})
	d.droppedSet[name] = struct{}{}
	return nil
}

// Dropped returns a copy of the audit trail.
func (d *Dataset) Dropped() []DroppedColumn {
	return append([]DroppedColumn(nil), d.dropped...)
}

// SetSplice stores a named group of column names. Unknown columns are
// rejected so splices always reference live columns at definition time.
func (d *Dataset) SetSplice(name string, columns []string) error {
	for _, col := range columns {
		if _, ok := d.index[col]; !ok {
			return errors.Wrapf(ErrColumnNotFound, "splice %q references %q", name, col)
		}
	}
	d.splices[name] = append([]string(nil), columns...)
	return nil
}

// Splice returns the column names in the named group, skipping any that have
// been dropped since the splice was defined.
func (d *Dataset) Splice(name string) ([]string, error) {
	cols, ok := d.splices[name]
	if !ok {
		return nil, errors.Wrapf(ErrSpliceNotFound, "%q", name)
	}
	var live []string
	for _, col := range cols {
		if _, ok := d.index[col]; ok {
			live = append(live, col)
		}
	}
	return live, nil
}

// SpliceNames returns the defined splice names.
func (d *Dataset) SpliceNames() []string {
	names := make([]string, 0, len(d.splices))
	for name := range d.splices {
		names = append(names, name)
	}
	return names
}

// SetSplit records the train/test row partition on the dataset.
func (d *Dataset) SetSplit(train, test []int) {
	d.trainRows = append([]int(nil), train...)
	d.testRows = append([]int(nil), test...)
}

// Split returns the train/test row indices and whether a split exists.
func (d *Dataset) Split() (train, test []int, ok bool) {
	if d.trainRows == nil && d.testRows == nil {
		return nil, nil, false
	}
	return d.trainRows, d.testRows, true
}

// Clone returns a deep copy. Chapters run against clones so one pipeline can
// never see another's mutations.
func (d *Dataset) Clone() *Dataset {
	dup := New(d.Name)
	dup.Label = d.Label
	for _, c := range d.columns {
		dup.index[c.Name] = len(dup.columns)
		dup.columns = append(dup.columns, c.clone())
	}
	dup.dropped = append([]DroppedColumn(nil), d.dropped...)
	for name := range d.droppedSet {
		dup.droppedSet[name] = struct{}{}
	}
	for name, cols := range d.splices {
		dup.splices[name] = append([]string(nil), cols...)
	}
	dup.trainRows = append([]int(nil), d.trainRows...)
	dup.testRows = append([]int(nil), d.testRows...)
	dup.summary = append([]SummaryRow(nil), d.summary...)
	return dup
}
