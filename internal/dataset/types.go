package dataset

import "fmt"

// Type classifies a column into exactly one bucket. The bucket decides which
// backing slice of the Column is authoritative.
type Type int

const (
	Boolean Type = iota
	Integer
	Float
	String
	Categorical
)

// String returns the settings-file spelling of the type.
func (t Type) String() string {
	switch t {
	case Boolean:
		return "boolean"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case Categorical:
		return "categorical"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType converts a settings-file spelling into a Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "boolean", "bool":
		return Boolean, nil
	case "integer", "int":
		return Integer, nil
	case "float", "number":
		return Float, nil
	case "string", "str":
		return String, nil
	case "categorical", "category":
		return Categorical, nil
	default:
		return 0, fmt.Errorf("unknown column type %q", s)
	}
}

// Numeric reports whether values of the type participate in numeric
// statistics.
func (t Type) Numeric() bool {
	return t == Integer || t == Float
}

// Column is one named, typed column of the dataset. Only the backing slice
// matching Type is populated; Null marks missing cells in any bucket.
type Column struct {
	Name    string
	Type    Type
	Floats  []float64
	Ints    []int64
	Strings []string
	Bools   []bool
	Null    []bool
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	return len(c.Null)
}

// IsNull reports whether the cell at row is missing.
func (c *Column) IsNull(row int) bool {
	return c.Null[row]
}

// NullCount returns the number of missing cells.
func (c *Column) NullCount() int {
	n := 0
	for _, missing := range c.Null {
		if missing {
			n++
		}
	}
	return n
}

// Value returns the cell at row as a native Go value, or nil when missing.
func (c *Column) Value(row int) any {
	if c.Null[row] {
		return nil
	}
	switch c.Type {
	case Boolean:
		return c.Bools[row]
	case Integer:
		return c.Ints[row]
	case Float:
		return c.Floats[row]
	default:
		return c.Strings[row]
	}
}

// FloatAt returns the cell at row widened to float64. It panics for
// non-numeric columns; callers gate on Type.Numeric first.
func (c *Column) FloatAt(row int) float64 {
	switch c.Type {
	case Integer:
		return float64(c.Ints[row])
	case Float:
		return c.Floats[row]
	default:
		panic(fmt.Sprintf("dataset: FloatAt on %s column %q", c.Type, c.Name))
	}
}

// NonNullFloats returns the non-missing values of a numeric column together
// with their row indices.
func (c *Column) NonNullFloats() ([]float64, []int) {
	values := make([]float64, 0, c.Len())
	rows := make([]int, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if c.Null[i] {
			continue
		}
		values = append(values, c.FloatAt(i))
		rows = append(rows, i)
	}
	return values, rows
}

// Distinct returns the number of distinct non-missing values in the column.
func (c *Column) Distinct() int {
	seen := make(map[any]struct{}, c.Len())
	for i := 0; i < c.Len(); i++ {
		if c.Null[i] {
			continue
		}
		seen[c.Value(i)] = struct{}{}
	}
	return len(seen)
}

// clone returns a deep copy of the column.
func (c *Column) clone() *Column {
	dup := &Column{Name: c.Name, Type: c.Type}
	dup.Floats = append([]float64(nil), c.Floats...)
	dup.Ints = append([]int64(nil), c.Ints...)
	dup.Strings = append([]string(nil), c.Strings...)
	dup.Bools = append([]bool(nil), c.Bools...)
	dup.Null = append([]bool(nil), c.Null...)
	return dup
}
