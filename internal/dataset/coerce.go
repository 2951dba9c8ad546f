package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// IsMissingToken reports whether a raw cell spelling means "no value".
// Import and coercion share this list.
func IsMissingToken(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NA", "N/A", "NaN", "nan", "null", "NULL":
		return true
	}
	return false
}

func parseBoolCell(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes":
		return true, true
	case "false", "f", "no":
		return false, true
	}
	return false, false
}

// Coerce re-types the named column in place. Cells that cannot be represented
// in the target bucket become missing; the old bucket is released so the
// column stays in exactly one bucket.
func (d *Dataset) Coerce(name string, to Type) error {
	c, err := d.Column(name)
	if err != nil {
		return err
	}
	if c.Type == to {
		return nil
	}

	n := c.Len()
	null := append([]bool(nil), c.Null...)
	fresh := &Column{Name: c.Name, Type: to, Null: null}

	switch to {
	case Float:
		fresh.Floats = make([]float64, n)
		for i := 0; i < n; i++ {
			if null[i] {
				continue
			}
			switch c.Type {
			case Integer:
				fresh.Floats[i] = float64(c.Ints[i])
			case Boolean:
				if c.Bools[i] {
					fresh.Floats[i] = 1
				}
			default:
				v, err := strconv.ParseFloat(strings.TrimSpace(c.Strings[i]), 64)
				if err != nil {
					null[i] = true
					continue
				}
				fresh.Floats[i] = v
			}
		}
	case Integer:
		fresh.Ints = make([]int64, n)
		for i := 0; i < n; i++ {
			if null[i] {
				continue
			}
			switch c.Type {
			case Float:
				v := c.Floats[i]
				if v != math.Trunc(v) || math.IsNaN(v) || math.IsInf(v, 0) {
					return errors.Newf("coerce %q to integer: row %d holds non-integral %v", name, i, v)
				}
				fresh.Ints[i] = int64(v)
			case Boolean:
				if c.Bools[i] {
					fresh.Ints[i] = 1
				}
			default:
				v, err := strconv.ParseInt(strings.TrimSpace(c.Strings[i]), 10, 64)
				if err != nil {
					null[i] = true
					continue
				}
				fresh.Ints[i] = v
			}
		}
	case Boolean:
		fresh.Bools = make([]bool, n)
		for i := 0; i < n; i++ {
			if null[i] {
				continue
			}
			switch c.Type {
			case Integer:
				fresh.Bools[i] = c.Ints[i] != 0
			case Float:
				fresh.Bools[i] = c.Floats[i] != 0
			default:
				v, ok := parseBoolCell(c.Strings[i])
				if !ok {
					null[i] = true
					continue
				}
				fresh.Bools[i] = v
			}
		}
	case String, Categorical:
		fresh.Strings = make([]string, n)
		for i := 0; i < n; i++ {
			if null[i] {
				continue
			}
			switch c.Type {
			case Integer:
				fresh.Strings[i] = strconv.FormatInt(c.Ints[i], 10)
			case Float:
				fresh.Strings[i] = strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
			case Boolean:
				fresh.Strings[i] = strconv.FormatBool(c.Bools[i])
			default:
				fresh.Strings[i] = c.Strings[i]
			}
		}
	default:
		return errors.Newf("coerce %q: unsupported target type %s", name, to)
	}

	*c = *fresh
	return nil
}

// InferTypes re-classifies every string column by inspecting its cells:
// all-boolean becomes Boolean, all-integer Integer, all-numeric Float, and
// low-cardinality text (distinct values at or below threshold) Categorical.
// Typed columns are left alone.
func (d *Dataset) InferTypes(threshold int) error {
	for _, c := range d.columns {
		if c.Type != String {
			continue
		}
		allBool, allInt, allFloat := true, true, true
		seen := 0
		for i := 0; i < c.Len(); i++ {
			if c.Null[i] {
				continue
			}
			seen++
			cell := strings.TrimSpace(c.Strings[i])
			if _, ok := parseBoolCell(cell); !ok {
				allBool = false
			}
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				allInt = false
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				allFloat = false
			}
		}
		if seen == 0 {
			continue
		}
		var target Type
		switch {
		case allBool:
			target = Boolean
		case allInt:
			target = Integer
		case allFloat:
			target = Float
		case c.Distinct() <= threshold:
			target = Categorical
		default:
			continue
		}
		if err := d.Coerce(c.Name, target); err != nil {
			return err
		}
	}
	return nil
}

// Downcast narrows float columns whose non-missing values are all integral
// into the integer bucket.
func (d *Dataset) Downcast() error {
	for _, c := range d.columns {
		if c.Type != Float {
			continue
		}
		integral := true
		for i := 0; i < c.Len(); i++ {
			if c.Null[i] {
				continue
			}
			v := c.Floats[i]
			if v != math.Trunc(v) || math.IsInf(v, 0) {
				integral = false
				break
			}
		}
		if !integral {
			continue
		}
		if err := d.Coerce(c.Name, Integer); err != nil {
			return err
		}
	}
	return nil
}
