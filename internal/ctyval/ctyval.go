// Package ctyval converts loosely typed Go values, as produced by the TOML
// and YAML decoders, into cty values so every settings front end feeds the
// same model.
package ctyval

import (
	"github.com/cockroachdb/errors"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// FromGo converts a decoded settings value into a cty.Value. Scalars map to
// the matching primitive; homogeneous slices map to lists. Maps are rejected
// because technique parameters are flat by contract.
func FromGo(v any) (cty.Value, error) {
	switch val := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case bool:
		return cty.BoolVal(val), nil
	case string:
		return cty.StringVal(val), nil
	case int:
		return cty.NumberIntVal(int64(val)), nil
	case int64:
		return cty.NumberIntVal(val), nil
	case float64:
		return cty.NumberFloatVal(val), nil
	case []any:
		if len(val) == 0 {
			return cty.ListValEmpty(cty.DynamicPseudoType), nil
		}
		elems := make([]cty.Value, len(val))
		for i, item := range val {
			elem, err := FromGo(item)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = elem
		}
		first := elems[0].Type()
		for _, elem := range elems[1:] {
			if !elem.Type().Equals(first) {
				return cty.NilVal, errors.New("list values must be homogeneous")
			}
		}
		return cty.ListVal(elems), nil
	case []string:
		elems := make([]cty.Value, len(val))
		for i, s := range val {
			elems[i] = cty.StringVal(s)
		}
		if len(elems) == 0 {
			return cty.ListValEmpty(cty.String), nil
		}
		return cty.ListVal(elems), nil
	case map[string]any, map[any]any:
		return cty.NilVal, errors.New("nested values are not allowed; parameters are flat")
	default:
		ty, err := gocty.ImpliedType(v)
		if err != nil {
			return cty.NilVal, errors.Wrapf(err, "unsupported settings value of type %T", v)
		}
		return gocty.ToCtyValue(v, ty)
	}
}
