package executor

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/simmering/ladle/internal/idea"
)

// runtimeSeedParam is the parameter name through which the run seed is
// injected into techniques that declare it.
const runtimeSeedParam = "seed"

// assembleParameters layers a technique's final parameter values:
// manifest defaults, then user overrides from the step block, then required
// (mandatory) manifest overrides, then runtime-injected values. Override keys
// the manifest does not declare are an error rather than a silent drop.
func assembleParameters(def *idea.TechniqueDefinition, overrides map[string]cty.Value, seed int64) (map[string]cty.Value, error) {
	values := make(map[string]cty.Value, len(def.Parameters))

	for name, param := range def.Parameters {
		if param.Default != nil {
			values[name] = *param.Default
		}
	}

	for name, val := range overrides {
		param, ok := def.Parameters[name]
		if !ok {
			return nil, errors.Newf("technique %s.%s has no parameter %q", def.Step, def.Name, name)
		}
		if param.Type != cty.DynamicPseudoType {
			converted, err := convertOverride(val, param.Type)
			if err != nil {
				return nil, errors.Wrapf(err, "parameter %q", name)
			}
			val = converted
		}
		values[name] = val
	}

	for name, param := range def.Parameters {
		if param.Required != nil {
			values[name] = *param.Required
		}
	}

	if param, ok := def.Parameters[runtimeSeedParam]; ok {
		if _, set := values[runtimeSeedParam]; !set || param.Required == nil {
			values[runtimeSeedParam] = cty.NumberIntVal(seed)
		}
	}

	for name, param := range def.Parameters {
		if _, ok := values[name]; !ok && !param.Optional {
			return nil, errors.Newf("technique %s.%s: parameter %q is required but unset", def.Step, def.Name, name)
		}
	}

	return values, nil
}

func convertOverride(val cty.Value, want cty.Type) (cty.Value, error) {
	converted, err := convert.Convert(val, want)
	if err != nil {
		return cty.NilVal, errors.Wrapf(err, "cannot convert %s to %s", val.Type().FriendlyName(), want.FriendlyName())
	}
	return converted, nil
}

// loggableParameters converts the assembled cty values into plain Go values
// for the run report.
func loggableParameters(values map[string]cty.Value) map[string]any {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]any, len(values))
	for name, val := range values {
		converted, err := ctyToInterface(val)
		if err != nil {
			out[name] = val.GoString()
			continue
		}
		out[name] = converted
	}
	return out
}

// ctyToInterface converts a cty.Value to its native Go representation.
func ctyToInterface(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return int64(f), nil
		}
		return f, nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		var out []any
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			converted, err := ctyToInterface(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	default:
		return nil, errors.Newf("unsupported cty type %s", ty.FriendlyName())
	}
}
