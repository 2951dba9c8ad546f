package registry

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// DecodeParams populates target, a pointer to a parameter struct, from the
// assembled name→value mapping. Fields are matched by their `ladle` tag;
// values pass through cty's standard conversions so a settings number can
// fill an int or float field alike. Parameters missing from the mapping are
// left at their zero value.
func DecodeParams(values map[string]cty.Value, target any) error {
	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return errors.New("decode target must be a non-nil pointer")
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldVal := structVal.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		name := strings.Split(field.Tag.Get("ladle"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		val, ok := values[name]
		if !ok || val.IsNull() {
			continue
		}

		if err := decodeValue(val, fieldVal.Addr().Interface()); err != nil {
			return errors.Wrapf(err, "parameter %q", name)
		}
	}
	return nil
}

func decodeValue(val cty.Value, target any) error {
	impliedType, err := gocty.ImpliedType(reflect.ValueOf(target).Elem().Interface())
	if err != nil {
		return gocty.FromCtyValue(val, target)
	}
	converted, err := convert.Convert(val, impliedType)
	if err != nil {
		return errors.Wrapf(err, "cannot convert %s to %s", val.Type().FriendlyName(), impliedType.FriendlyName())
	}
	return gocty.FromCtyValue(converted, target)
}
