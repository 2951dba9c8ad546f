package registry

import (
	"context"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/simmering/ladle/internal/ctxlog"
)

// Validate performs a strict parity check between technique manifests and
// their Go handlers: every manifest must name a registered handler, and the
// handler's parameter struct must declare exactly the manifest's parameters
// with compatible types. A mismatch is a packaging bug, caught before any
// data is touched.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for key, def := range r.Definitions {
		handler, ok := r.Handlers[def.Lifecycle.OnApply]
		if !ok {
			errs = append(errs, errors.Newf("technique %q: handler %q is not registered", key, def.Lifecycle.OnApply).Error())
			continue
		}

		if handler.ParamsType == nil {
			if len(def.Parameters) > 0 {
				errs = append(errs, errors.Newf("technique %q: manifest declares parameters but handler has no parameter struct", key).Error())
			}
			continue
		}

		goParams := make(map[string]reflect.StructField)
		for i := 0; i < handler.ParamsType.NumField(); i++ {
			field := handler.ParamsType.Field(i)
			if !field.IsExported() {
				continue
			}
			tagName := strings.Split(field.Tag.Get("ladle"), ",")[0]
			if tagName != "" && tagName != "-" {
				goParams[tagName] = field
			}
		}

		for name := range goParams {
			if _, ok := def.Parameters[name]; !ok {
				errs = append(errs, errors.Newf("technique %q: Go struct has field for parameter %q which the manifest does not declare", key, name).Error())
			}
		}
		for name, paramDef := range def.Parameters {
			field, ok := goParams[name]
			if !ok {
				errs = append(errs, errors.Newf("technique %q: manifest declares parameter %q which has no Go struct field", key, name).Error())
				continue
			}

			if paramDef.Type.Equals(cty.DynamicPseudoType) {
				logger.Warn("Manifest parameter uses 'type = any', which disables static type checking.", "technique", key, "parameter", name)
				continue
			}

			fieldType, err := gocty.ImpliedType(reflect.Zero(field.Type).Interface())
			if err != nil {
				errs = append(errs, errors.Newf("technique %q, parameter %q: cannot imply cty type from Go field type %s", key, name, field.Type).Error())
				continue
			}
			if !paramDef.Type.Equals(fieldType) {
				errs = append(errs, errors.Newf("technique %q, parameter %q: manifest requires %s but Go field %s provides %s",
					key, name, paramDef.Type.FriendlyName(), field.Name, fieldType.FriendlyName()).Error())
			}
		}
	}

	if len(errs) > 0 {
		return errors.Newf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
