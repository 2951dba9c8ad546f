package registry

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/cockroachdb/errors"

	"github.com/simmering/ladle/internal/dataset"
)

// RegisteredTechnique holds the compiled Go parts of one technique: a
// constructor for its parameter struct and the apply function itself. Fn
// must have the shape func(context.Context, *dataset.Dataset, *P) error,
// where *P matches NewParams; a technique with no parameters uses a nil
// NewParams and any third argument type.
type RegisteredTechnique struct {
	NewParams  func() any
	ParamsType reflect.Type
	Fn         any
}

// TypeOf returns the reflect type of a parameter struct for manifest parity
// checks. Pass the struct value, not a pointer.
func TypeOf(params any) reflect.Type {
	return reflect.TypeOf(params)
}

// RegisterTechnique registers a Go handler under the given name. Duplicate
// names and malformed handler signatures are programmer errors and panic.
func (r *Registry) RegisterTechnique(name string, handler *RegisteredTechnique) {
	if _, exists := r.Handlers[name]; exists {
		panic(fmt.Sprintf("technique handler %q already registered", name))
	}
	if err := checkSignature(handler.Fn); err != nil {
		panic(fmt.Sprintf("technique handler %q: %v", name, err))
	}
	slog.Debug("Registering technique handler.", "name", name)
	r.Handlers[name] = handler
}

// Apply invokes the named handler against the dataset with a populated
// parameter struct (which may be nil for parameterless techniques).
func (r *Registry) Apply(ctx context.Context, name string, d *dataset.Dataset, params any) error {
	handler, ok := r.Handlers[name]
	if !ok {
		return errors.Newf("technique handler %q not registered", name)
	}

	fn := reflect.ValueOf(handler.Fn)
	args := []reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(d)}
	if params == nil {
		args = append(args, reflect.Zero(fn.Type().In(2)))
	} else {
		args = append(args, reflect.ValueOf(params))
	}

	result := fn.Call(args)[0].Interface()
	if result == nil {
		return nil
	}
	return result.(error)
}

var (
	ctxType     = reflect.TypeOf((*context.Context)(nil)).Elem()
	datasetType = reflect.TypeOf((*dataset.Dataset)(nil))
	errType     = reflect.TypeOf((*error)(nil)).Elem()
)

func checkSignature(fn any) error {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return errors.New("handler is not a function")
	}
	if t.NumIn() != 3 || t.NumOut() != 1 {
		return errors.New("handler must be func(ctx, *dataset.Dataset, *Params) error")
	}
	if !t.In(0).Implements(ctxType) && t.In(0) != ctxType {
		return errors.New("first argument must be context.Context")
	}
	if t.In(1) != datasetType {
		return errors.New("second argument must be *dataset.Dataset")
	}
	if t.Out(0) != errType {
		return errors.New("return value must be error")
	}
	return nil
}
