package anonymous

import (
	"errors"
	"fmt"
	"reflect"

	"stubctl/pkg/capability"
)

// DynamicFunc is a type-erased implementation. It receives the call
// arguments as passed to Dispatcher.Invoke, Out and Ref positions as *T, and
// returns one value per result of the operation.
type DynamicFunc func(args []any) []any

// callable is a func value behind the uniform calling convention used by the
// dispatcher: arguments in, results out, Out and Ref slots passed as *T.
type callable struct {
	fn       reflect.Value
	sig      capability.Signature
	raw      []reflect.Type
	variadic bool
	dynamic  DynamicFunc
}

func dynamicCallable(op *capability.Operation, fn DynamicFunc) callable {
	return callable{sig: op.Signature(), dynamic: fn}
}

func newCallable(fn any) (callable, error) {
	if fn == nil {
		return callable{}, errors.New("got <nil>")
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return callable{}, fmt.Errorf("got %T", fn)
	}
	if v.IsNil() {
		return callable{}, fmt.Errorf("got nil %s", v.Type())
	}
	return callableOf(v)
}

func callableOf(v reflect.Value) (callable, error) {
	t := v.Type()
	sig, err := capability.SignatureOf(t)
	if err != nil {
		return callable{}, err
	}
	raw := make([]reflect.Type, t.NumIn())
	for i := range raw {
		raw[i] = t.In(i)
	}
	return callable{fn: v, sig: sig, raw: raw, variadic: t.IsVariadic()}, nil
}

// call invokes the function. It only fails when args do not fit the
// signature; whatever the function returns, including errors, is passed back in the
// results and panics are not recovered.
func (c callable) call(args []any) ([]any, error) {
	if c.dynamic != nil {
		if err := c.check(args); err != nil {
			return nil, err
		}
		return c.dynamic(args), nil
	}

	in, err := c.prepare(args)
	if err != nil {
		return nil, err
	}

	var out []reflect.Value
	if c.variadic {
		out = c.fn.CallSlice(in)
	} else {
		out = c.fn.Call(in)
	}

	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results, nil
}

func (c callable) prepare(args []any) ([]reflect.Value, error) {
	if len(args) != len(c.sig.Params) {
		return nil, fmt.Errorf("want %d arguments, got %d", len(c.sig.Params), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, p := range c.sig.Params {
		raw := c.raw[i]
		arg := args[i]

		if p.Mode == capability.ModeIn {
			v, err := inValue(raw, arg)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			in[i] = v
			continue
		}

		ptr, err := slotPointer(p, arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = capability.BindSlot(raw, ptr)
	}
	return in, nil
}

// check validates args for a dynamic implementation the same way prepare
// does for a typed one, without converting them.
func (c callable) check(args []any) error {
	if len(args) != len(c.sig.Params) {
		return fmt.Errorf("want %d arguments, got %d", len(c.sig.Params), len(args))
	}
	for i, p := range c.sig.Params {
		var err error
		if p.Mode == capability.ModeIn {
			_, err = inValue(p.Type, args[i])
		} else {
			_, err = slotPointer(p, args[i])
		}
		if err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
	}
	return nil
}

// slotPointer returns arg, the *T passed for an Out or Ref parameter. A nil
// arg yields a nil *T.
func slotPointer(p capability.Param, arg any) (reflect.Value, error) {
	ptrType := reflect.PointerTo(p.Type)
	if arg == nil {
		return reflect.Zero(ptrType), nil
	}
	ptr := reflect.ValueOf(arg)
	if ptr.Type() != ptrType {
		return reflect.Value{}, fmt.Errorf("%s parameter needs %s, got %T", p.Mode, ptrType, arg)
	}
	return ptr, nil
}

func inValue(t reflect.Type, arg any) (reflect.Value, error) {
	if arg == nil {
		if !nilable(t) {
			return reflect.Value{}, fmt.Errorf("nil is not a valid %s", t)
		}
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%T is not assignable to %s", arg, t)
	}
	return v, nil
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	default:
		return false
	}
}
