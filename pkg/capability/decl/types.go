package decl

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"sync"
	"time"
)

// maxChanElemSize bounds channel element sizes; the runtime rejects larger ones.
const maxChanElemSize = 1 << 16

var predeclared = map[string]reflect.Type{
	"bool":       reflect.TypeFor[bool](),
	"string":     reflect.TypeFor[string](),
	"int":        reflect.TypeFor[int](),
	"int8":       reflect.TypeFor[int8](),
	"int16":      reflect.TypeFor[int16](),
	"int32":      reflect.TypeFor[int32](),
	"int64":      reflect.TypeFor[int64](),
	"uint":       reflect.TypeFor[uint](),
	"uint8":      reflect.TypeFor[uint8](),
	"uint16":     reflect.TypeFor[uint16](),
	"uint32":     reflect.TypeFor[uint32](),
	"uint64":     reflect.TypeFor[uint64](),
	"uintptr":    reflect.TypeFor[uintptr](),
	"byte":       reflect.TypeFor[byte](),
	"rune":       reflect.TypeFor[rune](),
	"float32":    reflect.TypeFor[float32](),
	"float64":    reflect.TypeFor[float64](),
	"complex64":  reflect.TypeFor[complex64](),
	"complex128": reflect.TypeFor[complex128](),
	"any":        reflect.TypeFor[any](),
	"error":      reflect.TypeFor[error](),
}

// TypeRegistry resolves the type expressions used in declaration files.
// Predeclared types are always known; named types must be registered. A new
// registry knows context.Context, time.Duration and time.Time.
type TypeRegistry struct {
	mu    sync.RWMutex
	named map[string]reflect.Type
}

// NewTypeRegistry creates a registry with the default named types.
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{named: make(map[string]reflect.Type)}
	r.RegisterType("context.Context", reflect.TypeFor[context.Context]())
	r.RegisterType("time.Duration", reflect.TypeFor[time.Duration]())
	r.RegisterType("time.Time", reflect.TypeFor[time.Time]())
	return r
}

// RegisterType makes t available under name, which may be qualified
// ("pkg.Name"). Registering a predeclared name is rejected.
func (r *TypeRegistry) RegisterType(name string, t reflect.Type) error {
	if _, ok := predeclared[name]; ok {
		return fmt.Errorf("cannot register predeclared type %q", name)
	}
	if t == nil {
		return fmt.Errorf("cannot register nil type as %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.named[name] = t
	return nil
}

// Register is RegisterType for T.
func Register[T any](r *TypeRegistry, name string) error {
	return r.RegisterType(name, reflect.TypeFor[T]())
}

// Parse resolves a Go type expression such as "map[string][]int" or
// "func(context.Context, ...string) error".
func (r *TypeRegistry) Parse(expr string) (reflect.Type, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, fmt.Errorf("type %q: %w", expr, err)
	}
	t, err := r.resolve(node)
	if err != nil {
		return nil, fmt.Errorf("type %q: %w", expr, err)
	}
	return t, nil
}

func (r *TypeRegistry) lookup(name string) (reflect.Type, error) {
	if t, ok := predeclared[name]; ok {
		return t, nil
	}
	r.mu.RLock()
	t, ok := r.named[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownType)
	}
	return t, nil
}

func (r *TypeRegistry) resolve(node ast.Expr) (reflect.Type, error) {
	switch n := node.(type) {
	case *ast.Ident:
		return r.lookup(n.Name)

	case *ast.SelectorExpr:
		pkg, ok := n.X.(*ast.Ident)
		if !ok {
			return nil, fmt.Errorf("unsupported qualified type")
		}
		return r.lookup(pkg.Name + "." + n.Sel.Name)

	case *ast.ParenExpr:
		return r.resolve(n.X)

	case *ast.StarExpr:
		elem, err := r.resolve(n.X)
		if err != nil {
			return nil, err
		}
		return reflect.PointerTo(elem), nil

	case *ast.ArrayType:
		elem, err := r.resolve(n.Elt)
		if err != nil {
			return nil, err
		}
		if n.Len == nil {
			return reflect.SliceOf(elem), nil
		}
		lit, ok := n.Len.(*ast.BasicLit)
		if !ok || lit.Kind != token.INT {
			return nil, fmt.Errorf("array length must be an integer literal")
		}
		length, err := strconv.Atoi(lit.Value)
		if err != nil {
			return nil, fmt.Errorf("array length %s: %w", lit.Value, err)
		}
		if size := elem.Size(); size > 0 && uintptr(length) > ^uintptr(0)/size {
			return nil, fmt.Errorf("array [%d]%s: %w", length, elem, ErrTypeTooLarge)
		}
		return reflect.ArrayOf(length, elem), nil

	case *ast.MapType:
		key, err := r.resolve(n.Key)
		if err != nil {
			return nil, err
		}
		if !key.Comparable() {
			return nil, fmt.Errorf("invalid map key type %s", key)
		}
		value, err := r.resolve(n.Value)
		if err != nil {
			return nil, err
		}
		return reflect.MapOf(key, value), nil

	case *ast.ChanType:
		elem, err := r.resolve(n.Value)
		if err != nil {
			return nil, err
		}
		dir := reflect.BothDir
		switch n.Dir {
		case ast.SEND:
			dir = reflect.SendDir
		case ast.RECV:
			dir = reflect.RecvDir
		}
		if elem.Size() >= maxChanElemSize {
			return nil, fmt.Errorf("chan element %s: %w", elem, ErrTypeTooLarge)
		}
		return reflect.ChanOf(dir, elem), nil

	case *ast.InterfaceType:
		if n.Methods != nil && len(n.Methods.List) > 0 {
			return nil, fmt.Errorf("interface literals with methods are not supported; register a named type")
		}
		return predeclared["any"], nil

	case *ast.FuncType:
		return r.resolveFunc(n)

	default:
		return nil, fmt.Errorf("unsupported type expression %T", node)
	}
}

func (r *TypeRegistry) resolveFunc(n *ast.FuncType) (reflect.Type, error) {
	var in, out []reflect.Type
	variadic := false

	if n.Params != nil {
		for i, field := range n.Params.List {
			expr := field.Type
			if ell, ok := expr.(*ast.Ellipsis); ok {
				if i != len(n.Params.List)-1 {
					return nil, fmt.Errorf("only the final parameter can be variadic")
				}
				variadic = true
				expr = ell.Elt
			}
			t, err := r.resolve(expr)
			if err != nil {
				return nil, err
			}
			if variadic {
				t = reflect.SliceOf(t)
			}
			for range max(1, len(field.Names)) {
				in = append(in, t)
			}
		}
	}
	if n.Results != nil {
		for _, field := range n.Results.List {
			t, err := r.resolve(field.Type)
			if err != nil {
				return nil, err
			}
			for range max(1, len(field.Names)) {
				out = append(out, t)
			}
		}
	}
	return reflect.FuncOf(in, out, variadic), nil
}
