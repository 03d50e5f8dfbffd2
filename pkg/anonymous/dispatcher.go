package anonymous

import (
	"fmt"

	"github.com/google/uuid"

	"stubctl/pkg/capability"
)

// Invoker is the routing hook an interception engine calls for every call on
// a live value. Default targets implementing Invoker receive calls for
// unimplemented operations with the same operation handle.
type Invoker interface {
	Invoke(op *capability.Operation, args ...any) ([]any, error)
}

// Dispatcher routes calls to the implementation registered for the invoked
// operation, to the default target, or fails with ErrUnimplemented.
//
// A Dispatcher never changes after Build. It adds no locking: concurrent calls
// are safe when the implementations and the default target are.
type Dispatcher struct {
	id       string
	set      *capability.Set
	catalog  *capability.Catalog
	table    map[*capability.Operation]callable
	targets  map[*capability.Operation]callable
	fallback Invoker
}

var _ Invoker = (*Dispatcher)(nil)

func newDispatcher(set *capability.Set, cat *capability.Catalog, table map[*capability.Operation]callable) *Dispatcher {
	return &Dispatcher{
		id:      uuid.New().String(),
		set:     set,
		catalog: cat,
		table:   table,
	}
}

// ID returns a unique identifier for this dispatcher.
func (d *Dispatcher) ID() string { return d.id }

// Set returns the capability set the dispatcher serves.
func (d *Dispatcher) Set() *capability.Set { return d.set }

// Implemented reports whether op has a registered implementation.
func (d *Dispatcher) Implemented(op *capability.Operation) bool {
	_, ok := d.table[op]
	return ok
}

// Handles reports whether a call to op would be served by an implementation
// or the default target rather than fail with ErrUnimplemented.
func (d *Dispatcher) Handles(op *capability.Operation) bool {
	if !d.catalog.Contains(op) {
		return false
	}
	if _, ok := d.table[op]; ok {
		return true
	}
	if _, ok := d.targets[op]; ok {
		return true
	}
	return d.fallback != nil
}

// Invoke calls op with args. Out and Ref parameters take a *T argument that
// receives the written value. Results are returned exactly as the
// implementation or default target produced them.
func (d *Dispatcher) Invoke(op *capability.Operation, args ...any) ([]any, error) {
	if !d.catalog.Contains(op) {
		_, err := Resolve(d.catalog, op)
		return nil, err
	}
	if c, ok := d.table[op]; ok {
		return d.call(op, c, args)
	}
	if c, ok := d.targets[op]; ok {
		return d.call(op, c, args)
	}
	if d.fallback != nil {
		return d.fallback.Invoke(op, args...)
	}
	return nil, &BindingError{Kind: ErrUnimplemented, Operation: op}
}

func (d *Dispatcher) call(op *capability.Operation, c callable, args []any) ([]any, error) {
	results, err := c.call(args)
	if err != nil {
		return nil, &BindingError{Kind: ErrBadArguments, Operation: op, Detail: err.Error()}
	}
	if c.dynamic != nil && len(results) != len(c.sig.Results) {
		return nil, &BindingError{
			Kind:      ErrSignatureMismatch,
			Operation: op,
			Detail:    fmt.Sprintf("dynamic implementation returned %d results, want %d", len(results), len(c.sig.Results)),
		}
	}
	return results, nil
}

// MustInvoke is like Invoke but panics with the error. Proxy methods use it
// since their Go signatures leave no room for dispatcher errors.
func (d *Dispatcher) MustInvoke(op *capability.Operation, args ...any) []any {
	results, err := d.Invoke(op, args...)
	if err != nil {
		panic(err)
	}
	return results
}

// Call invokes the single operation named name. Overloaded names fail with
// ErrAmbiguousMatch; use Invoke with an operation handle for those.
func (d *Dispatcher) Call(name string, args ...any) ([]any, error) {
	op, err := MatchName(d.catalog, name)
	if err != nil {
		return nil, err
	}
	return d.Invoke(op, args...)
}

// Result returns results[i] as a T. A nil result yields the zero T, which
// keeps nil errors and nil interfaces working in proxy methods.
func Result[T any](results []any, i int) T {
	var zero T
	if i < 0 || i >= len(results) || results[i] == nil {
		return zero
	}
	return results[i].(T)
}
