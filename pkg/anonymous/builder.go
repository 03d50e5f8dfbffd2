package anonymous

import (
	"fmt"
	"reflect"

	"stubctl/pkg/capability"
	"stubctl/pkg/logging"
)

// Option configures a Builder.
type Option func(*Builder)

// WithDefault sets the default target. Operations without an implementation
// are forwarded to it. A nil target, including a typed nil pointer, means no
// default target.
func WithDefault(target any) Option {
	return func(b *Builder) {
		if isNil(target) {
			b.target = nil
			return
		}
		b.target = target
	}
}

// WithEngine sets the engine Create uses to materialize the live value.
// Without it, Create uses SharedEngine.
func WithEngine(e Engine) Option {
	return func(b *Builder) {
		b.engine = e
	}
}

// Builder records implementations for the operations of one capability set.
//
// A Builder is meant to be configured from a single goroutine; concurrent
// registration is not synchronized. It stays usable after Build and Create:
// later registrations only affect later builds, and every build snapshots the
// table into an independent Dispatcher.
type Builder struct {
	set     *capability.Set
	catalog *capability.Catalog
	table   map[*capability.Operation]callable
	target  any
	engine  Engine
}

// Implement starts an anonymous implementation of set.
func Implement(set *capability.Set, opts ...Option) *Builder {
	if set == nil {
		panic("anonymous: Implement called with a nil capability set")
	}
	b := &Builder{
		set:     set,
		catalog: capability.CatalogOf(set),
		table:   make(map[*capability.Operation]callable),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Set returns the capability set being implemented.
func (b *Builder) Set() *capability.Set { return b.set }

// Catalog returns the catalog of the capability set being implemented.
func (b *Builder) Catalog() *capability.Catalog { return b.catalog }

// Len returns the number of operations with an implementation.
func (b *Builder) Len() int { return len(b.table) }

// Bound reports whether op already has an implementation.
func (b *Builder) Bound(op *capability.Operation) bool {
	_, ok := b.table[op]
	return ok
}

// Register binds fn to an explicit operation handle. The handle must belong
// to the set's catalog and fn's signature must equal the operation's.
func (b *Builder) Register(op *capability.Operation, fn any) error {
	if _, err := Resolve(b.catalog, op); err != nil {
		return err
	}
	c, err := newCallable(fn)
	if err != nil {
		return &BindingError{Kind: ErrNotCallable, Operation: op, Detail: err.Error()}
	}
	if !c.sig.Equal(op.Signature()) {
		return &BindingError{Kind: ErrSignatureMismatch, Operation: op, Signature: c.sig.String()}
	}
	return b.bind(op, c)
}

// Method binds fn to the single operation named name whose signature equals
// fn's signature.
func (b *Builder) Method(name string, fn any) error {
	c, err := newCallable(fn)
	if err != nil {
		return &BindingError{Kind: ErrNotCallable, Set: b.set.Name(), Name: name, Detail: err.Error()}
	}
	op, err := Match(b.catalog, c.sig, name)
	if err != nil {
		return err
	}
	return b.bind(op, c)
}

// Dynamic binds a type-erased implementation to the single operation named
// name. With no signature to go by, an overloaded name fails with
// ErrAmbiguousMatch.
func (b *Builder) Dynamic(name string, fn DynamicFunc) error {
	if fn == nil {
		return &BindingError{Kind: ErrNotCallable, Set: b.set.Name(), Name: name, Detail: "got nil DynamicFunc"}
	}
	op, err := MatchName(b.catalog, name)
	if err != nil {
		return err
	}
	return b.bind(op, dynamicCallable(op, fn))
}

// RegisterDynamic binds a type-erased implementation to an explicit
// operation handle.
func (b *Builder) RegisterDynamic(op *capability.Operation, fn DynamicFunc) error {
	if _, err := Resolve(b.catalog, op); err != nil {
		return err
	}
	if fn == nil {
		return &BindingError{Kind: ErrNotCallable, Operation: op, Detail: "got nil DynamicFunc"}
	}
	return b.bind(op, dynamicCallable(op, fn))
}

func (b *Builder) bind(op *capability.Operation, c callable) error {
	if _, exists := b.table[op]; exists {
		return &BindingError{Kind: ErrDuplicateBinding, Operation: op}
	}
	b.table[op] = c
	logging.Debug("Builder", "Bound implementation for %s", op)
	return nil
}

// Build freezes a copy of the current table into a Dispatcher. Operations
// without an implementation are not an error: they forward to the default
// target or fail with ErrUnimplemented when called.
func (b *Builder) Build() (*Dispatcher, error) {
	table := make(map[*capability.Operation]callable, len(b.table))
	for op, c := range b.table {
		table[op] = c
	}

	d := newDispatcher(b.set, b.catalog, table)
	if b.target != nil {
		if err := b.attachTarget(d); err != nil {
			return nil, err
		}
	}

	logging.Debug("Builder", "Built dispatcher %s for %s: %d of %d operations implemented",
		d.ID(), b.set.Name(), len(table), b.catalog.Len())
	return d, nil
}

// attachTarget prepares forwarding to the default target for every operation
// left without an implementation.
func (b *Builder) attachTarget(d *Dispatcher) error {
	if inv, ok := b.target.(Invoker); ok {
		d.fallback = inv
		return nil
	}

	tv := reflect.ValueOf(b.target)
	d.targets = make(map[*capability.Operation]callable)
	for _, op := range b.catalog.Operations() {
		if _, implemented := d.table[op]; implemented {
			continue
		}
		m := tv.MethodByName(op.Binding())
		if !m.IsValid() {
			return &BindingError{
				Kind:      ErrIncompatibleTarget,
				Operation: op,
				Detail:    fmt.Sprintf("%T has no method %s", b.target, op.Binding()),
			}
		}
		c, err := callableOf(m)
		if err != nil {
			return err
		}
		if !c.sig.Equal(op.Signature()) {
			return &BindingError{
				Kind:      ErrIncompatibleTarget,
				Operation: op,
				Signature: c.sig.String(),
				Detail:    fmt.Sprintf("%T.%s has a different signature", b.target, op.Binding()),
			}
		}
		d.targets[op] = c
	}
	return nil
}

// Create builds a Dispatcher and asks the engine for a live value backed by
// it.
func (b *Builder) Create() (any, error) {
	d, err := b.Build()
	if err != nil {
		return nil, err
	}
	engine := b.engine
	if engine == nil {
		engine = SharedEngine()
	}
	return engine.Materialize(b.set, d)
}

// CreateAs is Create with a type assertion to T, typically the Go interface
// the proxy implements.
func CreateAs[T any](b *Builder) (T, error) {
	var zero T
	v, err := b.Create()
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("proxy for %s is %T, not %s", b.set.Name(), v, capability.TypeOf[T]())
	}
	return typed, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
