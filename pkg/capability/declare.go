package capability

import (
	"fmt"
	"reflect"
	"strings"
)

// Access selects which accessors a property or indexer declares.
type Access uint8

const (
	AccessGet Access = 1 << iota
	AccessSet

	AccessGetSet = AccessGet | AccessSet
)

// ParseAccess parses "get", "set" or "getset" (also "get,set").
func ParseAccess(s string) (Access, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), ",", "") {
	case "get":
		return AccessGet, nil
	case "set":
		return AccessSet, nil
	case "", "getset", "setget":
		return AccessGetSet, nil
	default:
		return 0, fmt.Errorf("unknown accessor %q", s)
	}
}

func (a Access) String() string {
	switch a {
	case AccessGet:
		return "get"
	case AccessSet:
		return "set"
	case AccessGetSet:
		return "getset"
	default:
		return "none"
	}
}

// Declaration collects the operations of a capability set before it is built.
//
//	base := capability.Declare("Base").Method("A", capability.Sig()).MustBuild()
//	set := capability.Declare("Test", base).
//	    Method("A", capability.Sig()).
//	    Property("Count", capability.TypeOf[int](), capability.AccessGet).
//	    MustBuild()
type Declaration struct {
	name    string
	extends []*Set
	ops     []Operation
	last    int // index of the first operation added by the latest call
	err     error
}

// Declare starts a capability-set declaration extending the given sets.
func Declare(name string, extends ...*Set) *Declaration {
	return &Declaration{
		name:    name,
		extends: append([]*Set(nil), extends...),
	}
}

func (d *Declaration) add(ops ...Operation) *Declaration {
	d.last = len(d.ops)
	d.ops = append(d.ops, ops...)
	return d
}

// Method declares a plain operation.
func (d *Declaration) Method(name string, sig Signature) *Declaration {
	return d.add(Operation{name: name, sig: sig.Returns(sig.Results...), kind: KindMethod, member: name, binding: name})
}

// MethodFunc declares a plain operation whose signature is taken from a func
// prototype, for example (func(int) string)(nil).
func (d *Declaration) MethodFunc(name string, prototype any) *Declaration {
	sig, err := FuncSignature(prototype)
	if err != nil {
		if d.err == nil {
			d.err = fmt.Errorf("method %s: %w", name, err)
		}
		return d
	}
	return d.Method(name, sig)
}

// Property declares get_<name> and/or set_<name> accessors of type typ.
func (d *Declaration) Property(name string, typ reflect.Type, access Access) *Declaration {
	var ops []Operation
	if access&AccessGet != 0 {
		ops = append(ops, accessor(GetterName(name), KindGetter, name, Sig().Returns(typ)))
	}
	if access&AccessSet != 0 {
		ops = append(ops, accessor(SetterName(name), KindSetter, name, Sig(Arg(typ).Named("value"))))
	}
	return d.add(ops...)
}

// Indexer declares get_Item and/or set_Item accessors with the given index
// parameters and element type.
func (d *Declaration) Indexer(elem reflect.Type, access Access, index ...reflect.Type) *Declaration {
	params := make([]Param, 0, len(index)+1)
	for _, t := range index {
		params = append(params, Arg(t))
	}
	var ops []Operation
	if access&AccessGet != 0 {
		ops = append(ops, accessor(IndexGetName, KindIndexGet, ItemMember, Sig(params...).Returns(elem)))
	}
	if access&AccessSet != 0 {
		ops = append(ops, accessor(IndexSetName, KindIndexSet, ItemMember, Sig(append(params, Arg(elem).Named("value"))...)))
	}
	return d.add(ops...)
}

// Event declares add_<name> and remove_<name> operations taking a handler.
func (d *Declaration) Event(name string, handler reflect.Type) *Declaration {
	return d.add(
		accessor(AdderName(name), KindEventAdd, name, Sig(Arg(handler).Named("handler"))),
		accessor(RemoverName(name), KindEventRemove, name, Sig(Arg(handler).Named("handler"))),
	)
}

// Bind sets the Go method name used to forward the operations added by the
// previous call to a default target. With a property or event declaring two
// accessors, prefixes are kept: Bind("Total") on a get/set property yields
// Total and SetTotal.
func (d *Declaration) Bind(goMethod string) *Declaration {
	for i := d.last; i < len(d.ops); i++ {
		op := &d.ops[i]
		if op.kind == KindMethod {
			op.binding = goMethod
			continue
		}
		op.binding = defaultBinding(op.kind, goMethod)
	}
	return d
}

func accessor(name string, kind Kind, member string, sig Signature) Operation {
	return Operation{name: name, sig: sig, kind: kind, member: member, binding: defaultBinding(kind, member)}
}

// Build validates the declaration and creates the set. Every call returns a
// new set with fresh operation identities.
func (d *Declaration) Build() (*Set, error) {
	if d.err != nil {
		return nil, fmt.Errorf("capability set %s: %w", d.name, d.err)
	}
	if d.name == "" {
		return nil, fmt.Errorf("capability set: %w", ErrEmptyName)
	}
	for i, ext := range d.extends {
		if ext == nil {
			return nil, fmt.Errorf("capability set %s: extends[%d]: %w", d.name, i, ErrNilSet)
		}
	}

	set := &Set{
		name:     d.name,
		extends:  append([]*Set(nil), d.extends...),
		declared: make([]*Operation, 0, len(d.ops)),
	}
	for i := range d.ops {
		spec := d.ops[i]
		if spec.name == "" {
			return nil, fmt.Errorf("capability set %s: operation %d: %w", d.name, i, ErrEmptyName)
		}
		if prev := set.Operation(spec.name, spec.sig); prev != nil {
			return nil, fmt.Errorf("capability set %s: %s %s: %w", d.name, spec.name, spec.sig, ErrDuplicateDeclaration)
		}
		op := spec
		op.set = set
		set.declared = append(set.declared, &op)
	}
	return set, nil
}

// MustBuild is like Build but panics on error. It is meant for package-level
// set variables.
func (d *Declaration) MustBuild() *Set {
	set, err := d.Build()
	if err != nil {
		panic(err)
	}
	return set
}
