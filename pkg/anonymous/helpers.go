package anonymous

import "stubctl/pkg/capability"

// Selector names the operation an implementation targets: either an explicit
// handle (Op) or a name resolved together with the implementation's
// signature (Named).
type Selector struct {
	op   *capability.Operation
	name string
}

// Op selects an operation by handle.
func Op(op *capability.Operation) Selector { return Selector{op: op} }

// Named selects an operation by name and signature.
func Named(name string) Selector { return Selector{name: name} }

// On binds fn to the selected operation.
func (b *Builder) On(sel Selector, fn any) error {
	if sel.op != nil {
		return b.Register(sel.op, fn)
	}
	return b.Method(sel.name, fn)
}

// PropertyGet binds fn, a func() T, to the getter of property.
func (b *Builder) PropertyGet(property string, fn any) error {
	return b.Method(capability.GetterName(property), fn)
}

// PropertySet binds fn, a func(T), to the setter of property. Write-only
// properties work the same way.
func (b *Builder) PropertySet(property string, fn any) error {
	return b.Method(capability.SetterName(property), fn)
}

// IndexGet binds fn, a func(index...) T, to the indexer getter.
func (b *Builder) IndexGet(fn any) error {
	return b.Method(capability.IndexGetName, fn)
}

// IndexSet binds fn, a func(index..., T), to the indexer setter.
func (b *Builder) IndexSet(fn any) error {
	return b.Method(capability.IndexSetName, fn)
}

// EventAdd binds fn, a func(handler), to the subscription of event.
func (b *Builder) EventAdd(event string, fn any) error {
	return b.Method(capability.AdderName(event), fn)
}

// EventRemove binds fn, a func(handler), to the unsubscription of event.
func (b *Builder) EventRemove(event string, fn any) error {
	return b.Method(capability.RemoverName(event), fn)
}
