package capability

// Kind tells which construct an operation was declared through.
type Kind uint8

const (
	KindMethod Kind = iota
	KindGetter
	KindSetter
	KindIndexGet
	KindIndexSet
	KindEventAdd
	KindEventRemove
)

// String makes Kind satisfy the fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindGetter:
		return "getter"
	case KindSetter:
		return "setter"
	case KindIndexGet:
		return "index-get"
	case KindIndexSet:
		return "index-set"
	case KindEventAdd:
		return "event-add"
	case KindEventRemove:
		return "event-remove"
	default:
		return "unknown"
	}
}

// ItemMember is the member name shared by indexer accessors.
const ItemMember = "Item"

// Synthesized operation names for properties, indexers and events.
func GetterName(property string) string { return "get_" + property }
func SetterName(property string) string { return "set_" + property }
func AdderName(event string) string     { return "add_" + event }
func RemoverName(event string) string   { return "remove_" + event }

var (
	IndexGetName = GetterName(ItemMember)
	IndexSetName = SetterName(ItemMember)
)

// Operation is one named, typed member of a capability set. Operations are
// compared by pointer: two operations with the same name and signature
// declared on different sets are distinct.
type Operation struct {
	name    string
	sig     Signature
	kind    Kind
	member  string
	binding string
	set     *Set
}

// Name returns the operation name, synthesized for accessors (get_Count).
func (o *Operation) Name() string { return o.name }

// Signature returns a copy of the operation signature.
func (o *Operation) Signature() Signature { return o.sig.Returns(o.sig.Results...) }

// Kind returns the construct the operation was declared through.
func (o *Operation) Kind() Kind { return o.kind }

// Member returns the property, event or indexer name for accessor operations
// and the operation name for methods.
func (o *Operation) Member() string { return o.member }

// Binding returns the Go method name a default target must provide for this
// operation.
func (o *Operation) Binding() string { return o.binding }

// Set returns the capability set that declares the operation.
func (o *Operation) Set() *Set { return o.set }

// Qualified returns the operation name prefixed with its declaring set.
func (o *Operation) Qualified() string {
	if o.set == nil {
		return o.name
	}
	return o.set.name + "." + o.name
}

func (o *Operation) String() string {
	return o.Qualified() + " " + o.sig.String()
}

func defaultBinding(kind Kind, member string) string {
	switch kind {
	case KindGetter:
		return member
	case KindSetter:
		return "Set" + member
	case KindIndexGet:
		return "Get" + member
	case KindIndexSet:
		return "Set" + member
	case KindEventAdd:
		return "Add" + member
	case KindEventRemove:
		return "Remove" + member
	default:
		return member
	}
}
