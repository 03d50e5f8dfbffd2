package capability

import (
	"fmt"
	"reflect"
	"strings"
)

// Param describes one parameter of an operation.
// Name is informational and never participates in matching.
type Param struct {
	Name string
	Type reflect.Type
	Mode Mode
}

// Arg returns a ModeIn parameter of type t.
func Arg(t reflect.Type) Param { return Param{Type: t, Mode: ModeIn} }

// OutArg returns a ModeOut parameter of type t.
func OutArg(t reflect.Type) Param { return Param{Type: t, Mode: ModeOut} }

// RefArg returns a ModeInOut parameter of type t.
func RefArg(t reflect.Type) Param { return Param{Type: t, Mode: ModeInOut} }

// Named returns a copy of p carrying the given name.
func (p Param) Named(name string) Param {
	p.Name = name
	return p
}

// Equal reports whether p and other have the same type and mode.
func (p Param) Equal(other Param) bool {
	return p.Type == other.Type && p.Mode == other.Mode
}

func (p Param) String() string {
	t := typeString(p.Type)
	if p.Mode != ModeIn {
		t = p.Mode.String() + " " + t
	}
	if p.Name != "" {
		return p.Name + " " + t
	}
	return t
}

// Signature is the parameter list and result tuple of an operation.
// An empty Results tuple means the operation returns nothing.
type Signature struct {
	Params  []Param
	Results []reflect.Type
}

// Sig builds a signature from its parameters. Results are added with Returns.
func Sig(params ...Param) Signature {
	return Signature{Params: append([]Param(nil), params...)}
}

// Returns returns a copy of s with the given result tuple.
func (s Signature) Returns(results ...reflect.Type) Signature {
	s.Params = append([]Param(nil), s.Params...)
	s.Results = append([]reflect.Type(nil), results...)
	return s
}

// Equal reports structural equality: identical result tuples, the same number
// of parameters, and per position the same type and the same passing mode.
func (s Signature) Equal(other Signature) bool {
	if len(s.Results) != len(other.Results) || len(s.Params) != len(other.Params) {
		return false
	}
	for i := range s.Results {
		if s.Results[i] != other.Results[i] {
			return false
		}
	}
	for i := range s.Params {
		if !s.Params[i].Equal(other.Params[i]) {
			return false
		}
	}
	return true
}

func (s Signature) String() string {
	var b strings.Builder
	b.WriteString("func(")
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		// Names are left out so equal signatures render identically.
		p.Name = ""
		b.WriteString(p.String())
	}
	b.WriteString(")")
	switch len(s.Results) {
	case 0:
	case 1:
		b.WriteString(" ")
		b.WriteString(typeString(s.Results[0]))
	default:
		b.WriteString(" (")
		for i, r := range s.Results {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(typeString(r))
		}
		b.WriteString(")")
	}
	return b.String()
}

// SignatureOf derives the signature of a Go func type. Parameters of type
// Out[T] and Ref[T] become ModeOut and ModeInOut parameters of type T; a
// variadic ...T parameter is the ModeIn parameter []T.
func SignatureOf(fn reflect.Type) (Signature, error) {
	if fn == nil || fn.Kind() != reflect.Func {
		return Signature{}, fmt.Errorf("%w: %s", ErrNotAFunc, typeString(fn))
	}
	sig := Signature{
		Params:  make([]Param, fn.NumIn()),
		Results: make([]reflect.Type, fn.NumOut()),
	}
	for i := 0; i < fn.NumIn(); i++ {
		mode, elem := slotOf(fn.In(i))
		sig.Params[i] = Param{Type: elem, Mode: mode}
	}
	for i := 0; i < fn.NumOut(); i++ {
		sig.Results[i] = fn.Out(i)
	}
	return sig, nil
}

// FuncSignature derives the signature of a func value. A typed nil func is
// accepted, which lets callers describe a signature with a prototype such as
// (func(int) string)(nil).
func FuncSignature(fn any) (Signature, error) {
	if fn == nil {
		return Signature{}, fmt.Errorf("%w: <nil>", ErrNotAFunc)
	}
	return SignatureOf(reflect.TypeOf(fn))
}

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
