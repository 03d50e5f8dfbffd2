package capability

import (
	"fmt"
	"reflect"
	"strings"
)

// Mode describes how a parameter is passed.
type Mode uint8

const (
	// ModeIn parameters supply a value and receive nothing back.
	ModeIn Mode = iota
	// ModeOut parameters produce a value but supply none.
	ModeOut
	// ModeInOut parameters are passed by reference: they supply and receive a value.
	ModeInOut
)

// String makes Mode satisfy the fmt.Stringer interface.
func (m Mode) String() string {
	switch m {
	case ModeIn:
		return "in"
	case ModeOut:
		return "out"
	case ModeInOut:
		return "inout"
	default:
		return "unknown"
	}
}

// ParseMode parses the textual form of a Mode. An empty string is ModeIn.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "in":
		return ModeIn, nil
	case "out":
		return ModeOut, nil
	case "inout", "ref":
		return ModeInOut, nil
	default:
		return ModeIn, fmt.Errorf("unknown parameter mode %q", s)
	}
}

// modal is implemented by the parameter slot types Out and Ref.
type modal interface {
	paramMode() Mode
	elemType() reflect.Type
	bind(ptr reflect.Value)
}

var modalType = reflect.TypeOf((*modal)(nil)).Elem()

// Out is an output parameter slot. A func taking Out[T] in some position
// declares a ModeOut parameter of type T in that position.
type Out[T any] struct {
	ptr *T
}

// Set writes the output value. Writing to an unbound slot is a no-op.
func (o Out[T]) Set(v T) {
	if o.ptr != nil {
		*o.ptr = v
	}
}

func (Out[T]) paramMode() Mode        { return ModeOut }
func (Out[T]) elemType() reflect.Type { return TypeOf[T]() }

func (o *Out[T]) bind(ptr reflect.Value) {
	if !ptr.IsValid() || ptr.IsNil() {
		o.ptr = nil
		return
	}
	o.ptr = ptr.Interface().(*T)
}

// Ref is a by-reference parameter slot. A func taking Ref[T] in some position
// declares a ModeInOut parameter of type T in that position.
type Ref[T any] struct {
	ptr *T
}

// Get returns the current value, or the zero value for an unbound slot.
func (r Ref[T]) Get() T {
	if r.ptr == nil {
		var zero T
		return zero
	}
	return *r.ptr
}

// Set writes the value back to the caller. Writing to an unbound slot is a no-op.
func (r Ref[T]) Set(v T) {
	if r.ptr != nil {
		*r.ptr = v
	}
}

func (Ref[T]) paramMode() Mode        { return ModeInOut }
func (Ref[T]) elemType() reflect.Type { return TypeOf[T]() }

func (r *Ref[T]) bind(ptr reflect.Value) {
	if !ptr.IsValid() || ptr.IsNil() {
		r.ptr = nil
		return
	}
	r.ptr = ptr.Interface().(*T)
}

// slotOf reports the mode and element type carried by a Go parameter type.
// Types other than Out[T] and Ref[T] are ModeIn parameters of themselves.
func slotOf(t reflect.Type) (Mode, reflect.Type) {
	if t.Kind() != reflect.Struct || !reflect.PointerTo(t).Implements(modalType) {
		return ModeIn, t
	}
	m := reflect.New(t).Interface().(modal)
	return m.paramMode(), m.elemType()
}

// BindSlot wraps ptr, a *T, into a fresh value of the slot type t (Out[T] or
// Ref[T]). It panics if t is not a slot type; callers check with SlotMode.
func BindSlot(t reflect.Type, ptr reflect.Value) reflect.Value {
	w := reflect.New(t)
	w.Interface().(modal).bind(ptr)
	return w.Elem()
}

// SlotMode reports the parameter mode a Go parameter type declares.
func SlotMode(t reflect.Type) Mode {
	m, _ := slotOf(t)
	return m
}
