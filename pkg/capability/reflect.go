package capability

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	reflectMu   sync.Mutex
	reflectSets = make(map[reflect.Type]*Set)
)

// FromInterface derives a capability set from the Go interface type T.
// Repeated calls for the same T return the same set.
func FromInterface[T any]() (*Set, error) {
	return FromType(TypeOf[T]())
}

// FromType derives a capability set from a Go interface type. Go flattens
// embedded interfaces, so the result declares every exported method directly
// and extends nothing. Each operation binds to the method of the same name.
func FromType(t reflect.Type) (*Set, error) {
	if t == nil || t.Kind() != reflect.Interface {
		return nil, fmt.Errorf("%w: %s", ErrNotInterface, typeString(t))
	}

	reflectMu.Lock()
	defer reflectMu.Unlock()

	if set, ok := reflectSets[t]; ok {
		return set, nil
	}

	name := t.Name()
	if name == "" {
		name = t.String()
	}
	decl := Declare(name)
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if !m.IsExported() {
			continue
		}
		sig, err := SignatureOf(m.Type)
		if err != nil {
			return nil, err
		}
		decl.Method(m.Name, sig)
	}
	set, err := decl.Build()
	if err != nil {
		return nil, err
	}
	reflectSets[t] = set
	return set, nil
}
