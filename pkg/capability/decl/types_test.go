package decl

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct{ X, Y int }

func TestTypeRegistry_Parse(t *testing.T) {
	r := NewTypeRegistry()
	require.NoError(t, Register[point](r, "geo.Point"))

	tests := []struct {
		expr     string
		expected reflect.Type
	}{
		{"int", reflect.TypeFor[int]()},
		{"byte", reflect.TypeFor[uint8]()},
		{"any", reflect.TypeFor[any]()},
		{"interface{}", reflect.TypeFor[any]()},
		{"error", reflect.TypeFor[error]()},
		{"[]string", reflect.TypeFor[[]string]()},
		{"[4]byte", reflect.TypeFor[[4]byte]()},
		{"*int", reflect.TypeFor[*int]()},
		{"map[string][]int", reflect.TypeFor[map[string][]int]()},
		{"chan<- int", reflect.TypeFor[chan<- int]()},
		{"<-chan string", reflect.TypeFor[<-chan string]()},
		{"func(string)", reflect.TypeFor[func(string)]()},
		{"func(a, b int) (string, error)", reflect.TypeFor[func(int, int) (string, error)]()},
		{"func(context.Context, ...string) error", reflect.TypeFor[func(context.Context, ...string) error]()},
		{"time.Duration", reflect.TypeFor[time.Duration]()},
		{"geo.Point", reflect.TypeFor[point]()},
		{"[]*geo.Point", reflect.TypeFor[[]*point]()},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := r.Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTypeRegistry_ParseErrors(t *testing.T) {
	r := NewTypeRegistry()

	_, err := r.Parse("Widget")
	assert.True(t, errors.Is(err, ErrUnknownType))

	_, err = r.Parse("map[string]geo.Missing")
	assert.True(t, errors.Is(err, ErrUnknownType))

	for _, expr := range []string{
		"map[[]int]string",
		"[n]int",
		"interface{ Close() error }",
		"struct{ X int }",
		"func(",
	} {
		_, err := r.Parse(expr)
		assert.Error(t, err, expr)
	}
}

func TestTypeRegistry_RegisterType(t *testing.T) {
	r := NewTypeRegistry()

	assert.Error(t, r.RegisterType("int", reflect.TypeFor[string]()))
	assert.Error(t, r.RegisterType("Thing", nil))
	require.NoError(t, r.RegisterType("Thing", reflect.TypeFor[point]()))

	got, err := r.Parse("Thing")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[point](), got)
}

func TestTypeRegistry_ParseOversizedTypes(t *testing.T) {
	r := NewTypeRegistry()

	for _, expr := range []string{
		"[4000000000000000000]int64",
		"chan [70000]byte",
		"map[string]chan<- [70000]byte",
	} {
		t.Run(expr, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { _, err = r.Parse(expr) })
			assert.ErrorIs(t, err, ErrTypeTooLarge)
		})
	}

	got, err := r.Parse("chan [1024]byte")
	require.NoError(t, err)
	assert.Equal(t, reflect.Chan, got.Kind())
}
