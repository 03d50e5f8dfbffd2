package anonymous

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stubctl/pkg/capability"
)

func build(t *testing.T, b *Builder) *Dispatcher {
	t.Helper()
	d, err := b.Build()
	require.NoError(t, err)
	return d
}

func TestImplement_NilSetPanics(t *testing.T) {
	assert.Panics(t, func() { Implement(nil) })
}

func TestMethod_ShadowedNameIsAmbiguous(t *testing.T) {
	b := Implement(testSet)

	err := b.Method("A", func() {})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAmbiguousMatch))

	var be *BindingError
	require.True(t, errors.As(err, &be))
	assert.ElementsMatch(t, []*capability.Operation{opA, opBaseA}, be.Candidates)
	assert.Equal(t, 0, b.Len(), "a failed registration binds nothing")
}

func TestRegister_NoParameters(t *testing.T) {
	observed := 0
	b := Implement(testSet)
	require.NoError(t, b.Register(opA, func() { observed = 13 }))

	d := build(t, b)
	_, err := d.Invoke(opA)
	require.NoError(t, err)
	assert.Equal(t, 13, observed)
}

func TestRegister_HiddenBaseOperation(t *testing.T) {
	var calls []string
	b := Implement(testSet)
	require.NoError(t, b.Register(opBaseA, func() { calls = append(calls, "base") }))

	d := build(t, b)
	_, err := d.Invoke(opBaseA)
	require.NoError(t, err)
	assert.Equal(t, []string{"base"}, calls)

	_, err = d.Invoke(opA)
	assert.True(t, errors.Is(err, ErrUnimplemented), "the re-declared operation stays unimplemented")
}

func TestMethod_SingleParameter(t *testing.T) {
	observed := 0
	b := Implement(testSet)
	require.NoError(t, b.Method("A", func(x int) { observed = x }))
	assert.True(t, b.Bound(opAInt))
	assert.False(t, b.Bound(opAOut), "an in parameter never matches an out parameter")

	d := build(t, b)
	_, err := d.Invoke(opAInt, 13)
	require.NoError(t, err)
	assert.Equal(t, 13, observed)
}

func TestMethod_OutParameter(t *testing.T) {
	b := Implement(testSet)
	require.NoError(t, b.Method("A", func(x capability.Out[int]) { x.Set(11) }))
	assert.True(t, b.Bound(opAOut))

	d := build(t, b)
	var got int
	_, err := d.Invoke(opAOut, &got)
	require.NoError(t, err)
	assert.Equal(t, 11, got)

	_, err = d.Invoke(opAOut, nil)
	assert.NoError(t, err, "a nil out argument discards the value")
}

func TestMethod_RefParameter(t *testing.T) {
	var observedX, observedY int
	b := Implement(testSet)
	require.NoError(t, b.Method("A", func(x int, y capability.Ref[int]) {
		observedX = x
		observedY = y.Get()
		y.Set(11)
	}))

	d := build(t, b)
	y := 5
	_, err := d.Invoke(opARef, 3, &y)
	require.NoError(t, err)
	assert.Equal(t, 3, observedX)
	assert.Equal(t, 5, observedY)
	assert.Equal(t, 11, y)
}

func TestMethod_ReturnValue(t *testing.T) {
	b := Implement(testSet)
	require.NoError(t, b.Method("B", func() int { return 13 }))

	d := build(t, b)
	results, err := d.Invoke(opB)
	require.NoError(t, err)
	assert.Equal(t, []any{13}, results)
	assert.Equal(t, 13, Result[int](results, 0))
}

func TestMethod_Variadic(t *testing.T) {
	var observed []int
	b := Implement(testSet)
	require.NoError(t, b.Method("C", func(xs ...int) { observed = xs }))

	d := build(t, b)
	_, err := d.Invoke(opC, []int{3, 5, 7})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5, 7}, observed)
}

func TestMethod_SliceMatchesVariadicOperation(t *testing.T) {
	var observed []int
	b := Implement(testSet)
	require.NoError(t, b.Method("C", func(xs []int) { observed = xs }))

	d := build(t, b)
	_, err := d.Invoke(opC, []int{1})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, observed)
}

func TestPropertyHelpers(t *testing.T) {
	var set, setOnly int
	b := Implement(testSet)
	require.NoError(t, b.PropertyGet("val", func() int { return 13 }))
	require.NoError(t, b.PropertySet("val", func(v int) { set = v }))
	require.NoError(t, b.PropertyGet("valg", func() int { return 7 }))
	require.NoError(t, b.PropertySet("vals", func(v int) { setOnly = v }))

	err := b.PropertyGet("vals", func() int { return 0 })
	assert.True(t, errors.Is(err, ErrNoMatch), "write-only property has no getter")
	err = b.PropertySet("valg", func(int) {})
	assert.True(t, errors.Is(err, ErrNoMatch), "read-only property has no setter")

	d := build(t, b)

	results, err := d.Invoke(opGetVal)
	require.NoError(t, err)
	assert.Equal(t, 13, Result[int](results, 0))

	_, err = d.Invoke(opSetVal, 21)
	require.NoError(t, err)
	assert.Equal(t, 21, set)

	results, err = d.Invoke(opGetValg)
	require.NoError(t, err)
	assert.Equal(t, 7, Result[int](results, 0))

	_, err = d.Invoke(opSetVals, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, setOnly)
}

func TestIndexerHelpers(t *testing.T) {
	items := map[int]string{}
	b := Implement(testSet)
	require.NoError(t, b.IndexGet(func(i int) string { return items[i] }))
	require.NoError(t, b.IndexSet(func(i int, v string) { items[i] = v }))

	d := build(t, b)
	_, err := d.Invoke(opSetItem, 1, "one")
	require.NoError(t, err)

	results, err := d.Invoke(opGetItem, 1)
	require.NoError(t, err)
	assert.Equal(t, "one", Result[string](results, 0))
}

func TestEventHelpers(t *testing.T) {
	var handlers []func()
	removed := 0
	b := Implement(testSet)
	require.NoError(t, b.EventAdd("X", func(h func()) { handlers = append(handlers, h) }))
	require.NoError(t, b.EventRemove("X", func(func()) { removed++ }))

	d := build(t, b)
	fired := 0
	handler := func() { fired++ }

	_, err := d.Invoke(opAddX, handler)
	require.NoError(t, err)
	require.Len(t, handlers, 1)
	handlers[0]()
	assert.Equal(t, 1, fired, "the subscribed handler is the one passed in")

	_, err = d.Invoke(opRemoveX, handler)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

// Every helper binds the same operation a generic registration by the
// synthesized name would, which shows up as a duplicate binding.
func TestHelpers_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		helper func(*Builder) error
		op     *capability.Operation
		fn     any
	}{
		{"property get", func(b *Builder) error { return b.PropertyGet("val", func() int { return 0 }) }, opGetVal, func() int { return 1 }},
		{"property set", func(b *Builder) error { return b.PropertySet("vals", func(int) {}) }, opSetVals, func(int) {}},
		{"index get", func(b *Builder) error { return b.IndexGet(func(int) string { return "" }) }, opGetItem, func(int) string { return "" }},
		{"index set", func(b *Builder) error { return b.IndexSet(func(int, string) {}) }, opSetItem, func(int, string) {}},
		{"event add", func(b *Builder) error { return b.EventAdd("X", func(func()) {}) }, opAddX, func(func()) {}},
		{"event remove", func(b *Builder) error { return b.EventRemove("X", func(func()) {}) }, opRemoveX, func(func()) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Implement(testSet)
			require.NoError(t, tt.helper(b))
			assert.True(t, b.Bound(tt.op))
			assert.Equal(t, 1, b.Len())

			err := b.Method(tt.op.Name(), tt.fn)
			assert.True(t, errors.Is(err, ErrDuplicateBinding))

			matched, err := Match(b.Catalog(), tt.op.Signature(), tt.op.Name())
			require.NoError(t, err)
			assert.Same(t, tt.op, matched)
		})
	}
}

func TestOn_Selectors(t *testing.T) {
	b := Implement(testSet)
	require.NoError(t, b.On(Op(opA), func() {}))
	require.NoError(t, b.On(Named("B"), func() int { return 1 }))
	assert.True(t, b.Bound(opA))
	assert.True(t, b.Bound(opB))
}

func TestDuplicateBinding(t *testing.T) {
	t.Run("by name twice", func(t *testing.T) {
		b := Implement(testSet)
		require.NoError(t, b.Method("B", func() int { return 1 }))
		err := b.Method("B", func() int { return 2 })
		assert.True(t, errors.Is(err, ErrDuplicateBinding))
	})

	t.Run("by handle then name", func(t *testing.T) {
		b := Implement(testSet)
		require.NoError(t, b.Register(opB, func() int { return 1 }))
		err := b.Method("B", func() int { return 2 })
		assert.True(t, errors.Is(err, ErrDuplicateBinding))
	})

	t.Run("by name then handle", func(t *testing.T) {
		b := Implement(testSet)
		require.NoError(t, b.Method("B", func() int { return 1 }))
		err := b.Register(opB, func() int { return 2 })
		assert.True(t, errors.Is(err, ErrDuplicateBinding))
	})

	t.Run("first binding wins", func(t *testing.T) {
		b := Implement(testSet)
		require.NoError(t, b.Method("B", func() int { return 1 }))
		_ = b.Method("B", func() int { return 2 })

		results, err := build(t, b).Invoke(opB)
		require.NoError(t, err)
		assert.Equal(t, 1, Result[int](results, 0))
	})
}

func TestRegistrationErrors(t *testing.T) {
	other := capability.Declare("Other").Method("B", capability.Sig().Returns(intType)).MustBuild()

	tests := []struct {
		name     string
		register func(*Builder) error
		want     error
	}{
		{"handle from another set", func(b *Builder) error { return b.Register(other.Lookup("B"), func() int { return 0 }) }, ErrNotAMember},
		{"nil handle", func(b *Builder) error { return b.Register(nil, func() {}) }, ErrNotAMember},
		{"signature differs from handle", func(b *Builder) error { return b.Register(opB, func() string { return "" }) }, ErrSignatureMismatch},
		{"not a function", func(b *Builder) error { return b.Method("B", 42) }, ErrNotCallable},
		{"nil implementation", func(b *Builder) error { return b.Register(opB, nil) }, ErrNotCallable},
		{"typed nil func", func(b *Builder) error { return b.Method("B", (func() int)(nil)) }, ErrNotCallable},
		{"unknown name", func(b *Builder) error { return b.Method("Z", func() {}) }, ErrNoMatch},
		{"known name, no such signature", func(b *Builder) error { return b.Method("B", func() string { return "" }) }, ErrNoMatch},
		{"nil dynamic", func(b *Builder) error { return b.Dynamic("B", nil) }, ErrNotCallable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Implement(testSet)
			err := tt.register(b)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, 0, b.Len())
		})
	}
}

func TestWriterOverloads(t *testing.T) {
	t.Run("name only is ambiguous", func(t *testing.T) {
		b := Implement(writerSet)
		err := b.Dynamic("write", func([]any) []any { return nil })
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrAmbiguousMatch))
		assert.Contains(t, err.Error(), "Writer.write func(string)")
		assert.Contains(t, err.Error(), "Writer.write func(int, string)")
	})

	t.Run("signature selects the overload", func(t *testing.T) {
		var lines []string
		b := Implement(writerSet)
		require.NoError(t, b.Method("write", func(text string) { lines = append(lines, text) }))

		d := build(t, b)
		_, err := d.Invoke(writerSet.Operation("write", capability.Sig(capability.Arg(stringType))), "hello")
		require.NoError(t, err)
		assert.Equal(t, []string{"hello"}, lines)

		_, err = d.Invoke(writerSet.Operation("write", capability.Sig(capability.Arg(intType), capability.Arg(stringType))), 1, "x")
		assert.True(t, errors.Is(err, ErrUnimplemented), "overloads are isolated")
	})
}

func TestDynamic(t *testing.T) {
	b := Implement(testSet)
	require.NoError(t, b.Dynamic("B", func(args []any) []any { return []any{len(args) + 40} }))
	require.NoError(t, b.RegisterDynamic(opARef, func(args []any) []any {
		*args[1].(*int) += args[0].(int)
		return nil
	}))

	d := build(t, b)
	results, err := d.Invoke(opB)
	require.NoError(t, err)
	assert.Equal(t, 40, Result[int](results, 0))

	y := 2
	_, err = d.Invoke(opARef, 3, &y)
	require.NoError(t, err)
	assert.Equal(t, 5, y)

	_, err = d.Invoke(opARef, 3)
	assert.True(t, errors.Is(err, ErrBadArguments))
}

func TestDynamic_ArgumentsCheckedBeforeCall(t *testing.T) {
	called := false
	b := Implement(testSet)
	require.NoError(t, b.RegisterDynamic(opARef, func([]any) []any {
		called = true
		return nil
	}))
	d := build(t, b)

	y := 1
	tests := []struct {
		name string
		args []any
	}{
		{"in argument of the wrong type", []any{"not-an-int", &y}},
		{"ref argument not a pointer", []any{3, "not-a-pointer"}},
		{"ref argument pointing to the wrong type", []any{3, new(string)}},
		{"nil for a non-nilable in parameter", []any{nil, &y}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Invoke(opARef, tt.args...)
			assert.True(t, errors.Is(err, ErrBadArguments), "got %v", err)
		})
	}
	assert.False(t, called, "a dynamic implementation never sees arguments that do not fit")

	_, err := d.Invoke(opARef, 3, nil)
	require.NoError(t, err, "a nil slot pointer is allowed")
	assert.True(t, called)
}

func TestDynamic_WrongResultCount(t *testing.T) {
	b := Implement(testSet)
	require.NoError(t, b.RegisterDynamic(opB, func([]any) []any { return nil }))

	_, err := build(t, b).Invoke(opB)
	assert.True(t, errors.Is(err, ErrSignatureMismatch))
}

func TestBuilder_ReusableAfterBuild(t *testing.T) {
	b := Implement(testSet)
	require.NoError(t, b.Method("A", func(int) {}))
	first := build(t, b)

	require.NoError(t, b.Method("B", func() int { return 1 }))
	second := build(t, b)

	assert.NotEqual(t, first.ID(), second.ID())
	assert.True(t, first.Implemented(opAInt))
	assert.False(t, first.Implemented(opB), "later registrations do not leak into earlier builds")
	assert.True(t, second.Implemented(opB))

	_, err := first.Invoke(opB)
	assert.True(t, errors.Is(err, ErrUnimplemented))
}

func TestWithDefault_TypedNilMeansNone(t *testing.T) {
	var target *realCounter
	b := Implement(counterSet(), WithDefault(target))

	d := build(t, b)
	_, err := d.Call("Increment")
	assert.True(t, errors.Is(err, ErrUnimplemented))
}
