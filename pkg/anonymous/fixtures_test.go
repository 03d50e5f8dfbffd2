package anonymous

import (
	"reflect"

	"stubctl/pkg/capability"
)

var (
	intType    = capability.TypeOf[int]()
	stringType = capability.TypeOf[string]()
)

// testBase and testSet form a two-level hierarchy in which testSet
// re-declares A() and overloads it.
var (
	testBase = capability.Declare("TestBase").
			Method("A", capability.Sig()).
			MustBuild()

	testSet = capability.Declare("Test", testBase).
		Property("valg", intType, capability.AccessGet).
		Property("vals", intType, capability.AccessSet).
		Property("val", intType, capability.AccessGetSet).
		Event("X", capability.TypeOf[func()]()).
		Indexer(stringType, capability.AccessGetSet, intType).
		Method("A", capability.Sig()).
		Method("A", capability.Sig(capability.Arg(intType))).
		Method("A", capability.Sig(capability.OutArg(intType))).
		Method("A", capability.Sig(capability.Arg(intType), capability.RefArg(intType))).
		Method("B", capability.Sig().Returns(intType)).
		Method("C", capability.Sig(capability.Arg(capability.TypeOf[[]int]()))).
		MustBuild()

	writerSet = capability.Declare("Writer").
			Method("write", capability.Sig(capability.Arg(stringType))).
			Method("write", capability.Sig(capability.Arg(intType), capability.Arg(stringType))).
			MustBuild()
)

func testOp(name string, sig capability.Signature) *capability.Operation {
	op := testSet.Operation(name, sig)
	if op == nil {
		panic("fixture: no operation " + name + " " + sig.String())
	}
	return op
}

var (
	opA       = testOp("A", capability.Sig())
	opAInt    = testOp("A", capability.Sig(capability.Arg(intType)))
	opAOut    = testOp("A", capability.Sig(capability.OutArg(intType)))
	opARef    = testOp("A", capability.Sig(capability.Arg(intType), capability.RefArg(intType)))
	opB       = testOp("B", capability.Sig().Returns(intType))
	opC       = testOp("C", capability.Sig(capability.Arg(capability.TypeOf[[]int]())))
	opBaseA   = testBase.Operation("A", capability.Sig())
	opGetVal  = testOp(capability.GetterName("val"), capability.Sig().Returns(intType))
	opSetVal  = testOp(capability.SetterName("val"), capability.Sig(capability.Arg(intType)))
	opGetValg = testOp(capability.GetterName("valg"), capability.Sig().Returns(intType))
	opSetVals = testOp(capability.SetterName("vals"), capability.Sig(capability.Arg(intType)))
	opGetItem = testOp(capability.IndexGetName, capability.Sig(capability.Arg(intType)).Returns(stringType))
	opSetItem = testOp(capability.IndexSetName, capability.Sig(capability.Arg(intType), capability.Arg(stringType)))
	opAddX    = testOp(capability.AdderName("X"), capability.Sig(capability.Arg(capability.TypeOf[func()]())))
	opRemoveX = testOp(capability.RemoverName("X"), capability.Sig(capability.Arg(capability.TypeOf[func()]())))
)

// Greeter is implemented anonymously through greeterProxy.
type Greeter interface {
	SayHi(name string) string
}

type greeterProxy struct {
	d     *Dispatcher
	sayHi *capability.Operation
}

func (p greeterProxy) SayHi(name string) string {
	return Result[string](p.d.MustInvoke(p.sayHi, name), 0)
}

func greeterSet() *capability.Set {
	set, err := capability.FromInterface[Greeter]()
	if err != nil {
		panic(err)
	}
	return set
}

func greeterFactory(d *Dispatcher) any {
	return greeterProxy{d: d, sayHi: d.Set().Lookup("SayHi")}
}

// Counter is used with a real counter as default target.
type Counter interface {
	Increment()
	Count() int
}

type realCounter struct {
	n int
}

func (c *realCounter) Increment() { c.n++ }
func (c *realCounter) Count() int { return c.n }

type counterProxy struct {
	d         *Dispatcher
	increment *capability.Operation
	count     *capability.Operation
}

func (p counterProxy) Increment() { p.d.MustInvoke(p.increment) }
func (p counterProxy) Count() int { return Result[int](p.d.MustInvoke(p.count), 0) }

func counterSet() *capability.Set {
	set, err := capability.FromInterface[Counter]()
	if err != nil {
		panic(err)
	}
	return set
}

func counterFactory(d *Dispatcher) any {
	return counterProxy{d: d, increment: d.Set().Lookup("Increment"), count: d.Set().Lookup("Count")}
}

// Store exercises output parameters on a default target.
type Store interface {
	TryGet(key string, value capability.Out[int]) bool
	Put(key string, value int)
}

type mapStore map[string]int

func (s mapStore) TryGet(key string, value capability.Out[int]) bool {
	v, ok := s[key]
	value.Set(v)
	return ok
}

func (s mapStore) Put(key string, value int) { s[key] = value }

// argsFor builds a valid argument list for op: zero values for in
// parameters and fresh pointers for out and inout parameters.
func argsFor(op *capability.Operation) []any {
	sig := op.Signature()
	args := make([]any, len(sig.Params))
	for i, p := range sig.Params {
		if p.Mode == capability.ModeIn {
			args[i] = reflect.Zero(p.Type).Interface()
			continue
		}
		args[i] = reflect.New(p.Type).Interface()
	}
	return args
}
