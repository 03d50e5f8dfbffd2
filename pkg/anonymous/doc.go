// Package anonymous builds implementations of capability sets from loose
// functions instead of named types.
//
// A Builder collects one implementation per operation. Functions are bound by
// name and signature, or by an explicit operation handle when the name alone
// is ambiguous, for instance when a derived set re-declares a base method:
//
//	b := anonymous.Implement(set, anonymous.WithDefault(fallback))
//	if err := b.Method("SayHi", func(name string) string { return "Hi " + name }); err != nil {
//		return err
//	}
//	d, err := b.Build()
//
// Out and ref parameters are written as capability.Out[T] and
// capability.Ref[T] in implementations and passed as *T to Invoke.
//
// The resulting Dispatcher routes each call to the bound implementation, then
// to the default target's method of the operation's binding name, and fails
// with ErrUnimplemented otherwise. Go cannot add methods to a type at
// runtime, so Create relies on an Engine to wrap the dispatcher in a proxy
// type implementing the Go interface; see ProxyRegistry.
package anonymous
