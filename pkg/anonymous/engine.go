package anonymous

import (
	"sync"

	"stubctl/pkg/capability"
	"stubctl/pkg/logging"
)

// Engine turns a Dispatcher into a live value implementing the capability
// set. Go cannot synthesize methods at runtime, so engines hand out proxy
// types, hand-written or generated, whose methods call Dispatcher.Invoke.
type Engine interface {
	Materialize(set *capability.Set, d *Dispatcher) (any, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(set *capability.Set, d *Dispatcher) (any, error)

// Materialize calls f.
func (f EngineFunc) Materialize(set *capability.Set, d *Dispatcher) (any, error) {
	return f(set, d)
}

// Factory builds a proxy value around a dispatcher.
type Factory func(d *Dispatcher) any

// ProxyRegistry is an Engine backed by proxy factories registered per
// capability set.
type ProxyRegistry struct {
	mu        sync.RWMutex
	factories map[*capability.Set]Factory
}

// NewProxyRegistry creates an empty proxy registry.
func NewProxyRegistry() *ProxyRegistry {
	return &ProxyRegistry{
		factories: make(map[*capability.Set]Factory),
	}
}

// Register installs the proxy factory for set, replacing any previous one.
func (r *ProxyRegistry) Register(set *capability.Set, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[set] = f
	logging.Debug("ProxyRegistry", "Registered proxy factory for %s", set.Name())
}

// Registered reports whether set has a proxy factory.
func (r *ProxyRegistry) Registered(set *capability.Set) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[set]
	return ok
}

// Materialize builds the proxy for set around d.
func (r *ProxyRegistry) Materialize(set *capability.Set, d *Dispatcher) (any, error) {
	r.mu.RLock()
	f, ok := r.factories[set]
	r.mu.RUnlock()

	if !ok {
		return nil, &BindingError{Kind: ErrNoProxy, Set: set.Name()}
	}
	return f(d), nil
}

var (
	sharedMu     sync.Mutex
	sharedEngine Engine
)

// SharedEngine returns the process-wide engine used by builders created
// without WithEngine, creating an empty ProxyRegistry on first use.
func SharedEngine() Engine {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if sharedEngine == nil {
		sharedEngine = NewProxyRegistry()
	}
	return sharedEngine
}

// SetSharedEngine replaces the process-wide engine. Passing nil resets it so
// the next SharedEngine call creates a fresh registry.
func SetSharedEngine(e Engine) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	sharedEngine = e
}

// RegisterProxy installs a proxy factory on the shared engine. It returns
// false, registering nothing, when the shared engine is not a *ProxyRegistry.
func RegisterProxy(set *capability.Set, f Factory) bool {
	reg, ok := SharedEngine().(*ProxyRegistry)
	if !ok {
		return false
	}
	reg.Register(set, f)
	return true
}
