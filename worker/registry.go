package worker

import (
	"fmt"

	"github.com/alecthomas/types/optional"

	"github.com/block/taskworker/externaltask"
)

// Discovered is a registered handler and its descriptor, if it has one.
type Discovered struct {
	Name       string
	Handler    externaltask.Handler
	Descriptor optional.Option[Descriptor]
}

// HandlerSource enumerates the handlers of a process.
type HandlerSource interface {
	Discover() []Discovered
}

// Registree is a function that registers handlers or descriptors with a [Registry].
type Registree func(r *Registry)

// Registry holds the handlers of a worker and the descriptors attached to them.
//
// Registration happens once during startup; a Registry is not safe for
// concurrent registration.
type Registry struct {
	names       []string
	handlers    map[string]externaltask.Handler
	descriptors map[string]Descriptor
}

var _ HandlerSource = (*Registry)(nil)

// NewRegistry creates a registry populated by registrees.
func NewRegistry(registrees ...Registree) *Registry {
	r := &Registry{
		handlers:    map[string]externaltask.Handler{},
		descriptors: map[string]Descriptor{},
	}
	r.Register(registrees...)
	return r
}

// Register applies registrees to the registry.
func (r *Registry) Register(registrees ...Registree) {
	for _, registree := range registrees {
		registree(r)
	}
}

// Handler registers a handler under name.
//
// Panics if a handler is already registered under the same name.
func Handler(name string, handler externaltask.Handler) Registree {
	return func(r *Registry) {
		if _, ok := r.handlers[name]; ok {
			panic(fmt.Sprintf("handler %q is already registered", name))
		}
		r.names = append(r.names, name)
		r.handlers[name] = handler
	}
}

// Describe attaches a subscription descriptor to the handler registered under name.
//
// Panics if no handler has been registered under name yet.
func Describe(name string, descriptor Descriptor) Registree {
	return func(r *Registry) {
		if _, ok := r.handlers[name]; !ok {
			panic(fmt.Sprintf("cannot describe %q, no handler is registered under that name", name))
		}
		r.descriptors[name] = descriptor
	}
}

// Subscription registers a handler together with its descriptor.
func Subscription(name string, descriptor Descriptor, handler externaltask.Handler) Registree {
	return func(r *Registry) {
		Handler(name, handler)(r)
		Describe(name, descriptor)(r)
	}
}

// Discover returns every handler in registration order.
func (r *Registry) Discover() []Discovered {
	out := make([]Discovered, 0, len(r.names))
	for _, name := range r.names {
		discovered := Discovered{Name: name, Handler: r.handlers[name]}
		if descriptor, ok := r.descriptors[name]; ok {
			discovered.Descriptor = optional.Some(descriptor)
		}
		out = append(out, discovered)
	}
	return out
}
