// Package di provides a minimal service container used to wire modules
// together at startup. Services are registered under string tokens and
// resolved lazily; factories run at most once.
package di

import (
	"fmt"
	"sync"
)

// ServiceRegistry is the read side of the container.
type ServiceRegistry interface {
	// Get returns the service registered under name, building it from its
	// factory on first access. It panics if nothing is registered under name;
	// wiring mistakes are programmer errors and should fail loudly at startup.
	Get(name string) any
}

// Container registers and resolves services.
type Container interface {
	ServiceRegistry
	Register(name string, service any)
	RegisterFactory(name string, factory func(ServiceRegistry) any)
}

type container struct {
	mu        sync.Mutex
	services  map[string]any
	factories map[string]func(ServiceRegistry) any
}

// NewContainer creates an empty container.
func NewContainer() Container {
	return &container{
		services:  make(map[string]any),
		factories: make(map[string]func(ServiceRegistry) any),
	}
}

func (c *container) Register(name string, service any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[name] = service
}

func (c *container) RegisterFactory(name string, factory func(ServiceRegistry) any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[name] = factory
}

func (c *container) Get(name string) any {
	c.mu.Lock()
	if svc, ok := c.services[name]; ok {
		c.mu.Unlock()
		return svc
	}
	factory, ok := c.factories[name]
	c.mu.Unlock()
	if !ok {
		panic(fmt.Sprintf("di: no service registered under %q", name))
	}

	svc := factory(c)

	c.mu.Lock()
	c.services[name] = svc
	c.mu.Unlock()
	return svc
}

// Token is a typed registration key. The type parameter carries the service
// type so lookups stay type-safe without casts at call sites.
type Token[T any] struct {
	name string
}

// NewToken creates a token under the given unique name.
func NewToken[T any](name string) Token[T] {
	return Token[T]{name: name}
}

func (t Token[T]) String() string {
	return t.name
}

// RegisterToken registers a typed factory under token.
func RegisterToken[T any](c Container, token Token[T], factory func(ServiceRegistry) T) {
	c.RegisterFactory(token.name, func(sr ServiceRegistry) any {
		return factory(sr)
	})
}

// GetToken returns the service registered under token.
func GetToken[T any](sr ServiceRegistry, token Token[T]) T {
	svc, ok := sr.Get(token.name).(T)
	if !ok {
		panic(fmt.Sprintf("di: service %q has unexpected type %T", token.name, sr.Get(token.name)))
	}
	return svc
}
