// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package scope

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// A Constructor initializes a newly-allocated Scope for a registered class.
// It may add prescribed attributes to s, including attributes that alias
// caller-owned storage via Datum.SetStorage.
type Constructor func(s *Scope) error

// A Registry maps class names to constructors. A zero Registry is empty and
// ready for use. It is safe for concurrent use by multiple goroutines.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// Default is the process-wide registry. It has DefaultClass registered.
var Default = new(Registry)

func init() { Default.MustRegister(DefaultClass, nil) }

// Register adds a constructor for the named class. A nil constructor yields a
// plain empty scope. It is an error to register the same name twice.
func (r *Registry) Register(name string, ctor Constructor) error {
	if name == "" {
		return fmt.Errorf("empty class name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ctors[name]; ok {
		return fmt.Errorf("class %q is already registered", name)
	}
	if r.ctors == nil {
		r.ctors = make(map[string]Constructor)
	}
	if ctor == nil {
		ctor = func(*Scope) error { return nil }
	}
	r.ctors[name] = ctor
	return nil
}

// MustRegister calls Register and panics if it fails.
func (r *Registry) MustRegister(name string, ctor Constructor) {
	if err := r.Register(name, ctor); err != nil {
		panic(err)
	}
}

// Has reports whether name is registered in r.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[name]
	return ok
}

// Names returns the registered class names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.ctors))
}

// New constructs a new Scope of the named class. It reports an error if the
// class is not registered or its constructor fails.
func (r *Registry) New(name string) (*Scope, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("class %q is not registered", name)
	}
	s := newClass(name)
	if err := ctor(s); err != nil {
		return nil, fmt.Errorf("construct %q: %w", name, err)
	}
	return s, nil
}
