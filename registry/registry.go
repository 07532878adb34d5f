/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/dmx/apis"
	"dirpx.dev/dmx/callable"
)

// New constructs an empty Registry.
func New() apis.Registry {
	return &registry{
		props:   make(map[reflect.Type]map[string]apis.PropertyDescriptor),
		methods: make(map[reflect.Type]map[string]apis.MethodDescriptor),
	}
}

// seq hands out registration identities. It is process-wide so that IDs stay
// unique across registries (memo fingerprints may outlive a registry swap).
var seq atomic.Uint64

// registry is a map-of-maps Registry guarded by a single RWMutex.
type registry struct {
	// mu guards props and methods.
	mu sync.RWMutex
	// props maps owner type to its dynamic properties.
	props map[reflect.Type]map[string]apis.PropertyDescriptor
	// methods maps owner type to its dynamic methods.
	methods map[reflect.Type]map[string]apis.MethodDescriptor
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// AddProperty installs one descriptor per name. A func value is adapted to
// apis.Callable; if it cannot be adapted it is stored as a literal.
func (r *registry) AddProperty(owner reflect.Type, names []string, value any, memoize bool) {
	if owner == nil || len(names) == 0 {
		return
	}
	if callable.IsCallable(value) {
		if fn, err := callable.Of(value); err == nil {
			value = fn
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.props[owner]
	if m == nil {
		m = make(map[string]apis.PropertyDescriptor, len(names))
		r.props[owner] = m
	}
	for _, name := range names {
		m[name] = apis.PropertyDescriptor{
			Name:    name,
			Factory: value,
			Memoize: memoize,
			ID:      seq.Add(1),
		}
	}
}

// AddMethod installs one descriptor per name.
func (r *registry) AddMethod(owner reflect.Type, names []string, fn apis.Callable, memoize, static bool) {
	if owner == nil || fn == nil || len(names) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.methods[owner]
	if m == nil {
		m = make(map[string]apis.MethodDescriptor, len(names))
		r.methods[owner] = m
	}
	for _, name := range names {
		m[name] = apis.MethodDescriptor{
			Name:    name,
			Factory: fn,
			Memoize: memoize,
			Static:  static,
			ID:      seq.Add(1),
		}
	}
}

// HasProperty reports whether owner has a dynamic property name.
func (r *registry) HasProperty(owner reflect.Type, name string) bool {
	_, ok := r.Property(owner, name)
	return ok
}

// HasMethod reports whether owner has a dynamic method name.
func (r *registry) HasMethod(owner reflect.Type, name string) bool {
	_, ok := r.Method(owner, name)
	return ok
}

// Property returns the descriptor of a dynamic property.
func (r *registry) Property(owner reflect.Type, name string) (apis.PropertyDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.props[owner][name]
	return d, ok
}

// Method returns the descriptor of a dynamic method.
func (r *registry) Method(owner reflect.Type, name string) (apis.MethodDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.methods[owner][name]
	return d, ok
}

// SetProperty replaces an existing property with a literal descriptor.
func (r *registry) SetProperty(owner reflect.Type, name string, value any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.props[owner]
	if _, ok := m[name]; !ok {
		return false
	}
	m[name] = apis.PropertyDescriptor{
		Name:    name,
		Factory: value,
		ID:      seq.Add(1),
	}
	return true
}

// RemoveProperty removes a property. Removing an absent name is a no-op.
func (r *registry) RemoveProperty(owner reflect.Type, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.props[owner], name)
}

// RemoveMethod removes a method. Removing an absent name is a no-op.
func (r *registry) RemoveMethod(owner reflect.Type, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.methods[owner], name)
}

// ClearProperties drops every property of owner.
func (r *registry) ClearProperties(owner reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.props, owner)
}

// ClearMethods drops every method of owner.
func (r *registry) ClearMethods(owner reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.methods, owner)
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]apis.Entry, 0, r.countLocked())
	for owner, m := range r.props {
		for _, d := range m {
			d := d
			entries = append(entries, apis.Entry{Owner: owner, Property: &d})
		}
	}
	for owner, m := range r.methods {
		for _, d := range m {
			d := d
			entries = append(entries, apis.Entry{Owner: owner, Method: &d})
		}
	}
	return entries
}

// Count returns the number of registered descriptors.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.countLocked()
}

func (r *registry) countLocked() int {
	n := 0
	for _, m := range r.props {
		n += len(m)
	}
	for _, m := range r.methods {
		n += len(m)
	}
	return n
}

// Reset clears all owners.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.props = make(map[reflect.Type]map[string]apis.PropertyDescriptor)
	r.methods = make(map[reflect.Type]map[string]apis.MethodDescriptor)
}
