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

package apis

import "reflect"

// Registry stores dynamic property and method descriptors partitioned by
// owner type. Names are unique within one owner; adding a name again replaces
// the previous descriptor. Implementations must be safe for concurrent use.
type Registry interface {
	// AddProperty installs one descriptor per name under owner.
	AddProperty(owner reflect.Type, names []string, value any, memoize bool)
	// AddMethod installs one descriptor per name under owner.
	AddMethod(owner reflect.Type, names []string, fn Callable, memoize, static bool)

	// HasProperty reports whether owner has a dynamic property name.
	HasProperty(owner reflect.Type, name string) bool
	// HasMethod reports whether owner has a dynamic method name.
	HasMethod(owner reflect.Type, name string) bool

	// Property returns the descriptor of a dynamic property.
	Property(owner reflect.Type, name string) (PropertyDescriptor, bool)
	// Method returns the descriptor of a dynamic method.
	Method(owner reflect.Type, name string) (MethodDescriptor, bool)

	// SetProperty replaces an existing property with a literal, non-memoized
	// descriptor. It reports false and changes nothing if name is unknown.
	SetProperty(owner reflect.Type, name string, value any) bool

	// RemoveProperty removes a property. Removing an absent name is a no-op.
	RemoveProperty(owner reflect.Type, name string)
	// RemoveMethod removes a method. Removing an absent name is a no-op.
	RemoveMethod(owner reflect.Type, name string)

	// ClearProperties drops every property of owner.
	ClearProperties(owner reflect.Type)
	// ClearMethods drops every method of owner.
	ClearMethods(owner reflect.Type)

	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered descriptors.
	Count() int
	// Reset clears all owners.
	Reset()
}

// Entry is a single descriptor in a Registry snapshot. Exactly one of
// Property and Method is set.
type Entry struct {
	// Owner is the owner type the descriptor is registered under.
	Owner reflect.Type
	// Property is set for property entries.
	Property *PropertyDescriptor
	// Method is set for method entries.
	Method *MethodDescriptor
}
