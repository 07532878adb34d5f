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

import (
	"fmt"
	"reflect"
)

// Receiver is the explicit binding handed to a Callable at call time.
//
// Self is the instance the member was reached through; it is nil for static
// (receiver-less) calls. Owner is the owner type the member was resolved
// against. Callables registered on anonymous owner types are invoked unbound,
// with a nil *Receiver.
type Receiver struct {
	Self  any
	Owner reflect.Type
}

// Callable is the factory signature of dynamic methods and of callable
// dynamic properties. Properties are always called with no args.
type Callable func(rx *Receiver, args ...any) (any, error)

// MemberKind distinguishes properties from methods.
type MemberKind int

const (
	// PropertyKind marks a dynamic property.
	PropertyKind MemberKind = iota
	// MethodKind marks a dynamic method.
	MethodKind
)

// String implements fmt.Stringer.
func (k MemberKind) String() string {
	switch k {
	case PropertyKind:
		return "property"
	case MethodKind:
		return "method"
	default:
		return fmt.Sprintf("MemberKind(%d)", int(k))
	}
}

// PropertyDescriptor is the stored record of one dynamic property.
type PropertyDescriptor struct {
	// Name is the property name.
	Name string
	// Factory is either a literal value or a Callable producing the value.
	Factory any
	// Memoize routes evaluations of a callable Factory through the result cache.
	Memoize bool
	// ID is the registration identity assigned by the registry. It changes
	// every time the name is (re)registered.
	ID uint64
}

// Callable reports whether the property is backed by a Callable.
func (d PropertyDescriptor) Callable() (Callable, bool) {
	fn, ok := d.Factory.(Callable)
	return fn, ok && fn != nil
}

// MethodDescriptor is the stored record of one dynamic method.
type MethodDescriptor struct {
	// Name is the method name.
	Name string
	// Factory is invoked with the caller's argument list.
	Factory Callable
	// Memoize routes invocations through the result cache.
	Memoize bool
	// Static allows receiver-less invocation.
	Static bool
	// ID is the registration identity assigned by the registry.
	ID uint64
}
