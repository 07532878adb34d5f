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

// Dispatcher routes access to members a type does not natively define
// through a Registry, binding the receiver and applying memoization.
type Dispatcher interface {
	// Get reads a dynamic property of self.
	Get(self any, name string) (any, error)
	// Set replaces a registered dynamic property of self with a literal.
	// It reports false when name is not a dynamic property of self's owner;
	// the caller is then responsible for ordinary assignment.
	Set(self any, name string, value any) (bool, error)
	// Call invokes a dynamic method on self.
	Call(self any, name string, args ...any) (any, error)
	// CallStatic invokes a static dynamic method without a receiver.
	CallStatic(owner reflect.Type, name string, args ...any) (any, error)
	// Invoke runs fn bound to self through the same memoization path. fn is
	// anything the callable package can adapt.
	Invoke(self any, fn any, memoize bool, args ...any) (any, error)

	// Owner resolves the owner type of self.
	Owner(self any) (reflect.Type, error)
	// Registry returns the registry consulted by the dispatcher.
	Registry() Registry
	// Cache returns the result cache, creating the default one if needed.
	Cache() Cache
	// SetCache injects a result cache. A nil cache restores lazy creation.
	SetCache(c Cache)
}
