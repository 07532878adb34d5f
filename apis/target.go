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

// Target is what an Extension receives: the instance being extended and the
// mutators of its owner type.
type Target interface {
	// Self returns the instance being extended.
	Self() any
	// Owner returns the owner type members are installed under.
	Owner() reflect.Type
	// AddProperty installs dynamic properties on the owner type.
	AddProperty(names []string, value any, memoize bool)
	// AddMethod installs dynamic methods on the owner type.
	AddMethod(names []string, fn Callable, memoize, static bool)
}

// Extension installs a batch of dynamic members on a Target.
type Extension func(t Target) error

// Extender is implemented by values that carry their own installation logic.
type Extender interface {
	Extend(t Target) error
}
