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

package strategy

import (
	"reflect"

	"dirpx.dev/dmx/apis"
)

// NewCallableStrategy creates a strategy that accepts sources which already
// are extensions: apis.Extension, func(apis.Target) error, func(apis.Target)
// and apis.Extender.
func NewCallableStrategy() apis.Strategy {
	return callableStrategy{}
}

// callableStrategy uses directly callable sources as they are.
type callableStrategy struct{}

// Ensure callableStrategy implements apis.Strategy.
var _ apis.Strategy = callableStrategy{}

// TryResolve handles every callable shape; a nil func is handled and
// rejected.
func (callableStrategy) TryResolve(src any) (apis.Extension, bool, error) {
	switch f := src.(type) {
	case apis.Extension:
		return f, true, nilFunc(src, f == nil)
	case func(apis.Target) error:
		return f, true, nilFunc(src, f == nil)
	case func(apis.Target):
		if f == nil {
			return nil, true, nilFunc(src, true)
		}
		return func(t apis.Target) error {
			f(t)
			return nil
		}, true, nil
	case apis.Extender:
		if isNilPointer(f) {
			return nil, true, nilFunc(src, true)
		}
		return f.Extend, true, nil
	default:
		return nil, false, nil
	}
}

// isNilPointer reports whether v holds a typed nil of a pointer-shaped kind.
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
