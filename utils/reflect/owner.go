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

package reflect

import (
	"errors"
	"path"
	"reflect"
	"strings"
	"sync"

	"dirpx.dev/dmx/apis"
	"dirpx.dev/dmx/config"
)

var (
	// ErrReflectNilValue is returned when an owner is requested for a nil value.
	ErrReflectNilValue = errors.New("reflect: nil value has no owner type")
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTooDeep indicates that pointer indirection exceeds MaxUnwrap.
	ErrReflectTooDeep = errors.New("reflect: pointer indirection exceeds MaxUnwrap")
)

// Owner returns the owner type of v according to cfg.
func Owner(v any, cfg apis.Config) (reflect.Type, error) {
	if v == nil {
		return nil, ErrReflectNilValue
	}
	return Normalize(reflect.TypeOf(v), cfg)
}

// Normalize strips pointer indirection so that T, *T and **T map to the same
// owner type. Only pointers are unwrapped: []T and map[K]T are owners of
// their own. Anonymous types are valid owners.
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; t.Kind() == reflect.Ptr; i++ {
		if i == maxUnwrap {
			return nil, ErrReflectTooDeep
		}
		t = t.Elem()
	}
	return t, nil
}

// IsAnonymous reports whether t has no declared name (struct literals,
// reflect.StructOf types, func and container literals).
func IsAnonymous(t reflect.Type) bool {
	return t == nil || t.Name() == ""
}

// Key returns a process-unique textual identity for t, suitable as a cache
// key component: the full package path plus the type name for named types,
// the type literal for anonymous ones.
func Key(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// displayNameCache caches display names by type.
var displayNameCache sync.Map // key: reflect.Type, val: string

// DisplayName returns the human-facing name of an owner. A self implementing
// apis.Namer names itself; otherwise the name is derived as "pkg.Type" with
// generic instantiation parameters stripped.
func DisplayName(self any, t reflect.Type) string {
	if n, ok := self.(apis.Namer); ok {
		return n.EntityName()
	}
	if t == nil {
		return "<nil>"
	}
	if v, ok := displayNameCache.Load(t); ok {
		return v.(string)
	}

	name := t.String()
	if t.Name() != "" {
		name = stripTypeParams(t.Name())
		if p := t.PkgPath(); p != "" {
			name = path.Base(p) + "." + name
		}
	}

	displayNameCache.Store(t, name)
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
