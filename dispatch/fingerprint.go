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

package dispatch

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/mitchellh/hashstructure/v2"

	"dirpx.dev/dmx/apis"
	uref "dirpx.dev/dmx/utils/reflect"
)

// member renders the "kind:name#id" fingerprint segment.
func member(kind apis.MemberKind, name string, id uint64) string {
	return kind.String() + ":" + name + "#" + strconv.FormatUint(id, 10)
}

// fingerprint builds the memo key of one evaluation.
func fingerprint(owner reflect.Type, m string, self any, args []any) string {
	var b strings.Builder
	b.WriteString(uref.Key(owner))
	b.WriteByte('|')
	b.WriteString(m)
	b.WriteByte('|')
	b.WriteString(receiverKey(self))
	for _, a := range args {
		b.WriteByte('|')
		b.WriteString(valueKey(a))
	}
	return b.String()
}

// receiverKey identifies the instance a member was reached through.
// Static calls have no receiver and yield "".
func receiverKey(self any) string {
	if self == nil {
		return ""
	}
	if id, ok := self.(apis.Identifier); ok {
		if s := id.EntityID(); s != "" {
			return "id:" + s
		}
	}
	rv := reflect.ValueOf(self)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return "at:" + pointerKey(rv)
	default:
		return "val:" + valueKey(self)
	}
}

// dump renders values with every field, unexported ones included, and
// without addresses, so equal content yields equal text.
var dump = spew.ConfigState{
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	SpewKeys:                true,
}

// valueKey derives a stable key for an argument or a value receiver.
func valueKey(v any) string {
	if v == nil {
		return "nil"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return pointerKey(rv)
	}
	if opaque(rv.Type(), map[reflect.Type]bool{}) {
		return fmt.Sprintf("%T=%s", v, dump.Sdump(v))
	}
	h, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
	if err != nil {
		return fmt.Sprintf("%T=%s", v, dump.Sdump(v))
	}
	return fmt.Sprintf("%T#%x", v, h)
}

// pointerKey renders the identity of a pointer-shaped value.
func pointerKey(rv reflect.Value) string {
	return fmt.Sprintf("%s@%x", rv.Type(), rv.Pointer())
}

// opaque reports whether hashstructure could miss part of a value of type t:
// an unexported field at any depth, or an interface whose dynamic content
// is unknown until run time.
func opaque(t reflect.Type, seen map[reflect.Type]bool) bool {
	if seen[t] {
		return false
	}
	seen[t] = true

	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return opaque(t.Elem(), seen)
	case reflect.Map:
		return opaque(t.Key(), seen) || opaque(t.Elem(), seen)
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() || opaque(f.Type, seen) {
				return true
			}
		}
	case reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}
