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

package dmx

import (
	"reflect"

	"dirpx.dev/dmx/apis"
	"dirpx.dev/dmx/callable"
	"dirpx.dev/dmx/extension"
	uref "dirpx.dev/dmx/utils/reflect"
)

// Option tunes a member registered through the type-level API.
type Option func(*memberOptions)

type memberOptions struct {
	memoize bool
	static  bool
	aliases []string
}

// Memoize caches results per receiver and arguments. Two hosts that are
// distinct receivers each evaluate the member once and may observe different
// memoized values; hosts implementing apis.Identifier with the same EntityID
// share them.
func Memoize() Option { return func(o *memberOptions) { o.memoize = true } }

// Static allows receiver-less calls of a method.
func Static() Option { return func(o *memberOptions) { o.static = true } }

// Aliases registers the member under additional names.
func Aliases(names ...string) Option {
	return func(o *memberOptions) { o.aliases = append(o.aliases, names...) }
}

func apply(name string, opts []Option) ([]string, memberOptions) {
	var mo memberOptions
	for _, opt := range opts {
		opt(&mo)
	}
	return append([]string{name}, mo.aliases...), mo
}

// Func adapts a plain Go func to apis.Callable. It panics when fn is not a
// func with supported results.
func Func(fn any) apis.Callable {
	return callable.MustOf(fn)
}

// OwnerOf returns the owner type of T. It is nil when T has more pointer
// indirection than the configuration allows.
func OwnerOf[T any]() reflect.Type {
	t, err := uref.Normalize(reflect.TypeOf((*T)(nil)).Elem(), Config())
	if err != nil {
		return nil
	}
	return t
}

// AddProperty registers a dynamic property on T. Func values are invoked on
// read; anything else is returned as is.
func AddProperty[T any](name string, value any, opts ...Option) {
	names, mo := apply(name, opts)
	Registry().AddProperty(OwnerOf[T](), names, value, mo.memoize)
}

// AddMethod registers a dynamic method on T. fn is adapted with Func rules.
func AddMethod[T any](name string, fn any, opts ...Option) error {
	c, err := callable.Of(fn)
	if err != nil {
		return err
	}
	names, mo := apply(name, opts)
	Registry().AddMethod(OwnerOf[T](), names, c, mo.memoize, mo.static)
	return nil
}

// HasProperty reports whether T has the dynamic property name.
func HasProperty[T any](name string) bool {
	return Registry().HasProperty(OwnerOf[T](), name)
}

// HasMethod reports whether T has the dynamic method name.
func HasMethod[T any](name string) bool {
	return Registry().HasMethod(OwnerOf[T](), name)
}

// RemoveProperty removes the dynamic property name of T.
func RemoveProperty[T any](name string) {
	Registry().RemoveProperty(OwnerOf[T](), name)
}

// RemoveMethod removes the dynamic method name of T.
func RemoveMethod[T any](name string) {
	Registry().RemoveMethod(OwnerOf[T](), name)
}

// ClearProperties removes every dynamic property of T.
func ClearProperties[T any]() {
	Registry().ClearProperties(OwnerOf[T]())
}

// ClearMethods removes every dynamic method of T.
func ClearMethods[T any]() {
	Registry().ClearMethods(OwnerOf[T]())
}

// CallStatic calls the static dynamic method name of T.
func CallStatic[T any](name string, args ...any) (any, error) {
	return Dispatcher().CallStatic(reflect.TypeOf((*T)(nil)).Elem(), name, args...)
}

// CallStaticType calls the static dynamic method name of the owner t.
func CallStaticType(t reflect.Type, name string, args ...any) (any, error) {
	return Dispatcher().CallStatic(t, name, args...)
}

// Extend runs the extension resolved from src against T itself, with no
// instance at hand.
func Extend[T any](src any) error {
	return extension.Load(Resolver(), typeTarget{owner: OwnerOf[T]()}, src)
}

// typeTarget is an apis.Target for an owner type without an instance.
type typeTarget struct {
	owner reflect.Type
}

func (t typeTarget) Self() any           { return nil }
func (t typeTarget) Owner() reflect.Type { return t.owner }

func (t typeTarget) AddProperty(names []string, value any, memoize bool) {
	Registry().AddProperty(t.owner, names, value, memoize)
}

func (t typeTarget) AddMethod(names []string, fn apis.Callable, memoize, static bool) {
	Registry().AddMethod(t.owner, names, fn, memoize, static)
}
