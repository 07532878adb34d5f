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
	"fmt"
	"reflect"
	"sync"

	"dirpx.dev/dmx/apis"
	"dirpx.dev/dmx/callable"
	dmxerrors "dirpx.dev/dmx/errors"
	"dirpx.dev/dmx/extension"
)

// Object gives a host struct dynamic members. Hosts embed *Object and bind
// it to themselves:
//
//	type Greeter struct {
//	    *dmx.Object
//	    Name string
//	}
//
//	g := &Greeter{Name: "ann"}
//	g.Object = dmx.NewObject(g)
//
// Member access first consults the host's exported fields and methods, then
// the registry under the host's owner type.
type Object struct {
	self any
	dsp  apis.Dispatcher
	res  apis.Resolver

	// mu guards attrs.
	mu sync.RWMutex
	// attrs holds ad-hoc instance attributes written with Set.
	attrs map[string]any
}

// Ensure Object implements apis.Target.
var _ apis.Target = (*Object)(nil)

// ObjectOption configures an Object.
type ObjectOption func(*Object)

// WithDispatcher binds the object to d instead of the global dispatcher.
func WithDispatcher(d apis.Dispatcher) ObjectOption {
	return func(o *Object) { o.dsp = d }
}

// WithResolver makes Extend use r instead of the global resolver.
func WithResolver(r apis.Resolver) ObjectOption {
	return func(o *Object) { o.res = r }
}

// NewObject binds a new Object to self. A nil self makes the object its own
// host.
func NewObject(self any, opts ...ObjectOption) *Object {
	o := &Object{self: self}
	for _, opt := range opts {
		opt(o)
	}
	if o.self == nil {
		o.self = o
	}
	return o
}

func (o *Object) dispatcher() apis.Dispatcher {
	if o.dsp != nil {
		return o.dsp
	}
	return Dispatcher()
}

func (o *Object) resolver() apis.Resolver {
	if o.res != nil {
		return o.res
	}
	return Resolver()
}

// Self returns the host the object is bound to.
func (o *Object) Self() any { return o.self }

// Owner returns the owner type dynamic members are registered under. It is
// nil when the host cannot be resolved to an owner.
func (o *Object) Owner() reflect.Type {
	t, _ := o.dispatcher().Owner(o.self)
	return t
}

// Get reads name: an exported field of the host, an ad-hoc attribute, or a
// dynamic property, in that order.
func (o *Object) Get(name string) (any, error) {
	if f, ok := o.field(name); ok {
		return f.Interface(), nil
	}
	o.mu.RLock()
	v, ok := o.attrs[name]
	o.mu.RUnlock()
	if ok {
		return v, nil
	}
	return o.dispatcher().Get(o.self, name)
}

// Set writes name in the order Get reads it: an exported field of the host,
// an existing ad-hoc attribute, a registered dynamic property (replaced with
// the literal v), or else a new ad-hoc attribute. Set never registers a new
// dynamic property.
func (o *Object) Set(name string, v any) error {
	if f, ok := o.field(name); ok {
		return assign(f, name, v)
	}
	o.mu.Lock()
	if _, ok := o.attrs[name]; ok {
		o.attrs[name] = v
		o.mu.Unlock()
		return nil
	}
	o.mu.Unlock()

	ok, err := o.dispatcher().Set(o.self, name, v)
	if err != nil || ok {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.attrs == nil {
		o.attrs = make(map[string]any)
	}
	o.attrs[name] = v
	return nil
}

// Call invokes name: an exported method of the host, or a dynamic method.
func (o *Object) Call(name string, args ...any) (any, error) {
	if m, ok := o.method(name); ok {
		fn, err := callable.Of(m.Interface())
		if err != nil {
			return nil, err
		}
		return fn(nil, args...)
	}
	return o.dispatcher().Call(o.self, name, args...)
}

// Invoke runs fn bound to the host, memoizing the result when asked.
func (o *Object) Invoke(fn any, memoize bool, args ...any) (any, error) {
	return o.dispatcher().Invoke(o.self, fn, memoize, args...)
}

// Extend resolves src to an extension and runs it against the object.
// It returns the object for chaining.
func (o *Object) Extend(src any) (*Object, error) {
	if err := extension.Load(o.resolver(), o, src); err != nil {
		return nil, err
	}
	return o, nil
}

// AddProperty registers a dynamic property under the host's owner type.
func (o *Object) AddProperty(names []string, value any, memoize bool) {
	o.registry().AddProperty(o.Owner(), names, value, memoize)
}

// AddMethod registers a dynamic method under the host's owner type.
func (o *Object) AddMethod(names []string, fn apis.Callable, memoize, static bool) {
	o.registry().AddMethod(o.Owner(), names, fn, memoize, static)
}

// HasProperty reports whether name is a dynamic property of the owner type.
// Native fields and ad-hoc attributes are not reported.
func (o *Object) HasProperty(name string) bool {
	return o.registry().HasProperty(o.Owner(), name)
}

// HasMethod reports whether name is a dynamic method of the owner type.
func (o *Object) HasMethod(name string) bool {
	return o.registry().HasMethod(o.Owner(), name)
}

// Property returns the descriptor of a dynamic property.
func (o *Object) Property(name string) (apis.PropertyDescriptor, bool) {
	return o.registry().Property(o.Owner(), name)
}

// Method returns the descriptor of a dynamic method.
func (o *Object) Method(name string) (apis.MethodDescriptor, bool) {
	return o.registry().Method(o.Owner(), name)
}

// RemoveProperty removes a dynamic property. Absent names are ignored.
func (o *Object) RemoveProperty(name string) {
	o.registry().RemoveProperty(o.Owner(), name)
}

// RemoveMethod removes a dynamic method. Absent names are ignored.
func (o *Object) RemoveMethod(name string) {
	o.registry().RemoveMethod(o.Owner(), name)
}

// ClearProperties removes every dynamic property of the owner type.
func (o *Object) ClearProperties() {
	o.registry().ClearProperties(o.Owner())
}

// ClearMethods removes every dynamic method of the owner type.
func (o *Object) ClearMethods() {
	o.registry().ClearMethods(o.Owner())
}

func (o *Object) registry() apis.Registry {
	return o.dispatcher().Registry()
}

var (
	objectType    = reflect.TypeOf(Object{})
	objectPtrType = reflect.TypeOf((*Object)(nil))

	// objectMethods are promoted into every host; they are never treated as
	// native host methods.
	objectMethods = func() map[string]struct{} {
		m := make(map[string]struct{}, objectPtrType.NumMethod())
		for i := 0; i < objectPtrType.NumMethod(); i++ {
			m[objectPtrType.Method(i).Name] = struct{}{}
		}
		return m
	}()
)

// field returns the exported host field name, if any.
func (o *Object) field(name string) (reflect.Value, bool) {
	v := reflect.ValueOf(o.self)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct || v.Type() == objectType {
		return reflect.Value{}, false
	}

	sf, ok := v.Type().FieldByName(name)
	if !ok || !sf.IsExported() || sf.Type == objectType || sf.Type == objectPtrType {
		return reflect.Value{}, false
	}
	f, err := v.FieldByIndexErr(sf.Index)
	if err != nil {
		return reflect.Value{}, false
	}
	return f, true
}

// method returns the exported host method name, if any.
func (o *Object) method(name string) (reflect.Value, bool) {
	if _, ok := objectMethods[name]; ok {
		return reflect.Value{}, false
	}
	m := reflect.ValueOf(o.self).MethodByName(name)
	return m, m.IsValid()
}

// assign stores v in the field f.
func assign(f reflect.Value, name string, v any) error {
	if !f.CanSet() {
		return fmt.Errorf("%w: %s is not settable", dmxerrors.ErrUnassignable, name)
	}
	if v == nil {
		f.Set(reflect.Zero(f.Type()))
		return nil
	}

	rv := reflect.ValueOf(v)
	switch {
	case rv.Type().AssignableTo(f.Type()):
		f.Set(rv)
	case isNumber(rv.Kind()) && isNumber(f.Kind()):
		f.Set(rv.Convert(f.Type()))
	case rv.Kind() == f.Kind() && rv.Type().ConvertibleTo(f.Type()):
		f.Set(rv.Convert(f.Type()))
	default:
		return fmt.Errorf("%w: cannot assign %T to %s (%s)", dmxerrors.ErrUnassignable, v, name, f.Type())
	}
	return nil
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
