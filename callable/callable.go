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

// Package callable adapts ordinary Go funcs to apis.Callable.
//
// Dynamic members are stored as apis.Callable so the dispatcher has one
// calling convention. Of lets hosts register any func instead:
//
//	upper := callable.MustOf(strings.ToUpper)            // func(string) string
//	greet := callable.MustOf(func(rx *apis.Receiver, who string) (string, error) {
//	    return fmt.Sprintf("%v greets %s", rx.Self, who), nil
//	})
//
// A leading *apis.Receiver parameter receives the binding (nil when the owner
// is anonymous). Supported results are (), (T), (error) and (T, error).
package callable

import (
	"fmt"
	"reflect"

	"dirpx.dev/dmx/apis"
	dmxerrors "dirpx.dev/dmx/errors"
)

var (
	receiverType = reflect.TypeOf((*apis.Receiver)(nil))
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
)

// Of adapts fn to apis.Callable. It fails with ErrNotCallable when fn is not a
// func or has unsupported results.
func Of(fn any) (apis.Callable, error) {
	switch f := fn.(type) {
	case apis.Callable:
		if f == nil {
			return nil, dmxerrors.ErrNotCallable
		}
		return f, nil
	case func(*apis.Receiver, ...any) (any, error):
		if f == nil {
			return nil, dmxerrors.ErrNotCallable
		}
		return apis.Callable(f), nil
	}

	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("%w: %T", dmxerrors.ErrNotCallable, fn)
	}
	t := v.Type()
	if err := checkResults(t); err != nil {
		return nil, err
	}
	bind := t.NumIn() > 0 && t.In(0) == receiverType

	return func(rx *apis.Receiver, args ...any) (any, error) {
		in, err := arguments(t, bind, rx, args)
		if err != nil {
			return nil, err
		}
		return results(t, v.Call(in))
	}, nil
}

// MustOf is like Of but panics when fn cannot be adapted.
func MustOf(fn any) apis.Callable {
	c, err := Of(fn)
	if err != nil {
		panic(err)
	}
	return c
}

// IsCallable reports whether v is a func value Of would accept.
func IsCallable(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

func checkResults(t reflect.Type) error {
	switch t.NumOut() {
	case 0, 1:
		return nil
	case 2:
		if t.Out(1) == errorType {
			return nil
		}
	}
	return fmt.Errorf("%w: %s has unsupported results", dmxerrors.ErrNotCallable, t)
}

func arguments(t reflect.Type, bind bool, rx *apis.Receiver, args []any) ([]reflect.Value, error) {
	in := make([]reflect.Value, 0, len(args)+1)
	offset := 0
	if bind {
		in = append(in, reflect.ValueOf(rx))
		offset = 1
	}

	fixed := t.NumIn() - offset
	variadic := t.IsVariadic()
	if variadic {
		fixed--
	}
	switch {
	case variadic && len(args) < fixed:
		return nil, fmt.Errorf("callable: %s: want at least %d argument(s), got %d", t, fixed, len(args))
	case !variadic && len(args) != fixed:
		return nil, fmt.Errorf("callable: %s: want %d argument(s), got %d", t, fixed, len(args))
	}

	for i, a := range args {
		var pt reflect.Type
		if i < fixed {
			pt = t.In(offset + i)
		} else {
			pt = t.In(t.NumIn() - 1).Elem()
		}
		av, err := convert(a, pt)
		if err != nil {
			return nil, fmt.Errorf("callable: argument %d: %w", i, err)
		}
		in = append(in, av)
	}
	return in, nil
}

// convert coerces a into pt. nil becomes the zero value; numeric kinds
// convert into each other; defined string and bool types convert from their
// underlying kind.
func convert(a any, pt reflect.Type) (reflect.Value, error) {
	if a == nil {
		return reflect.Zero(pt), nil
	}
	av := reflect.ValueOf(a)
	at := av.Type()
	switch {
	case at.AssignableTo(pt):
		return av, nil
	case isNumeric(at.Kind()) && isNumeric(pt.Kind()):
		return av.Convert(pt), nil
	case at.Kind() == pt.Kind() && (pt.Kind() == reflect.String || pt.Kind() == reflect.Bool):
		return av.Convert(pt), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", a, pt)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func results(t reflect.Type, out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if t.Out(0) == errorType {
			return nil, asError(out[0])
		}
		return out[0].Interface(), nil
	default:
		return out[0].Interface(), asError(out[1])
	}
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}
