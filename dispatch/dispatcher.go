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
	"reflect"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"dirpx.dev/dmx/apis"
	"dirpx.dev/dmx/cache"
	"dirpx.dev/dmx/callable"
	dmxerrors "dirpx.dev/dmx/errors"
	uref "dirpx.dev/dmx/utils/reflect"
)

// New constructs a Dispatcher over reg. The result cache is created lazily
// from cfg on the first memoized call unless one is injected.
func New(reg apis.Registry, cfg apis.Config, opts ...Option) apis.Dispatcher {
	d := &dispatcher{
		reg:     reg,
		cfg:     cfg,
		factory: cache.New,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// cacheRef boxes an apis.Cache so it can live in an atomic.Pointer.
type cacheRef struct{ c apis.Cache }

// dispatcher implements apis.Dispatcher.
type dispatcher struct {
	reg apis.Registry
	cfg apis.Config

	// cache holds the active result cache; nil until first use.
	cache atomic.Pointer[cacheRef]
	// cacheMu serializes lazy creation.
	cacheMu sync.Mutex
	factory func(apis.Config) (apis.Cache, error)

	group singleflight.Group
}

// Ensure dispatcher implements apis.Dispatcher.
var _ apis.Dispatcher = (*dispatcher)(nil)

// Owner resolves the owner type of self.
func (d *dispatcher) Owner(self any) (reflect.Type, error) {
	if self == nil {
		return nil, dmxerrors.ErrNilReceiver
	}
	return uref.Owner(self, d.cfg)
}

// Registry returns the registry consulted by the dispatcher.
func (d *dispatcher) Registry() apis.Registry { return d.reg }

// Cache returns the result cache, creating it on first use. A factory error
// falls back to an unbounded memory cache.
func (d *dispatcher) Cache() apis.Cache {
	if ref := d.cache.Load(); ref != nil {
		return ref.c
	}

	d.cacheMu.Lock()
	defer d.cacheMu.Unlock()
	if ref := d.cache.Load(); ref != nil {
		return ref.c
	}
	c, err := d.factory(d.cfg)
	if err != nil || c == nil {
		c = cache.NewMemory()
	}
	d.cache.Store(&cacheRef{c: c})
	return c
}

// SetCache injects c. A nil cache restores lazy creation.
func (d *dispatcher) SetCache(c apis.Cache) {
	d.cacheMu.Lock()
	defer d.cacheMu.Unlock()
	if c == nil {
		d.cache.Store(nil)
		return
	}
	d.cache.Store(&cacheRef{c: c})
}

// Get reads a dynamic property of self.
func (d *dispatcher) Get(self any, name string) (any, error) {
	owner, err := d.Owner(self)
	if err != nil {
		return nil, err
	}
	desc, ok := d.reg.Property(owner, name)
	if !ok {
		return nil, dmxerrors.NewUndefinedProperty(uref.DisplayName(self, owner), name)
	}
	fn, ok := desc.Callable()
	if !ok {
		return desc.Factory, nil
	}
	return d.run(self, owner, fn, member(apis.PropertyKind, name, desc.ID), desc.Memoize, nil)
}

// Set replaces a registered dynamic property with a literal. It reports
// false when self's owner has no dynamic property name.
func (d *dispatcher) Set(self any, name string, value any) (bool, error) {
	owner, err := d.Owner(self)
	if err != nil {
		return false, err
	}
	return d.reg.SetProperty(owner, name, value), nil
}

// Call invokes a dynamic method on self.
func (d *dispatcher) Call(self any, name string, args ...any) (any, error) {
	owner, err := d.Owner(self)
	if err != nil {
		return nil, err
	}
	desc, ok := d.reg.Method(owner, name)
	if !ok {
		return nil, dmxerrors.NewUndefinedMethod(uref.DisplayName(self, owner), name)
	}
	return d.run(self, owner, desc.Factory, member(apis.MethodKind, name, desc.ID), desc.Memoize, args)
}

// CallStatic invokes a static dynamic method of owner without a receiver.
// Methods registered without the static flag are reported as undefined.
func (d *dispatcher) CallStatic(owner reflect.Type, name string, args ...any) (any, error) {
	owner, err := uref.Normalize(owner, d.cfg)
	if err != nil {
		return nil, err
	}
	desc, ok := d.reg.Method(owner, name)
	if !ok || !desc.Static {
		return nil, dmxerrors.NewUndefinedStaticMethod(uref.DisplayName(nil, owner), name)
	}
	return d.run(nil, owner, desc.Factory, member(apis.MethodKind, name, desc.ID), desc.Memoize, args)
}

// Invoke runs fn bound to self through the memoization path. The memo
// identity of fn is the code pointer of the func as given, so closures of
// one func literal share memoized results.
func (d *dispatcher) Invoke(self any, fn any, memoize bool, args ...any) (any, error) {
	c, err := callable.Of(fn)
	if err != nil {
		return nil, err
	}
	owner, err := d.Owner(self)
	if err != nil {
		return nil, err
	}
	return d.run(self, owner, c, "invoke:"+pointerKey(reflect.ValueOf(fn)), memoize, args)
}

// run binds fn and evaluates it, consulting the cache when memoize is set.
func (d *dispatcher) run(self any, owner reflect.Type, fn apis.Callable, m string, memoize bool, args []any) (any, error) {
	rx := bind(self, owner)
	if !memoize {
		return fn(rx, args...)
	}

	key := fingerprint(owner, m, self, args)
	c := d.Cache()
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := d.group.Do(key, func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := fn(rx, args...)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	return v, err
}

// bind builds the receiver handed to a callable. Anonymous owners yield nil.
func bind(self any, owner reflect.Type) *apis.Receiver {
	if uref.IsAnonymous(owner) {
		return nil
	}
	return &apis.Receiver{Self: self, Owner: owner}
}
