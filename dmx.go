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
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/dmx/apis"
	"dirpx.dev/dmx/builder"
	"dirpx.dev/dmx/config"
)

// init publishes the default snapshot.
func init() {
	s := &state{cfg: config.DefaultConfig(), bld: builder.New()}
	s.reg = s.bld.BuildRegistry(s.cfg, nil, nil)
	s.res = s.bld.BuildResolver(s.cfg, nil, nil)
	s.dsp = s.bld.BuildDispatcher(s.cfg, s.reg, nil, nil)
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("dmx: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("dmx: builder returned nil resolver")
	// ErrNilDispatcher is returned when a builder returns a nil dispatcher.
	ErrNilDispatcher = errors.New("dmx: builder returned nil dispatcher")
)

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global dmx state.
var st atomic.Pointer[state]

// state is the global dmx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers copy the current state, change it and swap.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the extension context passed to the builder.
	ext any
	// reg holds dynamic members of every owner type.
	reg apis.Registry
	// res resolves extension sources.
	res apis.Resolver
	// cache is the injected result cache; nil means lazy default.
	cache apis.Cache
	// dsp dispatches over reg; always rebuilt with the snapshot.
	dsp apis.Dispatcher
	// bld builds reg, res and dsp.
	bld apis.Builder
	// preg indicates whether reg is pinned (kept across rebuilds).
	preg bool
	// pres indicates whether res is pinned (kept across rebuilds).
	pres bool
}

// clone returns a shallow copy of s for a writer to modify.
func (s *state) clone() *state {
	c := *s
	return &c
}

// rebuild rebuilds the unpinned layers of next from old and publishes next.
// Must be called with buildMu held.
func rebuild(old, next *state) {
	if !next.preg {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
	}
	if !next.pres {
		next.res = next.bld.BuildResolver(next.cfg, old.res, next.ext)
	}
	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}
	redispatch(next)
}

// redispatch rebuilds the dispatcher of next and publishes next.
// Must be called with buildMu held.
func redispatch(next *state) {
	next.dsp = next.bld.BuildDispatcher(next.cfg, next.reg, next.cache, next.ext)
	if next.dsp == nil {
		panic(ErrNilDispatcher)
	}
	st.Store(next)
}

// SetAll explicitly sets all global dmx state components.
//
// Nil arguments leave the corresponding component unchanged, except for ext
// which is always replaced. A non-nil reg or res is pinned; a nil one is
// rebuilt and unpinned.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, c apis.Cache, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := old.clone()
	if cfg != nil {
		next.cfg = *cfg
	}
	next.ext = ext
	if bld != nil {
		next.bld = bld
	}
	if c != nil {
		next.cache = c
	}
	next.reg, next.preg = reg, reg != nil
	next.res, next.pres = res, res != nil

	rebuild(old, next)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration and rebuilds unpinned layers.
//
// Rebuilding drops memoized results: the default cache is recreated and
// migrated members get new IDs. A cache injected with SetCache is kept.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := old.clone()
	next.cfg = cfg
	rebuild(old, next)
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry installs and pins reg. A nil reg is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	next := st.Load().clone()
	next.reg, next.preg = reg, true
	redispatch(next)
}

// Resolver returns the global extension resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver installs and pins res. A nil res is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	next := st.Load().clone()
	next.res, next.pres = res, true
	st.Store(next)
}

// Cache returns the result cache of the global dispatcher.
func Cache() apis.Cache {
	return st.Load().dsp.Cache()
}

// SetCache injects the global result cache. A nil cache restores the lazily
// created default.
func SetCache(c apis.Cache) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := st.Load().clone()
	next.cache = c
	redispatch(next)
}

// Dispatcher returns the global dispatcher.
func Dispatcher() apis.Dispatcher {
	return st.Load().dsp
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder installs b and rebuilds unpinned layers with it.
//
// Rebuilding drops memoized results: the default cache is recreated and
// migrated members get new IDs. A cache injected with SetCache is kept.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := old.clone()
	next.bld = b
	rebuild(old, next)
}

// SetExt replaces the extension context and rebuilds unpinned layers.
//
// Rebuilding drops memoized results: the default cache is recreated and
// migrated members get new IDs. A cache injected with SetCache is kept.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := old.clone()
	next.ext = ext
	rebuild(old, next)
}

// ExtAs returns the global extension context as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned reports whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry keeps the current registry across rebuilds.
func PinRegistry() { pin(func(s *state) { s.preg = true }) }

// UnpinRegistry lets rebuilds replace the registry again.
func UnpinRegistry() { pin(func(s *state) { s.preg = false }) }

// IsResolverPinned reports whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver keeps the current resolver across rebuilds.
func PinResolver() { pin(func(s *state) { s.pres = true }) }

// UnpinResolver lets rebuilds replace the resolver again.
func UnpinResolver() { pin(func(s *state) { s.pres = false }) }

// pin publishes a copy of the snapshot with its pin flags changed by set.
func pin(set func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := st.Load().clone()
	set(next)
	st.Store(next)
}
