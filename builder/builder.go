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

package builder

import (
	"log/slog"

	"dirpx.dev/dmx/apis"
	"dirpx.dev/dmx/dispatch"
	"dirpx.dev/dmx/manifest"
	"dirpx.dev/dmx/registry"
	"dirpx.dev/dmx/resolver"
	"dirpx.dev/dmx/strategy"
)

// Ext is the extension context understood by the default builder. Pass it
// (by value or pointer) as the ext argument of the Build* methods.
type Ext struct {
	// Extensions are resolvable by name.
	Extensions map[string]apis.Extension
	// Funcs are the functions manifests may refer to.
	Funcs manifest.Funcs
	// Logger receives manifest loading events. Defaults to slog.Default().
	Logger *slog.Logger
}

// extOf extracts an Ext from an opaque extension context.
func extOf(ext any) Ext {
	switch e := ext.(type) {
	case Ext:
		return e
	case *Ext:
		if e != nil {
			return *e
		}
	}
	return Ext{}
}

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry. If a pre-existing
// registry is provided, its entries are copied into the new registry. Copied
// members get fresh registration identities.
func (b *builder) BuildRegistry(_ apis.Config, preg apis.Registry, _ any) apis.Registry {
	nreg := registry.New()
	if preg != nil {
		for _, e := range preg.Entries() {
			switch {
			case e.Property != nil:
				nreg.AddProperty(e.Owner, []string{e.Property.Name}, e.Property.Factory, e.Property.Memoize)
			case e.Method != nil:
				nreg.AddMethod(e.Owner, []string{e.Method.Name}, e.Method.Factory, e.Method.Memoize, e.Method.Static)
			}
		}
	}
	return nreg
}

// BuildResolver builds the default resolver chain: directly callable sources
// first, then names from the Ext table, then manifest files.
func (b *builder) BuildResolver(_ apis.Config, _ apis.Resolver, ext any) apis.Resolver {
	e := extOf(ext)
	return resolver.New(
		strategy.NewCallableStrategy(),
		strategy.NewNamedStrategy(e.Extensions),
		strategy.NewManifestStrategy(e.Funcs, strategy.WithLogger(e.Logger)),
	)
}

// BuildDispatcher builds a dispatcher over reg. A nil cache is created
// lazily from cfg.
func (b *builder) BuildDispatcher(cfg apis.Config, reg apis.Registry, c apis.Cache, _ any) apis.Dispatcher {
	return dispatch.New(reg, cfg, dispatch.WithCache(c))
}
