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

// Package dmx gives Go types members that are added at runtime.
//
// A dynamic member is a property or a method registered against an owner
// type (the type of a value with pointer indirection stripped, so T, *T and
// **T share their members). Any struct can host dynamic members by embedding
// *Object:
//
//	type Greeter struct {
//	    *dmx.Object
//	    Name string
//	}
//
//	g := &Greeter{Name: "ann"}
//	g.Object = dmx.NewObject(g)
//
//	dmx.AddProperty[Greeter]("hello", "world")
//	_ = dmx.AddMethod[Greeter]("shout", strings.ToUpper, dmx.Static())
//
//	v, _ := g.Get("hello")           // "world"
//	s, _ := g.Call("shout", "hi")    // "HI"
//	s, _ = dmx.CallStatic[Greeter]("shout", "hi")
//
// # Resolution
//
// Object resolves names in two steps. The host's own exported fields and
// methods always win; only names the host does not define are routed to
// the registry through the dispatcher. Writes replace a registered dynamic
// property with a literal; a write to a name that is neither native nor
// registered is kept as an ad-hoc attribute of that instance and never
// creates a dynamic property.
//
// Members registered on a type are not visible from types embedding it:
// Child{Parent} is an owner of its own.
//
// # Callables and binding
//
// Callable members are apis.Callable values. Func adapts ordinary Go funcs;
// a leading *apis.Receiver parameter receives the instance and owner the
// member was reached through. Members of anonymous owner types are invoked
// with a nil receiver.
//
// # Memoization
//
// A member registered with Memoize is evaluated once per receiver and
// argument list; later reads return the cached result, falsy values
// included. Re-registering the name discards its memoized results. The
// cache is pluggable (SetCache) and configured by apis.Config.
//
// # Extensions
//
// Extend applies a batch of registrations. The source may be a func taking
// an apis.Target, an apis.Extender, a name from builder.Ext.Extensions, or
// the path of an HCL or YAML manifest.
//
// # Global snapshot
//
// The package-level API reads a process-wide snapshot holding Config,
// Registry, Resolver, Dispatcher and Builder. Reads are lock-free atomic
// loads. Writers (SetConfig, SetBuilder, SetExt, SetRegistry, SetResolver,
// SetCache, SetAll) take a build mutex, assemble a new snapshot and publish
// it with an atomic swap. Rebuilt registries keep every member of the
// previous one.
//
// SetRegistry and SetResolver pin the installed layer: rebuilds keep it
// until UnpinRegistry or UnpinResolver. Objects created with WithDispatcher
// bypass the snapshot entirely, which keeps tests isolated.
package dmx
