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

package apis

// Namer lets a host type provide its own display name.
//
// # Overview
//
// Owner types are identified internally by reflect.Type. That identity is
// exact but not always readable ("struct { Foo string }" for anonymous
// types, deep package paths for named ones). A host that implements Namer
// controls how its owner appears in error messages and diagnostics.
//
// # Contract
//
//   - The returned name MUST be non-empty.
//   - The returned name MUST NOT depend on mutable instance state.
//   - Implementations MUST NOT perform blocking operations or I/O.
//
// The name is never used as a registry key; two types with the same
// EntityName still own separate member sets.
type Namer interface {
	EntityName() string
}

// NamerFunc adapts a plain function to Namer.
type NamerFunc func() string

// EntityName implements Namer.
func (f NamerFunc) EntityName() string {
	return f()
}

// Identifier augments Namer with a per-instance identifier.
//
// # Semantics
//
// EntityName identifies the kind of entity; EntityID identifies a particular
// instance. Memoization uses EntityID as the receiver identity when present,
// so two distinct values reporting the same ID share memoized results, and a
// value keeps its memoized results after being copied.
//
// # Contract
//
//   - EntityID MUST be deterministic for a given instance over its lifetime.
//   - EntityID MUST be safe for concurrent calls.
//   - An empty string means "no ID"; the default receiver identity is used.
type Identifier interface {
	Namer
	EntityID() string
}
