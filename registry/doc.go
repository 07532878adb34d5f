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

// Package registry implements apis.Registry, the per-owner-type store of
// dynamic property and method descriptors.
//
// Descriptors are partitioned by the owner's reflect.Type. Two types never
// see each other's members, including a type that embeds another: embedding
// promotes native fields and methods in Go, but dynamic members stay with the
// exact type they were registered on.
//
// Every add or replace assigns a fresh descriptor ID. The dispatcher uses the
// ID as the identity of the factory when computing memo fingerprints, so a
// re-registered name never sees results memoized for its predecessor.
package registry
