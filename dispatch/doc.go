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

// Package dispatch routes reads, writes and calls of dynamic members through
// an apis.Registry.
//
// # Resolution
//
// The dispatcher is the second step of member resolution. The host has
// already checked its native fields and methods and found nothing; the
// dispatcher then looks the name up under the receiver's owner type (the
// receiver type with pointer indirection stripped).
//
// # Binding
//
// Callable members receive an *apis.Receiver carrying the instance and its
// owner. Members of anonymous owner types (struct literals, reflect.StructOf)
// cannot be bound and are invoked with a nil receiver. Static calls carry
// the owner only.
//
// # Memoization
//
// Memoized members are cached under a fingerprint of
//
//	owner | kind:name#registration | receiver identity | argument keys
//
// so distinct receivers, distinct arguments and re-registrations never share
// an entry. Concurrent misses on one fingerprint evaluate the member once.
// Errors are returned unchanged and never cached.
package dispatch
