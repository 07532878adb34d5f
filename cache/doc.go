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

// Package cache provides result-cache backends for memoized dynamic members.
//
// Every backend implements apis.Cache and distinguishes a missing entry from a
// stored zero value, so memoized members that legitimately produce nil, false,
// 0 or "" are evaluated once.
//
// Backends:
//
//   - NewMemory: unbounded map, no eviction (default).
//   - NewLRU: bounded, least-recently-used eviction.
//   - NewTTL: bounded, entries expire after a fixed lifetime.
//   - NewNone: never stores anything; memoized members re-evaluate.
//
// New picks a backend from apis.Config.
package cache
