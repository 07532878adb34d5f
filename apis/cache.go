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

// Cache is the key/value store used for memoized members.
// Get must distinguish a missing entry from a stored zero value.
type Cache interface {
	// Get returns the stored value and whether an entry exists.
	Get(key string) (any, bool)
	// Set stores value under key.
	Set(key string, value any)
	// Clear drops every entry, for all owners and members.
	Clear()
}
