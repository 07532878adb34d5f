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

import (
	"time"

	"dirpx.dev/dmx/cache/strategy"
)

// Config carries read-only knobs that influence owner resolution and memoization.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MaxUnwrap limits pointer unwrapping when deriving an owner type from a
	// receiver. *T, **T and T resolve to the same owner as long as the depth
	// stays within the limit.
	MaxUnwrap int

	// Cache selects the backend created lazily for memoized members when no
	// cache has been injected.
	Cache strategy.Strategy

	// CacheSize bounds the number of memoized results kept by bounded
	// strategies (LRU, TTL). Ignored by Memory and None.
	CacheSize int

	// CacheTTL is the lifetime of a memoized result under the TTL strategy.
	CacheTTL time.Duration
}
