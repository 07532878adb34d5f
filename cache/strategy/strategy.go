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

package strategy

import (
	"fmt"
	"strings"
)

// Strategy selects the backend that stores memoized member results.
//
// # Overview
//
// Memoization in dmx is a correctness cache: a memoized member is expected to
// return the same value for the same receiver and arguments for as long as the
// entry lives. Strategy decides how long that is:
//
//   - Memory: unbounded in-process map; entries live until Clear.
//   - LRU: bounded; least recently used entries are evicted.
//   - TTL: bounded; entries expire after a fixed lifetime.
//   - None: nothing is retained; memoized members re-evaluate every time.
//
// Capacity and lifetime are configured separately (apis.Config.CacheSize,
// apis.Config.CacheTTL).
//
// # Contract
//
//   - Memory is the zero value and the default.
//   - Adding new values is allowed; existing values MUST NOT change meaning.
type Strategy int

const (
	// Memory keeps every memoized result until the cache is cleared.
	//
	// This is the behavior memoized members are specified against: the
	// first evaluation is stored and every later evaluation with the same
	// fingerprint returns it, including zero values.
	Memory Strategy = iota

	// LRU bounds the cache to CacheSize entries and evicts the least
	// recently used one when full.
	//
	// An evicted member is simply evaluated again on its next access, so
	// LRU trades referential stability of rarely used results for memory.
	LRU

	// TTL bounds the cache to CacheSize entries and drops entries older
	// than CacheTTL.
	//
	// Useful for members derived from slowly changing external state where
	// a stale value is acceptable for a known window.
	TTL

	// None disables retention.
	//
	// Lookups always miss and writes are discarded. Mostly useful in tests
	// that need to observe every evaluation of a memoized factory.
	None
)

// String returns a human-readable representation of the Strategy value.
//
// Known values map to "Memory", "LRU", "TTL" and "None". Unknown values
// render as "Unknown(<n>)" so corrupted values can still be logged safely.
func (cs Strategy) String() string {
	switch cs {
	case Memory:
		return "Memory"
	case LRU:
		return "LRU"
	case TTL:
		return "TTL"
	case None:
		return "None"
	default:
		return fmt.Sprintf("Unknown(%d)", cs)
	}
}

// Parse parses a textual representation of a Strategy.
//
// # Overview
//
// Parse accepts the tokens produced by Strategy.String() for known values,
// case-insensitively and with surrounding whitespace trimmed:
//
//   - "Memory" -> Memory
//   - "LRU"    -> LRU
//   - "TTL"    -> TTL
//   - "None"   -> None
//
// # Contract
//
//   - On failure, Parse returns Memory and a non-nil error;
//     callers MUST NOT rely on the returned Strategy value in the error case.
//   - Parse MUST NOT panic for any input.
//
// Parse is what config.Load uses for the DMX_CACHE variable.
func Parse(s string) (Strategy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Memory, fmt.Errorf("cache: empty strategy")
	}

	switch strings.ToUpper(trimmed) {
	case "MEMORY":
		return Memory, nil
	case "LRU":
		return LRU, nil
	case "TTL":
		return TTL, nil
	case "NONE":
		return None, nil
	default:
		return Memory, fmt.Errorf("cache: unknown strategy %q", s)
	}
}

// MustParse is like Parse but panics on invalid input.
//
// Intended for hard-coded values in Go code and tests:
//
//	var defaultStrategy = MustParse("lru")
func MustParse(s string) Strategy {
	strategy, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return strategy
}

// MarshalText implements encoding.TextMarshaler.
//
// Unknown values are rejected rather than serialized as "Unknown(...)", so an
// invalid state is never persisted into configuration dumps.
func (cs Strategy) MarshalText() ([]byte, error) {
	switch cs {
	case Memory, LRU, TTL, None:
		return []byte(cs.String()), nil
	default:
		return nil, fmt.Errorf("cache: cannot marshal unknown strategy %d", cs)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler with the same rules as
// Parse. On failure the receiver is left unchanged.
func (cs *Strategy) UnmarshalText(text []byte) error {
	value, err := Parse(string(text))
	if err != nil {
		return err
	}

	*cs = value
	return nil
}
