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

package cache

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"dirpx.dev/dmx/apis"
	"dirpx.dev/dmx/cache/strategy"
	"dirpx.dev/dmx/config"
)

// New constructs the backend selected by cfg.Cache. Non-positive sizes and
// TTLs fall back to the config defaults.
func New(cfg apis.Config) (apis.Cache, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = config.DefaultCacheSize
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = config.DefaultCacheTTL
	}

	switch cfg.Cache {
	case strategy.Memory:
		return NewMemory(), nil
	case strategy.LRU:
		return NewLRU(size)
	case strategy.TTL:
		return NewTTL(size, ttl), nil
	case strategy.None:
		return NewNone(), nil
	default:
		return nil, fmt.Errorf("cache: unsupported strategy %s", cfg.Cache)
	}
}

// Memory is an unbounded map-backed cache.
type Memory struct {
	mu sync.RWMutex
	m  map[string]any
}

// NewMemory constructs an empty Memory cache.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]any)}
}

// Get implements apis.Cache.
func (c *Memory) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

// Set implements apis.Cache.
func (c *Memory) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = value
}

// Clear implements apis.Cache.
func (c *Memory) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[string]any)
}

// Len returns the number of stored entries.
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// LRU is a size-bounded cache evicting the least recently used entry.
type LRU struct {
	c *lru.Cache[string, any]
}

// NewLRU constructs an LRU cache holding at most size entries.
func NewLRU(size int) (*LRU, error) {
	c, err := lru.New[string, any](size)
	if err != nil {
		return nil, fmt.Errorf("cache: lru: %w", err)
	}
	return &LRU{c: c}, nil
}

// Get implements apis.Cache.
func (c *LRU) Get(key string) (any, bool) { return c.c.Get(key) }

// Set implements apis.Cache.
func (c *LRU) Set(key string, value any) { c.c.Add(key, value) }

// Clear implements apis.Cache.
func (c *LRU) Clear() { c.c.Purge() }

// Len returns the number of stored entries.
func (c *LRU) Len() int { return c.c.Len() }

// TTL is a size-bounded cache whose entries expire after a fixed lifetime.
type TTL struct {
	c *expirable.LRU[string, any]
}

// NewTTL constructs a TTL cache. size bounds the entry count; ttl is the
// lifetime of each entry.
func NewTTL(size int, ttl time.Duration) *TTL {
	return &TTL{c: expirable.NewLRU[string, any](size, nil, ttl)}
}

// Get implements apis.Cache.
func (c *TTL) Get(key string) (any, bool) { return c.c.Get(key) }

// Set implements apis.Cache.
func (c *TTL) Set(key string, value any) { c.c.Add(key, value) }

// Clear implements apis.Cache.
func (c *TTL) Clear() { c.c.Purge() }

// Len returns the number of live entries.
func (c *TTL) Len() int { return c.c.Len() }

// None never stores anything.
type None struct{}

// NewNone constructs a pass-through cache.
func NewNone() None { return None{} }

// Get implements apis.Cache. It always misses.
func (None) Get(string) (any, bool) { return nil, false }

// Set implements apis.Cache. It discards the value.
func (None) Set(string, any) {}

// Clear implements apis.Cache.
func (None) Clear() {}

var (
	_ apis.Cache = (*Memory)(nil)
	_ apis.Cache = (*LRU)(nil)
	_ apis.Cache = (*TTL)(nil)
	_ apis.Cache = None{}
)
