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

package config

import (
	"time"

	"dirpx.dev/dmx/apis"
	"dirpx.dev/dmx/cache/strategy"
)

const (
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultCacheStrategy represents the default for Cache.
	// Memoized results are kept until the cache is cleared.
	DefaultCacheStrategy = strategy.Memory
	// DefaultCacheSize represents the default for CacheSize.
	DefaultCacheSize = 1024
	// DefaultCacheTTL represents the default for CacheTTL.
	DefaultCacheTTL = 5 * time.Minute
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return normalize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MaxUnwrap: DefaultMaxUnwrap,
		Cache:     DefaultCacheStrategy,
		CacheSize: DefaultCacheSize,
		CacheTTL:  DefaultCacheTTL,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMaxUnwrap sets the MaxUnwrap option.
// A non-positive value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithCacheStrategy sets the Cache option.
func WithCacheStrategy(s strategy.Strategy) Option {
	return func(c *apis.Config) {
		c.Cache = s
	}
}

// WithCacheSize sets the CacheSize option.
// A non-positive value resets to the default.
func WithCacheSize(size int) Option {
	return func(c *apis.Config) {
		if size <= 0 {
			c.CacheSize = DefaultCacheSize
			return
		}
		c.CacheSize = size
	}
}

// WithCacheTTL sets the CacheTTL option.
// A non-positive value resets to the default.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *apis.Config) {
		if ttl <= 0 {
			c.CacheTTL = DefaultCacheTTL
			return
		}
		c.CacheTTL = ttl
	}
}

// normalize replaces out-of-range values with defaults.
func normalize(cfg apis.Config) apis.Config {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	return cfg
}
