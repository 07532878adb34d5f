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

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dmx/cache/strategy"
	"dirpx.dev/dmx/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want %d", got.MaxUnwrap, config.DefaultMaxUnwrap)
	}
	if got.Cache != config.DefaultCacheStrategy {
		t.Fatalf("Cache = %v, want %v", got.Cache, config.DefaultCacheStrategy)
	}
	if got.CacheSize != config.DefaultCacheSize {
		t.Fatalf("CacheSize = %d, want %d", got.CacheSize, config.DefaultCacheSize)
	}
	if got.CacheTTL != config.DefaultCacheTTL {
		t.Fatalf("CacheTTL = %v, want %v", got.CacheTTL, config.DefaultCacheTTL)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithMaxUnwrap_NonPositive_ResetsToDefault(t *testing.T) {
	for _, n := range []int{0, -1} {
		c := config.NewConfig(config.WithMaxUnwrap(n))
		if c.MaxUnwrap != config.DefaultMaxUnwrap {
			t.Fatalf("WithMaxUnwrap(%d): MaxUnwrap = %d, want default %d", n, c.MaxUnwrap, config.DefaultMaxUnwrap)
		}
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithMaxUnwrap(2),
		config.WithMaxUnwrap(5),
		config.WithCacheStrategy(strategy.None),
		config.WithCacheStrategy(strategy.LRU),
		config.WithCacheSize(10),
		config.WithCacheTTL(time.Second),
	)

	assert.Equal(t, 5, c.MaxUnwrap)
	assert.Equal(t, strategy.LRU, c.Cache)
	assert.Equal(t, 10, c.CacheSize)
	assert.Equal(t, time.Second, c.CacheTTL)
}

func TestFromMap_EnvironmentWinsOverVars(t *testing.T) {
	vars := map[string]string{
		config.EnvCache:     "lru",
		config.EnvCacheSize: "16",
	}
	lookup := func(key string) (string, bool) {
		if key == config.EnvCache {
			return "ttl", true
		}
		return "", false
	}

	c, err := config.FromMap(vars, lookup)
	require.NoError(t, err)
	assert.Equal(t, strategy.TTL, c.Cache)
	assert.Equal(t, 16, c.CacheSize)
	assert.Equal(t, config.DefaultMaxUnwrap, c.MaxUnwrap)
}

func TestFromMap_InvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"max unwrap": {config.EnvMaxUnwrap: "deep"},
		"strategy":   {config.EnvCache: "lfu"},
		"size":       {config.EnvCacheSize: "big"},
		"ttl":        {config.EnvCacheTTL: "forever"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.FromMap(vars, nil)
			require.Error(t, err)
		})
	}
}

func TestLoad_ReadsDotenvFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.env")
	local := filepath.Join(dir, "local.env")
	require.NoError(t, os.WriteFile(base, []byte("DMX_CACHE=lru\nDMX_CACHE_SIZE=8\n"), 0o600))
	require.NoError(t, os.WriteFile(local, []byte("DMX_CACHE_SIZE=32\nDMX_CACHE_TTL=90s\n"), 0o600))

	c, err := config.Load(base, filepath.Join(dir, "missing.env"), local)
	require.NoError(t, err)
	assert.Equal(t, strategy.LRU, c.Cache)
	assert.Equal(t, 32, c.CacheSize)
	assert.Equal(t, 90*time.Second, c.CacheTTL)
}

func TestLoad_ProcessEnvironmentOverridesFiles(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(f, []byte("DMX_MAX_UNWRAP=3\n"), 0o600))
	t.Setenv(config.EnvMaxUnwrap, "4")

	c, err := config.Load(f)
	require.NoError(t, err)
	assert.Equal(t, 4, c.MaxUnwrap)
}
