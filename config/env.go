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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"dirpx.dev/dmx/apis"
	"dirpx.dev/dmx/cache/strategy"
)

// Environment keys understood by Load.
const (
	EnvMaxUnwrap = "DMX_MAX_UNWRAP"
	EnvCache     = "DMX_CACHE"
	EnvCacheSize = "DMX_CACHE_SIZE"
	EnvCacheTTL  = "DMX_CACHE_TTL"
)

// Load builds a Config from dotenv files overlaid by the process environment.
//
// Files are read in order with later files overriding earlier ones; files that
// do not exist are skipped. Variables set in the process environment win over
// file values. Unset keys keep their defaults.
func Load(files ...string) (apis.Config, error) {
	vars := map[string]string{}
	for _, f := range files {
		m, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return apis.Config{}, fmt.Errorf("config: read %s: %w", f, err)
		}
		for k, v := range m {
			vars[k] = v
		}
	}
	return FromMap(vars, os.LookupEnv)
}

// FromMap builds a Config from vars, consulting lookup first for each key.
// lookup may be nil.
func FromMap(vars map[string]string, lookup func(string) (string, bool)) (apis.Config, error) {
	get := func(key string) (string, bool) {
		if lookup != nil {
			if v, ok := lookup(key); ok {
				return v, true
			}
		}
		v, ok := vars[key]
		return v, ok
	}

	var opts []Option

	if v, ok := get(EnvMaxUnwrap); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return apis.Config{}, fmt.Errorf("config: %s: %w", EnvMaxUnwrap, err)
		}
		opts = append(opts, WithMaxUnwrap(n))
	}
	if v, ok := get(EnvCache); ok {
		s, err := strategy.Parse(v)
		if err != nil {
			return apis.Config{}, fmt.Errorf("config: %s: %w", EnvCache, err)
		}
		opts = append(opts, WithCacheStrategy(s))
	}
	if v, ok := get(EnvCacheSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return apis.Config{}, fmt.Errorf("config: %s: %w", EnvCacheSize, err)
		}
		opts = append(opts, WithCacheSize(n))
	}
	if v, ok := get(EnvCacheTTL); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return apis.Config{}, fmt.Errorf("config: %s: %w", EnvCacheTTL, err)
		}
		opts = append(opts, WithCacheTTL(d))
	}

	return NewConfig(opts...), nil
}
