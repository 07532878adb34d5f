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

package dispatch

import "dirpx.dev/dmx/apis"

// Option configures a dispatcher at construction time.
type Option func(*dispatcher)

// WithCache injects a result cache, bypassing lazy creation.
func WithCache(c apis.Cache) Option {
	return func(d *dispatcher) {
		if c != nil {
			d.cache.Store(&cacheRef{c: c})
		}
	}
}

// WithCacheFactory overrides how the default cache is created on first use.
func WithCacheFactory(f func(apis.Config) (apis.Cache, error)) Option {
	return func(d *dispatcher) {
		if f != nil {
			d.factory = f
		}
	}
}
