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
	"maps"

	"dirpx.dev/dmx/apis"
)

// NewNamedStrategy creates a strategy that resolves string references
// through a host-supplied table. The table is copied.
func NewNamedStrategy(table map[string]apis.Extension) apis.Strategy {
	return &namedStrategy{table: maps.Clone(table)}
}

// namedStrategy looks up extensions by name (I/O-free lookup).
type namedStrategy struct {
	table map[string]apis.Extension
}

// Ensure namedStrategy implements apis.Strategy.
var _ apis.Strategy = (*namedStrategy)(nil)

// TryResolve handles strings present in the table. Other strings are left to
// the next strategy.
func (s *namedStrategy) TryResolve(src any) (apis.Extension, bool, error) {
	name, ok := src.(string)
	if !ok || s.table == nil {
		return nil, false, nil
	}
	ext, ok := s.table[name]
	if !ok {
		return nil, false, nil
	}
	return ext, true, nilFunc(src, ext == nil)
}
