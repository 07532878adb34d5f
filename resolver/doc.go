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

// Package resolver turns extension sources into apis.Extension values by
// consulting a chain of apis.Strategy implementations.
//
// Typical chain, as assembled by the default builder:
//
//	resolver.New(
//	    strategy.NewCallableStrategy(),     // funcs and Extenders
//	    strategy.NewNamedStrategy(table),   // host-registered names
//	    strategy.NewManifestStrategy(funcs) // manifest files
//	)
package resolver
