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

// Package manifest reads declarative extension sources.
//
// A manifest lists dynamic properties and methods to install on an owner.
// Members that compute a value refer to host-supplied functions by name;
// the host passes the lookup table (Funcs) when turning a manifest into an
// apis.Extension. Two syntaxes are accepted: HCL and YAML.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dirpx.dev/dmx/apis"
)

var (
	// ErrInvalidManifest is returned when a manifest is structurally invalid.
	ErrInvalidManifest = errors.New("manifest: invalid manifest")
	// ErrUnknownFunction is returned when a manifest refers to a function
	// absent from the Funcs table.
	ErrUnknownFunction = errors.New("manifest: unknown function")
)

// Funcs maps function names used in manifests to callables.
type Funcs map[string]apis.Callable

// Manifest is a parsed extension source.
type Manifest struct {
	// Path is the file the manifest was loaded from, if any.
	Path       string
	Properties []Property
	Methods    []Method
}

// Property declares one dynamic property. Exactly one of Value and
// Function is set.
type Property struct {
	Name     string   `yaml:"name"`
	Value    any      `yaml:"value"`
	Function string   `yaml:"function"`
	Aliases  []string `yaml:"aliases"`
	Memoize  bool     `yaml:"memoize"`
}

// Method declares one dynamic method.
type Method struct {
	Name     string   `yaml:"name"`
	Function string   `yaml:"function"`
	Aliases  []string `yaml:"aliases"`
	Memoize  bool     `yaml:"memoize"`
	Static   bool     `yaml:"static"`
}

// Load reads and parses the manifest at path. Files ending in .yaml or .yml
// are parsed as YAML, anything else as HCL.
func Load(path string) (*Manifest, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m *Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		m, err = ParseYAML(src)
	default:
		m, err = ParseHCL(src, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// Validate checks names and the value/function exclusivity of every member.
func (m *Manifest) Validate() error {
	for i, p := range m.Properties {
		if p.Name == "" {
			return fmt.Errorf("%w: property #%d has no name", ErrInvalidManifest, i)
		}
		if (p.Value == nil) == (p.Function == "") {
			return fmt.Errorf("%w: property %q must set exactly one of value or function", ErrInvalidManifest, p.Name)
		}
	}
	for i, mt := range m.Methods {
		if mt.Name == "" {
			return fmt.Errorf("%w: method #%d has no name", ErrInvalidManifest, i)
		}
		if mt.Function == "" {
			return fmt.Errorf("%w: method %q has no function", ErrInvalidManifest, mt.Name)
		}
	}
	return nil
}

// Extension validates m against funcs and returns the extension installing
// its members.
func (m *Manifest) Extension(funcs Funcs) (apis.Extension, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	for _, name := range m.functions() {
		if funcs[name] == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
		}
	}

	return func(t apis.Target) error {
		for _, p := range m.Properties {
			var value any = p.Value
			if p.Function != "" {
				value = funcs[p.Function]
			}
			t.AddProperty(names(p.Name, p.Aliases), value, p.Memoize)
		}
		for _, mt := range m.Methods {
			t.AddMethod(names(mt.Name, mt.Aliases), funcs[mt.Function], mt.Memoize, mt.Static)
		}
		return nil
	}, nil
}

// functions lists every function name referenced by m.
func (m *Manifest) functions() []string {
	var out []string
	for _, p := range m.Properties {
		if p.Function != "" {
			out = append(out, p.Function)
		}
	}
	for _, mt := range m.Methods {
		out = append(out, mt.Function)
	}
	return out
}

func names(name string, aliases []string) []string {
	return append([]string{name}, aliases...)
}
