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

package manifest

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// hclFile is the top-level structure of an HCL manifest.
type hclFile struct {
	Properties []*hclProperty `hcl:"property,block"`
	Methods    []*hclMethod   `hcl:"method,block"`
}

type hclProperty struct {
	Name     string         `hcl:"name,label"`
	Value    hcl.Expression `hcl:"value,optional"`
	Function string         `hcl:"function,optional"`
	Aliases  []string       `hcl:"aliases,optional"`
	Memoize  bool           `hcl:"memoize,optional"`
}

type hclMethod struct {
	Name     string   `hcl:"name,label"`
	Function string   `hcl:"function"`
	Aliases  []string `hcl:"aliases,optional"`
	Memoize  bool     `hcl:"memoize,optional"`
	Static   bool     `hcl:"static,optional"`
}

// evalContext exposes a few string functions to manifest expressions.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"join":   stdlib.JoinFunc,
			"format": stdlib.FormatFunc,
			"concat": stdlib.ConcatFunc,
		},
	}
}

// ParseHCL parses an HCL manifest. filename is used in diagnostics only.
func ParseHCL(src []byte, filename string) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %w", diags)
	}

	ctx := evalContext()
	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, ctx, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %w", diags)
	}

	m := &Manifest{}
	for _, p := range parsed.Properties {
		prop := Property{
			Name:     p.Name,
			Function: p.Function,
			Aliases:  p.Aliases,
			Memoize:  p.Memoize,
		}
		if p.Value != nil {
			v, diags := p.Value.Value(ctx)
			if diags.HasErrors() {
				return nil, fmt.Errorf("property %q: %w", p.Name, diags)
			}
			native, err := ctyToNative(v)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", p.Name, err)
			}
			prop.Value = native
		}
		m.Properties = append(m.Properties, prop)
	}
	for _, mt := range parsed.Methods {
		m.Methods = append(m.Methods, Method{
			Name:     mt.Name,
			Function: mt.Function,
			Aliases:  mt.Aliases,
			Memoize:  mt.Memoize,
			Static:   mt.Static,
		})
	}
	return m, nil
}

// ctyToNative converts a cty.Value to its natural Go counterpart. Whole
// numbers become int, other numbers float64.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i), nil
			}
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, ev := it.Element()
			nv, err := ctyToNative(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, nv)
		}
		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			k, ev := it.Element()
			nv, err := ctyToNative(ev)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", k.AsString(), err)
			}
			out[k.AsString()] = nv
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
