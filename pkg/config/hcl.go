// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
	"gitlab.com/tozd/go/errors"
)

// Define HCL schema
type hclConfig struct {
	Tag      *string        `hcl:"tag,optional"`
	PathTest hcl.Expression `hcl:"path_test,optional"`

	Select *struct {
		Tag         *string `hcl:"tag,optional"`
		AllowErrors bool    `hcl:"allow_errors,optional"`
	} `hcl:"select,block"`
	Replace *struct {
		Tag         *string        `hcl:"tag,optional"`
		Replacement *string        `hcl:"replacement,optional"`
		PathTest    hcl.Expression `hcl:"path_test,optional"`
	} `hcl:"replace,block"`
	Remove *struct {
		Tag      *string        `hcl:"tag,optional"`
		PathTest hcl.Expression `hcl:"path_test,optional"`
	} `hcl:"remove,block"`

	Processor   *string  `hcl:"processor,optional"`
	Src         []string `hcl:"src,optional"`
	Base        *string  `hcl:"base,optional"`
	Dest        *string  `hcl:"dest,optional"`
	Async       bool     `hcl:"async,optional"`
	Concurrency int      `hcl:"concurrency,optional"`
}

// loadHCL loads a configuration from HCL data. Environment variables are
// available to expressions as env.NAME.
func loadHCL(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": environment(),
		},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	pathTest, err := stringListExpr(hclCfg.PathTest, evalCtx)
	if err != nil {
		return nil, err
	}

	// Convert to config
	cfg := &Config{
		Tag:         hclCfg.Tag,
		PathTest:    pathTest,
		Processor:   deref(hclCfg.Processor),
		Src:         hclCfg.Src,
		Base:        deref(hclCfg.Base),
		Dest:        deref(hclCfg.Dest),
		Async:       hclCfg.Async,
		Concurrency: hclCfg.Concurrency,
	}
	if hclCfg.Select != nil {
		cfg.Select = &SelectBlock{
			Tag:         hclCfg.Select.Tag,
			AllowErrors: hclCfg.Select.AllowErrors,
		}
	}
	if hclCfg.Replace != nil {
		pathTest, err := stringListExpr(hclCfg.Replace.PathTest, evalCtx)
		if err != nil {
			return nil, err
		}
		cfg.Replace = &ReplaceBlock{
			Tag:         hclCfg.Replace.Tag,
			Replacement: hclCfg.Replace.Replacement,
			PathTest:    pathTest,
		}
	}
	if hclCfg.Remove != nil {
		pathTest, err := stringListExpr(hclCfg.Remove.PathTest, evalCtx)
		if err != nil {
			return nil, err
		}
		cfg.Remove = &RemoveBlock{
			Tag:      hclCfg.Remove.Tag,
			PathTest: pathTest,
		}
	}

	return cfg, nil
}

// stringListExpr evaluates an attribute that holds either one string or a
// list of strings, the HCL counterpart of StringList
func stringListExpr(expr hcl.Expression, evalCtx *hcl.EvalContext) (StringList, error) {
	if expr == nil {
		return nil, nil
	}

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}
	if val.IsNull() {
		return nil, nil
	}

	if val.Type() == cty.String {
		return StringList{val.AsString()}, nil
	}

	list, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, errors.Errorf("decoding HCL: %s: string or list of strings required", expr.Range())
	}

	var out []string
	if err := gocty.FromCtyValue(list, &out); err != nil {
		return nil, errors.Errorf("decoding HCL: %s: %w", expr.Range(), err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// environment exposes the process environment as a cty object
func environment() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !hclIdentifier(name) {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return cty.ObjectVal(vars)
}

// hclIdentifier reports whether name can be used as env.NAME
func hclIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r == '-' || (r >= '0' && r <= '9')):
		default:
			return false
		}
	}
	return true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
