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
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

type hclSnippet struct {
	Name  string `hcl:"name,label"`
	Value string `hcl:"value"`
}

type hclHead struct {
	Snippets []hclSnippet `hcl:"snippet,block"`
	Remain   hcl.Body     `hcl:",remain"`
}

type hclRuleSets struct {
	RuleSets []RuleSetDef `hcl:"ruleset,block"`
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses a rule file from HCL.
//
// snippet blocks are decoded first and exposed to ruleset bodies as
// snippet.<name>, so one replacement can be shared by several rules.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "rules.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	var head hclHead
	diags = gohcl.DecodeBody(hclFile.Body, nil, &head)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL snippets: %s", diags.Error())
	}

	snippets := map[string]cty.Value{}
	for _, s := range head.Snippets {
		if _, ok := snippets[s.Name]; ok {
			return nil, errors.Errorf("duplicate snippet %q", s.Name)
		}
		snippets[s.Name] = cty.StringVal(s.Value)
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"snippet": cty.ObjectVal(snippets),
		},
	}

	var body hclRuleSets
	diags = gohcl.DecodeBody(head.Remain, evalCtx, &body)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &File{RuleSets: body.RuleSets}, nil
}
