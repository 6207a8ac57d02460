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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/srcpatch/pkg/config"
	"github.com/walteh/srcpatch/pkg/log"
	"github.com/walteh/srcpatch/pkg/status"
	"github.com/walteh/srcpatch/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a unit of work the runner executes
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains configuration for a patch operation
type Options struct {
	// Path is the file to patch in place
	Path string
	// RuleSet is applied to the file in order
	RuleSet *config.RuleSet
	// Files reads and writes the target; defaults to status.New()
	Files status.FileManager
	// Formatter builds the summary lines; defaults to status.NewDefaultFormatter()
	Formatter status.Formatter
	// Console receives per-rule lines and the confirmation. When nil they
	// go to the context logger instead.
	Console *log.Logger
}

// 📦 PatchOperation patches one file with one rule set
type PatchOperation struct {
	path      string
	ruleSet   *config.RuleSet
	files     status.FileManager
	formatter status.Formatter
	console   *log.Logger
	result    *text.Result
}

// 🏭 NewPatchOperation creates a new patch operation
func NewPatchOperation(opts Options) (*PatchOperation, error) {
	if opts.Path == "" {
		return nil, errors.Errorf("path is required")
	}
	if opts.RuleSet == nil {
		return nil, errors.Errorf("ruleset is required")
	}
	if opts.Files == nil {
		opts.Files = status.New()
	}
	if opts.Formatter == nil {
		opts.Formatter = status.NewDefaultFormatter()
	}
	return &PatchOperation{
		path:      opts.Path,
		ruleSet:   opts.RuleSet,
		files:     opts.Files,
		formatter: opts.Formatter,
		console:   opts.Console,
	}, nil
}

// 🏃 Execute reads the file, runs the rule set over it, writes the result
// back and reports. The first I/O failure aborts.
func (op *PatchOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	if op.console != nil {
		op.console.StartFileOperation(ctx, log.FileOperation{
			Path:    op.path,
			RuleSet: op.ruleSet.Name,
			Rules:   len(op.ruleSet.Rules),
		})
	}

	content, err := op.files.ReadFile(ctx, op.path)
	if err != nil {
		return errors.Errorf("reading %s: %w", op.path, err)
	}

	result := op.ruleSet.Pipeline().Run(ctx, text.Buffer(content))

	for _, o := range result.Outcomes {
		if op.console == nil {
			logger.Info().Msg(op.formatter.FormatRuleOutcome(o))
			continue
		}
		op.console.LogRuleOperation(ctx, log.RuleOperation{
			Rule:         o.Rule,
			Applied:      o.Applied,
			Candidates:   o.Candidates,
			LinesAdded:   o.LinesAdded,
			LinesRemoved: o.LinesRemoved,
		})
		if o.Candidates > 1 {
			op.console.Warningf("%s: pattern found %d times, only the first was replaced", o.Rule, o.Candidates)
		}
	}

	if err := op.files.WriteFileAtomic(ctx, op.path, []byte(result.ModifiedContent)); err != nil {
		return errors.Errorf("writing %s: %w", op.path, err)
	}

	op.result = result

	st := status.StatusUnchanged
	if result.WasModified {
		st = status.StatusModified
	}
	summary := op.formatter.FormatSummary(op.path, result.AppliedCount, len(result.Outcomes), st)

	if op.console == nil {
		logger.Info().Str("status", st.String()).Msg(summary)
		return nil
	}
	op.console.EndFileOperation(ctx)
	op.console.Success(summary)
	return nil
}

// 📋 Result returns the pipeline result of the last successful Execute
func (op *PatchOperation) Result() *text.Result {
	return op.result
}
