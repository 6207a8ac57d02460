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
package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/srcpatch/pkg/config"
	"github.com/walteh/srcpatch/pkg/log"
	"github.com/walteh/srcpatch/pkg/operation"
	"github.com/walteh/srcpatch/pkg/rulesets/fiberworkloop"
	"gitlab.com/tozd/go/errors"
)

// rootOpts holds the flags shared by every command
type rootOpts struct {
	rulesFile string
	ruleSet   string
	debug     bool
}

// newRootCmd creates the srcpatch command tree
func newRootCmd() *cobra.Command {
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "srcpatch <file>",
		Short: "Patch known code fragments in a source file",
		Long: `srcpatch finds specific, previously known code fragments in one file by
structural pattern and replaces each with an extended version of itself.

The rule set is chosen by matching the file path against each rule set's
target glob, or named explicitly with --ruleset. A rule whose pattern is not
found is skipped, so running srcpatch twice is safe.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(setupLogging(cmd, opts.debug))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(cmd, opts, args[0])
		},
	}

	addRootFlags(cmd, opts)

	cmd.AddCommand(
		newRuleSetsCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, opts *rootOpts) {
	cmd.PersistentFlags().StringVarP(&opts.rulesFile, "rules", "r", "", "extra rule file (.hcl, .yaml, .yml, .json)")
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().StringVarP(&opts.ruleSet, "ruleset", "s", "", "rule set to apply instead of selecting by path")
}

// setupLogging configures zerolog and the console logger based on flags
func setupLogging(cmd *cobra.Command, debug bool) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(level).
		With().Timestamp().Logger()

	console := log.New(cmd.OutOrStdout(), logger)
	return log.NewContext(logger.WithContext(cmd.Context()), console)
}

// newRegistry returns the built-in rule sets plus any loaded from rulesFile
func newRegistry(ctx context.Context, rulesFile string) (*config.Registry, error) {
	reg, err := config.NewRegistry(fiberworkloop.RuleSet())
	if err != nil {
		return nil, errors.Errorf("creating registry: %w", err)
	}
	if rulesFile == "" {
		return reg, nil
	}

	sets, err := config.Load(ctx, rulesFile)
	if err != nil {
		return nil, errors.Errorf("loading rules: %w", err)
	}
	if err := reg.Add(sets...); err != nil {
		return nil, errors.Errorf("loading rules: %w", err)
	}
	return reg, nil
}

// runPatch patches path with the selected rule set
func runPatch(cmd *cobra.Command, opts *rootOpts, path string) error {
	ctx := cmd.Context()

	reg, err := newRegistry(ctx, opts.rulesFile)
	if err != nil {
		return err
	}

	console := log.FromContext(ctx)

	var rs *config.RuleSet
	if opts.ruleSet != "" {
		rs, err = reg.Get(opts.ruleSet)
	} else {
		rs, err = reg.Select(path)
	}
	if err != nil {
		return errors.Errorf("selecting ruleset: %w", err)
	}
	if opts.ruleSet == "" {
		console.Infof("using ruleset %s, its target %s matches %s", rs.Name, rs.Target, path)
	}

	op, err := operation.NewPatchOperation(operation.Options{
		Path:    path,
		RuleSet: rs,
		Console: console,
	})
	if err != nil {
		return errors.Errorf("creating patch operation: %w", err)
	}

	return operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, op)
}

// newRuleSetsCmd creates the rulesets command
func newRuleSetsCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "rulesets",
		Short: "List available rule sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := newRegistry(cmd.Context(), opts.rulesFile)
			if err != nil {
				return err
			}
			log.FromContext(cmd.Context()).Header("available rule sets")
			printRuleSets(cmd.OutOrStdout(), reg.List())
			return nil
		},
	}
}

func printRuleSets(w io.Writer, sets []*config.RuleSet) {
	for _, rs := range sets {
		fmt.Fprintln(w, rs.String())
		if rs.Description != "" {
			fmt.Fprintf(w, "    %s\n", rs.Description)
		}
		for _, r := range rs.Rules {
			fmt.Fprintf(w, "    - %s\n", r.Name())
		}
	}
}
