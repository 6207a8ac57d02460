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

// Package fiberworkloop holds the rules that let React's work loop recover
// from execution context left behind by a browser interruption (breakpoint,
// alert, debugger, tab freeze) instead of throwing "Should not already be
// working.".
//
// The same guard appears several times in ReactFiberWorkLoop.js, so each
// rule is anchored on the code that precedes the occurrence it rewrites:
// the performWorkOnRoot signature, and the passive effect flush loop that
// runs before a root is completed.
package fiberworkloop

import (
	"github.com/walteh/srcpatch/pkg/config"
	"github.com/walteh/srcpatch/pkg/pattern"
	"github.com/walteh/srcpatch/pkg/text"
)

const (
	// Name is the rule set name
	Name = "react-fiber-work-loop"

	// Target matches the work loop in any checkout layout
	Target = "**/ReactFiberWorkLoop.js"

	description = "reset stale execution context instead of throwing in performWorkOnRoot and completeRoot"
)

const staleContextGuard = `if ((executionContext & (RenderContext | CommitContext)) !== NoContext) {
    // Check if this is stale state from a browser interruption (breakpoint,
    // alert, debugger, tab freeze). If there's no actual work in progress,
    // we can safely reset the context and continue.
    if (
      workInProgress === null &&
      workInProgressRoot === null &&
      pendingEffectsStatus === NO_PENDING_EFFECTS
    ) {
      // The execution context is stale from a browser interruption.
      // Reset it and continue.
      executionContext = NoContext;
    } else {
      throw new Error('Should not already be working.');
    }
  }`

// throwingGuard appends the unpatched guard. A patched guard no longer has
// the throw directly inside it, which keeps both rules from matching twice.
func throwingGuard(b *pattern.Builder) *pattern.Builder {
	return b.
		Text("if ((executionContext & (RenderContext | CommitContext)) !== NoContext) {").
		Text("throw new Error('Should not already be working.');").
		Text("}")
}

// PerformWorkOnRoot rewrites the guard at the top of performWorkOnRoot
func PerformWorkOnRoot() *text.Rule {
	p := pattern.New("perform-work-on-root").
		Begin("head").
		Text("export function performWorkOnRoot(").
		Text("root: FiberRoot,").
		Text("lanes: Lanes,").
		Text("forceSync: boolean,").
		Text("): void {").
		Space().
		End()

	return text.MustRule("perform-work-on-root", throwingGuard(p).MustBuild(), "${head}"+staleContextGuard)
}

// CompleteRoot rewrites the guard that follows the passive effect flush loop
func CompleteRoot() *text.Rule {
	p := pattern.New("complete-root").
		Begin("head").
		Text("flushPendingEffects();").
		Text("} while (pendingEffectsStatus !== NO_PENDING_EFFECTS);").
		Text("flushRenderPhaseStrictModeWarningsInDEV();").
		Space().
		End()

	return text.MustRule("complete-root", throwingGuard(p).MustBuild(), "${head}"+staleContextGuard)
}

// RuleSet returns the rule set, performWorkOnRoot first
func RuleSet() *config.RuleSet {
	rs, err := config.NewRuleSet(Name, description, Target, PerformWorkOnRoot(), CompleteRoot())
	if err != nil {
		panic(err)
	}
	return rs
}
