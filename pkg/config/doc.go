// Package config manages rule sets for srcpatch: their definitions, the
// files they are loaded from, and which one applies to a given path.
//
//	            +-------------+
//	            |  Registry   |
//	            | (RuleSets)  |
//	            +------+------+
//	                   |
//	      +-----------+-----------+
//	      |           |           |
//	+-----+---+ +-----+---+ +-----+---+
//	|   HCL   | |  YAML   | |  JSON   |
//	| Parser  | | Parser  | | Parser  |
//	+---------+ +---------+ +---------+
//
// 🎯 Purpose:
// - Defines rule sets as named, ordered lists of rules with a target glob
// - Loads extra rule sets from rule files
// - Selects the rule set for a path
//
// 🔄 Flow:
// 1. Parser chosen by file extension decodes the file into RuleSetDefs
// 2. Each RuleSetDef is validated and compiled into a RuleSet
// 3. The Registry hands out rule sets by name or by target path
//
// 📝 Rule file shape (HCL):
//
//	snippet "guard" {
//	  value = <<EOT
//	$${head}if (ready) {
//	    start();
//	  }
//	EOT
//	}
//
//	ruleset "example" {
//	  target = "**/main.js"
//
//	  rule "start-when-ready" {
//	    pattern = [
//	      "@begin head",
//	      "function main() {",
//	      "@space",
//	      "@end",
//	      "if (ready) {",
//	      "throw new Error('not ready');",
//	      "}",
//	    ]
//	    replacement = snippet.guard
//	  }
//	}
//
// HCL interpolates "${...}" itself, so template references are written
// "$${name}" in HCL files. YAML and JSON files use "${name}" directly.
package config
