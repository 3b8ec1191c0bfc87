// Copyright 2026 The Ballastcore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stages

import "regexp"

// defaultCriticalPattern is the spec §4.4 predicate: case-insensitive,
// matching any stage name that denotes a pre-ballast or 6A-critical RoRo
// stage. Kept as a single named function with its own test suite, not
// scattered string comparisons — misclassification here silently relaxes
// the charterer gate.
var defaultCriticalPattern = regexp.MustCompile(`(?i)(preballast.*critical|6a.*critical|stage\s*5.*preballast|stage\s*6a)`)

// Classifier decides whether a stage name is critical. The site profile
// may supply an alternate regex or an explicit name list (spec §6, input
// 4); NewClassifierFromRegex and NewClassifierFromNames build one from
// either, and NewClassifier returns the built-in pattern.
type Classifier struct {
	pattern *regexp.Regexp
	names   map[string]bool // explicit override list, if non-nil takes precedence
}

// NewClassifier returns the default, spec-mandated classifier.
func NewClassifier() Classifier {
	return Classifier{pattern: defaultCriticalPattern}
}

// NewClassifierFromRegex builds a classifier from an operator-supplied
// regex (site profile's critical_stage_regex). The regex is compiled
// case-insensitively regardless of whether the operator included the
// (?i) flag themselves.
func NewClassifierFromRegex(pattern string) Classifier {
	return Classifier{pattern: regexp.MustCompile(`(?i)` + pattern)}
}

// NewClassifierFromNames builds a classifier from an explicit stage-name
// list (site profile's critical_stage_list), bypassing regex matching
// entirely.
func NewClassifierFromNames(names []string) Classifier {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return Classifier{names: set}
}

// IsCritical reports whether name denotes a critical stage.
func (c Classifier) IsCritical(name Name) bool {
	if c.names != nil {
		return c.names[string(name)]
	}
	return c.pattern.MatchString(string(name))
}
