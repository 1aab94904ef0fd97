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

package preproc

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔍 RuleKind selects how a PathRule matches a path
type RuleKind int

const (
	RulePrefix RuleKind = iota // path starts with the pattern
	RuleGlob                   // doublestar glob
	RuleRegexp                 // regular expression
)

// String returns a string representation of RuleKind
func (k RuleKind) String() string {
	switch k {
	case RulePrefix:
		return "prefix"
	case RuleGlob:
		return "glob"
	case RuleRegexp:
		return "re"
	default:
		return "unknown"
	}
}

// PathRule is one condition of a PathTest
type PathRule struct {
	Kind    RuleKind
	Pattern string

	re *regexp.Regexp
}

// 🎯 PathTest is the path condition handed to replace and remove. The adapter
// never evaluates it; Match is offered to processors that want the usual
// semantics (any rule matching wins).
type PathTest struct {
	Rules []PathRule
}

// ParsePathTest builds a PathTest from textual rules:
//
//	re:<expr>       regular expression
//	glob:<pattern>  doublestar glob
//	<pattern>       glob when it has glob metacharacters, otherwise a prefix
//
// A nil or empty list yields a nil PathTest.
func ParsePathTest(rules []string) (*PathTest, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	pt := &PathTest{}
	for _, raw := range rules {
		rule, err := parsePathRule(raw)
		if err != nil {
			return nil, errors.Errorf("parsing path test %q: %w", raw, err)
		}
		pt.Rules = append(pt.Rules, rule)
	}
	return pt, nil
}

// MustParsePathTest is like ParsePathTest but panics on error
func MustParsePathTest(rules ...string) *PathTest {
	pt, err := ParsePathTest(rules)
	if err != nil {
		panic(err)
	}
	return pt
}

func parsePathRule(raw string) (PathRule, error) {
	switch {
	case strings.HasPrefix(raw, "re:"):
		expr := strings.TrimPrefix(raw, "re:")
		re, err := regexp.Compile(expr)
		if err != nil {
			return PathRule{}, errors.Errorf("compiling regexp: %w", err)
		}
		return PathRule{Kind: RuleRegexp, Pattern: expr, re: re}, nil
	case strings.HasPrefix(raw, "glob:"):
		pattern := strings.TrimPrefix(raw, "glob:")
		if !doublestar.ValidatePattern(pattern) {
			return PathRule{}, errors.Errorf("invalid glob pattern")
		}
		return PathRule{Kind: RuleGlob, Pattern: pattern}, nil
	case strings.ContainsAny(raw, "*?[{"):
		if !doublestar.ValidatePattern(raw) {
			return PathRule{}, errors.Errorf("invalid glob pattern")
		}
		return PathRule{Kind: RuleGlob, Pattern: raw}, nil
	case raw == "":
		return PathRule{}, errors.Errorf("empty rule")
	default:
		return PathRule{Kind: RulePrefix, Pattern: raw}, nil
	}
}

// Match reports whether path satisfies any rule
func (pt *PathTest) Match(path string) bool {
	if pt == nil {
		return false
	}
	for _, rule := range pt.Rules {
		if rule.Match(path) {
			return true
		}
	}
	return false
}

// Match reports whether path satisfies the rule
func (r PathRule) Match(path string) bool {
	switch r.Kind {
	case RulePrefix:
		return strings.HasPrefix(path, r.Pattern)
	case RuleGlob:
		matched, err := doublestar.Match(r.Pattern, path)
		return err == nil && matched
	case RuleRegexp:
		re := r.re
		if re == nil {
			var err error
			if re, err = regexp.Compile(r.Pattern); err != nil {
				return false
			}
		}
		return re.MatchString(path)
	default:
		return false
	}
}

// IsEmpty reports whether the path test carries no rule
func (pt *PathTest) IsEmpty() bool {
	return pt == nil || len(pt.Rules) == 0
}

// Strings returns the rules in the syntax accepted by ParsePathTest
func (pt *PathTest) Strings() []string {
	if pt.IsEmpty() {
		return nil
	}
	parts := make([]string, 0, len(pt.Rules))
	for _, r := range pt.Rules {
		switch r.Kind {
		case RuleRegexp:
			parts = append(parts, "re:"+r.Pattern)
		case RuleGlob:
			parts = append(parts, "glob:"+r.Pattern)
		default:
			parts = append(parts, r.Pattern)
		}
	}
	return parts
}

// String joins the rules for display
func (pt *PathTest) String() string {
	return strings.Join(pt.Strings(), ", ")
}
