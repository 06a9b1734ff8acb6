// Package ignore loads ignore-file patterns and answers whether a path is
// covered by one of them.
//
// Patterns are flat, whole-path globs: `*` matches any run of characters
// (slashes included) and every other character is literal. A pattern must
// match the entire path. There is no directory-prefix handling, no `!`
// negation and no character classes, so this is deliberately simpler than
// the gitignore format.
package ignore

import (
	"os"
	"strings"

	"filepick/internal/errors"

	"github.com/gobwas/glob"
)

type rule struct {
	raw     string
	matcher glob.Glob
}

// RuleSet is an immutable, ordered list of compiled patterns. The nil
// *RuleSet is valid and matches nothing.
type RuleSet struct {
	rules []rule
}

// compile is swapped in tests to exercise patterns the glob parser rejects.
var compile = glob.Compile

// Load reads and compiles the ignore file at path. A missing file yields
// an empty set and no error. Any other read failure yields an empty set
// together with a ConfigUnreadable error for the caller to report. Patterns
// that fail to compile are left out and reported as joined PatternErrors
// next to the usable set.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &RuleSet{}, nil
		}
		return &RuleSet{}, errors.NewConfigError("ignore file unreadable", path, errors.ConfigUnreadable, err)
	}
	rs, errs := Parse(string(data))
	return rs, errors.Join(errs...)
}

// Parse compiles newline-separated patterns. Blank lines and lines starting
// with '#' are skipped. Patterns that fail to compile are left out of the
// set and returned as errors.
func Parse(text string) (*RuleSet, []error) {
	rs := &RuleSet{}
	var errs []error
	for _, line := range strings.Split(text, "\n") {
		pattern := strings.TrimSpace(line)
		if pattern == "" || strings.HasPrefix(pattern, "#") {
			continue
		}
		g, err := Compile(pattern)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rs.rules = append(rs.rules, rule{raw: pattern, matcher: g})
	}
	return rs, errs
}

// Compile translates one pattern into an anchored matcher.
func Compile(pattern string) (glob.Glob, error) {
	parts := strings.Split(pattern, "*")
	for i, part := range parts {
		parts[i] = glob.QuoteMeta(part)
	}
	g, err := compile(strings.Join(parts, "*"))
	if err != nil {
		return nil, errors.NewPatternError("invalid pattern", pattern, errors.InvalidPattern, err)
	}
	return g, nil
}

// Matches reports whether any pattern matches the whole of path.
func (rs *RuleSet) Matches(path string) bool {
	_, ok := rs.Match(path)
	return ok
}

// Match returns the first pattern that matches path.
func (rs *RuleSet) Match(path string) (string, bool) {
	if rs == nil {
		return "", false
	}
	for _, r := range rs.rules {
		if r.matcher.Match(path) {
			return r.raw, true
		}
	}
	return "", false
}

// Patterns returns the raw patterns in file order.
func (rs *RuleSet) Patterns() []string {
	if rs == nil {
		return nil
	}
	out := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		out[i] = r.raw
	}
	return out
}

// Len returns the number of compiled patterns.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}
