// Package exclusion decides which packages are left out of the dependency graph.
//
// Patterns use Java regular expression syntax (lookarounds included) and must
// match the whole package name. They are compiled once, when the filter is built.
package exclusion

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultMatchTimeout bounds a single pattern evaluation
const DefaultMatchTimeout = 100 * time.Millisecond

// PatternError reports an exclusion pattern that does not compile
type PatternError struct {
	Index   int
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid exclude pattern #%d %q: %v", e.Index+1, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Filter holds a set of precompiled, fully anchored exclusion patterns
type Filter struct {
	sources  []string
	patterns []*regexp2.Regexp
}

// New compiles patterns into a Filter. The first malformed pattern aborts
// construction with a *PatternError.
func New(patterns []string) (*Filter, error) {
	f := &Filter{
		sources:  make([]string, 0, len(patterns)),
		patterns: make([]*regexp2.Regexp, 0, len(patterns)),
	}

	for i, p := range patterns {
		// Compile the bare pattern first so errors point at what the user wrote.
		if _, err := regexp2.Compile(p, regexp2.None); err != nil {
			return nil, &PatternError{Index: i, Pattern: p, Err: err}
		}
		re, err := regexp2.Compile(`\A(?:`+p+`)\z`, regexp2.None)
		if err != nil {
			return nil, &PatternError{Index: i, Pattern: p, Err: err}
		}
		re.MatchTimeout = DefaultMatchTimeout

		f.sources = append(f.sources, p)
		f.patterns = append(f.patterns, re)
	}

	return f, nil
}

// MustNew is like New but panics on a malformed pattern
func MustNew(patterns ...string) *Filter {
	f, err := New(patterns)
	if err != nil {
		panic(err)
	}
	return f
}

// Excluded reports whether any pattern matches the whole package name.
// A pattern that times out counts as no match.
func (f *Filter) Excluded(pkg string) bool {
	if f == nil {
		return false
	}
	for _, re := range f.patterns {
		if ok, err := re.MatchString(pkg); err == nil && ok {
			return true
		}
	}
	return false
}

// Patterns returns the patterns as configured
func (f *Filter) Patterns() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.sources))
	copy(out, f.sources)
	return out
}

// Len returns the number of patterns
func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.patterns)
}
