// Package filter selects registered tests by name using '*' wildcard patterns.
//
// Only '*' is special: it matches zero or more characters. There is no '?',
// no character classes and no escaping. A Pattern that is not set matches
// every name.
package filter

// Pattern is an optional glob. The zero value matches everything.
type Pattern struct {
	Glob string
	Set  bool
}

// Any is the pattern that matches every name.
var Any = Pattern{}

// Parse returns a set pattern for s.
func Parse(s string) Pattern {
	return Pattern{Glob: s, Set: true}
}

// String returns the glob, or "*" for an unset pattern.
func (p Pattern) String() string {
	if !p.Set {
		return "*"
	}
	return p.Glob
}

// Match reports whether name is selected by p.
func Match(p Pattern, name string) bool {
	if !p.Set {
		return true
	}
	return glob(p.Glob, name)
}

// Skipped reports whether a test called name is excluded by p.
func Skipped(p Pattern, name string) bool {
	return p.Set && !glob(p.Glob, name)
}

// Count returns how many of names are excluded by p.
func Count(p Pattern, names []string) int {
	if !p.Set {
		return 0
	}
	n := 0
	for _, name := range names {
		if !glob(p.Glob, name) {
			n++
		}
	}
	return n
}

// glob is a backtracking two-pointer match. star remembers the position just
// past the most recent '*' and mark the name position it was tried against;
// a literal mismatch rewinds to star and retries one byte further into name.
func glob(pattern, name string) bool {
	p, n := 0, 0
	star, mark := -1, 0

	for n < len(name) {
		switch {
		case p < len(pattern) && pattern[p] == '*':
			star = p + 1
			mark = n
			p++
		case p < len(pattern) && pattern[p] == name[n]:
			p++
			n++
		case star >= 0:
			mark++
			p = star
			n = mark
		default:
			return false
		}
	}

	// Only trailing wildcards may remain.
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}
