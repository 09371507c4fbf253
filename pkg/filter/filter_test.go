package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestMatch_Table(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		{"exact", "Suite.Case", "Suite.Case", true},
		{"exact mismatch", "Suite.Case", "Suite.Other", false},
		{"prefix wildcard", "Suite*", "Suite.Case", true},
		{"prefix wildcard other suite", "Suite*", "Other.Case", false},
		{"suffix wildcard", "*.Case", "Suite.Case", true},
		{"suffix wildcard other case", "*.Case", "Suite.Other", false},
		{"star matches empty", "*", "", true},
		{"star matches anything", "*", "A.b", true},
		{"empty pattern empty name", "", "", true},
		{"empty pattern non-empty name", "", "A.b", false},
		{"pattern longer than name", "Suite.CaseX", "Suite.Case", false},
		{"name longer than pattern", "Suite", "Suite.Case", false},
		{"inner wildcard", "Suite1*.a", "Suite1Case.a", true},
		{"inner wildcard wrong tail", "Suite1*.a", "Suite1Case.b", false},
		{"two wildcards", "*Case*", "Suite.Case.x", true},
		{"backtrack", "*ab", "aab", true},
		{"backtrack repeated", "a*b*c", "axxbyybzc", true},
		{"backtrack fails", "a*b*c", "axxbyyb", false},
		{"consecutive stars", "A**one", "A.one", true},
		{"literal mismatch first byte", "B*", "A.one", false},
		{"wildcard matches whole tail", "A.*", "A.", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(Parse(tt.pattern), tt.input))
		})
	}
}

func TestMatch_UnsetPatternMatchesEverything(t *testing.T) {
	assert.True(t, Match(Any, ""))
	assert.True(t, Match(Any, "Suite.Case"))
	assert.False(t, Skipped(Any, "Suite.Case"))
}

func TestCount_Scenario(t *testing.T) {
	names := []string{"A.one", "A.two", "B.one"}
	assert.Equal(t, 1, Count(Parse("A*"), names))
	assert.Equal(t, 0, Count(Any, names))
	assert.Equal(t, 3, Count(Parse("C*"), names))
}

func TestPattern_String(t *testing.T) {
	assert.Equal(t, "*", Any.String())
	assert.Equal(t, "A.*", Parse("A.*").String())
}

// literal draws strings that never contain the wildcard.
func literal() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z0-9._]{0,12}`)
}

func TestMatch_LiteralPatternIsEquality(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := literal().Draw(rt, "pattern")
		n := literal().Draw(rt, "name")
		if Match(Parse(p), n) != (p == n) {
			rt.Fatalf("Match(%q, %q) disagrees with equality", p, n)
		}
	})
}

func TestMatch_StarMatchesAll(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.String().Draw(rt, "name")
		if !Match(Parse("*"), n) {
			rt.Fatalf("'*' did not match %q", n)
		}
	})
}

func TestMatch_TrailingStarMatchesPrefix(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		prefix := literal().Draw(rt, "prefix")
		rest := literal().Draw(rt, "rest")
		if !Match(Parse(prefix+"*"), prefix+rest) {
			rt.Fatalf("%q* did not match %q", prefix, prefix+rest)
		}
	})
}

func TestMatch_LeadingStarMatchesSuffix(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		head := literal().Draw(rt, "head")
		suffix := literal().Draw(rt, "suffix")
		if !Match(Parse("*"+suffix), head+suffix) {
			rt.Fatalf("*%q did not match %q", suffix, head+suffix)
		}
	})
}

func TestMatch_WildcardSegmentsAgreeWithSplit(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		parts := rapid.SliceOfN(literal(), 1, 4).Draw(rt, "parts")
		fill := rapid.SliceOfN(literal(), len(parts)-1, len(parts)-1).Draw(rt, "fill")
		var name strings.Builder
		for i, part := range parts {
			name.WriteString(part)
			if i < len(fill) {
				name.WriteString(fill[i])
			}
		}
		if !Match(Parse(strings.Join(parts, "*")), name.String()) {
			rt.Fatalf("pattern %q did not match constructed name %q", strings.Join(parts, "*"), name.String())
		}
	})
}
