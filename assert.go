package psi

import (
	"bytes"
	"cmp"
	"fmt"
	"reflect"
	"strings"

	"github.com/dkoosis/psi/pkg/check"
	"github.com/dkoosis/psi/pkg/source"
	"github.com/dkoosis/psi/pkg/value"
)

// Each exported assertion calls exactly one of the helpers below, and each
// helper locates the test's call site two frames up.
const callerSkip = 2

// CheckEq fails the test unless actual == expected.
func CheckEq[V comparable](t *T, actual, expected V) bool {
	return relate(t, check.LevelCheck, "CheckEq", actual == expected, "==", actual, expected)
}

// CheckNe fails the test unless actual != expected.
func CheckNe[V comparable](t *T, actual, expected V) bool {
	return relate(t, check.LevelCheck, "CheckNe", actual != expected, "!=", actual, expected)
}

// CheckLt fails the test unless actual < expected.
func CheckLt[V cmp.Ordered](t *T, actual, expected V) bool {
	return relate(t, check.LevelCheck, "CheckLt", cmp.Less(actual, expected), "<", actual, expected)
}

// CheckLe fails the test unless actual <= expected.
func CheckLe[V cmp.Ordered](t *T, actual, expected V) bool {
	return relate(t, check.LevelCheck, "CheckLe", cmp.Compare(actual, expected) <= 0, "<=", actual, expected)
}

// CheckGt fails the test unless actual > expected.
func CheckGt[V cmp.Ordered](t *T, actual, expected V) bool {
	return relate(t, check.LevelCheck, "CheckGt", cmp.Compare(actual, expected) > 0, ">", actual, expected)
}

// CheckGe fails the test unless actual >= expected.
func CheckGe[V cmp.Ordered](t *T, actual, expected V) bool {
	return relate(t, check.LevelCheck, "CheckGe", cmp.Compare(actual, expected) >= 0, ">=", actual, expected)
}

// RequireEq stops the test unless actual == expected.
func RequireEq[V comparable](t *T, actual, expected V) bool {
	return relate(t, check.LevelRequire, "RequireEq", actual == expected, "==", actual, expected)
}

// RequireNe stops the test unless actual != expected.
func RequireNe[V comparable](t *T, actual, expected V) bool {
	return relate(t, check.LevelRequire, "RequireNe", actual != expected, "!=", actual, expected)
}

// RequireLt stops the test unless actual < expected.
func RequireLt[V cmp.Ordered](t *T, actual, expected V) bool {
	return relate(t, check.LevelRequire, "RequireLt", cmp.Less(actual, expected), "<", actual, expected)
}

// RequireLe stops the test unless actual <= expected.
func RequireLe[V cmp.Ordered](t *T, actual, expected V) bool {
	return relate(t, check.LevelRequire, "RequireLe", cmp.Compare(actual, expected) <= 0, "<=", actual, expected)
}

// RequireGt stops the test unless actual > expected.
func RequireGt[V cmp.Ordered](t *T, actual, expected V) bool {
	return relate(t, check.LevelRequire, "RequireGt", cmp.Compare(actual, expected) > 0, ">", actual, expected)
}

// RequireGe stops the test unless actual >= expected.
func RequireGe[V cmp.Ordered](t *T, actual, expected V) bool {
	return relate(t, check.LevelRequire, "RequireGe", cmp.Compare(actual, expected) >= 0, ">=", actual, expected)
}

// CheckStrEq fails the test unless the strings are equal.
func CheckStrEq(t *T, actual, expected string) bool {
	return strs(t, check.LevelCheck, "CheckStrEq", actual == expected, "==", "not equal", actual, expected)
}

// CheckStrNe fails the test if the strings are equal.
func CheckStrNe(t *T, actual, expected string) bool {
	return strs(t, check.LevelCheck, "CheckStrNe", actual != expected, "!=", "equal", actual, expected)
}

// RequireStrEq stops the test unless the strings are equal.
func RequireStrEq(t *T, actual, expected string) bool {
	return strs(t, check.LevelRequire, "RequireStrEq", actual == expected, "==", "not equal", actual, expected)
}

// RequireStrNe stops the test if the strings are equal.
func RequireStrNe(t *T, actual, expected string) bool {
	return strs(t, check.LevelRequire, "RequireStrNe", actual != expected, "!=", "equal", actual, expected)
}

// CheckSubstrEq fails the test unless the first n bytes of the strings are
// equal. A string shorter than n compares as its whole length.
func CheckSubstrEq(t *T, actual, expected string, n int) bool {
	return substrs(t, check.LevelCheck, "CheckSubstrEq", true, "==", "unequal substrings", actual, expected, n)
}

// CheckSubstrNe fails the test if the first n bytes of the strings are equal.
func CheckSubstrNe(t *T, actual, expected string, n int) bool {
	return substrs(t, check.LevelCheck, "CheckSubstrNe", false, "!=", "equal substrings", actual, expected, n)
}

// RequireSubstrEq stops the test unless the first n bytes are equal.
func RequireSubstrEq(t *T, actual, expected string, n int) bool {
	return substrs(t, check.LevelRequire, "RequireSubstrEq", true, "==", "unequal substrings", actual, expected, n)
}

// RequireSubstrNe stops the test if the first n bytes are equal.
func RequireSubstrNe(t *T, actual, expected string, n int) bool {
	return substrs(t, check.LevelRequire, "RequireSubstrNe", false, "!=", "equal substrings", actual, expected, n)
}

// CheckBufEq fails the test unless the first n bytes of the buffers are
// equal. Missing bytes never compare equal to present ones.
func CheckBufEq(t *T, actual, expected []byte, n int) bool {
	return bufs(t, check.LevelCheck, "CheckBufEq", true, "==", "not equal", actual, expected, n)
}

// CheckBufNe fails the test if the first n bytes of the buffers are equal.
func CheckBufNe(t *T, actual, expected []byte, n int) bool {
	return bufs(t, check.LevelCheck, "CheckBufNe", false, "!=", "equal", actual, expected, n)
}

// RequireBufEq stops the test unless the first n bytes are equal.
func RequireBufEq(t *T, actual, expected []byte, n int) bool {
	return bufs(t, check.LevelRequire, "RequireBufEq", true, "==", "not equal", actual, expected, n)
}

// RequireBufNe stops the test if the first n bytes are equal.
func RequireBufNe(t *T, actual, expected []byte, n int) bool {
	return bufs(t, check.LevelRequire, "RequireBufNe", false, "!=", "equal", actual, expected, n)
}

// CheckTrue fails the test unless cond is true.
func CheckTrue(t *T, cond bool) bool {
	return truth(t, check.LevelCheck, "CheckTrue", cond, true)
}

// CheckFalse fails the test unless cond is false.
func CheckFalse(t *T, cond bool) bool {
	return truth(t, check.LevelCheck, "CheckFalse", cond, false)
}

// RequireTrue stops the test unless cond is true.
func RequireTrue(t *T, cond bool) bool {
	return truth(t, check.LevelRequire, "RequireTrue", cond, true)
}

// RequireFalse stops the test unless cond is false.
func RequireFalse(t *T, cond bool) bool {
	return truth(t, check.LevelRequire, "RequireFalse", cond, false)
}

// Check fails the test unless cond holds. The first of msg, if any, replaces
// the FAILED marker in the report.
func Check(t *T, cond bool, msg ...string) bool {
	return plain(t, check.LevelCheck, "Check", cond, msg)
}

// Require stops the test unless cond holds.
func Require(t *T, cond bool, msg ...string) bool {
	return plain(t, check.LevelRequire, "Require", cond, msg)
}

// CheckNil fails the test unless v is nil or a nil pointer, slice, map,
// channel, function or interface.
func CheckNil(t *T, v any) bool {
	return nilness(t, check.LevelCheck, "CheckNil", v, true)
}

// CheckNotNil fails the test if v is nil.
func CheckNotNil(t *T, v any) bool {
	return nilness(t, check.LevelCheck, "CheckNotNil", v, false)
}

// RequireNil stops the test unless v is nil.
func RequireNil(t *T, v any) bool {
	return nilness(t, check.LevelRequire, "RequireNil", v, true)
}

// RequireNotNil stops the test if v is nil.
func RequireNotNil(t *T, v any) bool {
	return nilness(t, check.LevelRequire, "RequireNotNil", v, false)
}

// Warn prints a warning with the caller's location. It never fails a test
// and may be called when no test is running, with a nil t.
func Warn(t *T, msg string) {
	t.Warn(source.Locate(1), msg)
}

// operands returns the source text of the arguments after t, falling back to
// fallback when the call cannot be found.
func operands(site source.Site, call string, fallback ...string) []string {
	args, ok := source.Args(site, call)
	if !ok || len(args) < len(fallback)+1 {
		return fallback
	}
	return args[1 : len(fallback)+1]
}

// header starts a failure block with the location and the marker.
func header(site source.Site, marker string) *check.Block {
	return check.NewBlock().Location(site).Fail(marker).Line()
}

// inCall appends the "In call" line.
func inCall(b *check.Block, call string, args []string) {
	b.Add(check.RoleHint, "  In call : "+call+"( "+strings.Join(args, ", ")+" )").Line()
}

func relate(t *T, level check.Level, call string, ok bool, op string, actual, expected any) bool {
	if ok {
		return true
	}
	site := source.Locate(callerSkip)
	args := operands(site, call, "actual", "expected")
	b := header(site, "FAILED")
	if !value.IsLiteral(args[0]) || !value.IsLiteral(args[1]) {
		inCall(b, call, args)
	}
	b.Text(fmt.Sprintf("  Expected : %s %s %s", args[0], op, value.Describe(expected))).Line()
	b.Text(fmt.Sprintf("    Actual : %s == %s", args[0], value.Describe(actual))).Line()
	t.Record(level, site, call, b)
	return false
}

func strs(t *T, level check.Level, call string, ok bool, op, verdict, actual, expected string) bool {
	if ok {
		return true
	}
	site := source.Locate(callerSkip)
	args := operands(site, call, "actual", "expected")
	b := header(site, "FAILED")
	if !value.IsStringLiteral(args[0]) || !value.IsStringLiteral(args[1]) {
		inCall(b, call, args)
	}
	b.Text(fmt.Sprintf("  Expected : %s %s %s", value.Describe(actual), op, value.Describe(expected))).Line()
	b.Text("    Actual : " + verdict).Line()
	t.Record(level, site, call, b)
	return false
}

// prefix returns at most the first n bytes of s.
func prefix[S ~string | ~[]byte](s S, n int) S {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func substrs(t *T, level check.Level, call string, wantEqual bool, op, verdict, actual, expected string, n int) bool {
	if n < 0 {
		check.Fatal(check.ErrNegativeLength)
		panic(check.ErrNegativeLength)
	}
	a, e := prefix(actual, n), prefix(expected, n)
	if (a == e) == wantEqual {
		return true
	}
	site := source.Locate(callerSkip)
	args := operands(site, call, "actual", "expected", "n")
	b := header(site, "FAILED")
	if !value.IsStringLiteral(args[0]) || !value.IsStringLiteral(args[1]) {
		inCall(b, call, args)
	}
	b.Text(fmt.Sprintf("  Expected : %s %s %s", value.Describe(a), op, value.Describe(e))).Line()
	b.Text("    Actual : " + verdict).Line()
	t.Record(level, site, call, b)
	return false
}

func bufs(t *T, level check.Level, call string, wantEqual bool, op, verdict string, actual, expected []byte, n int) bool {
	if n < 0 {
		check.Fatal(check.ErrNegativeLength)
		panic(check.ErrNegativeLength)
	}
	a, e := prefix(actual, n), prefix(expected, n)
	if bytes.Equal(a, e) == wantEqual {
		return true
	}
	site := source.Locate(callerSkip)
	args := operands(site, call, "actual", "expected", "n")
	b := header(site, "FAILED")
	inCall(b, call, args)
	b.Text("  Expected : ").Hex(actual, expected, n).Text(" " + op + " ").Hex(expected, actual, n).Line()
	b.Text("    Actual : " + verdict).Line()
	t.Record(level, site, call, b)
	return false
}

func truth(t *T, level check.Level, call string, cond, want bool) bool {
	if cond == want {
		return true
	}
	site := source.Locate(callerSkip)
	args := operands(site, call, "cond")
	b := header(site, "FAILED")
	inCall(b, call, args)
	b.Text(fmt.Sprintf("  Expected : %t", want)).Line()
	b.Text(fmt.Sprintf("    Actual : %t", cond)).Line()
	t.Record(level, site, call, b)
	return false
}

func plain(t *T, level check.Level, call string, cond bool, msg []string) bool {
	if cond {
		return true
	}
	site := source.Locate(callerSkip)
	args := operands(site, call, "cond")
	marker := "FAILED"
	if len(msg) > 0 && msg[0] != "" {
		marker = msg[0]
	}
	b := header(site, marker)
	b.Text("The following assertion failed:").Line()
	b.Add(check.RoleHint, "    "+call+"( "+args[0]+" )").Line()
	t.Record(level, site, call, b)
	return false
}

func nilness(t *T, level check.Level, call string, v any, wantNil bool) bool {
	if isNil(v) == wantNil {
		return true
	}
	site := source.Locate(callerSkip)
	args := operands(site, call, "v")
	b := header(site, "FAILED")
	inCall(b, call, args)
	want := "nil"
	if !wantNil {
		want = "not nil"
	}
	b.Text(fmt.Sprintf("  Expected : %s %s", args[0], want)).Line()
	b.Text(fmt.Sprintf("    Actual : %s == %s", args[0], value.Describe(v))).Line()
	t.Record(level, site, call, b)
	return false
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
