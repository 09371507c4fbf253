// Package value describes assertion operands as one of a small closed set of
// kinds so failure reports can format them without knowing the Go type.
package value

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Kind classifies an operand.
type Kind int

const (
	Invalid Kind = iota
	Int
	Uint
	Float
	String
	Pointer
	Bytes
	Bool
	Other
)

var kindNames = [...]string{
	Invalid: "invalid",
	Int:     "int",
	Uint:    "uint",
	Float:   "float",
	String:  "string",
	Pointer: "pointer",
	Bytes:   "bytes",
	Bool:    "bool",
	Other:   "other",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Value is a tagged operand. Only the field matching Kind is meaningful.
type Value struct {
	Kind  Kind
	Int   int64
	Uint  uint64
	Float float64
	Str   string
	Addr  uintptr
	Bytes []byte
	Bool  bool
	raw   any
}

// Of classifies v.
func Of(v any) Value {
	if v == nil {
		return Value{Kind: Pointer}
	}
	switch x := v.(type) {
	case []byte:
		return Value{Kind: Bytes, Bytes: x}
	case string:
		return Value{Kind: String, Str: x}
	case bool:
		return Value{Kind: Bool, Bool: x}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Value{Kind: Int, Int: rv.Int()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Value{Kind: Uint, Uint: rv.Uint()}
	case reflect.Float32, reflect.Float64:
		return Value{Kind: Float, Float: rv.Float()}
	case reflect.String:
		return Value{Kind: String, Str: rv.String()}
	case reflect.Bool:
		return Value{Kind: Bool, Bool: rv.Bool()}
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan, reflect.Func, reflect.Map:
		return Value{Kind: Pointer, Addr: rv.Pointer()}
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Value{Kind: Bytes, Bytes: rv.Bytes()}
		}
		return Value{Kind: Pointer, Addr: rv.Pointer()}
	default:
		return Value{Kind: Other, raw: v}
	}
}

// Describe formats the value according to its kind.
func (v Value) Describe() string {
	switch v.Kind {
	case Int:
		return strconv.FormatInt(v.Int, 10)
	case Uint:
		return strconv.FormatUint(v.Uint, 10)
	case Float:
		return strconv.FormatFloat(v.Float, 'f', 6, 64)
	case String:
		return strconv.Quote(v.Str)
	case Pointer:
		if v.Addr == 0 {
			return "nil"
		}
		return fmt.Sprintf("0x%x", v.Addr)
	case Bytes:
		return HexPairs(v.Bytes)
	case Bool:
		return strconv.FormatBool(v.Bool)
	case Other:
		return fmt.Sprintf("%v", v.raw)
	default:
		return "<invalid>"
	}
}

// Describe is shorthand for Of(v).Describe().
func Describe(v any) string {
	return Of(v).Describe()
}

// HexPairs renders buf as "<AA BB ...>".
func HexPairs(buf []byte) string {
	var sb strings.Builder
	sb.WriteByte('<')
	for i, c := range buf {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", c)
	}
	sb.WriteByte('>')
	return sb.String()
}

// IsLiteral reports whether src is a plain numeric literal (digits with at
// most one '.').
func IsLiteral(src string) bool {
	if src == "" {
		return false
	}
	dots := 0
	for _, c := range src {
		switch {
		case c >= '0' && c <= '9':
		case c == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// IsStringLiteral reports whether src is a double-quoted literal with no call
// inside it.
func IsStringLiteral(src string) bool {
	return strings.HasPrefix(src, `"`) && !strings.Contains(src, "(")
}
