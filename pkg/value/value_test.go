package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOf_Kinds(t *testing.T) {
	type celsius float32
	type label string
	x := 7

	tests := []struct {
		name string
		in   any
		want Kind
	}{
		{"int", 42, Int},
		{"int8", int8(-3), Int},
		{"uint", uint(3), Uint},
		{"byte", byte(3), Uint},
		{"float", 1.5, Float},
		{"named float", celsius(2), Float},
		{"string", "hi", String},
		{"named string", label("x"), String},
		{"pointer", &x, Pointer},
		{"nil", nil, Pointer},
		{"bytes", []byte{1, 2}, Bytes},
		{"bool", true, Bool},
		{"struct", struct{ A int }{1}, Other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Of(tt.in).Kind)
		})
	}
}

func TestDescribe_FormatsByKind(t *testing.T) {
	assert.Equal(t, "-12", Describe(-12))
	assert.Equal(t, "12", Describe(uint16(12)))
	assert.Equal(t, "1.500000", Describe(1.5))
	assert.Equal(t, `"a\"b"`, Describe(`a"b`))
	assert.Equal(t, "true", Describe(true))
	assert.Equal(t, "nil", Describe(nil))
	assert.Equal(t, "<01 FF>", Describe([]byte{0x01, 0xff}))
	assert.Equal(t, "{1}", Describe(struct{ A int }{1}))

	x := 1
	assert.Regexp(t, `^0x[0-9a-f]+$`, Describe(&x))
}

func TestHexPairs(t *testing.T) {
	assert.Equal(t, "<01 02 AB>", HexPairs([]byte{0x01, 0x02, 0xab}))
	assert.Equal(t, "<>", HexPairs(nil))
}

func TestIsLiteral(t *testing.T) {
	assert.True(t, IsLiteral("42"))
	assert.True(t, IsLiteral("4.2"))
	assert.False(t, IsLiteral("4.2.1"))
	assert.False(t, IsLiteral("x"))
	assert.False(t, IsLiteral("len(x)"))
	assert.False(t, IsLiteral(""))
}

func TestIsStringLiteral(t *testing.T) {
	assert.True(t, IsStringLiteral(`"abc"`))
	assert.False(t, IsStringLiteral("s"))
	assert.False(t, IsStringLiteral(`fmt.Sprint("a")`))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "float", Float.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}
