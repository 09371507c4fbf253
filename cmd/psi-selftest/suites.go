package main

import (
	"bytes"
	"strings"

	"github.com/dkoosis/psi"
)

var _ = psi.Test("Scalars", "Equality", func(t *psi.T) {
	a, b := 42, 42
	psi.CheckEq(t, a, b)
	psi.CheckNe(t, a, b+1)
	psi.RequireEq(t, uint8(255), uint8(0xFF))
	psi.CheckEq(t, 0.5+0.25, 0.75)
})

var _ = psi.Test("Scalars", "Ordering", func(t *psi.T) {
	psi.CheckLt(t, -1, 0)
	psi.CheckLe(t, 3, 3)
	psi.CheckGt(t, 2.5, 2.25)
	psi.CheckGe(t, int64(1)<<40, 1<<39)
	psi.RequireLt(t, "abc", "abd")
})

var _ = psi.Test("Scalars", "Pointers", func(t *psi.T) {
	x := 1
	p, q := &x, &x
	psi.CheckEq(t, p, q)
	psi.CheckNotNil(t, p)
	var nothing *int
	psi.CheckNil(t, nothing)
	psi.RequireNe(t, p, nothing)
})

var _ = psi.Test("Strings", "Whole", func(t *psi.T) {
	greeting := strings.Join([]string{"hello", "world"}, ", ")
	psi.CheckStrEq(t, greeting, "hello, world")
	psi.CheckStrNe(t, greeting, "hello")
	psi.RequireStrEq(t, strings.ToUpper("psi"), "PSI")
})

var _ = psi.Test("Strings", "Prefix", func(t *psi.T) {
	psi.CheckSubstrEq(t, "testing", "tester", 4)
	psi.CheckSubstrNe(t, "testing", "tester", 5)
	psi.CheckSubstrEq(t, "", "", 0)
	psi.RequireSubstrEq(t, "short", "short", 100)
})

var _ = psi.Test("Buffers", "Bytes", func(t *psi.T) {
	a := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	b := bytes.Clone(a)
	psi.CheckBufEq(t, a, b, len(a))
	b[3] = 0x00
	psi.CheckBufEq(t, a, b, 3)
	psi.CheckBufNe(t, a, b, 4)
	psi.RequireBufEq(t, nil, []byte{}, 0)
})

var _ = psi.Test("Conditions", "Truth", func(t *psi.T) {
	psi.CheckTrue(t, len("psi") == 3)
	psi.CheckFalse(t, strings.Contains("psi", "x"))
	psi.Check(t, 1 < 2)
	psi.Require(t, true, "never printed")
})

var _ = psi.Test("Conditions", "Branching", func(t *psi.T) {
	if !psi.CheckTrue(t, true) {
		return
	}
	psi.CheckEq(t, len([]int{1, 2, 3}), 3)
})

// buffer is the state shared by the Buffer fixture tests.
type buffer struct {
	data []byte
	open bool
}

func openBuffer(t *psi.T, b *buffer) {
	b.data = append(b.data, "seed"...)
	b.open = true
	psi.RequireTrue(t, b.open)
}

func closeBuffer(t *psi.T, b *buffer) {
	b.open = false
	b.data = nil
}

var _ = psi.Fixture("Fixture", "StartsSeeded", openBuffer, closeBuffer, func(t *psi.T, b *buffer) {
	psi.CheckStrEq(t, string(b.data), "seed")
	psi.CheckTrue(t, b.open)
})

var _ = psi.Fixture("Fixture", "IsFresh", openBuffer, closeBuffer, func(t *psi.T, b *buffer) {
	b.data = append(b.data, '!')
	psi.CheckEq(t, len(b.data), 5)
})
