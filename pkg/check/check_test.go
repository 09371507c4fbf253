package check

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/psi/pkg/source"
)

type fatalCalled struct{ err error }

// trapFatal swaps Fatal for a hook that unwinds with the error it was given.
func trapFatal(t *testing.T) {
	t.Helper()
	prev := Fatal
	Fatal = func(err error) { panic(fatalCalled{err}) }
	t.Cleanup(func() { Fatal = prev })
}

// invoke runs body the way the engine does: recovering only the abort signal.
func invoke(tt *T, body func(*T)) {
	defer func() {
		if r := recover(); r != nil && !IsAbort(r) {
			panic(r)
		}
	}()
	body(tt)
}

func TestT_BeginResetsState(t *testing.T) {
	tt := New("A.one", nil, nil)
	tt.Begin()
	invoke(tt, func(tt *T) { tt.FailNow() })
	require.True(t, tt.End().AbortRequested)

	tt.Begin()
	st := tt.State()
	assert.True(t, st.InsideTest)
	assert.False(t, st.Failed)
	assert.False(t, st.AbortRequested)
	assert.Empty(t, tt.Failures())
}

func TestRecord_CheckContinues(t *testing.T) {
	var out bytes.Buffer
	tt := New("A.one", &out, nil)
	tt.Begin()

	reached := false
	invoke(tt, func(tt *T) {
		tt.Fail()
		tt.Fail()
		reached = true
	})
	st := tt.End()

	assert.True(t, reached)
	assert.True(t, st.Failed)
	assert.False(t, st.AbortRequested)
	assert.Len(t, tt.Failures(), 2)
	assert.Equal(t, 2, strings.Count(out.String(), "FAILED"))
}

func TestRecord_RequireStopsBody(t *testing.T) {
	tt := New("A.one", nil, nil)
	tt.Begin()

	reached := false
	invoke(tt, func(tt *T) {
		tt.FailNow()
		reached = true
	})
	st := tt.End()

	assert.False(t, reached)
	assert.True(t, st.Failed)
	assert.True(t, st.AbortRequested)
	require.Len(t, tt.Failures(), 1)
	assert.Equal(t, LevelRequire, tt.Failures()[0].Level)
}

func TestAbortImpliesFailed(t *testing.T) {
	tt := New("A.one", nil, nil)
	for _, body := range []func(*T){
		func(tt *T) {},
		func(tt *T) { tt.Fail() },
		func(tt *T) { tt.FailNow() },
		func(tt *T) { tt.Fail(); tt.FailNow() },
	} {
		tt.Begin()
		invoke(tt, body)
		st := tt.End()
		if st.AbortRequested {
			assert.True(t, st.Failed)
		}
	}
}

func TestGuard_OutsideTestIsFatal(t *testing.T) {
	trapFatal(t)

	assert.PanicsWithValue(t, fatalCalled{ErrOutsideTest}, func() {
		var tt *T
		tt.Fail()
	})

	idle := New("A.one", nil, nil)
	assert.PanicsWithValue(t, fatalCalled{ErrOutsideTest}, func() { idle.Fail() })

	idle.Begin()
	idle.End()
	assert.PanicsWithValue(t, fatalCalled{ErrOutsideTest}, func() { idle.FailNow() })
	assert.False(t, idle.Failed(), "misuse must not alter state")
}

func TestGuard_ReturningHookStillStops(t *testing.T) {
	prev := Fatal
	var got error
	Fatal = func(err error) { got = err }
	t.Cleanup(func() { Fatal = prev })

	assert.Panics(t, func() { New("x", nil, nil).Fail() })
	assert.ErrorIs(t, got, ErrOutsideTest)
}

func TestWarn_CountsInsideAndOutside(t *testing.T) {
	var stray bytes.Buffer
	prev := StrayOutput
	StrayOutput = &stray
	t.Cleanup(func() { StrayOutput = prev })

	before := StrayWarnings()
	site := source.Site{File: "/x/a_test.go", Line: 3}

	var nilT *T
	nilT.Warn(site, "outside")
	assert.Equal(t, before+1, StrayWarnings())
	assert.Contains(t, stray.String(), "WARNING: outside")

	var out bytes.Buffer
	tt := New("A.one", &out, nil)
	tt.Begin()
	tt.Warn(site, "inside")
	st := tt.End()

	assert.Equal(t, 1, tt.Warnings())
	assert.False(t, st.Failed, "warnings never fail a test")
	assert.Contains(t, out.String(), "a_test.go:3:\nWARNING: inside")
	assert.Equal(t, before+1, StrayWarnings())
}

func TestRecordPanic(t *testing.T) {
	var out bytes.Buffer
	tt := New("A.boom", &out, nil)
	tt.Begin()
	tt.RecordPanic("kaboom", nil)
	st := tt.End()

	assert.True(t, st.Failed)
	assert.True(t, st.AbortRequested)
	assert.Contains(t, out.String(), "A.boom: PANIC")
	assert.Contains(t, out.String(), "kaboom")
}

type bracket struct{}

func (bracket) Paint(r Role, s string) string { return "[" + s + "]" }

func TestBlock_PaintKeepsPlainCopy(t *testing.T) {
	b := NewBlock().Location(source.Site{File: "f.go", Line: 9}).Fail("FAILED").Line().Add(RoleHint, "hint")

	assert.Equal(t, "f.go:9: FAILED\nhint", b.Paint(Plain))
	assert.Equal(t, "f.go:9: [FAILED]\n[hint]", b.Paint(bracket{}))
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "CHECK", LevelCheck.String())
	assert.Equal(t, "REQUIRE", LevelRequire.String())
}

func TestBlock_HexMarksDifferences(t *testing.T) {
	b := NewBlock().Hex([]byte{0x01, 0xAB, 0x03}, []byte{0x01, 0x02, 0x03, 0x04}, 4)

	assert.Equal(t, "<01 AB 03 -->", b.Paint(Plain))
	assert.Equal(t, "[<]01 [AB] 03 [--][>]", b.Paint(bracket{}))
}

func TestBlock_HexEmpty(t *testing.T) {
	assert.Equal(t, "<>", NewBlock().Hex(nil, nil, 0).Paint(Plain))
}

func TestBlock_HexStopsAtLongerBuffer(t *testing.T) {
	assert.Equal(t, "<01>", NewBlock().Hex([]byte{0x01}, []byte{0x02}, 1<<30).Paint(Plain))
	assert.Equal(t, "<01 -->", NewBlock().Hex([]byte{0x01}, []byte{0x01, 0x02}, 1<<30).Paint(Plain))
	assert.Equal(t, "<>", NewBlock().Hex(nil, nil, 1<<30).Paint(Plain))
}
