package check

import (
	"fmt"
	"strings"

	"github.com/dkoosis/psi/pkg/source"
)

// Role names the visual purpose of a span of failure text.
type Role int

const (
	RolePlain Role = iota
	RoleFail       // the FAILED marker
	RoleHint       // the "In call" line
	RoleDiff       // differing buffer bytes
	RoleFrame      // buffer brackets
	RoleWarn       // warnings
)

// Palette paints spans of text. Implementations live with the console theme.
type Palette interface {
	Paint(role Role, s string) string
}

type plain struct{}

func (plain) Paint(_ Role, s string) string { return s }

// Plain is the palette that leaves text unchanged.
var Plain Palette = plain{}

type span struct {
	role Role
	text string
}

// Block is a failure report assembled from roled spans, so it can be painted
// for the console and rendered plain for structured reports.
type Block struct {
	spans []span
}

// NewBlock returns an empty block.
func NewBlock() *Block { return &Block{} }

// Add appends text with a role.
func (b *Block) Add(role Role, s string) *Block {
	b.spans = append(b.spans, span{role: role, text: s})
	return b
}

// Text appends plain text.
func (b *Block) Text(s string) *Block { return b.Add(RolePlain, s) }

// Fail appends the failure marker.
func (b *Block) Fail(s string) *Block { return b.Add(RoleFail, s) }

// Line ends the current line.
func (b *Block) Line() *Block { return b.Add(RolePlain, "\n") }

// Location appends "file:line: ".
func (b *Block) Location(s source.Site) *Block {
	return b.Text(s.String() + ": ")
}

// Hex appends the first n bytes of buf as "<AA BB ...>", marking bytes that
// differ from ref at the same offset. Offsets past the end of buf but within
// ref render as "--"; nothing is rendered past the end of both.
func (b *Block) Hex(buf, ref []byte, n int) *Block {
	n = min(n, max(len(buf), len(ref)))
	b.Add(RoleFrame, "<")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.Text(" ")
		}
		if i >= len(buf) {
			b.Add(RoleDiff, "--")
			continue
		}
		pair := fmt.Sprintf("%02X", buf[i])
		if i >= len(ref) || buf[i] != ref[i] {
			b.Add(RoleDiff, pair)
		} else {
			b.Text(pair)
		}
	}
	return b.Add(RoleFrame, ">")
}

// Paint renders the block with p.
func (b *Block) Paint(p Palette) string {
	var sb strings.Builder
	for _, s := range b.spans {
		if s.role == RolePlain || s.text == "\n" {
			sb.WriteString(s.text)
			continue
		}
		sb.WriteString(p.Paint(s.role, s.text))
	}
	return sb.String()
}
