package domain

import (
	"fmt"
	"strings"
)

// Field is one decoded RDATA token: escape sequences and surrounding
// quotes from the zonefile have already been resolved, so the value
// holds the raw bytes of the field. The core parser never interprets
// fields; see the rdata package for optional structured decoding.
type Field string

// String renders the field in canonical zonefile form. Values that
// contain token separators (or are empty) are emitted as a quoted
// string; all other values are emitted bare. Non-printable bytes are
// \DDD-escaped either way, so rendering and re-parsing a field yields
// the same decoded bytes.
func (f Field) String() string {
	if f.needsQuoting() {
		return f.quoted()
	}
	return f.bare()
}

// needsQuoting reports whether the field must be rendered as a quoted
// string to survive re-tokenization.
func (f Field) needsQuoting() bool {
	if len(f) == 0 {
		return true
	}
	return strings.ContainsAny(string(f), " \t\n\r\"();")
}

func (f Field) quoted() string {
	var b strings.Builder
	b.Grow(len(f) + 2)
	b.WriteByte('"')
	for i := 0; i < len(f); i++ {
		c := f[i]
		switch {
		case c == '"':
			b.WriteString(`\"`)
		case c == '\\':
			b.WriteString(`\\`)
		case c < 0x20 || c > 0x7e:
			fmt.Fprintf(&b, `\%03d`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (f Field) bare() string {
	var b strings.Builder
	b.Grow(len(f))
	for i := 0; i < len(f); i++ {
		c := f[i]
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case c < 0x20 || c > 0x7e:
			fmt.Fprintf(&b, `\%03d`, c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Fields converts a plain string slice into a Field slice. Mostly a
// test and construction convenience.
func Fields(values ...string) []Field {
	out := make([]Field, len(values))
	for i, v := range values {
		out[i] = Field(v)
	}
	return out
}
