package scanner

import (
	"bufio"
	"io"
)

// cursor wraps the input byte source with single-byte lookahead and
// position tracking for diagnostics. It holds no parsing logic and
// imposes no maximum line length.
type cursor struct {
	r       io.ByteReader
	peeked  byte
	hasPeek bool
	done    bool
	err     error // first read error other than io.EOF

	line int // 1-based line of the next byte
	col  int // 1-based column of the next byte
	off  int // byte offset of the next byte
}

func newCursor(r io.Reader) *cursor {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReaderSize(r, 1024)
	}
	return &cursor{r: br, line: 1, col: 1}
}

// peek returns the next byte without consuming it.
func (c *cursor) peek() (byte, bool) {
	if c.hasPeek {
		return c.peeked, true
	}
	if c.done {
		return 0, false
	}
	b, err := c.r.ReadByte()
	if err != nil {
		c.done = true
		if err != io.EOF {
			c.err = err
		}
		return 0, false
	}
	c.peeked = b
	c.hasPeek = true
	return b, true
}

// advance consumes and returns the next byte. Advancing past the end
// of input keeps returning false; it is never an error.
func (c *cursor) advance() (byte, bool) {
	b, ok := c.peek()
	if !ok {
		return 0, false
	}
	c.hasPeek = false
	c.off++
	if b == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return b, true
}
