// Package scanner tokenizes RFC 1035 master-file (zonefile) text. It
// turns a byte stream into words, quoted strings, parentheses, and
// line boundaries, decoding \DDD and \X escape sequences along the
// way. Newlines inside a parenthesized span are treated as plain
// whitespace so a logical record can cross physical lines.
package scanner

import (
	"fmt"
	"io"
)

// Error is a lexical error carrying the 1-based source position.
type Error struct {
	Line   int
	Column int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, e.Msg)
}

// Scanner produces a lazy sequence of tokens from a byte source. It
// pulls exactly as many bytes as the next token needs.
type Scanner struct {
	cur   *cursor
	depth int // open parenthesis depth, newlines are masked while > 0
	eof   bool
}

// New returns a Scanner reading from r. If r is not an io.ByteReader
// it is wrapped in a small buffered reader.
func New(r io.Reader) *Scanner {
	return &Scanner{cur: newCursor(r)}
}

// Line returns the 1-based line number of the next unread byte.
func (s *Scanner) Line() int {
	return s.cur.line
}

// Depth returns the current parenthesis nesting depth.
func (s *Scanner) Depth() int {
	return s.depth
}

// Next returns the next token. Once end of input is reached, every
// subsequent call returns an EOF token. Lexical errors are returned as
// *Error; the scanner stays usable so a caller may skip the rest of
// the offending line and continue.
func (s *Scanner) Next() (Token, error) {
	if s.eof {
		return Token{Kind: EOF, Line: s.cur.line, Column: s.cur.col}, nil
	}
	for {
		b, ok := s.cur.peek()
		if !ok {
			if err := s.cur.err; err != nil {
				return Token{}, fmt.Errorf("reading zone data: %w", err)
			}
			if s.depth > 0 {
				return Token{}, &Error{Line: s.cur.line, Column: s.cur.col,
					Msg: "unbalanced '(' at end of input"}
			}
			s.eof = true
			return Token{Kind: EOF, Line: s.cur.line, Column: s.cur.col}, nil
		}

		line, col := s.cur.line, s.cur.col
		switch b {
		case ' ', '\t', '\r':
			s.cur.advance()
		case ';':
			// comment runs to the end of the physical line; the
			// newline itself is handled on the next iteration
			for {
				b, ok := s.cur.peek()
				if !ok || b == '\n' {
					break
				}
				s.cur.advance()
			}
		case '\n':
			s.cur.advance()
			if s.depth > 0 {
				continue // masked by open parentheses
			}
			return Token{Kind: Newline, Line: line, Column: col}, nil
		case '(':
			s.cur.advance()
			s.depth++
			return Token{Kind: OpenParen, Line: line, Column: col}, nil
		case ')':
			s.cur.advance()
			if s.depth == 0 {
				return Token{}, &Error{Line: line, Column: col, Msg: "unbalanced ')'"}
			}
			s.depth--
			return Token{Kind: CloseParen, Line: line, Column: col}, nil
		case '"':
			return s.scanQuoted(line, col)
		default:
			return s.scanWord(line, col)
		}
	}
}

// scanQuoted consumes a quoted string, decoding escapes. A newline
// before the closing quote is only legal inside a parenthesized span,
// where it becomes a literal byte of the string.
func (s *Scanner) scanQuoted(line, col int) (Token, error) {
	s.cur.advance() // opening quote
	var buf []byte
	for {
		b, ok := s.cur.peek()
		if !ok {
			return Token{}, &Error{Line: line, Column: col, Msg: "unterminated quoted string"}
		}
		switch b {
		case '"':
			s.cur.advance()
			return Token{Kind: Quoted, Text: string(buf), Line: line, Column: col}, nil
		case '\n':
			if s.depth == 0 {
				// leave the newline unread so the caller can resynchronize
				return Token{}, &Error{Line: line, Column: col, Msg: "unterminated quoted string"}
			}
			s.cur.advance()
			buf = append(buf, '\n')
		case '\\':
			dec, err := s.unescape()
			if err != nil {
				return Token{}, err
			}
			buf = append(buf, dec)
		default:
			s.cur.advance()
			buf = append(buf, b)
		}
	}
}

// scanWord consumes a maximal run of non-delimiter bytes as a Word
// token, applying the same escape decoding as quoted strings. Escaped
// delimiters (e.g. "\;" or "\.") become part of the word.
func (s *Scanner) scanWord(line, col int) (Token, error) {
	var buf []byte
	for {
		b, ok := s.cur.peek()
		if !ok {
			break
		}
		switch b {
		case ' ', '\t', '\r', '\n', '(', ')', ';', '"':
			return Token{Kind: Word, Text: string(buf), Line: line, Column: col}, nil
		case '\\':
			dec, err := s.unescape()
			if err != nil {
				return Token{}, err
			}
			buf = append(buf, dec)
		default:
			s.cur.advance()
			buf = append(buf, b)
		}
	}
	return Token{Kind: Word, Text: string(buf), Line: line, Column: col}, nil
}

// unescape decodes one backslash escape with the cursor positioned on
// the backslash. Per RFC 1035: \DDD is exactly three decimal digits
// naming a byte value (0-255), and \X for any non-digit X is the
// literal byte X. Fewer than three digits, or a value above 255, is a
// lexical error.
func (s *Scanner) unescape() (byte, error) {
	line, col := s.cur.line, s.cur.col
	s.cur.advance() // backslash
	b, ok := s.cur.peek()
	if !ok {
		return 0, &Error{Line: line, Column: col, Msg: "dangling escape at end of input"}
	}
	if b < '0' || b > '9' {
		s.cur.advance()
		return b, nil
	}
	val := 0
	for i := 0; i < 3; i++ {
		d, ok := s.cur.peek()
		if !ok || d < '0' || d > '9' {
			return 0, &Error{Line: line, Column: col, Msg: "numeric escape requires exactly three digits"}
		}
		s.cur.advance()
		val = val*10 + int(d-'0')
	}
	if val > 255 {
		return 0, &Error{Line: line, Column: col, Msg: fmt.Sprintf("escape value %d out of range", val)}
	}
	return byte(val), nil
}
