package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/haukened/zonestream/internal/zone/scanner"
)

// directive handles one $-prefixed line. tok is the directive word.
// $ORIGIN and $TTL mutate the zone state and yield no record;
// $INCLUDE is surfaced to the caller as an *IncludeRequest since file
// I/O is out of scope here.
func (p *Parser) directive(tok scanner.Token) error {
	name := strings.ToUpper(tok.Text)
	switch name {
	case "$ORIGIN":
		arg, err := p.directiveArg(name, tok.Line)
		if err != nil {
			return err
		}
		if err := p.endDirective(name, tok.Line); err != nil {
			return err
		}
		p.origin = canonicalOrigin(arg)
		p.logger.Debug(map[string]any{"origin": p.origin}, "origin directive")
		return nil

	case "$TTL":
		arg, err := p.directiveArg(name, tok.Line)
		if err != nil {
			return err
		}
		if err := p.endDirective(name, tok.Line); err != nil {
			return err
		}
		secs, err := parseTTL(arg)
		if err != nil {
			return p.errDirective(tok.Line, fmt.Sprintf("invalid $TTL value %q: %v", arg, err))
		}
		p.defaultTTL = &secs
		p.logger.Debug(map[string]any{"ttl": secs}, "default ttl directive")
		return nil

	case "$INCLUDE":
		path, err := p.directiveArg(name, tok.Line)
		if err != nil {
			return err
		}
		req := &IncludeRequest{Path: path, File: p.fileName(), Line: tok.Line}
		// optional origin override for the included file
		next, err := p.nextToken()
		if err != nil {
			return p.lexicalErr(err)
		}
		switch next.Kind {
		case scanner.Newline, scanner.EOF:
			return req
		case scanner.Word:
			req.Origin = next.Text
		default:
			p.recoverLine()
			return p.errDirective(tok.Line, fmt.Sprintf("unexpected %s in $INCLUDE", next.Kind))
		}
		if err := p.endDirective(name, tok.Line); err != nil {
			return err
		}
		return req

	default:
		p.recoverLine()
		return p.errDirective(tok.Line, fmt.Sprintf("unknown directive %q", tok.Text))
	}
}

// directiveArg reads the directive's mandatory argument word.
func (p *Parser) directiveArg(dir string, line int) (string, error) {
	tok, err := p.nextToken()
	if err != nil {
		return "", p.lexicalErr(err)
	}
	switch tok.Kind {
	case scanner.Word, scanner.Quoted:
		return tok.Text, nil
	case scanner.Newline, scanner.EOF:
		return "", p.errDirective(line, dir+" requires an argument")
	default:
		p.recoverLine()
		return "", p.errDirective(line, fmt.Sprintf("unexpected %s in %s", tok.Kind, dir))
	}
}

// endDirective consumes the end of the directive line, rejecting
// trailing tokens.
func (p *Parser) endDirective(dir string, line int) error {
	tok, err := p.nextToken()
	if err != nil {
		return p.lexicalErr(err)
	}
	switch tok.Kind {
	case scanner.Newline, scanner.EOF:
		return nil
	default:
		p.recoverLine()
		return p.errDirective(line, "unexpected trailing tokens after "+dir)
	}
}

// ttlUnits maps the RFC-style time-unit suffixes to seconds.
var ttlUnits = map[byte]uint64{
	's': 1,
	'm': 60,
	'h': 3600,
	'd': 86400,
	'w': 604800,
}

// parseTTL parses a TTL value: a non-negative integer with an optional
// case-insensitive unit suffix (s, m, h, d, w) expanded to seconds.
func parseTTL(s string) (uint32, error) {
	if s == "" {
		return 0, fmt.Errorf("empty TTL")
	}
	mult := uint64(1)
	last := s[len(s)-1]
	if last < '0' || last > '9' {
		m, ok := ttlUnits[byte(strings.ToLower(string(last))[0])]
		if !ok {
			return 0, fmt.Errorf("unknown time unit %q", string(last))
		}
		mult = m
		s = s[:len(s)-1]
		if s == "" {
			return 0, fmt.Errorf("missing value before time unit")
		}
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("not an unsigned integer: %q", s)
	}
	v := n * mult
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("TTL %d overflows 32 bits", v)
	}
	return uint32(v), nil
}
