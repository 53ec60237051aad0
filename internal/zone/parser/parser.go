// Package parser assembles resource records from a tokenized zonefile
// stream. It owns the per-session zone state (current origin, default
// TTL, last owner, last class) that RFC 1035 master files inherit
// across records, handles the $ORIGIN/$TTL/$INCLUDE directives, and
// exposes a pull-based iterator that keeps at most one record in
// flight regardless of input size.
package parser

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/zonestream/internal/zone/common/log"
	"github.com/haukened/zonestream/internal/zone/domain"
	"github.com/haukened/zonestream/internal/zone/scanner"
)

// DefaultTTL is the fallback TTL for records that carry no explicit
// TTL when neither $TTL nor an earlier explicit TTL is available.
const DefaultTTL uint32 = 3600

// ownerCacheSize bounds the owner-name canonicalization cache. Owner
// names repeat heavily across consecutive records in real zones, so a
// small cache absorbs nearly all lowercase conversions.
const ownerCacheSize = 512

// Options configures a Parser.
type Options struct {
	// Origin seeds the current $ORIGIN. A $ORIGIN line in the data
	// overrides it.
	Origin string
	// Name identifies the source in error messages, typically the
	// zonefile path. Defaults to Origin, then to "zone".
	Name string
	// Logger receives debug logging. Defaults to the global logger.
	Logger log.Logger
}

// source is one entry of the include stack.
type source struct {
	sc          *scanner.Scanner
	name        string
	savedOrigin string // origin restored when this source is exhausted
}

// Parser reads resource records from one or more byte sources. Each
// Parser owns an independent zone state; two parsers never interact.
type Parser struct {
	sources []source // include stack, last entry is active
	logger  log.Logger

	origin     string         // current $ORIGIN, lowercased with trailing dot
	defaultTTL *uint32        // $TTL value, nil until declared
	lastTTL    *uint32        // last explicit record TTL, nil until seen
	lastOwner  string         // owner inherited by lines starting with whitespace
	lastClass  domain.RRClass // 0 until a record declares one

	owners *lru.Cache[string, string]
	done   bool
}

// New returns a Parser reading zonefile text from r.
func New(r io.Reader, opts Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLogger()
	}
	name := opts.Name
	if name == "" {
		name = opts.Origin
	}
	if name == "" {
		name = "zone"
	}
	owners, _ := lru.New[string, string](ownerCacheSize) // only errors on size < 1
	return &Parser{
		sources: []source{{sc: scanner.New(r), name: name}},
		logger:  logger,
		origin:  canonicalOrigin(opts.Origin),
		owners:  owners,
	}
}

// Origin returns the current $ORIGIN value.
func (p *Parser) Origin() string {
	return p.origin
}

// DefaultTTL returns the zone's $TTL default and whether one has been
// declared.
func (p *Parser) DefaultTTL() (uint32, bool) {
	if p.defaultTTL == nil {
		return 0, false
	}
	return *p.defaultTTL, true
}

// Next returns the next resource record. It returns io.EOF at true end
// of input, an *IncludeRequest when a $INCLUDE line is read, and a
// *ParseError for malformed input. After a *ParseError the parser has
// skipped the rest of the offending logical line and may be advanced
// again.
func (p *Parser) Next() (domain.Record, error) {
	if p.done {
		return domain.Record{}, io.EOF
	}
	for {
		tok, err := p.nextToken()
		if err != nil {
			return domain.Record{}, p.lexicalErr(err)
		}
		switch tok.Kind {
		case scanner.EOF:
			if p.popSource() {
				continue
			}
			p.done = true
			return domain.Record{}, io.EOF
		case scanner.Newline:
			continue // blank line
		case scanner.Quoted, scanner.OpenParen, scanner.CloseParen:
			p.recoverLine()
			return domain.Record{}, p.errStructural(tok.Line,
				fmt.Sprintf("unexpected %s at start of line", tok.Kind))
		}
		if strings.HasPrefix(tok.Text, "$") {
			if err := p.directive(tok); err != nil {
				return domain.Record{}, err
			}
			continue
		}
		return p.record(tok)
	}
}

// All returns a single-use iterator over the remaining records,
// yielding each parse error in place. Iteration ends at io.EOF.
func (p *Parser) All() iter.Seq2[domain.Record, error] {
	return func(yield func(domain.Record, error) bool) {
		for {
			rec, err := p.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(rec, err) {
				return
			}
		}
	}
}

// PushInclude resumes parsing from src, typically the opened file of a
// previously returned *IncludeRequest. The current origin is saved and
// restored when src is exhausted; an origin override on the $INCLUDE
// line applies to the included data only.
func (p *Parser) PushInclude(src io.Reader, req *IncludeRequest) {
	saved := p.origin
	if req.Origin != "" {
		p.origin = canonicalOrigin(req.Origin)
	}
	p.sources = append(p.sources, source{
		sc:          scanner.New(src),
		name:        req.Path,
		savedOrigin: saved,
	})
	p.done = false
	p.logger.Debug(map[string]any{
		"path":   req.Path,
		"origin": p.origin,
		"depth":  len(p.sources) - 1,
	}, "include pushed")
}

// AbsoluteName expands a possibly relative owner name against the
// current origin: "@" is the origin itself, names with a trailing dot
// are already absolute, anything else gets the origin appended. The
// records yielded by Next keep their names as written; this helper is
// for consumers that want fully qualified names.
func (p *Parser) AbsoluteName(name string) string {
	if name == "@" {
		return p.origin
	}
	if strings.HasSuffix(name, ".") {
		return name
	}
	return name + "." + p.origin
}

// record assembles one resource record, with first being the first
// token of the logical line.
func (p *Parser) record(first scanner.Token) (domain.Record, error) {
	line := first.Line

	// A word in column 1 names a new owner; a line starting with
	// whitespace inherits the previous one.
	var owner string
	haveTok := false
	tok := first
	if first.Column == 1 {
		var err error
		owner, err = p.ownerName(first)
		if err != nil {
			p.recoverLine()
			return domain.Record{}, err
		}
		p.lastOwner = owner
	} else {
		if p.lastOwner == "" {
			p.recoverLine()
			return domain.Record{}, p.errStructural(line, "owner name omitted with no previous owner")
		}
		owner = p.lastOwner
		haveTok = true
	}

	// TTL and class may appear in either order, both before the
	// mandatory type mnemonic.
	var ttl *uint32
	var class domain.RRClass
	var rrtype domain.RRType
fields:
	for {
		if !haveTok {
			var err error
			tok, err = p.nextToken()
			if err != nil {
				return domain.Record{}, p.lexicalErr(err)
			}
		}
		haveTok = false
		switch tok.Kind {
		case scanner.Newline, scanner.EOF:
			return domain.Record{}, p.errStructural(line, "record has no type field")
		case scanner.OpenParen, scanner.CloseParen:
			continue // continuation is transparent here
		case scanner.Quoted:
			p.recoverLine()
			return domain.Record{}, p.errStructural(tok.Line, "quoted string before record type")
		case scanner.Word:
			if t := domain.RRTypeFromString(tok.Text); t != 0 {
				rrtype = t
				break fields
			}
			if c := domain.RRClassFromString(tok.Text); c != 0 {
				if class != 0 {
					p.recoverLine()
					return domain.Record{}, p.errStructural(tok.Line, "duplicate class field")
				}
				class = c
				continue
			}
			v, err := parseTTL(tok.Text)
			if err != nil {
				p.recoverLine()
				return domain.Record{}, p.errStructural(tok.Line,
					fmt.Sprintf("expected TTL, class, or type, got %q", tok.Text))
			}
			if ttl != nil {
				p.recoverLine()
				return domain.Record{}, p.errStructural(tok.Line, "duplicate TTL field")
			}
			ttl = &v
		}
	}

	// Everything up to the unmasked end of line is RDATA, decoded but
	// otherwise uninterpreted.
	var data []domain.Field
	for {
		tok, err := p.nextToken()
		if err != nil {
			return domain.Record{}, p.lexicalErr(err)
		}
		switch tok.Kind {
		case scanner.Newline, scanner.EOF:
			return p.finalize(line, owner, ttl, class, rrtype, data)
		case scanner.OpenParen, scanner.CloseParen:
			continue
		default:
			data = append(data, domain.Field(tok.Text))
		}
	}
}

// finalize resolves the record's TTL and class against the zone state
// and constructs the immutable Record snapshot. This is the single
// emission point.
func (p *Parser) finalize(line int, owner string, ttl *uint32, class domain.RRClass, rrtype domain.RRType, data []domain.Field) (domain.Record, error) {
	// Explicit TTL wins and becomes the last explicit TTL. Otherwise
	// the $TTL default applies whenever one was declared; the last
	// explicit TTL is only a fallback for zones without $TTL.
	var resolvedTTL uint32
	switch {
	case ttl != nil:
		resolvedTTL = *ttl
		p.lastTTL = ttl
	case p.defaultTTL != nil:
		resolvedTTL = *p.defaultTTL
	case p.lastTTL != nil:
		resolvedTTL = *p.lastTTL
	default:
		resolvedTTL = DefaultTTL
	}

	if class != 0 {
		p.lastClass = class
	} else if p.lastClass != 0 {
		class = p.lastClass
	} else {
		class = domain.RRClassIN
	}

	rec, err := domain.NewRecord(owner, resolvedTTL, class, rrtype, data)
	if err != nil {
		return domain.Record{}, p.errStructural(line, err.Error())
	}
	return rec, nil
}

// ownerName canonicalizes an explicit owner token. "@" denotes the
// current origin.
func (p *Parser) ownerName(tok scanner.Token) (string, error) {
	if tok.Text == "@" {
		if p.origin == "" {
			return "", p.errStructural(tok.Line, "@ used with no origin in effect")
		}
		return p.origin, nil
	}
	return p.canonicalOwner(tok.Text), nil
}

// canonicalOwner lowercases an owner name through the memoization
// cache.
func (p *Parser) canonicalOwner(name string) string {
	if v, ok := p.owners.Get(name); ok {
		return v
	}
	v := strings.ToLower(name)
	p.owners.Add(name, v)
	return v
}

// nextToken pulls the next token from the active source.
func (p *Parser) nextToken() (scanner.Token, error) {
	return p.sources[len(p.sources)-1].sc.Next()
}

// fileName names the active source for error messages.
func (p *Parser) fileName() string {
	return p.sources[len(p.sources)-1].name
}

// popSource drops an exhausted include source, restoring the origin
// that was in effect before the include. Returns false on the base
// source.
func (p *Parser) popSource() bool {
	if len(p.sources) <= 1 {
		return false
	}
	top := p.sources[len(p.sources)-1]
	p.sources = p.sources[:len(p.sources)-1]
	p.origin = top.savedOrigin
	p.logger.Debug(map[string]any{
		"path":   top.name,
		"origin": p.origin,
	}, "include finished")
	return true
}

// recoverLine skips the remainder of the current logical line so the
// caller can keep iterating after an error. A persistent lexical
// condition (such as an unbalanced parenthesis at end of input) ends
// the session instead of looping.
func (p *Parser) recoverLine() {
	sc := p.sources[len(p.sources)-1].sc
	for {
		tok, err := sc.Next()
		if err != nil {
			p.done = true
			return
		}
		if tok.Kind == scanner.Newline || tok.Kind == scanner.EOF {
			return
		}
	}
}

// lexicalErr wraps a tokenizer error as a ParseError and skips the
// rest of the line.
func (p *Parser) lexicalErr(err error) error {
	line := p.sources[len(p.sources)-1].sc.Line()
	msg := err.Error()
	var serr *scanner.Error
	if errors.As(err, &serr) {
		line = serr.Line
		msg = serr.Msg
	}
	p.recoverLine()
	return &ParseError{Kind: ErrLexical, File: p.fileName(), Line: line, Msg: msg}
}

func (p *Parser) errStructural(line int, msg string) *ParseError {
	return &ParseError{Kind: ErrStructural, File: p.fileName(), Line: line, Msg: msg}
}

func (p *Parser) errDirective(line int, msg string) *ParseError {
	return &ParseError{Kind: ErrDirective, File: p.fileName(), Line: line, Msg: msg}
}

// canonicalOrigin lowercases an origin and guarantees a trailing dot.
// The empty string stays empty.
func canonicalOrigin(origin string) string {
	if origin == "" {
		return ""
	}
	origin = strings.ToLower(strings.TrimSpace(origin))
	if !strings.HasSuffix(origin, ".") {
		origin += "."
	}
	return origin
}
