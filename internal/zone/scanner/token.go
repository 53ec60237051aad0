package scanner

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind uint8

// Token kinds produced by the Scanner.
const (
	EOF        Kind = iota // end of input, emitted on every call once reached
	Word                   // bare word, escape sequences decoded
	Quoted                 // quoted string, quotes stripped and escapes decoded
	OpenParen              // ( - begins newline suppression
	CloseParen             // ) - ends newline suppression
	Newline                // end of a physical line outside parentheses
)

// String returns a human-readable name for the token kind.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case Word:
		return "word"
	case Quoted:
		return "quoted string"
	case OpenParen:
		return "'('"
	case CloseParen:
		return "')'"
	case Newline:
		return "end of line"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Token is one lexical unit of a zonefile. Text carries the decoded
// bytes for Word and Quoted tokens and is empty otherwise. Line and
// Column are the 1-based position of the token's first byte.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
}
