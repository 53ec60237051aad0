package parser

import "fmt"

// ErrorKind classifies a ParseError.
type ErrorKind uint8

const (
	// ErrLexical covers bad escapes, unterminated quotes, and
	// unbalanced parentheses, surfaced from the tokenizer.
	ErrLexical ErrorKind = iota
	// ErrStructural covers owner inheritance with no prior owner,
	// a missing or unknown record type, and malformed record fields.
	ErrStructural
	// ErrDirective covers malformed $ORIGIN, $TTL, and $INCLUDE lines.
	ErrDirective
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrLexical:
		return "lexical"
	case ErrStructural:
		return "structural"
	case ErrDirective:
		return "directive"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// ParseError reports one malformed zonefile construct. Errors are
// yielded through the iteration result; the parser never aborts the
// process and remains safe to advance after returning one.
type ParseError struct {
	Kind ErrorKind
	File string // source name as given at construction or by $INCLUDE
	Line int    // 1-based line number
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s error: %s", e.File, e.Line, e.Kind, e.Msg)
}

// IncludeRequest is returned from Next when a $INCLUDE directive is
// read. The parser performs no file I/O itself; the caller may open
// the referenced path and resume with PushInclude, or treat the
// request as an error and stop.
type IncludeRequest struct {
	Path   string // path exactly as written in the zonefile
	Origin string // optional origin override for the included data, "" if absent
	File   string // source containing the $INCLUDE line
	Line   int    // 1-based line of the $INCLUDE line
}

func (e *IncludeRequest) Error() string {
	return fmt.Sprintf("%s:%d: $INCLUDE %s requested", e.File, e.Line, e.Path)
}
