package parser

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/haukened/zonestream/internal/zone/domain"
)

// FileSource wraps a Parser and services its include requests by
// opening the referenced files. Relative include paths resolve
// against dir, normally the directory of the top-level zonefile.
// Opened files stay open until Close so that nested includes keep
// working; callers should defer Close.
type FileSource struct {
	p     *Parser
	dir   string
	files []*os.File
}

// NewFileSource returns a record source reading from p, following
// $INCLUDE lines with paths resolved against dir.
func NewFileSource(p *Parser, dir string) *FileSource {
	return &FileSource{p: p, dir: dir}
}

// Next returns the next record from the zone, transparently entering
// included files. All other errors pass through unchanged.
func (s *FileSource) Next() (domain.Record, error) {
	for {
		rec, err := s.p.Next()
		if err == nil {
			return rec, nil
		}
		var req *IncludeRequest
		if !errors.As(err, &req) {
			return domain.Record{}, err
		}
		path := req.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.dir, path)
		}
		f, oerr := os.Open(path)
		if oerr != nil {
			return domain.Record{}, &ParseError{
				Kind: ErrDirective,
				File: req.File,
				Line: req.Line,
				Msg:  "cannot open included file: " + oerr.Error(),
			}
		}
		s.files = append(s.files, f)
		s.p.PushInclude(f, req)
	}
}

// Close closes every file opened for an include.
func (s *FileSource) Close() error {
	var first error
	for _, f := range s.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	s.files = nil
	return first
}
