package parser

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/zonestream/internal/zone/common/log"
	"github.com/haukened/zonestream/internal/zone/domain"
)

func TestFileSource_FollowsNestedIncludes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inner.zone"),
		[]byte("deep IN A 192.0.2.3\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "middle.zone"),
		[]byte("mid IN A 192.0.2.2\n$INCLUDE inner.zone\n"), 0644))
	top := filepath.Join(dir, "top.zone")
	require.NoError(t, os.WriteFile(top,
		[]byte("www IN A 192.0.2.1\n$INCLUDE middle.zone\nlast IN A 192.0.2.4\n"), 0644))

	f, err := os.Open(top)
	require.NoError(t, err)
	defer f.Close()

	p := New(f, Options{Origin: "example.com.", Name: top, Logger: log.NewNoopLogger()})
	src := NewFileSource(p, dir)
	defer src.Close()

	var names []string
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		names = append(names, rec.Name)
	}
	assert.Equal(t, []string{"www", "mid", "deep", "last"}, names)
	assert.NoError(t, src.Close())
}

func TestFileSource_MissingIncludeFile(t *testing.T) {
	dir := t.TempDir()
	top := filepath.Join(dir, "top.zone")
	require.NoError(t, os.WriteFile(top,
		[]byte("$INCLUDE nowhere.zone\n"), 0644))

	f, err := os.Open(top)
	require.NoError(t, err)
	defer f.Close()

	p := New(f, Options{Origin: "example.com.", Name: top, Logger: log.NewNoopLogger()})
	src := NewFileSource(p, dir)
	defer src.Close()

	_, err = src.Next()
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrDirective, perr.Kind)
	assert.Equal(t, top, perr.File)
	assert.Equal(t, 1, perr.Line)
	assert.Contains(t, perr.Msg, "cannot open included file")
}

func TestFileSource_AbsoluteIncludePath(t *testing.T) {
	incDir := t.TempDir()
	inc := filepath.Join(incDir, "abs.zone")
	require.NoError(t, os.WriteFile(inc, []byte("extra IN A 192.0.2.9\n"), 0644))

	topDir := t.TempDir()
	top := filepath.Join(topDir, "top.zone")
	require.NoError(t, os.WriteFile(top,
		[]byte("$INCLUDE "+inc+"\n"), 0644))

	f, err := os.Open(top)
	require.NoError(t, err)
	defer f.Close()

	p := New(f, Options{Origin: "example.com.", Logger: log.NewNoopLogger()})
	src := NewFileSource(p, topDir)
	defer src.Close()

	rec, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, domain.RRTypeA, rec.Type)
	assert.Equal(t, "extra", rec.Name)

	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)
}
