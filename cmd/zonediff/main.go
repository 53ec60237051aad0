package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/haukened/zonestream/internal/zone/common/log"
	"github.com/haukened/zonestream/internal/zone/config"
	"github.com/haukened/zonestream/internal/zone/diff"
	"github.com/haukened/zonestream/internal/zone/parser"
)

const (
	exitUsage = 10
	exitParse = 255
)

const usage = "Usage: zonediff [-o origin] [-b size] [-s] [-d] [-v] [--log-level LEVEL] <old> <new>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.LoadDiff(args)
	if err != nil {
		if !errors.Is(err, config.ErrHelp) {
			fmt.Fprintf(stderr, "zonediff: %v\n", err)
			fmt.Fprintln(stderr, usage)
		}
		return exitUsage
	}

	if err := log.Configure("prod", cfg.LogLevel); err != nil {
		fmt.Fprintf(stderr, "zonediff: %v\n", err)
		return exitUsage
	}

	oldSrc, err := openZone(cfg.OldFile, cfg.Origin)
	if err != nil {
		fmt.Fprintf(stderr, "zonediff: %v\n", err)
		return exitUsage
	}
	defer oldSrc.Close()

	newSrc, err := openZone(cfg.NewFile, cfg.Origin)
	if err != nil {
		fmt.Fprintf(stderr, "zonediff: %v\n", err)
		return exitUsage
	}
	defer newSrc.Close()

	d := diff.New(oldSrc, newSrc, stdout, diff.Options{
		BufferSize:   cfg.BufferSize,
		IgnoreSerial: cfg.IgnoreSerial,
		SkipDNSSEC:   cfg.SkipDNSSEC,
		Verbose:      cfg.Verbose,
	})
	if err := d.Run(); err != nil {
		fmt.Fprintf(stderr, "zonediff: %v\n", err)
		return exitParse
	}

	fmt.Fprint(stdout, d.Summary())
	return 0
}

// zoneSource ties a parser source to the file it reads so both close
// together.
type zoneSource struct {
	*parser.FileSource
	f *os.File
}

func (s *zoneSource) Close() error {
	err := s.FileSource.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}

func openZone(path, origin string) (*zoneSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	p := parser.New(f, parser.Options{Origin: origin, Name: path})
	return &zoneSource{
		FileSource: parser.NewFileSource(p, filepath.Dir(path)),
		f:          f,
	}, nil
}
