package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/haukened/zonestream/internal/zone/common/log"
	"github.com/haukened/zonestream/internal/zone/config"
	"github.com/haukened/zonestream/internal/zone/parser"
	"github.com/haukened/zonestream/internal/zone/stats"
)

const (
	exitUsage = 10
	exitParse = 255
)

const usage = "Usage: zonecount [-o origin] [--json] [--log-level LEVEL] <zonefile>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.LoadCount(args)
	if err != nil {
		if !errors.Is(err, config.ErrHelp) {
			fmt.Fprintf(stderr, "zonecount: %v\n", err)
			fmt.Fprintln(stderr, usage)
		}
		return exitUsage
	}

	if err := log.Configure("prod", cfg.LogLevel); err != nil {
		fmt.Fprintf(stderr, "zonecount: %v\n", err)
		return exitUsage
	}

	f, err := os.Open(cfg.Zonefile)
	if err != nil {
		fmt.Fprintf(stderr, "zonecount: %v\n", err)
		return exitUsage
	}
	defer f.Close()

	p := parser.New(f, parser.Options{Origin: cfg.Origin, Name: cfg.Zonefile})
	src := parser.NewFileSource(p, filepath.Dir(cfg.Zonefile))
	defer src.Close()

	counter := stats.New()
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Fprintf(stderr, "Parse error: %v\n", err)
			return exitParse
		}
		counter.Observe(rec)
	}

	summary := counter.Summary()
	if cfg.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			fmt.Fprintf(stderr, "zonecount: %v\n", err)
			return exitParse
		}
		return 0
	}
	fmt.Fprint(stdout, summary)
	return 0
}
