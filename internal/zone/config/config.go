// Package config parses and validates the command line configuration
// of the zone tools. Defaults come from a struct, flags override them,
// and the result is validated before use.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	flag "github.com/spf13/pflag"
)

// ErrHelp is returned when the user asked for usage output. pflag has
// already printed it.
var ErrHelp = flag.ErrHelp

// CountConfig holds the zonecount command line.
type CountConfig struct {
	// Origin seeds $ORIGIN for relative names. Defaults to the
	// zonefile path, which works for files named after their zone.
	Origin string `koanf:"origin"`

	// JSON switches the report from text to JSON.
	JSON bool `koanf:"json"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Zonefile is the positional zonefile argument.
	Zonefile string `koanf:"-" validate:"required"`
}

// DiffConfig holds the zonediff command line.
type DiffConfig struct {
	// Origin seeds $ORIGIN for relative names in both zones. Defaults
	// to the old zonefile path.
	Origin string `koanf:"origin"`

	// BufferSize is the comparison window in record sets.
	BufferSize int `koanf:"buffer_size" validate:"required,gte=1"`

	// IgnoreSerial blanks the SOA serial before comparison.
	IgnoreSerial bool `koanf:"ignore_serial"`

	// SkipDNSSEC drops NSEC, NSEC3, and RRSIG records from both zones.
	SkipDNSSEC bool `koanf:"skip_dnssec"`

	// Verbose prints every differing record, not just the tallies.
	Verbose bool `koanf:"verbose"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// OldFile and NewFile are the positional zonefile arguments.
	OldFile string `koanf:"-" validate:"required"`
	NewFile string `koanf:"-" validate:"required"`
}

// DEFAULT_COUNT_CONFIG defines the default zonecount settings.
var DEFAULT_COUNT_CONFIG = CountConfig{
	LogLevel: "error",
}

// DEFAULT_DIFF_CONFIG defines the default zonediff settings.
var DEFAULT_DIFF_CONFIG = DiffConfig{
	BufferSize: 1 << 16,
	LogLevel:   "error",
}

// LoadCount parses zonecount's arguments (without the program name).
func LoadCount(args []string) (*CountConfig, error) {
	f := flag.NewFlagSet("zonecount", flag.ContinueOnError)
	f.StringP("origin", "o", "", "zone origin for relative names (default: the zonefile path)")
	f.Bool("json", false, "emit the report as JSON")
	f.String("log-level", DEFAULT_COUNT_CONFIG.LogLevel, "log verbosity: debug, info, warn, or error")
	if err := f.Parse(args); err != nil {
		return nil, err
	}

	var cfg CountConfig
	if err := load(f, DEFAULT_COUNT_CONFIG, &cfg); err != nil {
		return nil, err
	}

	rest := f.Args()
	if len(rest) != 1 {
		return nil, fmt.Errorf("expected exactly one zonefile argument, got %d", len(rest))
	}
	cfg.Zonefile = rest[0]
	if cfg.Origin == "" {
		cfg.Origin = cfg.Zonefile
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDiff parses zonediff's arguments (without the program name).
func LoadDiff(args []string) (*DiffConfig, error) {
	f := flag.NewFlagSet("zonediff", flag.ContinueOnError)
	f.StringP("origin", "o", "", "zone origin for relative names (default: the old zonefile path)")
	f.IntP("buffer-size", "b", DEFAULT_DIFF_CONFIG.BufferSize, "comparison window in record sets")
	f.BoolP("ignore-serial", "s", false, "ignore SOA serial differences")
	f.BoolP("skip-dnssec", "d", false, "ignore NSEC, NSEC3, and RRSIG records")
	f.BoolP("verbose", "v", false, "print each differing record")
	f.String("log-level", DEFAULT_DIFF_CONFIG.LogLevel, "log verbosity: debug, info, warn, or error")
	if err := f.Parse(args); err != nil {
		return nil, err
	}

	var cfg DiffConfig
	if err := load(f, DEFAULT_DIFF_CONFIG, &cfg); err != nil {
		return nil, err
	}

	rest := f.Args()
	if len(rest) != 2 {
		return nil, fmt.Errorf("expected exactly two zonefile arguments, got %d", len(rest))
	}
	cfg.OldFile = rest[0]
	cfg.NewFile = rest[1]
	if cfg.Origin == "" {
		cfg.Origin = cfg.OldFile
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// load layers defaults under the parsed flags and unmarshals into cfg.
func load(f *flag.FlagSet, defaults any, cfg any) error {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return fmt.Errorf("error loading default config: %w", err)
	}
	// Flag names use dashes, config keys use underscores.
	cb := func(fl *flag.Flag) (string, any) {
		return strings.ReplaceAll(fl.Name, "-", "_"), posflag.FlagVal(f, fl)
	}
	if err := k.Load(posflag.ProviderWithFlag(f, ".", k, cb), nil); err != nil {
		return fmt.Errorf("error loading flags: %w", err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("error unmarshalling config: %w", err)
	}
	return nil
}

func validate(cfg any) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
