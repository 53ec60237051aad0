package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCount_Defaults(t *testing.T) {
	cfg, err := LoadCount([]string{"example.com.zone"})
	require.NoError(t, err)

	assert.Equal(t, "example.com.zone", cfg.Zonefile)
	assert.Equal(t, "example.com.zone", cfg.Origin, "origin defaults to the zonefile path")
	assert.False(t, cfg.JSON)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadCount_Flags(t *testing.T) {
	cfg, err := LoadCount([]string{"-o", "example.com.", "--json", "--log-level", "debug", "zone.db"})
	require.NoError(t, err)

	assert.Equal(t, "zone.db", cfg.Zonefile)
	assert.Equal(t, "example.com.", cfg.Origin)
	assert.True(t, cfg.JSON)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadCount_PositionalArity(t *testing.T) {
	_, err := LoadCount(nil)
	assert.ErrorContains(t, err, "exactly one zonefile")

	_, err = LoadCount([]string{"a.zone", "b.zone"})
	assert.ErrorContains(t, err, "exactly one zonefile")
}

func TestLoadCount_InvalidLogLevel(t *testing.T) {
	_, err := LoadCount([]string{"--log-level", "loud", "zone.db"})
	assert.ErrorContains(t, err, "validation failed")
}

func TestLoadCount_UnknownFlag(t *testing.T) {
	_, err := LoadCount([]string{"--frobnicate", "zone.db"})
	assert.Error(t, err)
}

func TestLoadDiff_Defaults(t *testing.T) {
	cfg, err := LoadDiff([]string{"old.zone", "new.zone"})
	require.NoError(t, err)

	assert.Equal(t, "old.zone", cfg.OldFile)
	assert.Equal(t, "new.zone", cfg.NewFile)
	assert.Equal(t, "old.zone", cfg.Origin, "origin defaults to the old zonefile path")
	assert.Equal(t, 1<<16, cfg.BufferSize)
	assert.False(t, cfg.IgnoreSerial)
	assert.False(t, cfg.SkipDNSSEC)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadDiff_ShortFlags(t *testing.T) {
	cfg, err := LoadDiff([]string{"-o", "example.com.", "-b", "128", "-s", "-d", "-v", "old.zone", "new.zone"})
	require.NoError(t, err)

	assert.Equal(t, "example.com.", cfg.Origin)
	assert.Equal(t, 128, cfg.BufferSize)
	assert.True(t, cfg.IgnoreSerial)
	assert.True(t, cfg.SkipDNSSEC)
	assert.True(t, cfg.Verbose)
}

func TestLoadDiff_PositionalArity(t *testing.T) {
	_, err := LoadDiff([]string{"only.zone"})
	assert.ErrorContains(t, err, "exactly two zonefile")
}

func TestLoadDiff_InvalidBufferSize(t *testing.T) {
	_, err := LoadDiff([]string{"-b", "0", "old.zone", "new.zone"})
	assert.ErrorContains(t, err, "validation failed")
}

func TestLoad_Help(t *testing.T) {
	_, err := LoadCount([]string{"--help"})
	assert.ErrorIs(t, err, ErrHelp)
}
