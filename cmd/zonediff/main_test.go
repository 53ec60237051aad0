package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/zonestream/internal/zone/common/log"
)

func TestMain(m *testing.M) {
	log.SetLogger(log.NewNoopLogger())
	os.Exit(m.Run())
}

func writeZone(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const oldZone = `$TTL 1h
@       IN SOA ns1 admin 2024010101 1h 15m 1w 1h
        IN NS  ns1
www     IN A   192.0.2.1
gone    IN A   192.0.2.9
`

const newZone = `$TTL 1h
@       IN SOA ns1 admin 2024010199 1h 15m 1w 1h
        IN NS  ns1
www     IN A   192.0.2.2
mail    IN MX  10 mx.example.com.
`

func TestRun_ReportsDifferences(t *testing.T) {
	oldPath := writeZone(t, "example.com.old", oldZone)
	newPath := writeZone(t, "example.com.new", newZone)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-o", "example.com.", oldPath, newPath}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	want := "A:\n" +
		"  changed: 1\n" +
		"  deleted: 1\n" +
		"SOA:\n" +
		"  changed: 1\n" +
		"MX:\n" +
		"  added: 1\n" +
		"total:\n" +
		"  added: 1\n" +
		"  changed: 2\n" +
		"  deleted: 1\n"
	assert.Equal(t, want, stdout.String())
}

func TestRun_IgnoreSerial(t *testing.T) {
	oldPath := writeZone(t, "example.com.old", oldZone)
	newPath := writeZone(t, "example.com.new",
		strings.Replace(oldZone, "2024010101", "2024010199", 1))

	var stdout, stderr bytes.Buffer
	code := run([]string{oldPath, newPath}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "SOA:\n  changed: 1\n")

	stdout.Reset()
	code = run([]string{"-s", oldPath, newPath}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "", stdout.String(), "serial-only differences print nothing")
}

func TestRun_Verbose(t *testing.T) {
	oldPath := writeZone(t, "example.com.old", oldZone)
	newPath := writeZone(t, "example.com.new", newZone)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-o", "example.com.", "-s", "-v", oldPath, newPath}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	assert.Contains(t, out, "-- gone.example.com. 3600 IN A 192.0.2.9\n")
	assert.Contains(t, out, "++ mail.example.com. 3600 IN MX 10 mx.example.com.\n")
	assert.Contains(t, out, "~- www.example.com. 3600 IN A 192.0.2.1\n")
	assert.Contains(t, out, "~+ www.example.com. 3600 IN A 192.0.2.2\n")
}

func TestRun_ParseErrorExits255(t *testing.T) {
	oldPath := writeZone(t, "bad.old", "www IN A (192.0.2.1\n")
	newPath := writeZone(t, "good.new", "www IN A 192.0.2.1\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{oldPath, newPath}, &stdout, &stderr)

	assert.Equal(t, exitParse, code)
	assert.Contains(t, stderr.String(), "zonediff:")
}

func TestRun_UsageErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"only-one.zone"}, &stdout, &stderr)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), "Usage: zonediff")

	stderr.Reset()
	code = run([]string{"/does/not/exist.old", "/does/not/exist.new"}, &stdout, &stderr)
	assert.Equal(t, exitUsage, code)
}
