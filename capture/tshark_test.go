package capture_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mousetrail/mousetrail/capture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTshark writes a shell script standing in for tshark.
func fakeTshark(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tshark needs a POSIX shell")
	}
	p := filepath.Join(t.TempDir(), "tshark")
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return p
}

func writeCapture(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "mouse.pcapng")
	require.NoError(t, os.WriteFile(p, []byte("not really a pcap"), 0o644))
	return p
}

// isolateTemp points os.TempDir at a fresh directory for the test.
func isolateTemp(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("TMPDIR override is POSIX only")
	}
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)
	return dir
}

func spooled(t *testing.T, dir string) []string {
	t.Helper()
	m, err := filepath.Glob(filepath.Join(dir, "mousetrail-*.txt"))
	require.NoError(t, err)
	return m
}

func TestTsharkArgs(t *testing.T) {
	ts := &capture.Tshark{}
	assert.Equal(t,
		[]string{"-r", "in.pcapng", "-T", "fields", "-e", "usbhid.data", "-e", "usb.capdata"},
		ts.Args("in.pcapng"))

	ts.Fields = []string{"usb.capdata"}
	assert.Equal(t, []string{"-r", "x", "-T", "fields", "-e", "usb.capdata"}, ts.Args("x"))
}

func TestTsharkReadPayloads(t *testing.T) {
	tmp := isolateTemp(t)
	bin := fakeTshark(t, `printf '01:05:00:00\t\n\t\n\t00:ff:01:00\n'`)

	ts := &capture.Tshark{Path: bin}
	lines, err := ts.ReadPayloads(context.Background(), writeCapture(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"01:05:00:00\t", "\t00:ff:01:00"}, lines)
	assert.Empty(t, spooled(t, tmp))
}

func TestTsharkFailure(t *testing.T) {
	tmp := isolateTemp(t)
	bin := fakeTshark(t, `echo "tshark: The file doesn't exist." >&2; exit 2`)

	ts := &capture.Tshark{Path: bin}
	_, err := ts.ReadPayloads(context.Background(), writeCapture(t))
	require.ErrorIs(t, err, capture.ErrInvalidCaptureFile)
	assert.Contains(t, err.Error(), "doesn't exist")
	assert.Empty(t, spooled(t, tmp))
}

func TestTsharkMissingBinary(t *testing.T) {
	ts := &capture.Tshark{Path: filepath.Join(t.TempDir(), "no-such-tshark")}
	_, err := ts.ReadPayloads(context.Background(), writeCapture(t))
	assert.ErrorIs(t, err, capture.ErrInvalidCaptureFile)
}

func TestTsharkMissingCapture(t *testing.T) {
	ts := &capture.Tshark{Path: "/bin/false"}
	_, err := ts.ReadPayloads(context.Background(), filepath.Join(t.TempDir(), "missing.pcapng"))
	assert.ErrorIs(t, err, capture.ErrInvalidCaptureFile)

	_, err = ts.ReadPayloads(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, capture.ErrInvalidCaptureFile)
}

func TestReadTextPayloads(t *testing.T) {
	p := filepath.Join(t.TempDir(), "payloads.txt")
	require.NoError(t, os.WriteFile(p, []byte("01:00:00:00\n\n  \n02:00:00:00\n"), 0o644))

	lines, err := capture.ReadTextPayloads(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"01:00:00:00", "02:00:00:00"}, lines)

	_, err = capture.ReadTextPayloads(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, capture.ErrInvalidCaptureFile)
}
