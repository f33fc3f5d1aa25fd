package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mousetrail/mousetrail/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"trace":   log.LevelTrace,
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, log.ParseLevel(in), "level %q", in)
	}
}

func TestSetupLoggerConsole(t *testing.T) {
	var console bytes.Buffer
	logger, closers, err := log.SetupLogger(log.Config{Level: "trace"}, &console)
	require.NoError(t, err)
	assert.Empty(t, closers)

	logger.Log(context.Background(), log.LevelTrace, "payload", "len", 4)
	logger.Info("plotted", "segments", 2)

	out := console.String()
	assert.Contains(t, out, "level=TRACE")
	assert.Contains(t, out, "len=4")
	assert.Contains(t, out, "segments=2")
}

func TestSetupLoggerQuiet(t *testing.T) {
	var console bytes.Buffer
	logger, _, err := log.SetupLogger(log.Config{Level: "debug", Quiet: true}, &console)
	require.NoError(t, err)

	logger.Info("plotted")
	logger.Warn("skipped payload")

	assert.NotContains(t, console.String(), "plotted")
	assert.Contains(t, console.String(), "skipped payload")
}

func TestSetupLoggerFile(t *testing.T) {
	var console bytes.Buffer
	p := filepath.Join(t.TempDir(), "mousetrail.log")
	logger, closers, err := log.SetupLogger(log.Config{Level: "debug", File: p, Quiet: true}, &console)
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Debug("decoded", "packets", 3)
	logger.Log(context.Background(), log.LevelTrace, "hidden")
	for _, c := range closers {
		require.NoError(t, c.Close())
	}

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "packets=3")
	assert.NotContains(t, string(data), "hidden")
	assert.Empty(t, console.String())
}

func TestSetupLoggerBadFile(t *testing.T) {
	_, _, err := log.SetupLogger(log.Config{File: filepath.Join(t.TempDir(), "missing", "x.log")}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestSetupRawLogger(t *testing.T) {
	var console bytes.Buffer

	raw, c, err := log.SetupRawLogger(log.Config{Level: "info"}, &console)
	require.NoError(t, err)
	assert.Nil(t, c)
	raw.Log(1, []byte{0x01})
	assert.Empty(t, console.String())

	raw, c, err = log.SetupRawLogger(log.Config{Level: "trace"}, &console)
	require.NoError(t, err)
	assert.Nil(t, c)
	raw.Log(1, []byte{0x01})
	assert.Equal(t, "packet #1: 1 bytes, hex: 01\n", console.String())

	p := filepath.Join(t.TempDir(), "raw.txt")
	raw, c, err = log.SetupRawLogger(log.Config{RawFile: p}, &console)
	require.NoError(t, err)
	require.NotNil(t, c)
	raw.Log(2, []byte{0xab, 0xcd})
	require.NoError(t, c.Close())
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "packet #2: 2 bytes, hex: ab cd\n", string(data))
}

func TestRawLogger(t *testing.T) {
	var buf bytes.Buffer
	raw := log.NewRaw(&buf)
	raw.Log(7, []byte{0x01, 0xff, 0x00, 0x10})
	raw.Log(8, nil)
	assert.Equal(t, "packet #7: 4 bytes, hex: 01 ff 00 10\npacket #8: 0 bytes, hex: \n", buf.String())

	log.NewRaw(nil).Log(1, []byte{0x01})
}
