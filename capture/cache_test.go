package capture_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mousetrail/mousetrail/capture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pcapng")
	b := filepath.Join(dir, "b.pcapng")
	require.NoError(t, os.WriteFile(a, []byte("capture one"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("capture two"), 0o644))

	c := &capture.Cache{Dir: t.TempDir()}
	ka1, err := c.Key(a, capture.DefaultFields)
	require.NoError(t, err)
	ka2, err := c.Key(a, capture.DefaultFields)
	require.NoError(t, err)
	kb, err := c.Key(b, capture.DefaultFields)
	require.NoError(t, err)
	kf, err := c.Key(a, []string{"usb.capdata"})
	require.NoError(t, err)

	assert.Regexp(t, "^[0-9a-f]{64}$", ka1)
	assert.Equal(t, ka1, ka2)
	assert.NotEqual(t, ka1, kb)
	assert.NotEqual(t, ka1, kf)

	_, err = c.Key(filepath.Join(dir, "missing"), nil)
	assert.ErrorIs(t, err, capture.ErrInvalidCaptureFile)
}

func TestCacheRoundTrip(t *testing.T) {
	c := &capture.Cache{Dir: filepath.Join(t.TempDir(), "nested", "cache")}
	fields := capture.DefaultFields
	payloads := []string{"01:00:00:00", "\t02:01:ff:00"}

	_, ok, err := c.Load("k", fields)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Store("k", fields, payloads))

	got, ok, err := c.Load("k", fields)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payloads, got)

	_, ok, err = c.Load("k", []string{"usb.capdata"})
	require.NoError(t, err)
	assert.False(t, ok, "entry for other fields must miss")

	entries, err := os.ReadDir(c.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCacheCorruptEntry(t *testing.T) {
	c := &capture.Cache{Dir: t.TempDir()}
	require.NoError(t, os.WriteFile(filepath.Join(c.Dir, "bad.cbor"), []byte{0xff, 0x00}, 0o644))
	_, ok, err := c.Load("bad", nil)
	assert.Error(t, err)
	assert.False(t, ok)
}
